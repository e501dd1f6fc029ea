package cache

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestUpsertRemoveRoundTrip(t *testing.T) {
	c := newTestCache(t)

	creditor := CreditorRecord{
		ID:            "cr1",
		Name:          "Acme Recovery LLC",
		AmountClaimed: 1250.00,
		Status:        "disputed",
	}
	require.NoError(t, c.Creditors.Upsert(creditor))

	list := c.Creditors.List()
	require.Len(t, list, 1)
	assert.Equal(t, creditor, list[0])

	// Full replacement by id, position preserved.
	creditor.Status = "validated"
	require.NoError(t, c.Creditors.Upsert(creditor))
	list = c.Creditors.List()
	require.Len(t, list, 1)
	assert.Equal(t, "validated", list[0].Status)

	require.NoError(t, c.Creditors.Remove("cr1"))
	assert.Empty(t, c.Creditors.List())

	// Removing an absent id is a no-op, not an error.
	require.NoError(t, c.Creditors.Remove("cr1"))
	assert.Empty(t, c.Creditors.List())
}

func TestLogCollectionsPrepend(t *testing.T) {
	c := newTestCache(t)

	require.NoError(t, c.Creditors.Upsert(CreditorRecord{ID: "a", Name: "First"}))
	require.NoError(t, c.Creditors.Upsert(CreditorRecord{ID: "b", Name: "Second"}))

	list := c.Creditors.List()
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID, "new creditor entries are prepended")
	assert.Equal(t, "a", list[1].ID)
}

func TestDocumentsNewestFirst(t *testing.T) {
	c := newTestCache(t)

	// Inserted in arbitrary order; the read sorts by upload time.
	require.NoError(t, c.Documents.Upsert(VaultDocumentRecord{ID: "d2", FileName: "b.pdf", DateUploaded: 2000}))
	require.NoError(t, c.Documents.Upsert(VaultDocumentRecord{ID: "d1", FileName: "a.pdf", DateUploaded: 1000}))
	require.NoError(t, c.Documents.Upsert(VaultDocumentRecord{ID: "d3", FileName: "c.pdf", DateUploaded: 3000}))

	list := c.Documents.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"d3", "d2", "d1"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestTemplateDefaultsImmutable(t *testing.T) {
	c := newTestCache(t)

	builtins := len(DefaultTemplates())
	assert.Len(t, c.Templates.List(), builtins)

	custom := TemplateRecord{ID: "tpl-custom-1", Name: "My Letter", Body: "...", IsCustom: true}
	require.NoError(t, c.Templates.Upsert(custom))
	assert.Len(t, c.Templates.List(), builtins+1)

	// Deleting a built-in default has no effect.
	require.NoError(t, c.Templates.Remove(TemplateDebtValidation))
	list := c.Templates.List()
	assert.Len(t, list, builtins+1)

	got, ok := c.Templates.Get(TemplateDebtValidation)
	require.True(t, ok)
	assert.False(t, got.IsCustom)

	// Custom entries are deletable.
	require.NoError(t, c.Templates.Remove("tpl-custom-1"))
	assert.Len(t, c.Templates.List(), builtins)
}

func TestScriptDefaultsPresent(t *testing.T) {
	c := newTestCache(t)

	list := c.Scripts.List()
	require.Len(t, list, len(DefaultScripts()))
	for _, s := range list {
		assert.False(t, s.IsCustom)
	}
}

func TestCurrentUserSlot(t *testing.T) {
	c := newTestCache(t)

	assert.Nil(t, c.LoadUser())

	user := &UserRecord{ID: "u1", Name: "Jordan Doe", Email: "jordan@example.com"}
	require.NoError(t, c.SaveUser(user))

	loaded := c.LoadUser()
	require.NotNil(t, loaded)
	assert.Equal(t, *user, *loaded)

	require.NoError(t, c.ClearUser())
	assert.Nil(t, c.LoadUser())
}

func TestClipboardSlot(t *testing.T) {
	c := newTestCache(t)

	assert.Nil(t, c.GetClipboard())

	payload := json.RawMessage(`{"instrument":"notice","fields":{"creditor":"Acme"}}`)
	require.NoError(t, c.SetClipboard(payload))
	assert.JSONEq(t, string(payload), string(c.GetClipboard()))

	require.NoError(t, c.ClearClipboard())
	assert.Nil(t, c.GetClipboard())
}

func TestListDegradesOnMalformedPayload(t *testing.T) {
	c := newTestCache(t)

	// Corrupt the stored payload directly; reads must fall back to empty
	// rather than surfacing an error to the UI.
	require.NoError(t, c.store.set(keyCreditors, []byte("{not json")))
	assert.Empty(t, c.Creditors.List())

	// And the template defaults survive a corrupt custom payload.
	require.NoError(t, c.store.set(keyTemplates, []byte("{not json")))
	assert.Len(t, c.Templates.List(), len(DefaultTemplates()))
}
