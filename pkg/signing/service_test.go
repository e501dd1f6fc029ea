package signing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/lexkitt/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.NewSQLiteStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return NewService(st)
}

func TestSignAndVerify(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.GenerateKeyPair()
	require.NoError(t, err)
	require.NotEmpty(t, pair.PublicKey)

	doc := []byte("Debt validation request, sent 2026-08-31.")
	sig, err := svc.Sign(doc)
	require.NoError(t, err)

	ok, err := svc.Verify(doc, sig, pair.PublicKey)
	require.NoError(t, err)
	assert.True(t, ok)

	// Stored key is used when none is passed
	ok, err = svc.Verify(doc, sig, "")
	require.NoError(t, err)
	assert.True(t, ok)

	// Tampered document fails
	ok, err = svc.Verify([]byte("Debt validation request, sent 2026-09-01."), sig, pair.PublicKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSignWithoutKeysFails(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Sign([]byte("unsigned"))
	assert.ErrorIs(t, err, ErrNoKeyPair)
}

func TestEnsureKeyPairIsStable(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.EnsureKeyPair()
	require.NoError(t, err)

	second, err := svc.EnsureKeyPair()
	require.NoError(t, err)
	assert.Equal(t, first.PublicKey, second.PublicKey)
}

func TestGenerateReplacesKeys(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.GenerateKeyPair()
	require.NoError(t, err)

	doc := []byte("agreement text")
	oldSig, err := svc.Sign(doc)
	require.NoError(t, err)

	second, err := svc.GenerateKeyPair()
	require.NoError(t, err)
	assert.NotEqual(t, first.PublicKey, second.PublicKey)

	// Signatures from the old pair no longer verify against the stored key
	ok, err := svc.Verify(doc, oldSig, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearKeys(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GenerateKeyPair()
	require.NoError(t, err)
	require.NoError(t, svc.ClearKeys())

	pub, err := svc.PublicKey()
	require.NoError(t, err)
	assert.Empty(t, pub)

	_, err = svc.Sign([]byte("x"))
	assert.ErrorIs(t, err, ErrNoKeyPair)
}

func TestHashIsDeterministic(t *testing.T) {
	a := Hash([]byte("document body"))
	b := Hash([]byte("document body"))
	c := Hash([]byte("different body"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
