package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/lexkitt/internal/cache"
)

func newTestManager(t *testing.T, opts ...Option) (*Manager, *cache.Cache) {
	t.Helper()
	c, err := cache.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return NewManager(c, opts...), c
}

func TestLoginLogoutLifecycle(t *testing.T) {
	m, c := newTestManager(t)

	assert.Nil(t, m.CurrentUser())
	assert.Equal(t, DefaultTab, m.ActiveTab())

	user := &cache.UserRecord{ID: "u1", Name: "Jordan Doe"}
	require.NoError(t, m.Login(user))
	assert.Equal(t, user, m.CurrentUser())

	// Login persists through the cache, so a new manager hydrates it.
	m2 := NewManager(c)
	require.NotNil(t, m2.CurrentUser())
	assert.Equal(t, "u1", m2.CurrentUser().ID)

	m.SetActiveTab(TabVault)
	assert.Equal(t, TabVault, m.ActiveTab())

	require.NoError(t, m.Logout())
	assert.Nil(t, m.CurrentUser())
	assert.Equal(t, DefaultTab, m.ActiveTab(), "logout resets the active tab")
	assert.Nil(t, c.LoadUser(), "logout clears the persisted user")
}

func TestSetActiveTabClosedSet(t *testing.T) {
	m, _ := newTestManager(t)

	m.SetActiveTab(TabCorpus)
	assert.Equal(t, TabCorpus, m.ActiveTab())

	// Identifiers outside the closed set are ignored.
	m.SetActiveTab(Tab("definitely-not-a-view"))
	assert.Equal(t, TabCorpus, m.ActiveTab())
}

func TestDraftHandoffRoundTrip(t *testing.T) {
	m, c := newTestManager(t)

	assert.Nil(t, m.DraftHandoff())

	payload := json.RawMessage(`{"instrument":"notice","creditorId":"cr1"}`)
	m.SetDraftHandoff(payload)
	assert.JSONEq(t, string(payload), string(m.DraftHandoff()))

	// Persisted: a fresh manager sees the same handoff.
	m2 := NewManager(c)
	assert.JSONEq(t, string(payload), string(m2.DraftHandoff()))

	m.SetDraftHandoff(nil)
	assert.Nil(t, m.DraftHandoff())
}

func TestNotificationAutoExpiry(t *testing.T) {
	m, _ := newTestManager(t, WithNotificationTTL(20*time.Millisecond))

	id := m.Notify(NotifyInfo, "seeding complete")
	require.NotEmpty(t, id)
	require.Len(t, m.Notifications(), 1)

	assert.Eventually(t, func() bool {
		return len(m.Notifications()) == 0
	}, time.Second, 5*time.Millisecond, "notification should expire on its own")
}

func TestNotificationManualDismiss(t *testing.T) {
	m, _ := newTestManager(t, WithNotificationTTL(time.Hour))

	id := m.Notify(NotifyError, "storage unavailable")
	require.Len(t, m.Notifications(), 1)

	// Dismissal wins over the (distant) timer.
	m.Dismiss(id)
	assert.Empty(t, m.Notifications())

	// Dismissing again is a no-op.
	m.Dismiss(id)
	assert.Empty(t, m.Notifications())
}

func TestNotificationsOrderedOldestFirst(t *testing.T) {
	m, _ := newTestManager(t, WithNotificationTTL(time.Hour))

	m.Notify(NotifyInfo, "first")
	m.Notify(NotifySuccess, "second")

	list := m.Notifications()
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "second", list[1].Message)
}

func TestOnChangeObserved(t *testing.T) {
	changes := 0
	c, err := cache.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	m := NewManager(c, WithOnChange(func() { changes++ }), WithNotificationTTL(time.Hour))

	m.SetActiveTab(TabProfile)
	id := m.Notify(NotifyInfo, "hello")
	m.Dismiss(id)

	assert.Equal(t, 3, changes)
}
