// Package session holds process-wide application state: the current user,
// the active view, the draft handoff slot, and transient toast notifications.
// State lives in memory; the current user and the handoff slot additionally
// persist through the profile cache so a reload restores them.
package session

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/kittclouds/lexkitt/internal/cache"
)

// Tab identifies one of the fixed set of views.
type Tab string

const (
	TabDashboard   Tab = "dashboard"
	TabProfile     Tab = "profile"
	TabCreditors   Tab = "creditors"
	TabVault       Tab = "vault"
	TabCorpus      Tab = "corpus"
	TabInstruments Tab = "instruments"
	TabProcesses   Tab = "processes"
	TabInvoices    Tab = "invoices"
	TabSettings    Tab = "settings"
)

// DefaultTab is the view shown after logout and at first start.
const DefaultTab = TabDashboard

// validTabs is the closed set of view identifiers.
var validTabs = map[Tab]bool{
	TabDashboard:   true,
	TabProfile:     true,
	TabCreditors:   true,
	TabVault:       true,
	TabCorpus:      true,
	TabInstruments: true,
	TabProcesses:   true,
	TabInvoices:    true,
	TabSettings:    true,
}

// Manager is the single-consumer application state machine.
// Thread-safe for concurrent WASM callbacks and notification timers.
type Manager struct {
	mu    sync.RWMutex
	cache *cache.Cache

	currentUser  *cache.UserRecord
	activeTab    Tab
	draftHandoff json.RawMessage

	notificationTTL time.Duration
	onChange        func() // observation hook for the UI layer, may be nil

	notifications []Notification
	timers        map[string]*time.Timer
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotificationTTL overrides the auto-dismiss delay. Used by tests.
func WithNotificationTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.notificationTTL = ttl }
}

// WithOnChange registers a callback invoked after every state mutation,
// outside the state lock. The UI layer uses it to re-render.
func WithOnChange(fn func()) Option {
	return func(m *Manager) { m.onChange = fn }
}

// NewManager creates the session manager, hydrating the current user and the
// draft handoff slot from the persisted cache.
func NewManager(c *cache.Cache, opts ...Option) *Manager {
	m := &Manager{
		cache:           c,
		activeTab:       DefaultTab,
		notificationTTL: defaultNotificationTTL,
		timers:          make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(m)
	}

	if c != nil {
		m.currentUser = c.LoadUser()
		m.draftHandoff = c.GetClipboard()
	}
	return m
}

// CurrentUser returns the logged-in user, or nil.
func (m *Manager) CurrentUser() *cache.UserRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentUser
}

// Login sets the current user and persists it via the profile cache.
func (m *Manager) Login(user *cache.UserRecord) error {
	m.mu.Lock()
	m.currentUser = user
	m.mu.Unlock()

	var err error
	if m.cache != nil {
		err = m.cache.SaveUser(user)
	}
	m.notifyChange()
	return err
}

// Logout clears the persisted user, resets the current user to absent, and
// resets the active tab to the default view. This is the only operation that
// resets the active tab.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.currentUser = nil
	m.activeTab = DefaultTab
	m.mu.Unlock()

	var err error
	if m.cache != nil {
		err = m.cache.ClearUser()
	}
	m.notifyChange()
	return err
}

// ActiveTab returns the current view identifier.
func (m *Manager) ActiveTab() Tab {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeTab
}

// SetActiveTab switches views. Identifiers outside the closed set are
// ignored.
func (m *Manager) SetActiveTab(tab Tab) {
	if !validTabs[tab] {
		return
	}
	m.mu.Lock()
	m.activeTab = tab
	m.mu.Unlock()
	m.notifyChange()
}

// DraftHandoff returns the payload passed between the instrument views,
// or nil when the slot is empty.
func (m *Manager) DraftHandoff() json.RawMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.draftHandoff
}

// SetDraftHandoff stores the handoff payload in memory and in the persisted
// clipboard slot. Pass nil to clear.
func (m *Manager) SetDraftHandoff(payload json.RawMessage) {
	m.mu.Lock()
	m.draftHandoff = payload
	m.mu.Unlock()

	if m.cache != nil {
		if payload == nil {
			m.cache.ClearClipboard()
		} else {
			m.cache.SetClipboard(payload)
		}
	}
	m.notifyChange()
}

func (m *Manager) notifyChange() {
	if m.onChange != nil {
		m.onChange()
	}
}
