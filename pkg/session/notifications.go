package session

import (
	"time"

	"github.com/google/uuid"
)

// defaultNotificationTTL is how long a toast stays visible unless dismissed.
const defaultNotificationTTL = 5000 * time.Millisecond

// NotificationType classifies a toast.
type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyInfo    NotificationType = "info"
)

// Notification is an ephemeral toast. Lives only in process memory.
type Notification struct {
	ID      string           `json:"id"`
	Type    NotificationType `json:"type"`
	Message string           `json:"message"`
}

// Notify appends a notification and schedules its automatic removal after
// the configured delay. Returns the minted id so callers can dismiss early.
func (m *Manager) Notify(kind NotificationType, message string) string {
	id := uuid.NewString()

	m.mu.Lock()
	m.notifications = append(m.notifications, Notification{
		ID:      id,
		Type:    kind,
		Message: message,
	})
	// The timer is tracked per id so manual dismissal can cancel it; a
	// dangling timer must never mutate state the UI already moved past.
	m.timers[id] = time.AfterFunc(m.notificationTTL, func() {
		m.Dismiss(id)
	})
	m.mu.Unlock()

	m.notifyChange()
	return id
}

// Dismiss removes a notification immediately, cancelling its expiry timer.
// Dismissing an unknown or already-removed id is a no-op.
func (m *Manager) Dismiss(id string) {
	m.mu.Lock()
	if timer, ok := m.timers[id]; ok {
		timer.Stop()
		delete(m.timers, id)
	}

	removed := false
	for i, n := range m.notifications {
		if n.ID == id {
			m.notifications = append(m.notifications[:i], m.notifications[i+1:]...)
			removed = true
			break
		}
	}
	m.mu.Unlock()

	if removed {
		m.notifyChange()
	}
}

// Notifications returns a snapshot of the visible toasts, oldest first.
func (m *Manager) Notifications() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Notification, len(m.notifications))
	copy(out, m.notifications)
	return out
}
