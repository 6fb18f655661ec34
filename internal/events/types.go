package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	// EventAuthChanged fires on every sign-in and sign-out transition.
	EventAuthChanged EventType = "auth_changed"
	// EventDataChanged fires after any mutation refreshed the mirrors.
	EventDataChanged EventType = "data_changed"
)

// Event is a change notification delivered to subscribers.
type Event struct {
	Type      EventType
	GroupID   string // which group was modified, empty for auth events
	UserID    string // signed-in user for auth events, empty on sign-out
	Timestamp time.Time
}
