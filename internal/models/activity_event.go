package models

import "time"

// Activity event types.
const (
	EventSignUp          = "SIGN_UP"
	EventSignOut         = "SIGN_OUT"
	EventProfileUpdate   = "PROFILE_UPDATE"
	EventOverrideSet     = "OVERRIDE_SET"
	EventOverrideCleared = "OVERRIDE_CLEARED"
)

// IsEventType reports whether s is one of the activity event types above.
func IsEventType(s string) bool {
	switch s {
	case EventSignUp, EventSignOut, EventProfileUpdate, EventOverrideSet, EventOverrideCleared:
		return true
	}
	return false
}

// ActivityEvent is a single account activity log entry.
type ActivityEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	UserID      int       `json:"user_id"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
