package models

import "time"

// Notification event names delivered to the configured webhook.
const (
	NotificationLockout      = "lockout"
	NotificationDoorUnlocked = "door_unlocked"
	NotificationDoorLocked   = "door_locked"
	NotificationUserApproved = "user_approved"
	NotificationUserSignup   = "user_signup"
)

// NotificationEvent is the payload POSTed to the webhook endpoint.
type NotificationEvent struct {
	// Event is one of the Notification* constants.
	Event string `json:"event"`

	// User is the username the event concerns, or a channel name.
	User string `json:"user,omitempty"`

	// Details carries free-form context for the event.
	Details string `json:"details,omitempty"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`
}
