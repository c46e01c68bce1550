package models

import "time"

// DoorState is the state of the single door managed by the controller.
// Exactly one instance exists process-wide, owned by the lock
// controller; all mutation goes through its transitions.
type DoorState struct {
	// Locked reports whether the bolt is engaged.
	Locked bool `json:"locked"`

	// AutoLockDeadline is the instant at which the pending auto-lock
	// timer will fire. Nil when no auto-lock is armed.
	AutoLockDeadline *time.Time `json:"auto_lock_deadline,omitempty"`
}
