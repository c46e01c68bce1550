package models

import "time"

// Settings holds the runtime configuration of the door controller.
// A single row is persisted; the policy engine and the lock controller
// read it on every decision so that updates take effect immediately.
type Settings struct {
	// SystemPasscode is the shared keypad code that grants standard access.
	SystemPasscode string `json:"system_passcode"`

	// LockoutPasscode is the duress code. Entering it never unlocks the
	// door; it silently forces the channel into lockout instead.
	// Must differ from SystemPasscode.
	LockoutPasscode string `json:"lockout_passcode"`

	// MaxTrials is the number of consecutive failed attempts a channel
	// tolerates before it locks out. Must be at least 1.
	MaxTrials int `json:"max_trials"`

	// AutoLockDelay is how long the door stays unlocked before the
	// controller re-locks it automatically. Zero disables auto-lock.
	AutoLockDelay time.Duration `json:"auto_lock_delay"`

	// KeypadEnabled toggles the background keypad worker.
	KeypadEnabled bool `json:"keypad_enabled"`

	// KeypadTimeout bounds how long the keypad waits for further digits
	// before discarding a partial entry.
	KeypadTimeout time.Duration `json:"keypad_timeout"`

	// CameraEnabled is retained for the companion camera service; the
	// controller itself only stores and reports it.
	CameraEnabled bool `json:"camera_enabled"`

	// FingerprintEnabled toggles fingerprint authentication.
	FingerprintEnabled bool `json:"fingerprint_enabled"`

	// FingerprintTimeout bounds a single fingerprint capture.
	FingerprintTimeout time.Duration `json:"fingerprint_timeout"`
}

// TableName returns the name of the database table
// associated with the Settings model.
func (s Settings) TableName() string {
	return "settings"
}
