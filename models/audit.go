package models

import "time"

// Audit actions. Each record names the subsystem that produced it.
const (
	AuditActionDoor        = "door"
	AuditActionLogin       = "login"
	AuditActionPasscode    = "passcode"
	AuditActionFingerprint = "fingerprint"
	AuditActionUser        = "user"
	AuditActionSettings    = "settings"
	AuditActionKeypad      = "keypad"
	AuditActionSystem      = "system"
)

// Audit statuses shared across actions.
const (
	AuditStatusSuccess = "success"
	AuditStatusFailed  = "failed"
	AuditStatusUnlock  = "unlock"
	AuditStatusLock    = "lock"
	AuditStatusLockout = "lockout"
	AuditStatusReset   = "reset"
	AuditStatusUpdated = "updated"
)

// AuditRecord is one entry of the append-only audit log. Every
// verification call and door transition produces one.
type AuditRecord struct {
	// ID is the server-assigned record identifier.
	ID int64 `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Action names the subsystem (door, login, passcode, ...).
	Action string `json:"action"`

	// Status is the outcome within the action (success, failed, lockout, ...).
	Status string `json:"status"`

	// User is the username the event is attributed to, or a channel
	// name (e.g. "keypad") when no account is known.
	User string `json:"user"`

	// Details carries free-form context for the event.
	Details string `json:"details,omitempty"`
}

// AuditFilter is the set of optional criteria for querying the audit
// log. Zero-valued fields are not applied.
type AuditFilter struct {
	// Action restricts results to a single action.
	Action string `json:"action,omitempty"`

	// Status restricts results to a single status.
	Status string `json:"status,omitempty"`

	// User restricts results to events attributed to one username.
	User string `json:"user,omitempty"`

	// Since restricts results to events at or after the given instant.
	Since *time.Time `json:"since,omitempty"`

	// Limit caps the number of returned records. Zero means no cap.
	Limit int `json:"limit,omitempty"`
}

// TableName returns the name of the database table
// associated with the AuditRecord model.
func (a AuditRecord) TableName() string {
	return "audit_log"
}
