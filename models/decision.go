package models

// DenyReason classifies why an authentication attempt was refused.
// Deny outcomes are expected, loggable results of policy evaluation,
// never errors.
type DenyReason string

const (
	// DenyLockedOut — the channel is locked out; the credential was not
	// even inspected.
	DenyLockedOut DenyReason = "locked_out"

	// DenyDuress — the duress code was entered; the channel has been
	// forced into lockout.
	DenyDuress DenyReason = "duress"

	// DenyNotApproved — the credential resolved to an account that has
	// not been approved by an administrator.
	DenyNotApproved DenyReason = "not_approved"

	// DenyExpired — the credential resolved to a limited account whose
	// access window has passed.
	DenyExpired DenyReason = "expired"

	// DenyForbidden — the account lacks the unlock permission.
	DenyForbidden DenyReason = "forbidden"

	// DenyInvalidCredential — the credential matched nothing.
	DenyInvalidCredential DenyReason = "invalid_credential"
)

// Decision is the outcome of a single policy evaluation.
type Decision struct {
	// Allowed reports whether access was granted.
	Allowed bool `json:"allowed"`

	// Reason is set on deny decisions and empty on allow.
	Reason DenyReason `json:"reason,omitempty"`

	// User is the account that owns the presented credential.
	// Set on allow decisions; nil otherwise.
	User *User `json:"user,omitempty"`
}

// Allow constructs an allow decision for the given account.
func Allow(user *User) Decision {
	return Decision{Allowed: true, User: user}
}

// Deny constructs a deny decision with the given reason.
func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
