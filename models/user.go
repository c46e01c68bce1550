package models

import "time"

// Role identifies the privilege tier of a user account.
type Role string

// Known account roles. Admins bypass the per-permission unlock gate.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// AccessType distinguishes accounts with open-ended access from accounts
// whose authorization is bounded by an access window.
type AccessType string

const (
	// AccessFull grants access with no expiry date.
	AccessFull AccessType = "full"

	// AccessLimited bounds the account's authorization by AccessUntil.
	// A limited account with an expired window is never authorized to
	// unlock the door, regardless of its stored permissions.
	AccessLimited AccessType = "limited"
)

// Permission is a single named capability granted to a user account.
type Permission string

// Capabilities recognised by the policy engine and the API layer.
const (
	PermissionUnlock         Permission = "unlock"
	PermissionViewLogs       Permission = "view_logs"
	PermissionManageUsers    Permission = "manage_users"
	PermissionChangeSettings Permission = "change_settings"
)

// Permissions is the set of capabilities granted to an account.
// Stored as a flat list; membership is checked with Has.
type Permissions []Permission

// Has reports whether p contains the given permission.
func (p Permissions) Has(perm Permission) bool {
	for _, granted := range p {
		if granted == perm {
			return true
		}
	}
	return false
}

// User represents a door-keeper account. It carries both web-login
// credentials and the physical-access attributes consulted by the
// policy engine (approval state, access window, enrolled credential).
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is not exposed via JSON and is used only at the persistence layer.
	UserID int64 `json:"-"`

	// Username is the unique account identifier, used for web login and
	// referenced by audit records.
	Username string `json:"username"`

	// Name is the display name of the user. Non-sensitive.
	Name string `json:"name"`

	// Email is the contact address captured at signup or pre-registration.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// Never exposed via JSON. Empty for pre-registered accounts whose
	// owner has not yet signed up.
	PasswordHash string `json:"-"`

	// Role is the privilege tier of the account.
	Role Role `json:"role"`

	// Permissions lists the capabilities granted to the account.
	Permissions Permissions `json:"permissions"`

	// Approved reports whether an administrator has approved the account.
	// Unapproved accounts are denied by the policy engine and cannot log in.
	Approved bool `json:"approved"`

	// PreApproved marks accounts created by an administrator ahead of
	// signup; such accounts are approved automatically when the owner
	// completes registration.
	PreApproved bool `json:"pre_approved"`

	// AccessType is either AccessFull or AccessLimited.
	// AccessLimited requires a non-nil AccessUntil.
	AccessType AccessType `json:"access_type"`

	// AccessUntil bounds a limited account's authorization validity.
	// Nil for full-access accounts.
	AccessUntil *time.Time `json:"access_until,omitempty"`

	// CredentialEnrolled reports whether a fingerprint template is
	// enrolled for this account.
	CredentialEnrolled bool `json:"credential_enrolled"`

	// CredentialID references the enrolled fingerprint template.
	// Empty when no credential is enrolled; cleared on deletion.
	CredentialID string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// AccessExpired reports whether the account's access window has passed
// at the given instant. Full-access accounts never expire.
func (u User) AccessExpired(now time.Time) bool {
	if u.AccessType != AccessLimited || u.AccessUntil == nil {
		return false
	}
	return now.After(*u.AccessUntil)
}

// CanUnlock reports whether the account is authorized to operate the
// door: admins always may, everyone else needs the unlock permission.
func (u User) CanUnlock() bool {
	return u.Role == RoleAdmin || u.Permissions.Has(PermissionUnlock)
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
