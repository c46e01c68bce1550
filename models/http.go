package models

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupRequest is the payload of POST /api/auth/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DoorToggleRequest is the payload of POST /api/door/toggle.
// Action is either "unlock" or "lock".
type DoorToggleRequest struct {
	Action string `json:"action"`
}

// PasscodeRequest is the payload of POST /api/door/passcode.
type PasscodeRequest struct {
	Passcode string `json:"passcode"`
}

// DoorStatusResponse reports the current door state.
type DoorStatusResponse struct {
	Locked   bool `json:"locked"`
	AutoLock bool `json:"auto_lock"`
}

// DecisionResponse reports the outcome of an authorization attempt.
type DecisionResponse struct {
	Allowed  bool       `json:"allowed"`
	Reason   DenyReason `json:"reason,omitempty"`
	Username string     `json:"username,omitempty"`
}

// KeypadStatusResponse mirrors the attempt-tracker state of the keypad
// channel for the dashboard.
type KeypadStatusResponse struct {
	Enabled        bool `json:"enabled"`
	FailedAttempts int  `json:"failed_attempts"`
	IsLockedOut    bool `json:"is_locked_out"`
}

// KeypadSimulateRequest is the payload of POST /api/keypad/simulate.
type KeypadSimulateRequest struct {
	Key string `json:"key"`
}

// EnrollRequest is the payload of POST /api/fingerprint/enroll.
type EnrollRequest struct {
	Username string `json:"username"`
}

// EnrollResponse reports the identifier of the stored template.
type EnrollResponse struct {
	TemplateID string `json:"template_id"`
}

// PreRegisterRequest is the payload of POST /api/users/add: an
// administrator creates the account ahead of the owner's signup.
type PreRegisterRequest struct {
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Permissions Permissions `json:"permissions"`
	AccessType  AccessType  `json:"access_type"`
	AccessUntil *string     `json:"access_until,omitempty"`
}

// UserUpdateRequest is the payload of PUT /api/users/{username}.
// Nil fields are left unchanged (partial update).
type UserUpdateRequest struct {
	Email       *string      `json:"email,omitempty"`
	Role        *Role        `json:"role,omitempty"`
	Permissions *Permissions `json:"permissions,omitempty"`
	Approved    *bool        `json:"approved,omitempty"`
	AccessType  *AccessType  `json:"access_type,omitempty"`
	AccessUntil *string      `json:"access_until,omitempty"`
}

// ErrorResponse is the JSON body of non-2xx API responses.
type ErrorResponse struct {
	Message string `json:"message"`
}
