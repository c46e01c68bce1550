package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername        = errors.New("username is required")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidPermission    = errors.New("invalid permission")
	ErrInvalidAccessType    = errors.New("invalid access type")
	ErrMissingAccessUntil   = errors.New("limited access requires an access_until date")
	ErrEmptySystemPasscode  = errors.New("system passcode is required")
	ErrEmptyLockoutPasscode = errors.New("lockout passcode is required")
	ErrPasscodesEqual       = errors.New("system and lockout passcodes must differ")
	ErrInvalidMaxTrials     = errors.New("max trials must be at least 1")
	ErrNegativeAutoLock     = errors.New("auto-lock delay cannot be negative")
	ErrInvalidTimeout       = errors.New("timeout must be positive when the feature is enabled")
)
