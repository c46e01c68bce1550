package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrAccountNotApproved  = errors.New("account is not approved")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrValidation marks a rejected input; the wrapped message is safe
	// to return to the client.
	ErrValidation = errors.New("validation failed")

	// ErrCannotDeleteSelf is returned when an administrator attempts to
	// delete their own account.
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")

	// ErrHardwareFault is returned when the bolt actuator fails. The
	// recorded door state is left unchanged.
	ErrHardwareFault = errors.New("bolt actuation failed")

	// ErrEnrollmentIncomplete is returned when a capture sequence ended
	// before enough samples were collected.
	ErrEnrollmentIncomplete = errors.New("enrollment capture incomplete")

	// ErrSamplesMismatch is returned when the captured enrollment samples
	// do not agree with each other.
	ErrSamplesMismatch = errors.New("captured samples do not match")
)
