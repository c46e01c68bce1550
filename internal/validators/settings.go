package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-door-keeper/models"
)

// Field name constants used to specify which settings fields should be
// validated. Passed to Validate to restrict validation to a subset of
// fields (field-level scoping).
const (
	// FieldPasscodes targets the system/lockout passcode pair.
	FieldPasscodes = "passcodes"

	// FieldMaxTrials targets the lockout threshold.
	FieldMaxTrials = "max_trials"

	// FieldTimers targets the auto-lock delay and capture timeouts.
	FieldTimers = "timers"
)

// SettingsValidator implements the Validator interface for
// [models.Settings]. The central rule is that the system passcode and
// the duress (lockout) passcode must never be equal: the policy engine
// checks the duress code first and equality would make every valid
// entry a lockout.
type SettingsValidator struct {
}

// NewSettingsValidator constructs a new SettingsValidator
// and returns it as the Validator interface.
func NewSettingsValidator() Validator {
	return &SettingsValidator{}
}

// Validate accepts models.Settings in value or pointer form.
// Returns ErrUnsupportedType for anything else.
func (v *SettingsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Settings:
		return v.validateSettings(ctx, value, fields...)
	case *models.Settings:
		return v.validateSettings(ctx, *value, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *SettingsValidator) validateSettings(_ context.Context, settings models.Settings, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPasscodes, FieldMaxTrials, FieldTimers}
	}

	for _, field := range fields {
		switch field {
		case FieldPasscodes:
			if settings.SystemPasscode == "" {
				return ErrEmptySystemPasscode
			}
			if settings.LockoutPasscode == "" {
				return ErrEmptyLockoutPasscode
			}
			if settings.SystemPasscode == settings.LockoutPasscode {
				return ErrPasscodesEqual
			}

		case FieldMaxTrials:
			if settings.MaxTrials < 1 {
				return ErrInvalidMaxTrials
			}

		case FieldTimers:
			if settings.AutoLockDelay < 0 {
				return ErrNegativeAutoLock
			}
			if settings.KeypadEnabled && settings.KeypadTimeout <= 0 {
				return fmt.Errorf("%w: keypad", ErrInvalidTimeout)
			}
			if settings.FingerprintEnabled && settings.FingerprintTimeout <= 0 {
				return fmt.Errorf("%w: fingerprint", ErrInvalidTimeout)
			}

		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}
