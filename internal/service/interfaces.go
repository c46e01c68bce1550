package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-door-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// AuthService handles account registration, credential verification, and
// JWT token lifecycle for the web API.
type AuthService interface {
	Signup(ctx context.Context, request models.SignupRequest) (models.User, error)
	Login(ctx context.Context, username, password string) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AttemptTracker counts consecutive failures per input channel and owns
// the lockout flag. Lockout is cleared only by an explicit Reset.
type AttemptTracker interface {
	// RecordFailure increments the channel's counter and, once it reaches
	// maxTrials, transitions the channel into lockout.
	RecordFailure(channel models.Channel, maxTrials int) models.AttemptState

	// RecordSuccess clears the channel's counter. It never clears an
	// existing lockout.
	RecordSuccess(channel models.Channel) models.AttemptState

	// ForceLockout puts the channel into lockout immediately, regardless
	// of the current counter.
	ForceLockout(channel models.Channel) models.AttemptState

	// Reset clears the counter and the lockout flag.
	Reset(channel models.Channel) models.AttemptState

	// State returns a snapshot of the channel's current state.
	State(channel models.Channel) models.AttemptState
}

// LockController owns the single door state and the bolt actuator.
type LockController interface {
	// Unlock releases the bolt and arms the auto-lock timer when
	// autoLockDelay is positive. Unlocking an already-unlocked door only
	// extends the auto-lock window.
	Unlock(ctx context.Context, autoLockDelay time.Duration, actor string) (models.DoorState, error)

	// Lock engages the bolt and cancels any pending auto-lock.
	// Locking an already-locked door is a no-op.
	Lock(ctx context.Context, actor string) (models.DoorState, error)

	// State returns a snapshot of the current door state.
	State() models.DoorState
}

// PolicyService evaluates presented credentials into decisions.
type PolicyService interface {
	Authorize(ctx context.Context, input models.CredentialInput) (models.Decision, error)
}

// UserService manages account lifecycle beyond signup: administrator
// pre-registration, partial updates, approval, and deletion.
type UserService interface {
	PreRegister(ctx context.Context, request models.PreRegisterRequest) (models.User, error)
	Get(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, userID int64) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, username string, request models.UserUpdateRequest) (models.User, error)
	Approve(ctx context.Context, username string) (models.User, error)
	Delete(ctx context.Context, actorUserID int64, username string) error
}

// SettingsService reads and validates the controller settings.
type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, settings models.Settings) (models.Settings, error)
}

// AuditService records and queries the append-only audit log. Record is
// fire-and-forget: persistence failures are logged, never propagated.
type AuditService interface {
	Record(action, status, user, details string)
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditRecord, error)
}

// EnrollmentService captures fingerprint samples and manages stored
// templates.
type EnrollmentService interface {
	// Enroll captures a sequence of samples for the given account and
	// stores their aggregated digest as the account's credential.
	Enroll(ctx context.Context, username string) (models.Template, error)

	// CaptureDigest captures a single sample and returns its digest, for
	// feeding the policy engine on the fingerprint channel.
	CaptureDigest(ctx context.Context) (string, error)
}

// Notifier delivers controller events to an external webhook. A nil or
// unconfigured notifier drops events silently.
type Notifier interface {
	Notify(ctx context.Context, event models.NotificationEvent)
}
