package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/internal/validators"
	"github.com/MKhiriev/go-door-keeper/models"
)

// accessUntilLayout is the wire format of access window dates.
const accessUntilLayout = "2006-01-02"

// userService is the concrete implementation of [UserService].
type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator
	audit          AuditService
	notifier       Notifier
	logger         *logger.Logger
}

// NewUserService constructs a [UserService].
func NewUserService(userRepository store.UserRepository, validator validators.Validator, audit AuditService, notifier Notifier, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validator,
		audit:          audit,
		notifier:       notifier,
		logger:         logger,
	}
}

// PreRegister creates an account ahead of the owner's signup. The account
// carries no password yet; it is marked pre-approved so that the signup
// claiming it is approved immediately.
func (s *userService) PreRegister(ctx context.Context, request models.PreRegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	accessUntil, err := parseAccessUntil(request.AccessUntil)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:    request.Username,
		Email:       request.Email,
		Role:        request.Role,
		Permissions: request.Permissions,
		AccessType:  request.AccessType,
		AccessUntil: accessUntil,
		PreApproved: true,
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.AccessType == "" {
		user.AccessType = models.AccessFull
	}

	if err := s.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("pre-registration failed")
		return models.User{}, fmt.Errorf("pre-registration failed: %w", err)
	}

	s.audit.Record(models.AuditActionUser, models.AuditStatusSuccess, created.Username, "pre-registered")

	return created, nil
}

// Get returns the account with the given username.
func (s *userService) Get(ctx context.Context, username string) (models.User, error) {
	return s.userRepository.FindUserByUsername(ctx, username)
}

// GetByID returns the account with the given identifier. Used by the
// auth middleware to resolve the subject of a bearer token.
func (s *userService) GetByID(ctx context.Context, userID int64) (models.User, error) {
	return s.userRepository.FindUserByID(ctx, userID)
}

// List returns all accounts.
func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepository.ListUsers(ctx)
}

// Update applies the non-nil fields of the request to the account and
// persists the result. An empty access_until string clears the window.
func (s *userService) Update(ctx context.Context, username string, request models.UserUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}

	if request.Email != nil {
		user.Email = *request.Email
	}
	if request.Role != nil {
		user.Role = *request.Role
	}
	if request.Permissions != nil {
		user.Permissions = *request.Permissions
	}
	if request.Approved != nil {
		user.Approved = *request.Approved
	}
	if request.AccessType != nil {
		user.AccessType = *request.AccessType
	}
	if request.AccessUntil != nil {
		accessUntil, err := parseAccessUntil(request.AccessUntil)
		if err != nil {
			return models.User{}, err
		}
		user.AccessUntil = accessUntil
	}

	if err := s.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", username).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	s.audit.Record(models.AuditActionUser, models.AuditStatusUpdated, updated.Username, "account updated")

	return updated, nil
}

// Approve marks the account approved and notifies the webhook.
func (s *userService) Approve(ctx context.Context, username string) (models.User, error) {
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, err
	}

	if user.Approved {
		return user, nil
	}

	user.Approved = true
	approved, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("approving user failed: %w", err)
	}

	s.audit.Record(models.AuditActionUser, models.AuditStatusSuccess, approved.Username, "account approved")
	if s.notifier != nil {
		s.notifier.Notify(context.Background(), models.NotificationEvent{
			Event:     models.NotificationUserApproved,
			User:      approved.Username,
			Timestamp: time.Now(),
		})
	}

	return approved, nil
}

// Delete removes the account. Administrators cannot delete themselves;
// that guard keeps the installation from losing its last admin by
// accident. Deleting the row also removes the enrolled credential
// reference, so a lingering fingerprint can never match a removed user.
func (s *userService) Delete(ctx context.Context, actorUserID int64, username string) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	if user.UserID == actorUserID {
		return ErrCannotDeleteSelf
	}

	if err := s.userRepository.DeleteUser(ctx, user.UserID); err != nil {
		log.Err(err).Str("username", username).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	s.audit.Record(models.AuditActionUser, models.AuditStatusSuccess, username, "account deleted")

	return nil
}

// parseAccessUntil converts the wire date into the end of that day, so a
// pass valid "until 2026-09-01" works through that whole day.
func parseAccessUntil(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	day, err := time.Parse(accessUntilLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access_until date %q", ErrValidation, *raw)
	}

	endOfDay := day.Add(24*time.Hour - time.Nanosecond)
	return &endOfDay, nil
}
