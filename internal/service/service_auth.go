package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/config"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	audit    AuditService
	notifier Notifier

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, audit AuditService, notifier Notifier, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		audit:          audit,
		notifier:       notifier,
		logger:         logger,
	}
}

// Signup creates a new account, or completes a pre-registered one.
//
// When an administrator pre-registered the username, the signup claims
// that record: the password is set and the account is approved
// immediately. A fresh signup creates an unapproved account with the
// unlock permission, pending administrator approval.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided if Username or Password is empty.
//   - store.ErrUsernameAlreadyExists if the username is taken.
func (a *authService) Signup(ctx context.Context, request models.SignupRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Password == "" {
		log.Error().Str("username", request.Username).Msg("invalid signup data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	existing, err := a.userRepository.FindUserByUsername(ctx, request.Username)
	switch {
	case err == nil:
		if !existing.PreApproved || existing.PasswordHash != "" {
			return models.User{}, store.ErrUsernameAlreadyExists
		}
		return a.claimPreRegistered(ctx, existing, request, string(passwordHash))

	case !errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	user := models.User{
		Username:     request.Username,
		Name:         request.Name,
		Email:        request.Email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
		Permissions:  models.Permissions{models.PermissionUnlock},
		AccessType:   models.AccessFull,
	}

	registered, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.audit.Record(models.AuditActionLogin, models.AuditStatusSuccess, registered.Username, "signed up, awaiting approval")
	a.notifySignup(registered.Username)

	return registered, nil
}

// claimPreRegistered completes a pre-registered account: the owner's
// password is stored and the approval the administrator granted in
// advance takes effect.
func (a *authService) claimPreRegistered(ctx context.Context, existing models.User, request models.SignupRequest, passwordHash string) (models.User, error) {
	existing.Name = request.Name
	if request.Email != "" {
		existing.Email = request.Email
	}
	existing.PasswordHash = passwordHash
	existing.Approved = true
	existing.PreApproved = false

	updated, err := a.userRepository.UpdateUser(ctx, existing)
	if err != nil {
		return models.User{}, fmt.Errorf("claiming pre-registered account failed: %w", err)
	}

	a.audit.Record(models.AuditActionLogin, models.AuditStatusSuccess, updated.Username, "claimed pre-registered account")
	a.notifySignup(updated.Username)

	return updated, nil
}

// Login authenticates an existing account.
//
// Unknown usernames and wrong passwords are both reported as
// ErrWrongPassword so the response does not reveal which part failed.
// Unapproved accounts are rejected with ErrAccountNotApproved even when
// the password is correct.
func (a *authService) Login(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("username", username).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.audit.Record(models.AuditActionLogin, models.AuditStatusFailed, username, "unknown account")
			return models.User{}, ErrWrongPassword
		}
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if foundUser.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)) != nil {
		log.Warn().Str("username", username).Msg("wrong password")
		a.audit.Record(models.AuditActionLogin, models.AuditStatusFailed, username, "wrong password")
		return models.User{}, ErrWrongPassword
	}

	if !foundUser.Approved {
		a.audit.Record(models.AuditActionLogin, models.AuditStatusFailed, username, "account not approved")
		return models.User{}, ErrAccountNotApproved
	}

	a.audit.Record(models.AuditActionLogin, models.AuditStatusSuccess, username, "")

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (a *authService) notifySignup(username string) {
	if a.notifier == nil {
		return
	}

	a.notifier.Notify(context.Background(), models.NotificationEvent{
		Event:     models.NotificationUserSignup,
		User:      username,
		Timestamp: time.Now(),
	})
}
