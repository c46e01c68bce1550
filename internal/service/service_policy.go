package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
)

// policyService is the concrete implementation of [PolicyService].
//
// Evaluation order for every attempt:
//  1. a locked-out channel refuses the attempt before the credential is
//     inspected;
//  2. the duress code is matched before the system code, so a duress
//     entry always forces lockout;
//  3. a valid credential passes the account gates (approval, access
//     window, unlock permission) and clears the failure counter;
//  4. anything else counts as a failure against the channel.
type policyService struct {
	userRepository store.UserRepository
	settings       SettingsService
	tracker        AttemptTracker
	audit          AuditService
	notifier       Notifier
	logger         *logger.Logger
}

// NewPolicyService constructs a [PolicyService]. Settings are read on
// every evaluation so configuration changes take effect immediately.
func NewPolicyService(
	userRepository store.UserRepository,
	settings SettingsService,
	tracker AttemptTracker,
	audit AuditService,
	notifier Notifier,
	logger *logger.Logger,
) PolicyService {
	return &policyService{
		userRepository: userRepository,
		settings:       settings,
		tracker:        tracker,
		audit:          audit,
		notifier:       notifier,
		logger:         logger,
	}
}

// Authorize implements [PolicyService]. Deny outcomes are results, not
// errors; an error return means the evaluation itself could not run.
func (p *policyService) Authorize(ctx context.Context, input models.CredentialInput) (models.Decision, error) {
	log := logger.FromContext(ctx)

	settings, err := p.settings.Get(ctx)
	if err != nil {
		log.Err(err).Msg("policy: loading settings failed")
		return models.Decision{}, fmt.Errorf("loading settings: %w", err)
	}

	if tracked(input.Channel) && p.tracker.State(input.Channel).LockedOut {
		p.audit.Record(attemptAction(input), models.AuditStatusFailed, attemptActor(input), "channel locked out")
		return models.Deny(models.DenyLockedOut), nil
	}

	switch input.Kind {
	case models.CredentialPasscode:
		return p.authorizePasscode(input, settings), nil
	case models.CredentialTemplate:
		return p.authorizeTemplate(ctx, input, settings)
	case models.CredentialAccount:
		return p.authorizeAccount(ctx, input)
	default:
		log.Error().Str("kind", string(input.Kind)).Msg("policy: unknown credential kind")
		return models.Decision{}, ErrInvalidDataProvided
	}
}

func (p *policyService) authorizePasscode(input models.CredentialInput, settings models.Settings) models.Decision {
	// Duress before system code: entering the duress code never unlocks,
	// whatever else matches.
	if utils.SecureCompare(input.Passcode, settings.LockoutPasscode) {
		p.tracker.ForceLockout(input.Channel)
		p.audit.Record(attemptAction(input), models.AuditStatusLockout, attemptActor(input), "duress code entered")
		p.notify(models.NotificationLockout, attemptActor(input), "duress code entered")
		return models.Deny(models.DenyDuress)
	}

	if utils.SecureCompare(input.Passcode, settings.SystemPasscode) {
		p.tracker.RecordSuccess(input.Channel)
		p.audit.Record(attemptAction(input), models.AuditStatusSuccess, attemptActor(input), "")
		return models.Allow(nil)
	}

	return p.recordFailure(input, settings, "wrong passcode")
}

func (p *policyService) authorizeTemplate(ctx context.Context, input models.CredentialInput, settings models.Settings) (models.Decision, error) {
	user, err := p.userRepository.FindUserByCredentialID(ctx, input.TemplateDigest)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return p.recordFailure(input, settings, "unknown fingerprint"), nil
		}
		return models.Decision{}, fmt.Errorf("fingerprint lookup failed: %w", err)
	}

	return p.gateAccount(input, user), nil
}

func (p *policyService) authorizeAccount(ctx context.Context, input models.CredentialInput) (models.Decision, error) {
	user, err := p.userRepository.FindUserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			p.audit.Record(attemptAction(input), models.AuditStatusFailed, input.Username, "unknown account")
			return models.Deny(models.DenyInvalidCredential), nil
		}
		return models.Decision{}, fmt.Errorf("account lookup failed: %w", err)
	}

	return p.gateAccount(input, user), nil
}

// gateAccount applies the account-level checks to a credential that has
// already matched. Account denials never count against the channel: the
// credential itself was valid.
func (p *policyService) gateAccount(input models.CredentialInput, user models.User) models.Decision {
	actor := user.Username

	switch {
	case !user.Approved:
		p.audit.Record(attemptAction(input), models.AuditStatusFailed, actor, "account not approved")
		return models.Deny(models.DenyNotApproved)

	case user.AccessExpired(time.Now()):
		p.audit.Record(attemptAction(input), models.AuditStatusFailed, actor, "access window expired")
		return models.Deny(models.DenyExpired)

	case !user.CanUnlock():
		p.audit.Record(attemptAction(input), models.AuditStatusFailed, actor, "unlock permission missing")
		return models.Deny(models.DenyForbidden)
	}

	if tracked(input.Channel) {
		p.tracker.RecordSuccess(input.Channel)
	}
	p.audit.Record(attemptAction(input), models.AuditStatusSuccess, actor, "")

	return models.Allow(&user)
}

func (p *policyService) recordFailure(input models.CredentialInput, settings models.Settings, details string) models.Decision {
	if tracked(input.Channel) {
		state := p.tracker.RecordFailure(input.Channel, settings.MaxTrials)
		if state.LockedOut {
			p.audit.Record(attemptAction(input), models.AuditStatusLockout, attemptActor(input), "max trials exceeded")
			p.notify(models.NotificationLockout, attemptActor(input), "max trials exceeded")
			return models.Deny(models.DenyInvalidCredential)
		}
	}

	p.audit.Record(attemptAction(input), models.AuditStatusFailed, attemptActor(input), details)
	return models.Deny(models.DenyInvalidCredential)
}

func (p *policyService) notify(event, user, details string) {
	if p.notifier == nil {
		return
	}

	p.notifier.Notify(context.Background(), models.NotificationEvent{
		Event:     event,
		User:      user,
		Details:   details,
		Timestamp: time.Now(),
	})
}

// tracked reports whether failures on the channel are counted.
func tracked(channel models.Channel) bool {
	return channel == models.ChannelKeypad || channel == models.ChannelFingerprint
}

func attemptAction(input models.CredentialInput) string {
	switch input.Kind {
	case models.CredentialTemplate:
		return models.AuditActionFingerprint
	case models.CredentialAccount:
		return models.AuditActionDoor
	default:
		return models.AuditActionPasscode
	}
}

func attemptActor(input models.CredentialInput) string {
	if input.Username != "" {
		return input.Username
	}
	return string(input.Channel)
}
