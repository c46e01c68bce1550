package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicySettings() models.Settings {
	return models.Settings{
		SystemPasscode:     "1234",
		LockoutPasscode:    "9999",
		MaxTrials:          3,
		AutoLockDelay:      5 * time.Second,
		KeypadEnabled:      true,
		KeypadTimeout:      30 * time.Second,
		FingerprintEnabled: true,
		FingerprintTimeout: 10 * time.Second,
	}
}

type policyFixture struct {
	policy   PolicyService
	tracker  AttemptTracker
	users    *fakeUserRepository
	audit    *recordingAudit
	notifier *recordingNotifier
}

func newPolicyFixture(t *testing.T) *policyFixture {
	t.Helper()

	users := &fakeUserRepository{}
	tracker := NewAttemptTracker(logger.Nop())
	audit := &recordingAudit{}
	notifier := &recordingNotifier{}
	settings := &stubSettings{settings: testPolicySettings()}

	return &policyFixture{
		policy:   NewPolicyService(users, settings, tracker, audit, notifier, logger.Nop()),
		tracker:  tracker,
		users:    users,
		audit:    audit,
		notifier: notifier,
	}
}

func keypadPasscode(code string) models.CredentialInput {
	return models.CredentialInput{
		Kind:     models.CredentialPasscode,
		Channel:  models.ChannelKeypad,
		Passcode: code,
	}
}

func TestPolicy_ValidPasscodeAllows(t *testing.T) {
	f := newPolicyFixture(t)

	decision, err := f.policy.Authorize(context.Background(), keypadPasscode("1234"))
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Nil(t, decision.User, "the shared passcode names no account")

	last, ok := f.audit.last()
	require.True(t, ok)
	assert.Equal(t, models.AuditActionPasscode, last.Action)
	assert.Equal(t, models.AuditStatusSuccess, last.Status)
}

func TestPolicy_LockoutAfterMaxTrials(t *testing.T) {
	f := newPolicyFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		decision, err := f.policy.Authorize(ctx, keypadPasscode("0000"))
		require.NoError(t, err)
		assert.False(t, decision.Allowed)
		assert.Equal(t, models.DenyInvalidCredential, decision.Reason)
	}

	state := f.tracker.State(models.ChannelKeypad)
	assert.True(t, state.LockedOut)

	// even the valid passcode is refused now
	decision, err := f.policy.Authorize(ctx, keypadPasscode("1234"))
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, models.DenyLockedOut, decision.Reason)

	// only an explicit reset reopens the channel
	f.tracker.Reset(models.ChannelKeypad)
	decision, err = f.policy.Authorize(ctx, keypadPasscode("1234"))
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestPolicy_LockoutNotifiesWebhook(t *testing.T) {
	f := newPolicyFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.policy.Authorize(ctx, keypadPasscode("0000"))
		require.NoError(t, err)
	}

	events := f.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.NotificationLockout, events[0].Event)
}

func TestPolicy_DuressForcesLockoutWithoutPriorFailures(t *testing.T) {
	f := newPolicyFixture(t)

	decision, err := f.policy.Authorize(context.Background(), keypadPasscode("9999"))
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, models.DenyDuress, decision.Reason)

	state := f.tracker.State(models.ChannelKeypad)
	assert.True(t, state.LockedOut, "duress must flip the channel into lockout immediately")

	events := f.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, models.NotificationLockout, events[0].Event)
}

func TestPolicy_SuccessResetsFailureCount(t *testing.T) {
	f := newPolicyFixture(t)
	ctx := context.Background()

	_, err := f.policy.Authorize(ctx, keypadPasscode("0000"))
	require.NoError(t, err)
	_, err = f.policy.Authorize(ctx, keypadPasscode("0000"))
	require.NoError(t, err)
	assert.Equal(t, 2, f.tracker.State(models.ChannelKeypad).FailedCount)

	_, err = f.policy.Authorize(ctx, keypadPasscode("1234"))
	require.NoError(t, err)
	assert.Equal(t, 0, f.tracker.State(models.ChannelKeypad).FailedCount)
}

func fingerprintInput(digest string) models.CredentialInput {
	return models.CredentialInput{
		Kind:           models.CredentialTemplate,
		Channel:        models.ChannelFingerprint,
		TemplateDigest: digest,
	}
}

func TestPolicy_UnknownFingerprintCountsAsFailure(t *testing.T) {
	f := newPolicyFixture(t)
	f.users.findUserByCredentialIDFunc = func(ctx context.Context, credentialID string) (models.User, error) {
		return models.User{}, store.ErrNoUserWasFound
	}

	decision, err := f.policy.Authorize(context.Background(), fingerprintInput("unknown"))
	require.NoError(t, err)
	assert.Equal(t, models.DenyInvalidCredential, decision.Reason)
	assert.Equal(t, 1, f.tracker.State(models.ChannelFingerprint).FailedCount)
}

func TestPolicy_FingerprintAccountGates(t *testing.T) {
	enrolled := models.User{
		UserID:             4,
		Username:           "jane",
		Role:               models.RoleUser,
		Permissions:        models.Permissions{models.PermissionUnlock},
		Approved:           true,
		AccessType:         models.AccessFull,
		CredentialEnrolled: true,
		CredentialID:       "digest-1",
	}

	tests := []struct {
		name   string
		mutate func(*models.User)
		reason models.DenyReason
	}{
		{
			name:   "not approved",
			mutate: func(u *models.User) { u.Approved = false },
			reason: models.DenyNotApproved,
		},
		{
			name: "access window expired",
			mutate: func(u *models.User) {
				past := time.Now().Add(-time.Hour)
				u.AccessType = models.AccessLimited
				u.AccessUntil = &past
			},
			reason: models.DenyExpired,
		},
		{
			name:   "unlock permission missing",
			mutate: func(u *models.User) { u.Permissions = models.Permissions{models.PermissionViewLogs} },
			reason: models.DenyForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPolicyFixture(t)

			user := enrolled
			tt.mutate(&user)
			f.users.findUserByCredentialIDFunc = func(ctx context.Context, credentialID string) (models.User, error) {
				return user, nil
			}

			decision, err := f.policy.Authorize(context.Background(), fingerprintInput("digest-1"))
			require.NoError(t, err)
			assert.False(t, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)

			// a matched credential never counts against the channel
			assert.Equal(t, 0, f.tracker.State(models.ChannelFingerprint).FailedCount)
		})
	}
}

func TestPolicy_EnrolledFingerprintAllows(t *testing.T) {
	f := newPolicyFixture(t)

	enrolled := models.User{
		UserID:      4,
		Username:    "jane",
		Role:        models.RoleUser,
		Permissions: models.Permissions{models.PermissionUnlock},
		Approved:    true,
		AccessType:  models.AccessFull,
	}
	f.users.findUserByCredentialIDFunc = func(ctx context.Context, credentialID string) (models.User, error) {
		assert.Equal(t, "digest-1", credentialID)
		return enrolled, nil
	}

	decision, err := f.policy.Authorize(context.Background(), fingerprintInput("digest-1"))
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	require.NotNil(t, decision.User)
	assert.Equal(t, "jane", decision.User.Username)
}

func TestPolicy_AccountCredential(t *testing.T) {
	f := newPolicyFixture(t)

	admin := models.User{
		UserID:     1,
		Username:   "admin",
		Role:       models.RoleAdmin,
		Approved:   true,
		AccessType: models.AccessFull,
	}
	f.users.findUserByUsernameFunc = func(ctx context.Context, username string) (models.User, error) {
		if username == "admin" {
			return admin, nil
		}
		return models.User{}, store.ErrNoUserWasFound
	}

	decision, err := f.policy.Authorize(context.Background(), models.CredentialInput{
		Kind:     models.CredentialAccount,
		Username: "admin",
	})
	require.NoError(t, err)
	assert.True(t, decision.Allowed, "admins unlock without the explicit permission")

	decision, err = f.policy.Authorize(context.Background(), models.CredentialInput{
		Kind:     models.CredentialAccount,
		Username: "ghost",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DenyInvalidCredential, decision.Reason)
}

func TestPolicy_SettingsErrorFailsEvaluation(t *testing.T) {
	users := &fakeUserRepository{}
	settings := &stubSettings{err: store.ErrSettingsNotFound}
	policy := NewPolicyService(users, settings, NewAttemptTracker(logger.Nop()), &recordingAudit{}, nil, logger.Nop())

	_, err := policy.Authorize(context.Background(), keypadPasscode("1234"))
	require.Error(t, err)
}
