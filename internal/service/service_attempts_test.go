package service

import (
	"testing"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxTrials = 3

func TestAttemptTracker_FailuresBelowThreshold(t *testing.T) {
	tracker := NewAttemptTracker(logger.Nop())

	state := tracker.RecordFailure(models.ChannelKeypad, testMaxTrials)
	assert.Equal(t, 1, state.FailedCount)
	assert.False(t, state.LockedOut)

	state = tracker.RecordFailure(models.ChannelKeypad, testMaxTrials)
	assert.Equal(t, 2, state.FailedCount)
	assert.False(t, state.LockedOut)
	assert.Nil(t, state.LockoutStartedAt)
}

func TestAttemptTracker_LockoutAtThreshold(t *testing.T) {
	tracker := NewAttemptTracker(logger.Nop())

	var state models.AttemptState
	for i := 0; i < testMaxTrials; i++ {
		state = tracker.RecordFailure(models.ChannelKeypad, testMaxTrials)
	}

	assert.Equal(t, testMaxTrials, state.FailedCount)
	assert.True(t, state.LockedOut)
	require.NotNil(t, state.LockoutStartedAt)

	// further failures do not grow the counter of a locked-out channel
	state = tracker.RecordFailure(models.ChannelKeypad, testMaxTrials)
	assert.Equal(t, testMaxTrials, state.FailedCount)
}

func TestAttemptTracker_SuccessClearsCounterOnly(t *testing.T) {
	tracker := NewAttemptTracker(logger.Nop())

	tracker.RecordFailure(models.ChannelKeypad, testMaxTrials)
	tracker.RecordFailure(models.ChannelKeypad, testMaxTrials)

	state := tracker.RecordSuccess(models.ChannelKeypad)
	assert.Equal(t, 0, state.FailedCount)
	assert.False(t, state.LockedOut)
}

func TestAttemptTracker_SuccessNeverClearsLockout(t *testing.T) {
	tracker := NewAttemptTracker(logger.Nop())

	tracker.ForceLockout(models.ChannelKeypad)

	state := tracker.RecordSuccess(models.ChannelKeypad)
	assert.True(t, state.LockedOut, "lockout must survive a success; only Reset clears it")
}

func TestAttemptTracker_ForceLockout(t *testing.T) {
	tracker := NewAttemptTracker(logger.Nop())

	state := tracker.ForceLockout(models.ChannelFingerprint)
	assert.True(t, state.LockedOut)
	assert.Equal(t, 0, state.FailedCount, "forced lockout needs no prior failures")
	require.NotNil(t, state.LockoutStartedAt)

	// idempotent: the original lockout timestamp is kept
	first := *state.LockoutStartedAt
	state = tracker.ForceLockout(models.ChannelFingerprint)
	assert.Equal(t, first, *state.LockoutStartedAt)
}

func TestAttemptTracker_Reset(t *testing.T) {
	tracker := NewAttemptTracker(logger.Nop())

	tracker.ForceLockout(models.ChannelKeypad)

	state := tracker.Reset(models.ChannelKeypad)
	assert.False(t, state.LockedOut)
	assert.Equal(t, 0, state.FailedCount)
	assert.Nil(t, state.LockoutStartedAt)
}

func TestAttemptTracker_ChannelsAreIndependent(t *testing.T) {
	tracker := NewAttemptTracker(logger.Nop())

	tracker.ForceLockout(models.ChannelKeypad)

	state := tracker.State(models.ChannelFingerprint)
	assert.False(t, state.LockedOut)
	assert.Equal(t, 0, state.FailedCount)
}

func TestAttemptTracker_SnapshotDoesNotAlias(t *testing.T) {
	tracker := NewAttemptTracker(logger.Nop())

	tracker.ForceLockout(models.ChannelKeypad)
	state := tracker.State(models.ChannelKeypad)

	// mutating the snapshot must not affect tracker state
	*state.LockoutStartedAt = state.LockoutStartedAt.Add(-1000)
	state.FailedCount = 42

	fresh := tracker.State(models.ChannelKeypad)
	assert.Equal(t, 0, fresh.FailedCount)
	assert.NotEqual(t, *state.LockoutStartedAt, *fresh.LockoutStartedAt)
}
