package service

import (
	"sync"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/models"
)

// attemptTracker is the concrete implementation of [AttemptTracker].
// State is held in memory only: a controller restart opens all channels,
// which is the intended recovery path for a locked-out installation.
type attemptTracker struct {
	mu     sync.Mutex
	states map[models.Channel]*models.AttemptState
	logger *logger.Logger
}

// NewAttemptTracker constructs an [AttemptTracker] with all channels open.
func NewAttemptTracker(logger *logger.Logger) AttemptTracker {
	return &attemptTracker{
		states: make(map[models.Channel]*models.AttemptState),
		logger: logger,
	}
}

// RecordFailure implements [AttemptTracker]. A channel already in lockout
// is left untouched; the policy engine refuses such attempts before they
// reach the tracker.
func (t *attemptTracker) RecordFailure(channel models.Channel, maxTrials int) models.AttemptState {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.ensure(channel)
	if state.LockedOut {
		return snapshot(state)
	}

	state.FailedCount++
	if maxTrials > 0 && state.FailedCount >= maxTrials {
		t.lockout(state)
	}

	return snapshot(state)
}

// RecordSuccess implements [AttemptTracker].
func (t *attemptTracker) RecordSuccess(channel models.Channel) models.AttemptState {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.ensure(channel)
	if !state.LockedOut {
		state.FailedCount = 0
	}

	return snapshot(state)
}

// ForceLockout implements [AttemptTracker].
func (t *attemptTracker) ForceLockout(channel models.Channel) models.AttemptState {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.ensure(channel)
	t.lockout(state)

	return snapshot(state)
}

// Reset implements [AttemptTracker].
func (t *attemptTracker) Reset(channel models.Channel) models.AttemptState {
	t.mu.Lock()
	defer t.mu.Unlock()

	state := t.ensure(channel)
	state.FailedCount = 0
	state.LockedOut = false
	state.LockoutStartedAt = nil

	t.logger.Info().Str("channel", string(channel)).Msg("channel reset")

	return snapshot(state)
}

// State implements [AttemptTracker].
func (t *attemptTracker) State(channel models.Channel) models.AttemptState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return snapshot(t.ensure(channel))
}

// ensure must be called with the mutex held.
func (t *attemptTracker) ensure(channel models.Channel) *models.AttemptState {
	state, ok := t.states[channel]
	if !ok {
		state = &models.AttemptState{Channel: channel}
		t.states[channel] = state
	}
	return state
}

// lockout must be called with the mutex held.
func (t *attemptTracker) lockout(state *models.AttemptState) {
	if state.LockedOut {
		return
	}

	now := time.Now()
	state.LockedOut = true
	state.LockoutStartedAt = &now

	t.logger.Warn().
		Str("channel", string(state.Channel)).
		Int("failed_count", state.FailedCount).
		Msg("channel locked out")
}

// snapshot copies the state so callers never alias tracker internals.
func snapshot(state *models.AttemptState) models.AttemptState {
	copied := *state
	if state.LockoutStartedAt != nil {
		startedAt := *state.LockoutStartedAt
		copied.LockoutStartedAt = &startedAt
	}
	return copied
}
