// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/hardware"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/models"
)

// autoLockActor is the audit attribution for timer-driven re-locks.
const autoLockActor = "auto-lock"

// boltTimeout bounds a single bolt actuation triggered by the auto-lock
// timer, which has no request context of its own.
const boltTimeout = 5 * time.Second

// lockController is the concrete implementation of [LockController].
// It owns the process-wide door state; every transition happens under
// the mutex, including the bolt actuation, so the recorded state can
// never drift ahead of the hardware.
type lockController struct {
	mu       sync.Mutex
	state    models.DoorState
	timer    *time.Timer
	timerGen uint64

	bolt     hardware.Bolt
	audit    AuditService
	notifier Notifier
	logger   *logger.Logger
}

// NewLockController constructs a [LockController] with the door recorded
// as locked, matching the bolt's power-on position.
func NewLockController(bolt hardware.Bolt, audit AuditService, notifier Notifier, logger *logger.Logger) LockController {
	return &lockController{
		state:    models.DoorState{Locked: true},
		bolt:     bolt,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
	}
}

// Unlock implements [LockController]. When the door is already unlocked
// the bolt is not touched; only the auto-lock window is extended.
func (l *lockController) Unlock(ctx context.Context, autoLockDelay time.Duration, actor string) (models.DoorState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.Locked {
		if err := l.bolt.Release(ctx); err != nil {
			l.logger.Err(err).Str("actor", actor).Msg("bolt release failed")
			l.record(models.AuditActionDoor, models.AuditStatusFailed, actor, "bolt release failed")
			return l.snapshot(), fmt.Errorf("%w: %w", ErrHardwareFault, err)
		}

		l.state.Locked = false
		l.record(models.AuditActionDoor, models.AuditStatusUnlock, actor, "")
		l.notify(models.NotificationDoorUnlocked, actor, "")
	}

	l.armAutoLock(autoLockDelay)

	return l.snapshot(), nil
}

// Lock implements [LockController].
func (l *lockController) Lock(ctx context.Context, actor string) (models.DoorState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state.Locked {
		return l.snapshot(), nil
	}

	if err := l.bolt.Engage(ctx); err != nil {
		l.logger.Err(err).Str("actor", actor).Msg("bolt engage failed")
		l.record(models.AuditActionDoor, models.AuditStatusFailed, actor, "bolt engage failed")
		return l.snapshot(), fmt.Errorf("%w: %w", ErrHardwareFault, err)
	}

	l.state.Locked = true
	l.cancelAutoLock()
	l.record(models.AuditActionDoor, models.AuditStatusLock, actor, "")
	l.notify(models.NotificationDoorLocked, actor, "")

	return l.snapshot(), nil
}

// State implements [LockController].
func (l *lockController) State() models.DoorState {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshot()
}

// armAutoLock must be called with the mutex held. A non-positive delay
// disables auto-lock entirely.
func (l *lockController) armAutoLock(delay time.Duration) {
	l.cancelAutoLock()

	if delay <= 0 {
		return
	}

	generation := l.timerGen
	deadline := time.Now().Add(delay)
	l.state.AutoLockDeadline = &deadline
	l.timer = time.AfterFunc(delay, func() { l.autoLock(generation) })
}

// cancelAutoLock must be called with the mutex held. Bumping the
// generation invalidates a callback that already fired but has not yet
// acquired the mutex.
func (l *lockController) cancelAutoLock() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.timerGen++
	l.state.AutoLockDeadline = nil
}

// autoLock is the timer callback.
func (l *lockController) autoLock(generation uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if generation != l.timerGen || l.state.Locked {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), boltTimeout)
	defer cancel()

	if err := l.bolt.Engage(ctx); err != nil {
		// Door state stays unlocked; the operator sees the fault in the
		// audit log and can lock manually.
		l.logger.Err(err).Msg("auto-lock bolt engage failed")
		l.record(models.AuditActionDoor, models.AuditStatusFailed, autoLockActor, "bolt engage failed")
		return
	}

	l.state.Locked = true
	l.cancelAutoLock()
	l.record(models.AuditActionDoor, models.AuditStatusLock, autoLockActor, "")
	l.notify(models.NotificationDoorLocked, autoLockActor, "")
}

func (l *lockController) snapshot() models.DoorState {
	copied := l.state
	if l.state.AutoLockDeadline != nil {
		deadline := *l.state.AutoLockDeadline
		copied.AutoLockDeadline = &deadline
	}
	return copied
}

func (l *lockController) record(action, status, user, details string) {
	if l.audit != nil {
		l.audit.Record(action, status, user, details)
	}
}

func (l *lockController) notify(event, user, details string) {
	if l.notifier == nil {
		return
	}

	l.notifier.Notify(context.Background(), models.NotificationEvent{
		Event:     event,
		User:      user,
		Details:   details,
		Timestamp: time.Now(),
	})
}
