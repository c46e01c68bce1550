package workers

import (
	"context"
	"strings"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/hardware"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/service"
	"github.com/MKhiriev/go-door-keeper/models"
)

const (
	submitKey = "#"
	clearKey  = "*"

	defaultPollInterval = 100 * time.Millisecond
)

// keypadWorker drains the keypad sensor on a fixed interval and turns
// buffered key presses into passcode attempts. Digits accumulate until
// the submit key; a partial entry is discarded after the configured
// keypad timeout.
type keypadWorker struct {
	keypad   hardware.KeypadSensor
	policy   service.PolicyService
	lock     service.LockController
	settings service.SettingsService

	pollInterval time.Duration

	entry     []string
	lastKeyAt time.Time

	ctx    context.Context
	logger *logger.Logger
}

func NewKeypadWorker(
	ctx context.Context,
	keypad hardware.KeypadSensor,
	services *service.Services,
	pollInterval time.Duration,
	logger *logger.Logger,
) Worker {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	return &keypadWorker{
		keypad:       keypad,
		policy:       services.PolicyService,
		lock:         services.LockController,
		settings:     services.SettingsService,
		pollInterval: pollInterval,
		ctx:          ctx,
		logger:       logger,
	}
}

// Run polls the keypad until the worker's context is cancelled.
func (w *keypadWorker) Run() {
	w.logger.Info().Dur("poll_interval", w.pollInterval).Msg("keypad worker started")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info().Msg("keypad worker stopped")
			return
		case <-ticker.C:
			w.poll()
		}
	}
}

func (w *keypadWorker) poll() {
	settings, err := w.settings.Get(w.ctx)
	if err != nil {
		w.logger.Err(err).Msg("loading settings failed")
		return
	}

	keys, err := w.keypad.ReadPending(w.ctx)
	if err != nil {
		w.logger.Err(err).Msg("reading keypad failed")
		return
	}

	// the sensor keeps buffering while the keypad is administratively
	// disabled; presses made during that window are thrown away
	if !settings.KeypadEnabled {
		w.entry = nil
		return
	}

	if len(w.entry) > 0 && settings.KeypadTimeout > 0 && time.Since(w.lastKeyAt) > settings.KeypadTimeout {
		w.logger.Debug().Msg("partial keypad entry timed out")
		w.entry = nil
	}

	for _, key := range keys {
		w.lastKeyAt = time.Now()

		switch key {
		case clearKey:
			w.entry = nil
		case submitKey:
			if len(w.entry) > 0 {
				w.submit(strings.Join(w.entry, ""), settings)
			}
			w.entry = nil
		default:
			w.entry = append(w.entry, key)
		}
	}
}

func (w *keypadWorker) submit(passcode string, settings models.Settings) {
	decision, err := w.policy.Authorize(w.ctx, models.CredentialInput{
		Kind:     models.CredentialPasscode,
		Channel:  models.ChannelKeypad,
		Passcode: passcode,
	})
	if err != nil {
		w.logger.Err(err).Msg("keypad evaluation failed")
		return
	}
	if !decision.Allowed {
		w.logger.Info().Str("reason", string(decision.Reason)).Msg("keypad entry denied")
		return
	}

	actor := "keypad"
	if decision.User != nil {
		actor = decision.User.Username
	}

	if _, err := w.lock.Unlock(w.ctx, settings.AutoLockDelay, actor); err != nil {
		w.logger.Err(err).Msg("unlocking failed")
	}
}
