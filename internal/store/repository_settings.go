// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/models"
)

// settingsRepository persists the singleton settings row. Durations are
// stored as whole seconds to keep the schema portable.
type settingsRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSettingsRepository constructs a [SettingsRepository] backed by the
// provided database connection and logger.
func NewSettingsRepository(db *DB, logger *logger.Logger) SettingsRepository {
	logger.Debug().Msg("creating settings repository")
	return &settingsRepository{
		db:     db,
		logger: logger,
	}
}

// GetSettings reads the singleton settings row.
// Returns [ErrSettingsNotFound] when the row is missing.
func (r *settingsRepository) GetSettings(ctx context.Context) (models.Settings, error) {
	log := logger.FromContext(ctx)

	var (
		settings                                           models.Settings
		autoLockSeconds, keypadSeconds, fingerprintSeconds int
	)

	row := r.db.QueryRowContext(ctx, getSettings)
	err := row.Scan(
		&settings.SystemPasscode, &settings.LockoutPasscode, &settings.MaxTrials,
		&autoLockSeconds, &settings.KeypadEnabled, &keypadSeconds,
		&settings.CameraEnabled, &settings.FingerprintEnabled, &fingerprintSeconds,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Settings{}, ErrSettingsNotFound
		}

		log.Err(err).Str("func", "*settingsRepository.GetSettings").Msg("error reading settings")
		return models.Settings{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	settings.AutoLockDelay = time.Duration(autoLockSeconds) * time.Second
	settings.KeypadTimeout = time.Duration(keypadSeconds) * time.Second
	settings.FingerprintTimeout = time.Duration(fingerprintSeconds) * time.Second

	return settings, nil
}

// UpdateSettings overwrites the singleton settings row and returns the
// stored values. Returns [ErrSettingsNotFound] when the row is missing.
func (r *settingsRepository) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateSettings,
		settings.SystemPasscode, settings.LockoutPasscode, settings.MaxTrials,
		int(settings.AutoLockDelay/time.Second),
		settings.KeypadEnabled, int(settings.KeypadTimeout/time.Second),
		settings.CameraEnabled, settings.FingerprintEnabled,
		int(settings.FingerprintTimeout/time.Second),
	)
	if err != nil {
		log.Err(err).Str("func", "*settingsRepository.UpdateSettings").Msg("error updating settings")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.Settings{}, ErrSettingsNotFound
	}

	return settings, nil
}
