package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/internal/validators"
	"github.com/MKhiriev/go-door-keeper/models"
)

// settingsService is the concrete implementation of [SettingsService].
// Updates are validated before they touch the store, so a rejected
// update leaves the previous settings fully in effect.
type settingsService struct {
	settingsRepository store.SettingsRepository
	validator          validators.Validator
	audit              AuditService
	logger             *logger.Logger
}

// NewSettingsService constructs a [SettingsService].
func NewSettingsService(settingsRepository store.SettingsRepository, validator validators.Validator, audit AuditService, logger *logger.Logger) SettingsService {
	return &settingsService{
		settingsRepository: settingsRepository,
		validator:          validator,
		audit:              audit,
		logger:             logger,
	}
}

// Get implements [SettingsService].
func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	return s.settingsRepository.GetSettings(ctx)
}

// Update implements [SettingsService].
func (s *settingsService) Update(ctx context.Context, settings models.Settings) (models.Settings, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, settings); err != nil {
		log.Warn().Err(err).Msg("settings update rejected")
		return models.Settings{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	updated, err := s.settingsRepository.UpdateSettings(ctx, settings)
	if err != nil {
		log.Err(err).Msg("settings update failed")
		return models.Settings{}, fmt.Errorf("settings update failed: %w", err)
	}

	s.audit.Record(models.AuditActionSettings, models.AuditStatusUpdated, "", "settings updated")

	return updated, nil
}
