// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-door-keeper/internal/hardware"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
)

// enrollSampleCount is how many agreeing captures an enrollment needs.
const enrollSampleCount = 3

// enrollmentService is the concrete implementation of
// [EnrollmentService]. Raw samples never leave this service: only their
// HMAC digest is stored or compared, so the database holds no biometric
// data.
type enrollmentService struct {
	userRepository store.UserRepository
	settings       SettingsService
	sensor         hardware.CredentialSensor
	uuidGenerator  *utils.UUIDGenerator
	hashKey        string
	audit          AuditService
	logger         *logger.Logger
}

// NewEnrollmentService constructs an [EnrollmentService].
func NewEnrollmentService(
	userRepository store.UserRepository,
	settings SettingsService,
	sensor hardware.CredentialSensor,
	hashKey string,
	audit AuditService,
	logger *logger.Logger,
) EnrollmentService {
	return &enrollmentService{
		userRepository: userRepository,
		settings:       settings,
		sensor:         sensor,
		uuidGenerator:  utils.NewUUIDGenerator(),
		hashKey:        hashKey,
		audit:          audit,
		logger:         logger,
	}
}

// Enroll implements [EnrollmentService]. It captures enrollSampleCount
// samples, requires their digests to agree (same finger, stable read),
// and stores the digest as the account's credential reference.
func (s *enrollmentService) Enroll(ctx context.Context, username string) (models.Template, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.Template{}, err
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return models.Template{}, fmt.Errorf("loading settings: %w", err)
	}
	if !settings.FingerprintEnabled {
		return models.Template{}, fmt.Errorf("%w: fingerprint authentication is disabled", ErrValidation)
	}

	var digest string
	for i := 0; i < enrollSampleCount; i++ {
		sampleDigest, err := s.captureOne(ctx, settings)
		if err != nil {
			s.audit.Record(models.AuditActionFingerprint, models.AuditStatusFailed, username, "enrollment capture failed")
			return models.Template{}, fmt.Errorf("%w: sample %d of %d: %w", ErrEnrollmentIncomplete, i+1, enrollSampleCount, err)
		}

		if i == 0 {
			digest = sampleDigest
			continue
		}
		if sampleDigest != digest {
			s.audit.Record(models.AuditActionFingerprint, models.AuditStatusFailed, username, "enrollment samples mismatch")
			return models.Template{}, ErrSamplesMismatch
		}
	}

	user.CredentialEnrolled = true
	user.CredentialID = digest

	if _, err := s.userRepository.UpdateUser(ctx, user); err != nil {
		log.Err(err).Str("username", username).Msg("storing enrolled template failed")
		return models.Template{}, fmt.Errorf("storing enrolled template failed: %w", err)
	}

	template := models.Template{
		TemplateID: s.uuidGenerator.Generate(),
		Digest:     digest,
	}

	s.audit.Record(models.AuditActionFingerprint, models.AuditStatusSuccess, username, "template enrolled")
	log.Info().Str("username", username).Str("template_id", template.TemplateID).Msg("fingerprint enrolled")

	return template, nil
}

// CaptureDigest implements [EnrollmentService].
func (s *enrollmentService) CaptureDigest(ctx context.Context) (string, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("loading settings: %w", err)
	}
	if !settings.FingerprintEnabled {
		return "", fmt.Errorf("%w: fingerprint authentication is disabled", ErrValidation)
	}

	return s.captureOne(ctx, settings)
}

func (s *enrollmentService) captureOne(ctx context.Context, settings models.Settings) (string, error) {
	captureCtx := ctx
	if settings.FingerprintTimeout > 0 {
		var cancel context.CancelFunc
		captureCtx, cancel = context.WithTimeout(ctx, settings.FingerprintTimeout)
		defer cancel()
	}

	sample, err := s.sensor.Capture(captureCtx)
	if err != nil {
		return "", err
	}

	return utils.HashString(sample, s.hashKey), nil
}
