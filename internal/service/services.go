package service

import (
	"github.com/MKhiriev/go-door-keeper/internal/config"
	"github.com/MKhiriev/go-door-keeper/internal/hardware"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/internal/validators"
)

type Services struct {
	AuthService       AuthService
	AttemptTracker    AttemptTracker
	LockController    LockController
	PolicyService     PolicyService
	UserService       UserService
	SettingsService   SettingsService
	AuditService      AuditService
	EnrollmentService EnrollmentService
}

func NewServices(
	storages *store.Storages,
	cfg *config.StructuredConfig,
	bolt hardware.Bolt,
	sensor hardware.CredentialSensor,
	notifier Notifier,
	logger *logger.Logger,
) *Services {
	audit := NewAuditService(storages.AuditRepository, logger)
	tracker := NewAttemptTracker(logger)
	settings := NewSettingsService(storages.SettingsRepository, validators.NewSettingsValidator(), audit, logger)

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg.App, audit, notifier, logger),
		AttemptTracker:    tracker,
		LockController:    NewLockController(bolt, audit, notifier, logger),
		PolicyService:     NewPolicyService(storages.UserRepository, settings, tracker, audit, notifier, logger),
		UserService:       NewUserService(storages.UserRepository, validators.NewUserValidator(), audit, notifier, logger),
		SettingsService:   settings,
		AuditService:      audit,
		EnrollmentService: NewEnrollmentService(storages.UserRepository, settings, sensor, cfg.App.HashKey, audit, logger),
	}
}
