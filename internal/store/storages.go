package store

import "github.com/MKhiriev/go-door-keeper/internal/logger"

// Storages bundles all repository implementations behind their interfaces.
type Storages struct {
	UserRepository     UserRepository
	SettingsRepository SettingsRepository
	AuditRepository    AuditRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		SettingsRepository: NewSettingsRepository(db, log),
		AuditRepository:    NewAuditRepository(db, log),
	}
}
