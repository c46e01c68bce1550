package store

import (
	"context"

	"github.com/MKhiriev/go-door-keeper/models"
)

// UserRepository persists door-keeper accounts together with the
// physical-access attributes consulted by the policy engine.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	FindUserByCredentialID(ctx context.Context, credentialID string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// SettingsRepository persists the singleton controller settings row.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error)
}

// AuditRepository persists the append-only audit log.
type AuditRepository interface {
	Append(ctx context.Context, record models.AuditRecord) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditRecord, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
