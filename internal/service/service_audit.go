package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/store"
	"github.com/MKhiriev/go-door-keeper/models"
)

// appendTimeout bounds one background audit write.
const appendTimeout = 5 * time.Second

// auditService is the concrete implementation of [AuditService].
// Writes are detached from the caller: a slow or failing audit store
// must never delay or fail a door decision.
type auditService struct {
	auditRepository store.AuditRepository
	logger          *logger.Logger
}

// NewAuditService constructs an [AuditService].
func NewAuditService(auditRepository store.AuditRepository, logger *logger.Logger) AuditService {
	return &auditService{
		auditRepository: auditRepository,
		logger:          logger,
	}
}

// Record implements [AuditService]. The write happens on a background
// goroutine; a persistence failure is logged and dropped.
func (s *auditService) Record(action, status, user, details string) {
	record := models.AuditRecord{
		Timestamp: time.Now(),
		Action:    action,
		Status:    status,
		User:      user,
		Details:   details,
	}

	go s.append(record)
}

func (s *auditService) append(record models.AuditRecord) {
	ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
	defer cancel()

	if err := s.auditRepository.Append(ctx, record); err != nil {
		s.logger.Err(err).
			Str("action", record.Action).
			Str("status", record.Status).
			Msg("audit record dropped")
	}
}

// List implements [AuditService].
func (s *auditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditRecord, error) {
	return s.auditRepository.List(ctx, filter)
}
