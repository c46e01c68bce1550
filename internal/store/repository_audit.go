package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/models"
)

// auditRepository persists the append-only audit log.
type auditRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAuditRepository constructs an [AuditRepository] backed by the
// provided database connection and logger.
func NewAuditRepository(db *DB, logger *logger.Logger) AuditRepository {
	logger.Debug().Msg("creating audit repository")
	return &auditRepository{
		db:     db,
		logger: logger,
	}
}

// Append persists one audit record. A zero Timestamp is replaced with the
// current time. Returns [ErrAuditNotRecorded] when no row was written.
func (r *auditRepository) Append(ctx context.Context, record models.AuditRecord) error {
	log := logger.FromContext(ctx)

	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	result, err := r.db.ExecContext(ctx, appendAuditRecord,
		record.Timestamp, record.Action, record.Status, record.User, record.Details,
	)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.Append").Msg("error appending audit record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAuditNotRecorded
	}

	return nil
}

// List returns audit records matching the filter, newest first.
func (r *auditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAuditQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.List").Msg("error building audit query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*auditRepository.List").Msg("error querying audit log")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.AuditRecord
	for rows.Next() {
		var record models.AuditRecord
		if err := rows.Scan(&record.ID, &record.Timestamp, &record.Action, &record.Status, &record.User, &record.Details); err != nil {
			log.Err(err).Str("func", "*auditRepository.List").Msg("error scanning audit row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}
