package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-door-keeper/models"
)

const (
	userColumns = `user_id, username, name, email, password_hash, role, permissions, approved, pre_approved, access_type, access_until, credential_enrolled, credential_id, created_at`

	createUser = `INSERT INTO users (username, name, email, password_hash, role, permissions, approved, pre_approved, access_type, access_until, credential_enrolled, credential_id)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
    RETURNING ` + userColumns + `;`

	findUserByUsername = `SELECT ` + userColumns + `
    FROM users
    WHERE username = $1;`

	findUserByID = `SELECT ` + userColumns + `
    FROM users
    WHERE user_id = $1;`

	findUserByCredentialID = `SELECT ` + userColumns + `
    FROM users
    WHERE credential_id = $1;`

	listUsers = `SELECT ` + userColumns + `
    FROM users
    ORDER BY user_id;`

	deleteUser = `DELETE FROM users WHERE user_id = $1;`

	getSettings = `SELECT system_passcode, lockout_passcode, max_trials, auto_lock_delay_seconds,
           keypad_enabled, keypad_timeout_seconds, camera_enabled, fingerprint_enabled, fingerprint_timeout_seconds
    FROM settings
    WHERE id = 1;`

	updateSettings = `UPDATE settings
    SET system_passcode             = $1,
        lockout_passcode            = $2,
        max_trials                  = $3,
        auto_lock_delay_seconds     = $4,
        keypad_enabled              = $5,
        keypad_timeout_seconds      = $6,
        camera_enabled              = $7,
        fingerprint_enabled         = $8,
        fingerprint_timeout_seconds = $9
    WHERE id = 1;`

	appendAuditRecord = `INSERT INTO audit_log (ts, action, status, username, details)
    VALUES ($1, $2, $3, $4, $5);`
)

// buildUpdateUserQuery builds the full-row user UPDATE with a RETURNING
// clause. Both supported engines accept $N placeholders and RETURNING.
func buildUpdateUserQuery(user models.User) (string, []any, error) {
	query, args, err := sq.Update(user.TableName()).
		Set("username", user.Username).
		Set("name", user.Name).
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("role", user.Role).
		Set("permissions", joinPermissions(user.Permissions)).
		Set("approved", user.Approved).
		Set("pre_approved", user.PreApproved).
		Set("access_type", user.AccessType).
		Set("access_until", user.AccessUntil).
		Set("credential_enrolled", user.CredentialEnrolled).
		Set("credential_id", nullableString(user.CredentialID)).
		Where(sq.Eq{"user_id": user.UserID}).
		Suffix("RETURNING " + userColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildListAuditQuery builds the audit-log SELECT applying only the
// filter criteria that are set.
func buildListAuditQuery(filter models.AuditFilter) (string, []any, error) {
	builder := sq.Select("id", "ts", "action", "status", "username", "details").
		From(models.AuditRecord{}.TableName()).
		OrderBy("ts DESC", "id DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Action != "" {
		builder = builder.Where(sq.Eq{"action": filter.Action})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if filter.User != "" {
		builder = builder.Where(sq.Eq{"username": filter.User})
	}
	if filter.Since != nil {
		builder = builder.Where(sq.GtOrEq{"ts": *filter.Since})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// nullableString maps an empty string to SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
