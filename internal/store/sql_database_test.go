// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "postgres unique violation",
			err:  &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			want: true,
		},
		{
			name: "postgres other code",
			err:  &pgconn.PgError{Code: pgerrcode.ConnectionFailure},
			want: false,
		},
		{
			name: "sqlite unique constraint",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique},
			want: true,
		},
		{
			name: "sqlite other constraint",
			err:  sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck},
			want: false,
		},
		{
			name: "wrapped postgres unique violation",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}),
			want: true,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildUpdateUserQuery(t *testing.T) {
	user := models.User{
		UserID:      5,
		Username:    "jane",
		Role:        models.RoleUser,
		Permissions: models.Permissions{models.PermissionUnlock},
		AccessType:  models.AccessFull,
	}

	query, args, err := buildUpdateUserQuery(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, fragment := range []string{"UPDATE users SET", "WHERE user_id = $13", "RETURNING user_id"} {
		if !strings.Contains(query, fragment) {
			t.Errorf("expected query to contain %q, got: %s", fragment, query)
		}
	}
	if len(args) != 13 {
		t.Errorf("expected 13 args, got %d", len(args))
	}
	if args[len(args)-1] != int64(5) {
		t.Errorf("expected last arg to be the user id, got %v", args[len(args)-1])
	}
}

func TestClassifyPgError(t *testing.T) {
	retryable := []string{
		pgerrcode.ConnectionException,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow,
	}
	for _, code := range retryable {
		if got := ClassifyPgError(&pgconn.PgError{Code: code}); got != Retryable {
			t.Errorf("code %s: expected Retryable, got %v", code, got)
		}
	}

	nonRetryable := []string{
		pgerrcode.UniqueViolation,
		pgerrcode.SyntaxError,
		"XX000",
	}
	for _, code := range nonRetryable {
		if got := ClassifyPgError(&pgconn.PgError{Code: code}); got != NonRetryable {
			t.Errorf("code %s: expected NonRetryable, got %v", code, got)
		}
	}
}
