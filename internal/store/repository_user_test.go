package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRowColumns() []string {
	return []string{
		"user_id", "username", "name", "email", "password_hash",
		"role", "permissions", "approved", "pre_approved",
		"access_type", "access_until", "credential_enrolled", "credential_id",
		"created_at",
	}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Username:     "john",
		Name:         "John",
		Email:        "john@example.com",
		PasswordHash: "bcrypt-hash",
		Role:         models.RoleUser,
		Permissions:  models.Permissions{models.PermissionUnlock},
		AccessType:   models.AccessFull,
	}

	now := time.Now()

	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(1, user.Username, user.Name, user.Email, user.PasswordHash,
			string(user.Role), "unlock", false, false,
			string(user.AccessType), nil, false, nil, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Name, user.Email, user.PasswordHash,
			user.Role, "unlock", false, false, user.AccessType, nil, false, nil).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Username != user.Username {
		t.Errorf("expected username %s, got %s", user.Username, created.Username)
	}
	if !created.Permissions.Has(models.PermissionUnlock) {
		t.Error("expected unlock permission to survive the round trip")
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Username: "john"}

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrUsernameAlreadyExists) {
		t.Fatalf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestFindUserByUsername_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	until := time.Now().Add(24 * time.Hour)

	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(7, "jane", "Jane", "jane@example.com", "hash",
			"user", "unlock,view_logs", true, false,
			"limited", until, true, "template-1", time.Now())

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("jane").
		WillReturnRows(rows)

	found, err := repo.FindUserByUsername(ctx, "jane")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", found.UserID)
	}
	if found.AccessUntil == nil || !found.AccessUntil.Equal(until) {
		t.Errorf("expected access_until %v, got %v", until, found.AccessUntil)
	}
	if found.CredentialID != "template-1" {
		t.Errorf("expected credential_id template-1, got %q", found.CredentialID)
	}
	if len(found.Permissions) != 2 {
		t.Errorf("expected 2 permissions, got %d", len(found.Permissions))
	}
}

func TestFindUserByUsername_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByCredentialID_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(3, "jane", "Jane", "", "hash",
			"user", "unlock", true, false,
			"full", nil, true, "template-9", time.Now())

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("template-9").
		WillReturnRows(rows)

	found, err := repo.FindUserByCredentialID(context.Background(), "template-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Username != "jane" {
		t.Errorf("expected username jane, got %s", found.Username)
	}
}

func TestListUsers_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(1, "admin", "Admin", "", "hash", "admin", "", true, false, "full", nil, false, nil, time.Now()).
		AddRow(2, "jane", "Jane", "", "hash", "user", "unlock", true, false, "full", nil, false, nil, time.Now())

	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(rows)

	users, err := repo.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Role != models.RoleAdmin {
		t.Errorf("expected first user to be admin, got %s", users[0].Role)
	}
}

func TestUpdateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	user := models.User{
		UserID:      2,
		Username:    "jane",
		Name:        "Jane Updated",
		Role:        models.RoleUser,
		Permissions: models.Permissions{models.PermissionUnlock},
		Approved:    true,
		AccessType:  models.AccessFull,
	}

	rows := sqlmock.
		NewRows(userRowColumns()).
		AddRow(2, user.Username, user.Name, "", "", "user", "unlock",
			true, false, "full", nil, false, nil, time.Now())

	mock.ExpectQuery("UPDATE users SET").
		WillReturnRows(rows)

	updated, err := repo.UpdateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Jane Updated" {
		t.Errorf("expected updated name, got %s", updated.Name)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users SET").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateUser(context.Background(), models.User{UserID: 99})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteUser(context.Background(), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUser(context.Background(), 99)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestPermissionsRoundTrip(t *testing.T) {
	original := models.Permissions{models.PermissionUnlock, models.PermissionViewLogs}

	joined := joinPermissions(original)
	parsed := parsePermissions(joined)

	if len(parsed) != len(original) {
		t.Fatalf("expected %d permissions, got %d", len(original), len(parsed))
	}
	for i := range original {
		if parsed[i] != original[i] {
			t.Errorf("permission %d: expected %s, got %s", i, original[i], parsed[i])
		}
	}

	if parsePermissions("") != nil {
		t.Error("expected nil permissions for empty column")
	}
}
