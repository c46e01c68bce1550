package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-door-keeper/models"
)

// fakeUserRepository is a hand-rolled store.UserRepository stub with
// per-method function fields. Unset methods fail loudly.
type fakeUserRepository struct {
	createUserFunc             func(ctx context.Context, user models.User) (models.User, error)
	findUserByUsernameFunc     func(ctx context.Context, username string) (models.User, error)
	findUserByIDFunc           func(ctx context.Context, userID int64) (models.User, error)
	findUserByCredentialIDFunc func(ctx context.Context, credentialID string) (models.User, error)
	listUsersFunc              func(ctx context.Context) ([]models.User, error)
	updateUserFunc             func(ctx context.Context, user models.User) (models.User, error)
	deleteUserFunc             func(ctx context.Context, userID int64) error
}

func (f *fakeUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if f.createUserFunc == nil {
		panic("unexpected call to CreateUser")
	}
	return f.createUserFunc(ctx, user)
}

func (f *fakeUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	if f.findUserByUsernameFunc == nil {
		panic("unexpected call to FindUserByUsername")
	}
	return f.findUserByUsernameFunc(ctx, username)
}

func (f *fakeUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if f.findUserByIDFunc == nil {
		panic("unexpected call to FindUserByID")
	}
	return f.findUserByIDFunc(ctx, userID)
}

func (f *fakeUserRepository) FindUserByCredentialID(ctx context.Context, credentialID string) (models.User, error) {
	if f.findUserByCredentialIDFunc == nil {
		panic("unexpected call to FindUserByCredentialID")
	}
	return f.findUserByCredentialIDFunc(ctx, credentialID)
}

func (f *fakeUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if f.listUsersFunc == nil {
		panic("unexpected call to ListUsers")
	}
	return f.listUsersFunc(ctx)
}

func (f *fakeUserRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	if f.updateUserFunc == nil {
		panic("unexpected call to UpdateUser")
	}
	return f.updateUserFunc(ctx, user)
}

func (f *fakeUserRepository) DeleteUser(ctx context.Context, userID int64) error {
	if f.deleteUserFunc == nil {
		panic("unexpected call to DeleteUser")
	}
	return f.deleteUserFunc(ctx, userID)
}

// fakeSettingsRepository stubs store.SettingsRepository.
type fakeSettingsRepository struct {
	getSettingsFunc    func(ctx context.Context) (models.Settings, error)
	updateSettingsFunc func(ctx context.Context, settings models.Settings) (models.Settings, error)
}

func (f *fakeSettingsRepository) GetSettings(ctx context.Context) (models.Settings, error) {
	if f.getSettingsFunc == nil {
		panic("unexpected call to GetSettings")
	}
	return f.getSettingsFunc(ctx)
}

func (f *fakeSettingsRepository) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if f.updateSettingsFunc == nil {
		panic("unexpected call to UpdateSettings")
	}
	return f.updateSettingsFunc(ctx, settings)
}

// stubSettings serves fixed settings without touching a repository.
type stubSettings struct {
	settings models.Settings
	err      error
}

func (s *stubSettings) Get(ctx context.Context) (models.Settings, error) {
	return s.settings, s.err
}

func (s *stubSettings) Update(ctx context.Context, settings models.Settings) (models.Settings, error) {
	s.settings = settings
	return settings, s.err
}

// recordingAudit is a synchronous AuditService capturing every record.
type recordingAudit struct {
	mu      sync.Mutex
	records []models.AuditRecord
}

func (a *recordingAudit) Record(action, status, user, details string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records = append(a.records, models.AuditRecord{
		Action: action, Status: status, User: user, Details: details,
	})
}

func (a *recordingAudit) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.AuditRecord(nil), a.records...), nil
}

func (a *recordingAudit) last() (models.AuditRecord, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.records) == 0 {
		return models.AuditRecord{}, false
	}
	return a.records[len(a.records)-1], true
}

// recordingNotifier captures webhook events.
type recordingNotifier struct {
	mu     sync.Mutex
	events []models.NotificationEvent
}

func (n *recordingNotifier) Notify(ctx context.Context, event models.NotificationEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) all() []models.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.NotificationEvent(nil), n.events...)
}
