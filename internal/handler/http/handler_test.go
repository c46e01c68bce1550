package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/mock"
	"github.com/MKhiriev/go-door-keeper/internal/service"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// serviceMocks bundles one gomock mock per service the handlers touch.
type serviceMocks struct {
	auth       *mock.MockAuthService
	tracker    *mock.MockAttemptTracker
	lock       *mock.MockLockController
	policy     *mock.MockPolicyService
	users      *mock.MockUserService
	settings   *mock.MockSettingsService
	audit      *mock.MockAuditService
	enrollment *mock.MockEnrollmentService
}

func newTestHandler(t *testing.T, keypad KeypadInput) (*Handler, *serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &serviceMocks{
		auth:       mock.NewMockAuthService(ctrl),
		tracker:    mock.NewMockAttemptTracker(ctrl),
		lock:       mock.NewMockLockController(ctrl),
		policy:     mock.NewMockPolicyService(ctrl),
		users:      mock.NewMockUserService(ctrl),
		settings:   mock.NewMockSettingsService(ctrl),
		audit:      mock.NewMockAuditService(ctrl),
		enrollment: mock.NewMockEnrollmentService(ctrl),
	}

	services := &service.Services{
		AuthService:       m.auth,
		AttemptTracker:    m.tracker,
		LockController:    m.lock,
		PolicyService:     m.policy,
		UserService:       m.users,
		SettingsService:   m.settings,
		AuditService:      m.audit,
		EnrollmentService: m.enrollment,
	}

	return NewHandler(services, keypad, logger.Nop()), m
}

// withUser attaches an authenticated account to the request context the
// way the auth middleware does.
func withUser(r *http.Request, user models.User) *http.Request {
	ctx := context.WithValue(r.Context(), currentUserCtxKey, user)
	ctx = context.WithValue(ctx, utils.UserIDCtxKey, user.UserID)
	ctx = context.WithValue(ctx, utils.UsernameCtxKey, user.Username)
	return r.WithContext(ctx)
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// adminUser is a convenience fixture used across multiple tests.
var adminUser = models.User{
	UserID:     1,
	Username:   "admin",
	Role:       models.RoleAdmin,
	Approved:   true,
	AccessType: models.AccessFull,
}
