package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/service"
	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDoorStatus(t *testing.T) {
	h, m := newTestHandler(t, nil)

	deadline := time.Now().Add(30 * time.Second)
	m.lock.EXPECT().State().Return(models.DoorState{Locked: false, AutoLockDeadline: &deadline})

	req := httptest.NewRequest(http.MethodGet, "/api/door/status", nil)
	rec := httptest.NewRecorder()

	h.doorStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"locked":false,"auto_lock":true}`, rec.Body.String())
}

func TestDoorToggle_UnlockAllowed(t *testing.T) {
	h, m := newTestHandler(t, nil)

	actor := adminUser
	m.policy.EXPECT().
		Authorize(gomock.Any(), models.CredentialInput{Kind: models.CredentialAccount, Username: "admin"}).
		Return(models.Allow(&actor), nil)
	m.settings.EXPECT().Get(gomock.Any()).Return(models.Settings{AutoLockDelay: 30 * time.Second}, nil)
	m.lock.EXPECT().
		Unlock(gomock.Any(), 30*time.Second, "admin").
		Return(models.DoorState{Locked: false}, nil)

	body := jsonBody(t, models.DoorToggleRequest{Action: "unlock"})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/door/toggle", strings.NewReader(body)), adminUser)
	rec := httptest.NewRecorder()

	h.doorToggle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"locked":false`)
}

func TestDoorToggle_UnlockDenied(t *testing.T) {
	h, m := newTestHandler(t, nil)

	m.policy.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		Return(models.Deny(models.DenyExpired), nil)

	body := jsonBody(t, models.DoorToggleRequest{Action: "unlock"})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/door/toggle", strings.NewReader(body)), adminUser)
	rec := httptest.NewRecorder()

	h.doorToggle(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"expired"`)
}

func TestDoorToggle_Lock(t *testing.T) {
	h, m := newTestHandler(t, nil)

	m.lock.EXPECT().Lock(gomock.Any(), "admin").Return(models.DoorState{Locked: true}, nil)

	body := jsonBody(t, models.DoorToggleRequest{Action: "lock"})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/door/toggle", strings.NewReader(body)), adminUser)
	rec := httptest.NewRecorder()

	h.doorToggle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"locked":true`)
}

func TestDoorToggle_LockWithoutPermission(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	viewer := models.User{
		UserID:      2,
		Username:    "viewer",
		Role:        models.RoleUser,
		Permissions: models.Permissions{models.PermissionViewLogs},
		Approved:    true,
	}

	body := jsonBody(t, models.DoorToggleRequest{Action: "lock"})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/door/toggle", strings.NewReader(body)), viewer)
	rec := httptest.NewRecorder()

	h.doorToggle(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDoorToggle_UnknownAction(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	body := jsonBody(t, models.DoorToggleRequest{Action: "open-sesame"})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/door/toggle", strings.NewReader(body)), adminUser)
	rec := httptest.NewRecorder()

	h.doorToggle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDoorToggle_HardwareFault(t *testing.T) {
	h, m := newTestHandler(t, nil)

	actor := adminUser
	m.policy.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(models.Allow(&actor), nil)
	m.settings.EXPECT().Get(gomock.Any()).Return(models.Settings{}, nil)
	m.lock.EXPECT().
		Unlock(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.DoorState{Locked: true}, service.ErrHardwareFault)

	body := jsonBody(t, models.DoorToggleRequest{Action: "unlock"})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/door/toggle", strings.NewReader(body)), adminUser)
	rec := httptest.NewRecorder()

	h.doorToggle(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDoorPasscode_Valid(t *testing.T) {
	h, m := newTestHandler(t, nil)

	m.policy.EXPECT().
		Authorize(gomock.Any(), models.CredentialInput{
			Kind:     models.CredentialPasscode,
			Channel:  models.ChannelKeypad,
			Passcode: "1234",
		}).
		Return(models.Allow(nil), nil)
	m.settings.EXPECT().Get(gomock.Any()).Return(models.Settings{AutoLockDelay: 30 * time.Second}, nil)
	m.lock.EXPECT().
		Unlock(gomock.Any(), 30*time.Second, "passcode").
		Return(models.DoorState{Locked: false}, nil)

	body := jsonBody(t, models.PasscodeRequest{Passcode: "1234"})
	req := httptest.NewRequest(http.MethodPost, "/api/door/passcode", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.doorPasscode(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"locked":false`)
}

func TestDoorPasscode_Denied(t *testing.T) {
	h, m := newTestHandler(t, nil)

	m.policy.EXPECT().Authorize(gomock.Any(), gomock.Any()).Return(models.Deny(models.DenyInvalidCredential), nil)

	body := jsonBody(t, models.PasscodeRequest{Passcode: "0000"})
	req := httptest.NewRequest(http.MethodPost, "/api/door/passcode", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.doorPasscode(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"invalid_credential"`)
}

func TestDoorPasscode_Empty(t *testing.T) {
	h, _ := newTestHandler(t, nil)

	body := jsonBody(t, models.PasscodeRequest{})
	req := httptest.NewRequest(http.MethodPost, "/api/door/passcode", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.doorPasscode(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
