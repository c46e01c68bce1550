package workers

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/hardware"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/mock"
	"github.com/MKhiriev/go-door-keeper/internal/service"
	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testPollInterval = 5 * time.Millisecond

type workerMocks struct {
	policy   *mock.MockPolicyService
	lock     *mock.MockLockController
	settings *mock.MockSettingsService
}

func newTestWorker(t *testing.T, ctx context.Context, keypad hardware.KeypadSensor) (Worker, *workerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &workerMocks{
		policy:   mock.NewMockPolicyService(ctrl),
		lock:     mock.NewMockLockController(ctrl),
		settings: mock.NewMockSettingsService(ctrl),
	}

	services := &service.Services{
		PolicyService:   m.policy,
		LockController:  m.lock,
		SettingsService: m.settings,
	}

	return NewKeypadWorker(ctx, keypad, services, testPollInterval, logger.Nop()), m
}

func enabledSettings() models.Settings {
	return models.Settings{
		KeypadEnabled: true,
		KeypadTimeout: time.Minute,
		AutoLockDelay: 30 * time.Second,
	}
}

func TestKeypadWorker_SubmitUnlocks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keypad := hardware.NewMemoryKeypad()
	worker, m := newTestWorker(t, ctx, keypad)

	m.settings.EXPECT().Get(gomock.Any()).Return(enabledSettings(), nil).AnyTimes()

	unlocked := make(chan string, 1)
	resident := models.User{Username: "jane"}
	m.policy.EXPECT().
		Authorize(gomock.Any(), models.CredentialInput{
			Kind:     models.CredentialPasscode,
			Channel:  models.ChannelKeypad,
			Passcode: "2468",
		}).
		Return(models.Allow(&resident), nil)
	m.lock.EXPECT().
		Unlock(gomock.Any(), 30*time.Second, "jane").
		DoAndReturn(func(_ context.Context, _ time.Duration, actor string) (models.DoorState, error) {
			unlocked <- actor
			return models.DoorState{}, nil
		})

	for _, key := range []string{"2", "4", "6", "8", submitKey} {
		require.NoError(t, keypad.Push(key))
	}

	go worker.Run()

	select {
	case actor := <-unlocked:
		assert.Equal(t, "jane", actor)
	case <-time.After(time.Second):
		t.Fatal("keypad entry was never submitted")
	}
}

func TestKeypadWorker_DeniedEntryDoesNotUnlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keypad := hardware.NewMemoryKeypad()
	worker, m := newTestWorker(t, ctx, keypad)

	m.settings.EXPECT().Get(gomock.Any()).Return(enabledSettings(), nil).AnyTimes()

	evaluated := make(chan struct{}, 1)
	m.policy.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.CredentialInput) (models.Decision, error) {
			evaluated <- struct{}{}
			return models.Deny(models.DenyInvalidCredential), nil
		})
	// no Unlock expectation: a call would fail the controller check

	for _, key := range []string{"0", "0", "0", "0", submitKey} {
		require.NoError(t, keypad.Push(key))
	}

	go worker.Run()

	select {
	case <-evaluated:
	case <-time.After(time.Second):
		t.Fatal("keypad entry was never evaluated")
	}
}

func TestKeypadWorker_ClearKeyDiscardsEntry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keypad := hardware.NewMemoryKeypad()
	worker, m := newTestWorker(t, ctx, keypad)

	m.settings.EXPECT().Get(gomock.Any()).Return(enabledSettings(), nil).AnyTimes()

	evaluated := make(chan string, 1)
	m.policy.EXPECT().
		Authorize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input models.CredentialInput) (models.Decision, error) {
			evaluated <- input.Passcode
			return models.Deny(models.DenyInvalidCredential), nil
		})

	// "99" is cleared before "1234" is entered and submitted
	for _, key := range []string{"9", "9", clearKey, "1", "2", "3", "4", submitKey} {
		require.NoError(t, keypad.Push(key))
	}

	go worker.Run()

	select {
	case passcode := <-evaluated:
		assert.Equal(t, "1234", passcode)
	case <-time.After(time.Second):
		t.Fatal("keypad entry was never evaluated")
	}
}

func TestKeypadWorker_DisabledKeypadDropsKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	keypad := hardware.NewMemoryKeypad()
	worker, m := newTestWorker(t, ctx, keypad)

	settings := enabledSettings()
	settings.KeypadEnabled = false

	polled := make(chan struct{}, 1)
	m.settings.EXPECT().
		Get(gomock.Any()).
		DoAndReturn(func(context.Context) (models.Settings, error) {
			select {
			case polled <- struct{}{}:
			default:
			}
			return settings, nil
		}).
		AnyTimes()
	// no Authorize expectation: presses on a disabled keypad are dropped

	for _, key := range []string{"2", "4", "6", "8", submitKey} {
		require.NoError(t, keypad.Push(key))
	}

	go worker.Run()

	select {
	case <-polled:
	case <-time.After(time.Second):
		t.Fatal("worker never polled")
	}

	// give the worker a few more cycles to prove nothing is submitted
	time.Sleep(5 * testPollInterval)

	pending, err := keypad.ReadPending(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestKeypadWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	keypad := hardware.NewMemoryKeypad()
	worker, m := newTestWorker(t, ctx, keypad)

	m.settings.EXPECT().Get(gomock.Any()).Return(enabledSettings(), nil).AnyTimes()

	done := make(chan struct{})
	go func() {
		worker.Run()
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
