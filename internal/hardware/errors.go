package hardware

import "errors"

// Sentinel errors returned by hardware drivers. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrHardwareFault is returned when a driver fails to actuate or read
	// its device. The lock controller surfaces it without changing the
	// recorded door state.
	ErrHardwareFault = errors.New("hardware fault")

	// ErrCaptureTimeout is returned when a credential capture produced no
	// sample before its deadline.
	ErrCaptureTimeout = errors.New("credential capture timed out")

	// ErrSensorClosed is returned when a sensor is used after Close.
	ErrSensorClosed = errors.New("sensor is closed")
)
