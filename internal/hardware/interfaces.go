package hardware

import "context"

// Bolt actuates the physical door bolt. Implementations must be safe for
// concurrent use; the lock controller serialises calls under its own
// mutex but health checks may probe concurrently.
type Bolt interface {
	// Engage drives the bolt into the locked position.
	Engage(ctx context.Context) error

	// Release drives the bolt into the unlocked position.
	Release(ctx context.Context) error
}

// CredentialSensor captures one raw credential sample per call. Used by
// the enrollment service, which aggregates several captures into one
// stored template digest.
type CredentialSensor interface {
	// Capture blocks until a sample is available or ctx is done.
	Capture(ctx context.Context) (string, error)
}

// KeypadSensor exposes the key presses buffered by the keypad since the
// previous poll. The background keypad worker drains it periodically.
type KeypadSensor interface {
	// ReadPending returns and clears the buffered key presses, in the
	// order they were pressed.
	ReadPending(ctx context.Context) ([]string, error)
}
