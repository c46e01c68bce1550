package hardware

import (
	"context"
	"sync"
)

// MemoryKeypad is an in-memory [KeypadSensor]. On a development build it
// stands in for the matrix keypad; the simulate API pushes keys into it
// and the keypad worker drains it on its poll interval.
type MemoryKeypad struct {
	mu      sync.Mutex
	pending []string
	closed  bool
}

func NewMemoryKeypad() *MemoryKeypad {
	return &MemoryKeypad{}
}

// Push appends one key press to the buffer.
func (k *MemoryKeypad) Push(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return ErrSensorClosed
	}

	k.pending = append(k.pending, key)
	return nil
}

// ReadPending implements [KeypadSensor].
func (k *MemoryKeypad) ReadPending(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, ErrSensorClosed
	}

	pending := k.pending
	k.pending = nil
	return pending, nil
}

// Close discards the buffer and fails all further calls.
func (k *MemoryKeypad) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.closed = true
	k.pending = nil
}
