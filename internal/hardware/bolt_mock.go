package hardware

import (
	"context"
	"sync"
)

// MockBolt is an in-memory [Bolt] for development and tests. It records
// the last commanded position and can be told to fail the next call.
type MockBolt struct {
	mu       sync.Mutex
	engaged  bool
	failNext error
}

// NewMockBolt returns a mock bolt in the engaged (locked) position.
func NewMockBolt() *MockBolt {
	return &MockBolt{engaged: true}
}

// Engage implements [Bolt].
func (b *MockBolt) Engage(ctx context.Context) error {
	return b.set(ctx, true)
}

// Release implements [Bolt].
func (b *MockBolt) Release(ctx context.Context) error {
	return b.set(ctx, false)
}

func (b *MockBolt) set(ctx context.Context, engaged bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failNext != nil {
		err := b.failNext
		b.failNext = nil
		return err
	}

	b.engaged = engaged
	return nil
}

// Engaged reports the last commanded bolt position.
func (b *MockBolt) Engaged() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.engaged
}

// FailNext makes the next Engage or Release call return err.
func (b *MockBolt) FailNext(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = err
}
