package mailer

import (
	"context"
	"sync"
)

// MemoryTransport records messages instead of sending them.
type MemoryTransport struct {
	mu     sync.Mutex
	outbox []Message
	err    error
}

// NewMemoryTransport creates an empty in-memory outbox.
func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

// Send records msg, or returns the configured failure.
func (t *MemoryTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return t.err
	}
	t.outbox = append(t.outbox, msg)
	return nil
}

// FailWith makes every following Send return err. nil restores success.
func (t *MemoryTransport) FailWith(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
}

// Sent returns a copy of the recorded messages.
func (t *MemoryTransport) Sent() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Message, len(t.outbox))
	copy(out, t.outbox)
	return out
}
