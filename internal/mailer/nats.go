package mailer

import (
	"context"
	"fmt"
)

// Publisher publishes a JSON payload and waits for the broker to accept it.
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, subject string, data any) error

// Publish calls f(ctx, subject, data).
func (f PublisherFunc) Publish(ctx context.Context, subject string, data any) error {
	return f(ctx, subject, data)
}

// NATSTransport hands messages to an external relay through a NATS subject.
type NATSTransport struct {
	pub     Publisher
	subject string
}

// NewNATSTransport creates a transport publishing on subject.
func NewNATSTransport(pub Publisher, subject string) *NATSTransport {
	return &NATSTransport{pub: pub, subject: subject}
}

// Send publishes msg. Success means the broker stored it, not that it was delivered.
func (t *NATSTransport) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	if err := t.pub.Publish(ctx, t.subject, msg); err != nil {
		return fmt.Errorf("publish mail: %w", err)
	}
	return nil
}
