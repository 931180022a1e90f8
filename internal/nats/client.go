// Package nats provides a JetStream client used to hand mail to an external relay.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Failed messages are redelivered after these pauses, then given up on
// once MaxDeliver is reached.
var redeliveryBackoff = []time.Duration{
	10 * time.Second,
	time.Minute,
	5 * time.Minute,
	15 * time.Minute,
}

const maxDeliver = 8

// Client wraps nats connection and jetstream context.
type Client struct {
	Conn *nats.Conn
	js   jetstream.JetStream
}

// New creates a new nats client with jetstream support.
func New(_ context.Context, natsURL string) (*Client, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("landing"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	return &Client{Conn: conn, js: js}, nil
}

// EnsureStream creates a stream if it doesn't exist.
func (c *Client) EnsureStream(ctx context.Context, name string, subjects []string) error {
	_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     name,
		Subjects: subjects,
	})
	if err != nil {
		return fmt.Errorf("create stream %s: %w", name, err)
	}
	return nil
}

// Publish marshals data to JSON and waits for the stream to acknowledge it.
func (c *Client) Publish(ctx context.Context, subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	_, err = c.js.Publish(ctx, subject, payload)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	return nil
}

// Subscribe creates a durable consumer and hands each message to handler.
// Messages are acked when handler returns nil and nacked with a growing
// delay otherwise. Call Stop on the returned context to end consumption.
func (c *Client) Subscribe(ctx context.Context, stream, consumer, subject string, handler func([]byte) error) (jetstream.ConsumeContext, error) {
	cons, err := c.js.CreateOrUpdateConsumer(ctx, stream, consumerConfig(consumer, subject))
	if err != nil {
		return nil, fmt.Errorf("create consumer: %w", err)
	}

	cc, err := cons.Consume(func(msg jetstream.Msg) {
		if err := handler(msg.Data()); err != nil {
			delay := redeliveryBackoff[0]
			if meta, err := msg.Metadata(); err == nil {
				delay = retryDelay(meta.NumDelivered)
			}
			_ = msg.NakWithDelay(delay)
			return
		}
		_ = msg.Ack()
	})
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", subject, err)
	}

	return cc, nil
}

func consumerConfig(consumer, subject string) jetstream.ConsumerConfig {
	return jetstream.ConsumerConfig{
		Durable:       consumer,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    maxDeliver,
		BackOff:       redeliveryBackoff,
	}
}

// retryDelay returns the pause before redelivering a message that failed
// on its n-th delivery.
func retryDelay(n uint64) time.Duration {
	i := len(redeliveryBackoff) - 1
	if n > 0 && n <= uint64(len(redeliveryBackoff)) {
		i = int(n) - 1
	}
	return redeliveryBackoff[i]
}

// Close closes the nats connection.
func (c *Client) Close() {
	c.Conn.Close()
}

// IsConnected reports whether the connection is up. It backs the API health check.
func (c *Client) IsConnected() bool {
	return c.Conn.IsConnected()
}
