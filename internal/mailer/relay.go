package mailer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/j2systems/landing/internal/logger"
)

// ErrEmptyPayload is returned for a relay message without data.
var ErrEmptyPayload = errors.New("empty mail payload")

// Relay delivers messages published by NATSTransport through another transport.
type Relay struct {
	transport Transport
	log       *logger.Logger
}

// NewRelay creates a relay that forwards to t.
func NewRelay(t Transport, log *logger.Logger) *Relay {
	if log == nil {
		log = logger.Nop()
	}
	return &Relay{transport: t, log: log}
}

// Handle decodes one published message and sends it.
// Payloads that can never be delivered are logged and dropped (nil error);
// transport failures are returned so the message is redelivered.
func (r *Relay) Handle(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		r.log.Error().Err(ErrEmptyPayload).Msg("dropping relay message")
		return nil
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		r.log.Error().Err(err).Msg("dropping malformed relay message")
		return nil
	}
	if err := msg.Validate(); err != nil {
		r.log.Error().Err(err).Str("message_id", msg.ID).Msg("dropping invalid relay message")
		return nil
	}

	if err := r.transport.Send(ctx, msg); err != nil {
		r.log.Warn().Err(err).Str("message_id", msg.ID).Msg("relay delivery failed, will retry")
		return err
	}

	r.log.Info().Str("message_id", msg.ID).Str("to", msg.To).Msg("relayed mail delivered")
	return nil
}
