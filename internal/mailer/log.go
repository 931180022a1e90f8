package mailer

import (
	"context"

	"github.com/j2systems/landing/internal/logger"
)

// LogTransport writes messages to the log. Meant for local development.
type LogTransport struct {
	log *logger.Logger
}

// NewLogTransport creates a transport that only logs.
func NewLogTransport(log *logger.Logger) *LogTransport {
	if log == nil {
		log = logger.Nop()
	}
	return &LogTransport{log: log}
}

// Send logs the envelope at info and the body at debug.
func (t *LogTransport) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	t.log.Info().
		Str("from", msg.From).
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Msg("mail (log transport)")
	t.log.Debug().Str("html", msg.HTML).Msg("mail body")

	return nil
}
