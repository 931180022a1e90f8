package mailer

import (
	"errors"
	"fmt"

	"github.com/j2systems/landing/internal/config"
	"github.com/j2systems/landing/internal/logger"
)

// ErrPublisherRequired is returned when the nats transport is selected without a connection.
var ErrPublisherRequired = errors.New("nats transport requires a publisher")

// New builds the transport selected by cfg.Transport.
// pub is only used by the nats transport and may be nil otherwise.
func New(cfg config.Mail, pub Publisher, log *logger.Logger) (Transport, error) {
	switch cfg.Transport {
	case config.TransportSMTP:
		return NewSMTPTransport(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			Timeout:  cfg.Timeout,
		}), nil
	case config.TransportHTTP:
		if cfg.RelayURL == "" {
			return nil, errors.New("http transport requires a relay url")
		}
		return NewHTTPTransport(cfg.RelayURL, cfg.RelayToken, cfg.Timeout), nil
	case config.TransportNATS:
		if pub == nil {
			return nil, ErrPublisherRequired
		}
		return NewNATSTransport(pub, cfg.NatsSubject), nil
	case config.TransportLog:
		return NewLogTransport(log), nil
	case config.TransportMemory:
		return NewMemoryTransport(), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
	}
}
