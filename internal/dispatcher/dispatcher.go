// Package dispatcher renders contact submissions into notification e-mails
// and hands them to a mail transport.
package dispatcher

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/j2systems/landing/internal/contact"
	"github.com/j2systems/landing/internal/logger"
	"github.com/j2systems/landing/internal/mailer"
)

// CompanyFallback is rendered when the submitter left company empty.
const CompanyFallback = "not specified"

//go:embed templates/notification.html
var templatesFS embed.FS

var notificationTmpl = template.Must(template.ParseFS(templatesFS, "templates/notification.html"))

// Config is the operator-controlled part of every notification.
type Config struct {
	FromAddress   string
	FromName      string
	ToAddress     string
	SubjectPrefix string
	BrandName     string
}

func (c Config) validate() error {
	if _, err := mail.ParseAddress(c.FromAddress); err != nil {
		return fmt.Errorf("invalid sender address %q: %w", c.FromAddress, err)
	}
	if _, err := mail.ParseAddress(c.ToAddress); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", c.ToAddress, err)
	}
	return nil
}

// DeliveryError reports that the transport failed to accept a message.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return "delivery failed: " + e.Err.Error()
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Dispatcher sends one notification per submission. It keeps no state
// between calls and is safe for concurrent use.
type Dispatcher struct {
	cfg       Config
	transport mailer.Transport
	log       *logger.Logger
}

// New creates a Dispatcher. The sender and recipient are fixed here and
// can never be influenced by submission data.
func New(cfg Config, transport mailer.Transport, log *logger.Logger) (*Dispatcher, error) {
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{cfg: cfg, transport: transport, log: log}, nil
}

type notificationData struct {
	Brand   string
	Name    string
	Email   string
	Company string
	Lines   []string
}

// Render builds the notification message for sub without sending it.
func (d *Dispatcher) Render(sub contact.Submission) (mailer.Message, error) {
	company := sub.Company
	if !sub.HasCompany() {
		company = CompanyFallback
	}

	data := notificationData{
		Brand:   d.cfg.BrandName,
		Name:    sub.Name,
		Email:   sub.Email,
		Company: company,
		Lines:   strings.Split(strings.ReplaceAll(sub.Message, "\r\n", "\n"), "\n"),
	}

	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, data); err != nil {
		return mailer.Message{}, fmt.Errorf("render notification: %w", err)
	}

	return mailer.Message{
		From:     d.cfg.FromAddress,
		FromName: d.cfg.FromName,
		To:       d.cfg.ToAddress,
		ReplyTo:  sub.Email,
		Subject:  d.cfg.SubjectPrefix + sub.Name,
		HTML:     buf.String(),
	}, nil
}

// Dispatch renders sub and makes exactly one delivery attempt.
// Transport failures are returned as *DeliveryError.
func (d *Dispatcher) Dispatch(ctx context.Context, sub contact.Submission) error {
	msg, err := d.Render(sub)
	if err != nil {
		return err
	}
	msg.ID = uuid.NewString()

	log := d.log.Logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		log = *l
	}

	if err := d.transport.Send(ctx, msg); err != nil {
		log.Warn().Err(err).Str("message_id", msg.ID).Msg("notification not delivered")
		return &DeliveryError{Err: err}
	}

	log.Info().Str("message_id", msg.ID).Msg("notification delivered")
	return nil
}
