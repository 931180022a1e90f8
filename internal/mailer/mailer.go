// Package mailer delivers rendered e-mail messages through pluggable transports.
package mailer

import (
	"context"
	"errors"
	"strings"
)

// Transport hands a message to an external delivery system.
// Implementations must be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, msg Message) error

// Send calls f(ctx, msg).
func (f TransportFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// Message is a fully rendered e-mail.
type Message struct {
	ID       string `json:"id,omitempty"`
	From     string `json:"from"`
	FromName string `json:"from_name,omitempty"`
	To       string `json:"to"`
	ReplyTo  string `json:"reply_to,omitempty"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
}

var (
	ErrNoSender    = errors.New("message has no sender")
	ErrNoRecipient = errors.New("message has no recipient")
)

// Validate checks the fields every transport needs.
func (m Message) Validate() error {
	if m.From == "" {
		return ErrNoSender
	}
	if m.To == "" {
		return ErrNoRecipient
	}
	return nil
}

var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// headerSafe removes line breaks so values cannot inject extra headers.
func headerSafe(s string) string {
	return headerBreaks.Replace(s)
}
