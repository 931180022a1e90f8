package api

import (
	"context"

	"github.com/j2systems/landing/internal/submission"
)

// SubmissionService handles contact form submissions given as raw fields.
type SubmissionService interface {
	Submit(ctx context.Context, raw map[string]any) submission.Result
}

// BrokerStatus reports the message broker connection state.
type BrokerStatus interface {
	IsConnected() bool
}
