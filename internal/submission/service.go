// Package submission exposes the contact submission operation: validate the
// form, dispatch one notification, and report a uniform result.
package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/j2systems/landing/internal/contact"
	"github.com/j2systems/landing/internal/dispatcher"
	"github.com/j2systems/landing/internal/logger"
)

// Kind classifies a failed submission.
type Kind string

const (
	KindValidation Kind = "validation"
	KindDelivery   Kind = "delivery"
)

// Result is what every submission returns. It is never accompanied by an error.
type Result struct {
	OK      bool
	Kind    Kind
	Details []contact.Violation
}

// Dispatcher delivers a validated submission.
type Dispatcher interface {
	Dispatch(ctx context.Context, sub contact.Submission) error
}

// Service composes validation and dispatch. It holds no per-call state.
type Service struct {
	dispatcher Dispatcher
	log        *logger.Logger
}

// NewService creates a submission service.
func NewService(d Dispatcher, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{dispatcher: d, log: log}
}

// Submit validates an arbitrary field map and dispatches it when valid.
func (s *Service) Submit(ctx context.Context, raw map[string]any) Result {
	return s.handle(ctx, contact.Validate(raw))
}

func (s *Service) handle(ctx context.Context, res contact.Result) Result {
	base := s.log.Logger
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		base = *l
	}
	log := base.With().Str("ref", uuid.NewString()).Logger()

	sub, ok := res.Submission()
	if !ok {
		violations := res.Violations()
		fields := make([]string, len(violations))
		for i, v := range violations {
			fields[i] = v.Field
		}
		log.Info().Strs("fields", fields).Msg("contact submission rejected")
		return Result{OK: false, Kind: KindValidation, Details: violations}
	}

	// the dispatch runs to completion even if the caller goes away
	dctx := log.WithContext(context.WithoutCancel(ctx))

	start := time.Now()
	err := s.dispatch(dctx, sub)
	elapsed := time.Since(start)

	if err != nil {
		var dErr *dispatcher.DeliveryError
		if errors.As(err, &dErr) {
			log.Error().Err(err).Dur("elapsed", elapsed).Msg("contact notification delivery failed")
		} else {
			log.Error().Err(err).Dur("elapsed", elapsed).Msg("unexpected error while dispatching contact notification")
		}
		return Result{OK: false, Kind: KindDelivery}
	}

	log.Info().Dur("elapsed", elapsed).Bool("company", sub.HasCompany()).Msg("contact submission delivered")
	return Result{OK: true}
}

// dispatch converts a panic in the dispatcher or transport into an error.
func (s *Service) dispatch(ctx context.Context, sub contact.Submission) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dispatch panic: %v", r)
		}
	}()
	return s.dispatcher.Dispatch(ctx, sub)
}
