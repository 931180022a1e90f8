package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/j2systems/landing/internal/api"
	"github.com/j2systems/landing/internal/config"
	"github.com/j2systems/landing/internal/content"
	"github.com/j2systems/landing/internal/dispatcher"
	"github.com/j2systems/landing/internal/mailer"
	"github.com/j2systems/landing/internal/nats"
	"github.com/j2systems/landing/internal/submission"
)

// in-flight submissions may still be waiting on the mail transport
const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("version", cfg.Version).
		Str("transport", cfg.Mail.Transport).
		Msg("starting landing api")

	var (
		pub    mailer.Publisher
		broker api.BrokerStatus
	)
	if cfg.Mail.Transport == config.TransportNATS {
		nc, err := nats.New(ctx, cfg.Mail.NatsURL)
		if err != nil {
			return err
		}
		defer nc.Close()

		if err := nc.EnsureStream(ctx, cfg.Mail.NatsStream, []string{cfg.Mail.NatsSubject}); err != nil {
			return err
		}
		pub = nc
		broker = nc
	}

	transport, err := mailer.New(cfg.Mail, pub, log.Component("mailer"))
	if err != nil {
		return fmt.Errorf("create mail transport: %w", err)
	}

	disp, err := dispatcher.New(dispatcherConfig(cfg.Mail), transport, log.Component("dispatcher"))
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}

	site, err := content.Load(cfg.ContentFile)
	if err != nil {
		return err
	}

	server, err := api.NewServer(&api.Config{
		Port:           cfg.HTTPPort,
		Title:          cfg.Mail.BrandName + " Landing API",
		Description:    "Contact form submissions and site content",
		Version:        cfg.Version,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}, &api.Dependencies{
		Submissions: submission.NewService(disp, log.Component("submission")),
		Content:     site,
		Log:         log,
		Broker:      broker,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("stopped")
	return nil
}
