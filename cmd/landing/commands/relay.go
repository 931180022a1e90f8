package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/j2systems/landing/internal/mailer"
	"github.com/j2systems/landing/internal/nats"
)

func relayCmd() *cobra.Command {
	var consumer string

	cmd := &cobra.Command{
		Use:   "mail-relay",
		Short: "Deliver mail queued on NATS over SMTP",
		Long: "Consumes messages published by the nats mail transport and sends them\n" +
			"over SMTP. Failed deliveries are redelivered by JetStream.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRelay(cmd.Context(), consumer)
		},
	}

	cmd.Flags().StringVar(&consumer, "consumer", "mail-relay", "durable consumer name")
	return cmd
}

func runRelay(ctx context.Context, consumer string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	m := cfg.Mail
	if m.NatsURL == "" {
		return errors.New("NATS_URL is required")
	}
	if m.SMTPHost == "" {
		return errors.New("SMTP_HOST is required")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	nc, err := nats.New(ctx, m.NatsURL)
	if err != nil {
		return err
	}
	defer nc.Close()

	if err := nc.EnsureStream(ctx, m.NatsStream, []string{m.NatsSubject}); err != nil {
		return err
	}

	relay := mailer.NewRelay(mailer.NewSMTPTransport(mailer.SMTPConfig{
		Host:     m.SMTPHost,
		Port:     m.SMTPPort,
		Username: m.SMTPUsername,
		Password: m.SMTPPassword,
		Timeout:  m.Timeout,
	}), log.Component("relay"))

	cc, err := nc.Subscribe(ctx, m.NatsStream, consumer, m.NatsSubject, func(data []byte) error {
		return relay.Handle(ctx, data)
	})
	if err != nil {
		return err
	}
	defer cc.Stop()

	log.Info().
		Str("stream", m.NatsStream).
		Str("subject", m.NatsSubject).
		Str("consumer", consumer).
		Msg("mail relay running")

	<-ctx.Done()
	log.Info().Msg("mail relay stopping")
	return nil
}
