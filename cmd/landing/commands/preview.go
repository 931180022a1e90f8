package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/j2systems/landing/internal/contact"
	"github.com/j2systems/landing/internal/dispatcher"
	"github.com/j2systems/landing/internal/mailer"
)

// placeholder addresses when the environment has none configured
const (
	previewFrom = "noreply@example.com"
	previewTo   = "inbox@example.com"
)

func previewCmd() *cobra.Command {
	var (
		form contact.Form
		raw  bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Validate a submission and print the notification without sending it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			res := contact.ValidateForm(form)
			sub, ok := res.Submission()
			if !ok {
				for _, v := range res.Violations() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", v.Field, v.Reason)
				}
				return res.Err()
			}

			dcfg := dispatcherConfig(cfg.Mail)
			if dcfg.FromAddress == "" {
				dcfg.FromAddress = previewFrom
			}
			if dcfg.ToAddress == "" {
				dcfg.ToAddress = previewTo
			}

			disp, err := dispatcher.New(dcfg, mailer.NewMemoryTransport(), nil)
			if err != nil {
				return err
			}

			msg, err := disp.Render(sub)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				data, err := mailer.BuildRaw(msg, time.Now())
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			fmt.Fprintf(out, "From: %s <%s>\n", msg.FromName, msg.From)
			fmt.Fprintf(out, "To: %s\n", msg.To)
			fmt.Fprintf(out, "Reply-To: %s\n", msg.ReplyTo)
			fmt.Fprintf(out, "Subject: %s\n\n", msg.Subject)
			fmt.Fprintln(out, msg.HTML)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "submitter name")
	cmd.Flags().StringVar(&form.Email, "email", "", "submitter e-mail")
	cmd.Flags().StringVar(&form.Company, "company", "", "submitter company (optional)")
	cmd.Flags().StringVar(&form.Message, "message", "", "message body")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the full RFC 5322 message as sent over SMTP")

	return cmd
}
