// Package commands implements the landing command line.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/j2systems/landing/internal/config"
	"github.com/j2systems/landing/internal/dispatcher"
	"github.com/j2systems/landing/internal/logger"
)

var logLevel string

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "landing",
		Short:        "Contact form backend for the J2Systems landing page",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(serveCmd(), previewCmd(), relayCmd(), validateContentCmd())
	return root
}

// setup loads configuration and initializes the global logger.
func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Format: cfg.LogFormat,
	}); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	return cfg, logger.Get(), nil
}

func dispatcherConfig(m config.Mail) dispatcher.Config {
	return dispatcher.Config{
		FromAddress:   m.FromAddress,
		FromName:      m.FromName,
		ToAddress:     m.ToAddress,
		SubjectPrefix: m.SubjectPrefix,
		BrandName:     m.BrandName,
	}
}
