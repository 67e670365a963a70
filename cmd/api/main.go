// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

// Command api is the entry point for the Metaversitas HTTP API server.
//
// # Commands
//
//   - serve (default): run migrations and start the HTTP server.
//   - migrate up|down|version: manage the schema without serving traffic.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/config"
	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/constants"
)

func main() {
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	if err := newRootCommand(log).Execute(); err != nil {
		log.Error("startup failure", slog.Any("error", err))
		os.Exit(1)
	}
}

func newRootCommand(log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "metaversitas-api",
		Short:         "Session and authorization backend for the Metaversitas e-learning game",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), log)
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Apply pending migrations and start the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), log)
			},
		},
		newMigrateCommand(log),
	)

	return root
}

// loadConfig reads the environment and swaps in a debug logger when DEBUG is set.
func loadConfig(log *slog.Logger) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, log, err
	}

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.Bool("tls", cfg.TLSMode),
	)

	return cfg, log, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
}
