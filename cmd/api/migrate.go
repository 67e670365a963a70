// Copyright (c) 2026 Metaversitas. All rights reserved.
// Author: Metaversitas Team

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Metaversitas/Metaversitas-2.0/internal/platform/migration"
)

func newMigrateCommand(log *slog.Logger) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	var steps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the given number of migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			if steps < 1 {
				return fmt.Errorf("migrate down: --steps must be at least 1, got %d", steps)
			}
			return withRunner(log, func(runner *migration.Runner) error {
				return runner.Steps(-steps)
			})
		},
	}
	downCmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			RunE: func(_ *cobra.Command, _ []string) error {
				return withRunner(log, (*migration.Runner).Up)
			},
		},
		downCmd,
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withRunner(log, func(runner *migration.Runner) error {
					version, dirty, err := runner.Version()
					if err != nil {
						return err
					}
					cmd.Printf("version=%d dirty=%t\n", version, dirty)
					return nil
				})
			},
		},
	)

	return migrateCmd
}

func withRunner(log *slog.Logger, run func(*migration.Runner) error) error {
	cfg, log, err := loadConfig(log)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	runner, err := migration.Open(cfg.DatabaseURL, cfg.MigrationPath, log)
	if err != nil {
		return err
	}
	defer runner.Close()

	return run(runner)
}
