// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/mosaic/internal/platform/config"
	"github.com/taibuivan/mosaic/internal/platform/migration"
)

func (application *app) migrateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := config.LoadSection[config.Database]()
			if err != nil {
				return err
			}
			return migration.RunUp(database.DatabaseURL, database.MigrationPath, application.logger)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Long: `Roll back the most recent migrations.

Examples:
  # Undo the last migration
  mosaicctl migrate down

  # Undo the last three migrations
  mosaicctl migrate down --steps 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return fmt.Errorf("--steps must be at least 1, got %d", steps)
			}
			database, err := config.LoadSection[config.Database]()
			if err != nil {
				return err
			}
			return migration.RunDown(database.DatabaseURL, database.MigrationPath, steps, application.logger)
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := config.LoadSection[config.Database]()
			if err != nil {
				return err
			}

			current, dirty, err := migration.Version(database.DatabaseURL, database.MigrationPath, application.logger)
			if err != nil {
				return err
			}

			if dirty {
				_, err = fmt.Fprintf(application.stdout, "%d (dirty)\n", current)
				return err
			}
			_, err = fmt.Fprintf(application.stdout, "%d\n", current)
			return err
		},
	}

	command.AddCommand(up, down, version)
	return command
}
