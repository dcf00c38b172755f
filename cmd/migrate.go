package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/booklinehq/bookline/internal/logging"
	"github.com/booklinehq/bookline/internal/store"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Long: `Apply or inspect the embedded schema migrations.

The target database comes from --database-url or the DATABASE_URL env var.`,
	}

	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL. Can also use DATABASE_URL env var.")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), databaseURL, func(ctx context.Context, m *store.Migrator) error {
				if err := m.Up(ctx); err != nil {
					return err
				}
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("database is at migration version %d\n", version)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the status of each migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), databaseURL, func(ctx context.Context, m *store.Migrator) error {
				return m.Status(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current migration version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), databaseURL, func(ctx context.Context, m *store.Migrator) error {
				version, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("%d\n", version)
				return nil
			})
		},
	})

	return cmd
}

// withMigrator opens the database, runs fn with a prepared migrator, and
// cleans up both.
func withMigrator(ctx context.Context, databaseURL string, fn func(context.Context, *store.Migrator) error) error {
	pool, err := openPool(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := store.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			logger.Error("failed to close migrator", logging.Err(err))
		}
	}()

	return fn(ctx, migrator)
}
