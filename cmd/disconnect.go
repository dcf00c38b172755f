package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/booklinehq/bookline/internal/credentials"
	"github.com/booklinehq/bookline/internal/store"
)

func newDisconnectCmd() *cobra.Command {
	var (
		databaseURL string
		tenantID    string
	)

	cmd := &cobra.Command{
		Use:   "disconnect",
		Short: "Disconnect a tenant's calendar",
		Long: `Deactivate a tenant's calendar connection and clear its stored
credentials. The connection row is kept, so reconnecting later preserves
the tenant's scheduling settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			pool, err := openPool(ctx, databaseURL)
			if err != nil {
				return err
			}
			defer pool.Close()

			manager := credentials.NewManager(store.NewPostgresStore(pool), nil, logger)
			if err := manager.Disconnect(ctx, tenantID); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return fmt.Errorf("tenant %s has no calendar connection", tenantID)
				}
				return err
			}

			fmt.Printf("Calendar disconnected for tenant %s\n", tenantID)
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL. Can also use DATABASE_URL env var.")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "Tenant identifier to disconnect (required)")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}
