package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/booklinehq/bookline/internal/store"
)

// resolveDatabaseURL returns the database URL from the flag value or the
// DATABASE_URL environment variable.
func resolveDatabaseURL(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("no database configured: set --database-url or the DATABASE_URL env var")
}

// openPool connects to the configured database. The caller owns the pool.
func openPool(ctx context.Context, flagValue string) (*pgxpool.Pool, error) {
	databaseURL, err := resolveDatabaseURL(flagValue)
	if err != nil {
		return nil, err
	}
	return store.NewPool(ctx, databaseURL)
}
