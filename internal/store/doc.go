// Package store persists per-tenant calendar connections.
//
// A connection holds the OAuth credentials and scheduling preferences for one
// tenant. Two implementations are provided: PostgresStore for production,
// backed by a pgx connection pool, and MemoryStore for tests and for running
// the server without a database. Disconnecting a tenant never deletes the
// row; Deactivate clears the credentials and marks the connection inactive so
// the booking history stays attributable.
//
// Schema migrations ship embedded in the binary and are applied with goose:
//
//	pool, err := store.NewPool(ctx, databaseURL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	migrator, err := store.NewMigrator(pool, slog.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer migrator.Close()
//
//	if err := migrator.Up(ctx); err != nil {
//	    log.Fatal(err)
//	}
package store
