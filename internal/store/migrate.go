package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/booklinehq/bookline/internal/logging"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrator applies the embedded schema migrations with goose.
type Migrator struct {
	db *sql.DB
}

// NewMigrator prepares a migrator on top of an existing pool. The returned
// migrator owns a database/sql handle and must be closed; closing it does
// not close the pool.
func NewMigrator(pool *pgxpool.Pool, logger *slog.Logger) (*Migrator, error) {
	goose.SetBaseFS(migrations)
	goose.SetLogger(logging.NewGooseAdapter(logger))
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	return &Migrator{db: stdlib.OpenDBFromPool(pool)}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Version returns the currently applied migration version.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get migration version: %w", err)
	}
	return version, nil
}

// Status prints the per-migration status through the goose logger.
func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, "migrations"); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Close releases the migrator's database handle.
func (m *Migrator) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
