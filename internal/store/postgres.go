package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const connectionColumns = `id, tenant_id, access_token, refresh_token, calendar_id,
	token_expires_at, default_duration_minutes, buffer_minutes, booking_window_days,
	is_active, created_at, updated_at`

// PostgresStore is a ConnectionStore backed by a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ ConnectionStore = (*PostgresStore)(nil)

// NewPool opens a pgx pool for databaseURL and verifies the connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// NewPostgresStore creates a store on an existing pool. The caller keeps
// ownership of the pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// GetByTenant returns the active connection for a tenant, or (nil, nil) when
// none exists.
func (s *PostgresStore) GetByTenant(ctx context.Context, tenantID string) (*CalendarConnection, error) {
	query := `SELECT ` + connectionColumns + `
		FROM calendar_connections
		WHERE tenant_id = $1 AND is_active`

	conn, err := scanConnection(s.pool.QueryRow(ctx, query, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get connection: %w", err)
	}
	return conn, nil
}

// Upsert inserts the connection or replaces the existing row for the same
// tenant, reactivating it if it was disconnected.
func (s *PostgresStore) Upsert(ctx context.Context, conn *CalendarConnection) error {
	conn.ApplyDefaults()
	if conn.ID == "" {
		conn.ID = uuid.NewString()
	}

	query := `INSERT INTO calendar_connections (
			id, tenant_id, access_token, refresh_token, calendar_id,
			token_expires_at, default_duration_minutes, buffer_minutes, booking_window_days,
			is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		ON CONFLICT (tenant_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			calendar_id = EXCLUDED.calendar_id,
			token_expires_at = EXCLUDED.token_expires_at,
			default_duration_minutes = EXCLUDED.default_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			booking_window_days = EXCLUDED.booking_window_days,
			is_active = TRUE,
			updated_at = now()
		RETURNING id`

	err := s.pool.QueryRow(ctx, query,
		conn.ID, conn.TenantID, conn.AccessToken, nullableString(conn.RefreshToken),
		conn.CalendarID, nullableTime(conn.TokenExpiresAt),
		conn.DefaultDurationMinutes, conn.BufferMinutes, conn.BookingWindowDays,
	).Scan(&conn.ID)
	if err != nil {
		return fmt.Errorf("upsert connection: %w", err)
	}
	return nil
}

// UpdateToken persists a refreshed access token and expiry for a tenant.
func (s *PostgresStore) UpdateToken(ctx context.Context, tenantID, accessToken string, expiresAt time.Time) error {
	query := `UPDATE calendar_connections
		SET access_token = $2, token_expires_at = $3, updated_at = now()
		WHERE tenant_id = $1`

	tag, err := s.pool.Exec(ctx, query, tenantID, accessToken, nullableTime(expiresAt))
	if err != nil {
		return fmt.Errorf("update token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate marks the tenant's connection inactive and clears its
// credentials. The row itself is kept.
func (s *PostgresStore) Deactivate(ctx context.Context, tenantID string) error {
	query := `UPDATE calendar_connections
		SET is_active = FALSE, access_token = '', refresh_token = NULL,
			token_expires_at = NULL, updated_at = now()
		WHERE tenant_id = $1`

	tag, err := s.pool.Exec(ctx, query, tenantID)
	if err != nil {
		return fmt.Errorf("deactivate connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns all active connections ordered by tenant ID.
func (s *PostgresStore) ListActive(ctx context.Context) ([]CalendarConnection, error) {
	query := `SELECT ` + connectionColumns + `
		FROM calendar_connections
		WHERE is_active
		ORDER BY tenant_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	var out []CalendarConnection
	for rows.Next() {
		conn, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("list connections: %w", err)
		}
		out = append(out, *conn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return out, nil
}

func scanConnection(row pgx.Row) (*CalendarConnection, error) {
	var conn CalendarConnection
	var refreshToken *string
	var expiresAt *time.Time

	err := row.Scan(
		&conn.ID, &conn.TenantID, &conn.AccessToken, &refreshToken, &conn.CalendarID,
		&expiresAt, &conn.DefaultDurationMinutes, &conn.BufferMinutes, &conn.BookingWindowDays,
		&conn.IsActive, &conn.CreatedAt, &conn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refreshToken != nil {
		conn.RefreshToken = *refreshToken
	}
	if expiresAt != nil {
		conn.TokenExpiresAt = *expiresAt
	}
	return &conn, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
