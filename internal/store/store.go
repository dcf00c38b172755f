package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by write operations that target a tenant without a
// stored connection.
var ErrNotFound = errors.New("calendar connection not found")

// ConnectionStore persists per-tenant calendar connections.
//
// Reads return (nil, nil) when the tenant has no active connection, so
// callers treat "never connected" and "disconnected" identically without
// inspecting errors.
type ConnectionStore interface {
	// GetByTenant returns the active connection for a tenant, or (nil, nil)
	// when none exists.
	GetByTenant(ctx context.Context, tenantID string) (*CalendarConnection, error)

	// Upsert inserts the connection or, when the tenant already has one,
	// replaces its credentials and settings in place. The connection is
	// activated in both cases and conn.ID is set to the stored row's ID.
	Upsert(ctx context.Context, conn *CalendarConnection) error

	// UpdateToken persists a refreshed access token and its expiry without
	// touching any other field.
	UpdateToken(ctx context.Context, tenantID, accessToken string, expiresAt time.Time) error

	// Deactivate disconnects a tenant. The row is kept but marked inactive
	// and its credentials are cleared.
	Deactivate(ctx context.Context, tenantID string) error

	// ListActive returns all active connections ordered by tenant ID.
	ListActive(ctx context.Context) ([]CalendarConnection, error)
}
