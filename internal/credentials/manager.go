package credentials

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/booklinehq/bookline/internal/instrumentation"
	"github.com/booklinehq/bookline/internal/logging"
	"github.com/booklinehq/bookline/internal/store"
)

// DefaultExpiryMargin is how close to expiry an access token may get before
// the manager refreshes it.
const DefaultExpiryMargin = 60 * time.Second

// Manager hands out per-tenant sessions backed by the connection store.
type Manager struct {
	store     store.ConnectionStore
	refresher TokenRefresher
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
	margin    time.Duration
	now       func() time.Time
}

// NewManager creates a manager with the default expiry margin.
func NewManager(connStore store.ConnectionStore, refresher TokenRefresher, logger *slog.Logger) *Manager {
	return NewManagerWithMetrics(connStore, refresher, logger, nil)
}

// NewManagerWithMetrics creates a manager that records token refresh
// outcomes. A nil metrics value disables recording.
func NewManagerWithMetrics(connStore store.ConnectionStore, refresher TokenRefresher, logger *slog.Logger, metrics *instrumentation.Metrics) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:     connStore,
		refresher: refresher,
		logger:    logger,
		metrics:   metrics,
		margin:    DefaultExpiryMargin,
		now:       time.Now,
	}
}

// GetSession returns a ready-to-use session for the tenant, or (nil, nil)
// when the tenant has no usable connection. That covers a tenant that was
// never connected, a deactivated connection, an expired token with no
// refresh token, and a failed refresh. The error return is reserved for
// store failures.
func (m *Manager) GetSession(ctx context.Context, tenantID string) (*Session, error) {
	conn, err := m.store.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load connection: %w", err)
	}
	if conn == nil {
		return nil, nil
	}

	if m.needsRefresh(conn) {
		if conn.RefreshToken == "" {
			m.logger.Warn("access token expired and no refresh token stored",
				logging.TenantID(tenantID))
			return nil, nil
		}
		if m.refresher == nil {
			m.logger.Warn("access token expired and no token refresher configured",
				logging.TenantID(tenantID))
			return nil, nil
		}

		token, err := m.refresher.Refresh(ctx, conn.RefreshToken)
		m.metrics.RecordTokenRefresh(ctx, tenantID, err == nil)
		if err != nil {
			m.logger.Error("token refresh failed",
				logging.TenantID(tenantID),
				logging.Err(err))
			return nil, nil
		}

		conn.AccessToken = token.AccessToken
		conn.TokenExpiresAt = token.Expiry

		// The refreshed token works for this request even when it cannot
		// be persisted; the next request will refresh again.
		if err := m.store.UpdateToken(ctx, tenantID, token.AccessToken, token.Expiry); err != nil {
			m.logger.Error("failed to persist refreshed token",
				logging.TenantID(tenantID),
				logging.Err(err))
		} else {
			m.logger.Debug("access token refreshed",
				logging.TenantID(tenantID))
		}
	}

	return sessionFromConnection(conn), nil
}

// Connect stores a tenant's calendar connection, replacing any previous one
// for the same tenant.
func (m *Manager) Connect(ctx context.Context, conn *store.CalendarConnection) error {
	if err := m.store.Upsert(ctx, conn); err != nil {
		return fmt.Errorf("store connection: %w", err)
	}
	m.logger.Info("calendar connected",
		logging.TenantID(conn.TenantID),
		logging.CalendarID(conn.CalendarID))
	return nil
}

// Disconnect deactivates a tenant's connection and clears its credentials.
// The stored row is kept.
func (m *Manager) Disconnect(ctx context.Context, tenantID string) error {
	if err := m.store.Deactivate(ctx, tenantID); err != nil {
		return fmt.Errorf("deactivate connection: %w", err)
	}
	m.logger.Info("calendar disconnected", logging.TenantID(tenantID))
	return nil
}

// needsRefresh reports whether the access token is missing, expired, or
// expires within the margin. A zero expiry means the expiry is unknown and
// the token is assumed valid.
func (m *Manager) needsRefresh(conn *store.CalendarConnection) bool {
	if conn.AccessToken == "" {
		return true
	}
	if conn.TokenExpiresAt.IsZero() {
		return false
	}
	return !conn.TokenExpiresAt.After(m.now().Add(m.margin))
}

func sessionFromConnection(conn *store.CalendarConnection) *Session {
	return &Session{
		TenantID:               conn.TenantID,
		CalendarID:             conn.CalendarID,
		AccessToken:            conn.AccessToken,
		DefaultDurationMinutes: conn.DefaultDurationMinutes,
		BufferMinutes:          conn.BufferMinutes,
		BookingWindowDays:      conn.BookingWindowDays,
	}
}
