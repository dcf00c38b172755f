package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory ConnectionStore used by tests and by the
// server when no database is configured. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	conns map[string]*CalendarConnection // keyed by tenant ID
	now   func() time.Time
}

var _ ConnectionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conns: make(map[string]*CalendarConnection),
		now:   time.Now,
	}
}

// GetByTenant returns a copy of the tenant's active connection, or (nil, nil)
// when the tenant has none.
func (s *MemoryStore) GetByTenant(_ context.Context, tenantID string) (*CalendarConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conn, ok := s.conns[tenantID]
	if !ok || !conn.IsActive {
		return nil, nil
	}
	out := *conn
	return &out, nil
}

// Upsert stores the connection, replacing any previous one for the same
// tenant while keeping the original row ID and creation time.
func (s *MemoryStore) Upsert(_ context.Context, conn *CalendarConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn.ApplyDefaults()
	now := s.now()

	stored := *conn
	if existing, ok := s.conns[conn.TenantID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = uuid.NewString()
		}
		stored.CreatedAt = now
	}
	stored.IsActive = true
	stored.UpdatedAt = now

	s.conns[conn.TenantID] = &stored
	conn.ID = stored.ID
	return nil
}

// UpdateToken replaces the tenant's access token and expiry.
func (s *MemoryStore) UpdateToken(_ context.Context, tenantID, accessToken string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[tenantID]
	if !ok {
		return ErrNotFound
	}
	conn.AccessToken = accessToken
	conn.TokenExpiresAt = expiresAt
	conn.UpdatedAt = s.now()
	return nil
}

// Deactivate marks the tenant's connection inactive and clears its
// credentials. The entry itself is kept.
func (s *MemoryStore) Deactivate(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.conns[tenantID]
	if !ok {
		return ErrNotFound
	}
	conn.IsActive = false
	conn.AccessToken = ""
	conn.RefreshToken = ""
	conn.TokenExpiresAt = time.Time{}
	conn.UpdatedAt = s.now()
	return nil
}

// ListActive returns copies of all active connections sorted by tenant ID.
func (s *MemoryStore) ListActive(_ context.Context) ([]CalendarConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []CalendarConnection
	for _, conn := range s.conns {
		if conn.IsActive {
			out = append(out, *conn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TenantID < out[j].TenantID })
	return out, nil
}
