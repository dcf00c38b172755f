package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetByTenant(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	conn, err := s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Nil(t, conn, "unknown tenant should yield no connection and no error")

	require.NoError(t, s.Upsert(ctx, &CalendarConnection{
		TenantID:    "tenant-1",
		AccessToken: "tok-1",
	}))

	conn, err = s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, "tenant-1", conn.TenantID)
	assert.Equal(t, "tok-1", conn.AccessToken)
	assert.True(t, conn.IsActive)

	// Mutating the returned copy must not leak into the store.
	conn.AccessToken = "mutated"
	again, err := s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", again.AccessToken)
}

func TestMemoryStoreUpsertDefaults(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	conn := &CalendarConnection{TenantID: "tenant-1", AccessToken: "tok"}
	require.NoError(t, s.Upsert(ctx, conn))
	assert.NotEmpty(t, conn.ID, "upsert should assign a row ID")

	stored, err := s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, DefaultCalendarID, stored.CalendarID)
	assert.Equal(t, DefaultDurationMinutes, stored.DefaultDurationMinutes)
	assert.Equal(t, DefaultBufferMinutes, stored.BufferMinutes)
	assert.Equal(t, DefaultBookingWindowDays, stored.BookingWindowDays)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestMemoryStoreUpsertReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := &CalendarConnection{TenantID: "tenant-1", AccessToken: "old"}
	require.NoError(t, s.Upsert(ctx, first))

	second := &CalendarConnection{
		TenantID:               "tenant-1",
		AccessToken:            "new",
		RefreshToken:           "refresh",
		DefaultDurationMinutes: 30,
	}
	require.NoError(t, s.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID, "row ID should survive an upsert")

	stored, err := s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "new", stored.AccessToken)
	assert.Equal(t, "refresh", stored.RefreshToken)
	assert.Equal(t, 30, stored.DefaultDurationMinutes)
}

func TestMemoryStoreUpsertReactivates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Upsert(ctx, &CalendarConnection{TenantID: "tenant-1", AccessToken: "tok"}))
	require.NoError(t, s.Deactivate(ctx, "tenant-1"))

	conn, err := s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Nil(t, conn, "deactivated connection should not be returned")

	require.NoError(t, s.Upsert(ctx, &CalendarConnection{TenantID: "tenant-1", AccessToken: "tok-2"}))

	conn, err = s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.True(t, conn.IsActive)
	assert.Equal(t, "tok-2", conn.AccessToken)
}

func TestMemoryStoreUpdateToken(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.UpdateToken(ctx, "missing", "tok", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Upsert(ctx, &CalendarConnection{
		TenantID:     "tenant-1",
		AccessToken:  "old",
		RefreshToken: "refresh",
	}))

	expiry := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.UpdateToken(ctx, "tenant-1", "new", expiry))

	conn, err := s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, "new", conn.AccessToken)
	assert.Equal(t, expiry, conn.TokenExpiresAt)
	assert.Equal(t, "refresh", conn.RefreshToken, "refresh token must be untouched")
}

func TestMemoryStoreDeactivate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	assert.ErrorIs(t, s.Deactivate(ctx, "missing"), ErrNotFound)

	require.NoError(t, s.Upsert(ctx, &CalendarConnection{
		TenantID:       "tenant-1",
		AccessToken:    "tok",
		RefreshToken:   "refresh",
		TokenExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, s.Deactivate(ctx, "tenant-1"))

	// The row survives with cleared credentials, so deactivating twice works.
	require.NoError(t, s.Deactivate(ctx, "tenant-1"))

	conn, err := s.GetByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Nil(t, conn)
}

func TestMemoryStoreListActive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, tenant := range []string{"tenant-c", "tenant-a", "tenant-b"} {
		require.NoError(t, s.Upsert(ctx, &CalendarConnection{TenantID: tenant, AccessToken: "tok"}))
	}
	require.NoError(t, s.Deactivate(ctx, "tenant-b"))

	conns, err := s.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, conns, 2)
	assert.Equal(t, "tenant-a", conns[0].TenantID)
	assert.Equal(t, "tenant-c", conns[1].TenantID)
}
