package server

import (
	"context"
	"testing"

	"github.com/booklinehq/bookline/internal/store"
)

func TestNewServerContext_RequiresStore(t *testing.T) {
	_, err := NewServerContext(context.Background(), Config{})
	if err == nil {
		t.Fatal("NewServerContext() with no store should fail")
	}
}

func TestNewServerContext_Defaults(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{
		Store: store.NewMemoryStore(),
	})
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.Booking() == nil {
		t.Error("Booking() = nil, want a default booking service")
	}
	if sc.Sessions() == nil {
		t.Error("Sessions() = nil, want a credential manager")
	}
	if sc.Store() == nil {
		t.Error("Store() = nil, want the configured store")
	}
	if sc.Logger() == nil {
		t.Error("Logger() = nil, want a default logger")
	}
	if sc.ReadOnly() {
		t.Error("ReadOnly() = true, want false by default")
	}
	if sc.Metrics() != nil {
		t.Error("Metrics() should be nil when not configured")
	}
}

func TestServerContext_Shutdown(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{
		Store: store.NewMemoryStore(),
	})
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}

	if sc.IsShutdown() {
		t.Fatal("IsShutdown() = true before Shutdown()")
	}

	if err := sc.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !sc.IsShutdown() {
		t.Error("IsShutdown() = false after Shutdown()")
	}

	select {
	case <-sc.Context().Done():
	default:
		t.Error("Context() not cancelled after Shutdown()")
	}

	// Shutdown is idempotent.
	if err := sc.Shutdown(); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
}

func TestServerContext_ReadOnly(t *testing.T) {
	sc, err := NewServerContext(context.Background(), Config{
		Store:    store.NewMemoryStore(),
		ReadOnly: true,
	})
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	if !sc.ReadOnly() {
		t.Error("ReadOnly() = false, want true")
	}
}
