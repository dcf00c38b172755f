package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/booklinehq/bookline/internal/booking"
	"github.com/booklinehq/bookline/internal/credentials"
	"github.com/booklinehq/bookline/internal/instrumentation"
	"github.com/booklinehq/bookline/internal/store"
)

// Config assembles the dependencies of a ServerContext.
type Config struct {
	// Store persists tenant calendar connections. Required.
	Store store.ConnectionStore

	// Refresher renews expired access tokens. When nil, tenants whose
	// tokens have expired simply appear disconnected.
	Refresher credentials.TokenRefresher

	// Logger receives all server logs. Defaults to slog.Default().
	Logger *slog.Logger

	// ReadOnly hides tools that write to calendars.
	ReadOnly bool

	// Metrics records tool and provider activity. May be nil.
	Metrics *instrumentation.Metrics

	// AuditLogger emits structured audit events for tool calls. May be nil.
	AuditLogger *instrumentation.AuditLogger

	// Booking replaces the Google-backed booking service. Tests use this
	// to inject a fake calendar provider.
	Booking *booking.Service
}

// ServerContext holds the shared state for one MCP server process:
// the connection store, the per-tenant session manager, and the booking
// service the tools dispatch into.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	store       store.ConnectionStore
	sessions    *credentials.Manager
	booking     *booking.Service
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	readOnly    bool

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext wires a server context from the given configuration.
func NewServerContext(ctx context.Context, cfg Config) (*ServerContext, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("connection store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	sessions := credentials.NewManagerWithMetrics(cfg.Store, cfg.Refresher, logger, cfg.Metrics)

	bookingSvc := cfg.Booking
	if bookingSvc == nil {
		bookingSvc = booking.NewService(sessions, logger)
	}

	return &ServerContext{
		ctx:         shutdownCtx,
		cancel:      cancel,
		logger:      logger,
		store:       cfg.Store,
		sessions:    sessions,
		booking:     bookingSvc,
		metrics:     cfg.Metrics,
		auditLogger: cfg.AuditLogger,
		readOnly:    cfg.ReadOnly,
	}, nil
}

// Context returns the server's lifecycle context. It is cancelled on
// Shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Logger returns the server logger.
func (sc *ServerContext) Logger() *slog.Logger {
	return sc.logger
}

// Store returns the connection store.
func (sc *ServerContext) Store() store.ConnectionStore {
	return sc.store
}

// Sessions returns the per-tenant credential manager.
func (sc *ServerContext) Sessions() *credentials.Manager {
	return sc.sessions
}

// Booking returns the booking service.
func (sc *ServerContext) Booking() *booking.Service {
	return sc.booking
}

// Metrics returns the metrics recorder. May be nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	return sc.metrics
}

// AuditLogger returns the audit logger. May be nil.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	return sc.auditLogger
}

// ReadOnly reports whether write tools are disabled.
func (sc *ServerContext) ReadOnly() bool {
	return sc.readOnly
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
