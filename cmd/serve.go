package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/booklinehq/bookline/internal/credentials"
	"github.com/booklinehq/bookline/internal/instrumentation"
	"github.com/booklinehq/bookline/internal/logging"
	"github.com/booklinehq/bookline/internal/resources"
	"github.com/booklinehq/bookline/internal/server"
	"github.com/booklinehq/bookline/internal/store"
	"github.com/booklinehq/bookline/internal/tools/booking_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// serveOptions carries the resolved serve configuration.
type serveOptions struct {
	DatabaseURL string
	ReadOnly    bool
	Metrics     MetricsConfig
}

func newServeCmd() *cobra.Command {
	var (
		databaseURL string
		readOnly    bool
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server that gives AI voice
agents booking tools over stdio.

Storage:
  With --database-url (or DATABASE_URL), tenant connections are stored in
  PostgreSQL. Without it the server falls back to an in-memory store that
  is lost on restart; use that only for local development.

Token Refresh:
  GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET enable automatic access token
  refresh. Without them, tenants appear disconnected once their access
  tokens expire (~1 hour).

Safety Mode:
  Use --read-only to hide the event creation tool and expose only
  availability and status lookups.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}

			// Environment variables fill in metrics settings when the flags
			// were not given explicitly.
			if !cmd.Flags().Changed("metrics-enabled") {
				if v := os.Getenv("METRICS_ENABLED"); v != "" {
					if parsed, err := strconv.ParseBool(v); err == nil {
						metricsEnabled = parsed
					}
				}
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					metricsAddr = addr
				}
			}

			return runServe(serveOptions{
				DatabaseURL: databaseURL,
				ReadOnly:    readOnly,
				Metrics: MetricsConfig{
					Enabled: metricsEnabled,
					Addr:    metricsAddr,
				},
			})
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL. Can also use DATABASE_URL env var. Falls back to an in-memory store when unset.")
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Disable the event creation tool. The server only answers availability and status queries.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(opts serveOptions) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	// Open the connection store. PostgreSQL when configured, otherwise an
	// in-memory store for local development.
	var (
		connStore store.ConnectionStore
		pingStore func(context.Context) error
	)
	if opts.DatabaseURL != "" {
		pool, err := store.NewPool(shutdownCtx, opts.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer pool.Close()
		connStore = store.NewPostgresStore(pool)
		pingStore = pool.Ping
		logger.Info("using PostgreSQL connection store")
	} else {
		connStore = store.NewMemoryStore()
		logger.Warn("no database configured, using in-memory store (connections are lost on restart)")
	}

	// Token refresh needs Google OAuth client credentials. Without them the
	// server still runs, but tenants with expired tokens appear disconnected.
	var refresher credentials.TokenRefresher
	if oauthConfig, err := credentials.GoogleOAuthConfig(); err != nil {
		logger.Warn("token refresh disabled", logging.Err(err))
	} else {
		refresher = credentials.NewOAuthRefresher(oauthConfig)
	}

	serverConfig := server.Config{
		Store:     connStore,
		Refresher: refresher,
		Logger:    logger,
		ReadOnly:  opts.ReadOnly,
	}
	if provider.Enabled() {
		serverConfig.Metrics = provider.Metrics()
		serverConfig.AuditLogger = instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging)
	}

	serverContext, err := server.NewServerContext(shutdownCtx, serverConfig)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	// Start the metrics server. With a stdio MCP transport this port is the
	// only HTTP surface the process has, so the health endpoints live here.
	var metricsServer *server.MetricsServer
	if opts.Metrics.Enabled && provider.Enabled() {
		healthChecker := server.NewHealthCheckerWithPing(serverContext, pingStore)

		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    opts.Metrics.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
			Health:                  healthChecker,
			Metrics:                 provider.Metrics(),
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		// Wait for metrics server to be ready or fail
		select {
		case <-metricsReady:
			logger.Info("metrics server started", "addr", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("error during metrics server shutdown", logging.Err(err))
			}
		}()
	}

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("bookline", version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, false), // Subscribe and listChanged
	)

	if opts.ReadOnly {
		logger.Info("starting server in read-only mode, event creation is disabled")
	} else {
		logger.Info("starting server with booking enabled")
	}

	// Register all tools and resources
	if err := registerAllTools(mcpSrv, serverContext, opts.ReadOnly); err != nil {
		return err
	}

	return runStdioServer(shutdownCtx, mcpSrv, provider.Metrics())
}

func runStdioServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, metrics *instrumentation.Metrics) error {
	// Stdio carries exactly one client session for the lifetime of the process.
	metrics.IncrementActiveSessions(ctx)
	defer metrics.DecrementActiveSessions(context.Background())

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	select {
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return nil
	}
}

// registerAllTools registers all MCP tools and resources
func registerAllTools(mcpSrv *mcpserver.MCPServer, ctx *server.ServerContext, readOnly bool) error {
	// Define all tool registrations
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Booking",
			register: func() error {
				return booking_tools.RegisterBookingTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Connection Resources",
			register: func() error {
				return resources.RegisterConnectionResources(mcpSrv, ctx)
			},
		},
	}

	// Register all tools
	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s: %w", reg.name, err)
		}
	}

	return nil
}
