// Package server provides the MCP server context and the operational
// HTTP surface for the bookline backend.
//
// # Key Components
//
// ServerContext wires the shared dependencies of one server process: the
// tenant connection store, the credential manager that hands out
// refreshed per-tenant sessions, and the booking service the MCP tools
// dispatch into. It owns a lifecycle context that is cancelled on
// shutdown.
//
// MetricsServer exposes Prometheus metrics on a dedicated port, kept
// separate from the MCP transport. Because the MCP transport is stdio,
// this port doubles as the process's probe surface: HealthChecker
// registers /healthz, /readyz, and /healthz/detailed endpoints there,
// with an optional connection store ping in the readiness probe.
package server
