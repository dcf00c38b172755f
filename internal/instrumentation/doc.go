// Package instrumentation provides OpenTelemetry instrumentation for the
// bookline MCP server.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for HTTP requests, token refreshes, calendar
//     provider calls, and booking outcomes
//   - Distributed tracing for tool invocations and provider calls
//   - Prometheus metrics export via /metrics endpoint on a dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Server/HTTP Metrics:
//   - http_requests_total: Counter of HTTP requests by method, path, and status
//   - http_request_duration_seconds: Histogram of HTTP request durations
//   - active_sessions: Gauge of active MCP sessions
//
// Calendar Provider Metrics:
//   - calendar_api_operations_total: Counter of provider calls by operation and status
//   - calendar_api_operation_duration_seconds: Histogram of provider call durations
//
// OAuth Metrics:
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of tool execution durations
//
// Booking Metrics:
//   - bookings_total: Counter of booking attempts by outcome
//   - slots_offered: Histogram of how many open slots each availability search returned
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - MCP tool invocations (tool.<name>)
//   - Calendar provider calls (calendar.<operation>)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: bookline)
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "bookline",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	recorder := provider.Metrics()
//	recorder.RecordToolInvocation(ctx, "booking_find_slots", "success", time.Since(start))
//	recorder.RecordCalendarOperation(ctx, "free_busy", "success", time.Since(start))
package instrumentation
