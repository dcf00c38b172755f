package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod    = "method"
	attrPath      = "path"
	attrStatus    = "status"
	attrOperation = "operation"
	attrResult    = "result"
	attrOutcome   = "outcome"
	attrTool      = "tool"
	attrTenant    = "tenant_id"
)

// Metrics provides methods for recording observability metrics. All record
// methods are safe to call on a nil receiver, which disables recording.
type Metrics struct {
	// HTTP metrics
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram
	activeSessions      metric.Int64UpDownCounter

	// Calendar provider metrics
	calendarOperationsTotal   metric.Int64Counter
	calendarOperationDuration metric.Float64Histogram

	// OAuth metrics
	tokenRefreshTotal metric.Int64Counter

	// MCP tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram

	// Booking metrics
	bookingsTotal metric.Int64Counter
	slotsOffered  metric.Int64Histogram

	// detailedLabels controls whether per-tenant labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all instruments initialized.
// The detailedLabels parameter controls whether per-tenant labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.activeSessions, err = meter.Int64UpDownCounter(
		"active_sessions",
		metric.WithDescription("Number of active MCP sessions"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active_sessions gauge: %w", err)
	}

	m.calendarOperationsTotal, err = meter.Int64Counter(
		"calendar_api_operations_total",
		metric.WithDescription("Total number of calendar provider operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_api_operations_total counter: %w", err)
	}

	m.calendarOperationDuration, err = meter.Float64Histogram(
		"calendar_api_operation_duration_seconds",
		metric.WithDescription("Calendar provider operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar_api_operation_duration_seconds histogram: %w", err)
	}

	m.tokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	m.bookingsTotal, err = meter.Int64Counter(
		"bookings_total",
		metric.WithDescription("Total number of booking attempts by outcome"),
		metric.WithUnit("{booking}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bookings_total counter: %w", err)
	}

	m.slotsOffered, err = meter.Int64Histogram(
		"slots_offered",
		metric.WithDescription("Number of open slots returned per availability search"),
		metric.WithUnit("{slot}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 3, 4, 5, 6),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create slots_offered histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
// Pass the path through NormalizeMetricPath first to keep the label bounded.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m == nil || m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordCalendarOperation records a calendar provider call.
//
// Parameters:
//   - operation: Provider operation (free_busy, insert_event)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordCalendarOperation(ctx context.Context, operation, status string, duration time.Duration) {
	if m == nil || m.calendarOperationsTotal == nil || m.calendarOperationDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.calendarOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.calendarOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordTokenRefresh records an OAuth token refresh attempt. The tenant label
// is only added when detailed labels are enabled.
func (m *Metrics) RecordTokenRefresh(ctx context.Context, tenantID string, success bool) {
	if m == nil || m.tokenRefreshTotal == nil {
		return
	}

	result := RefreshResultFailure
	if success {
		result = RefreshResultSuccess
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrResult, result),
	}
	if m.detailedLabels && tenantID != "" {
		attrs = append(attrs, attribute.String(attrTenant, tenantID))
	}

	m.tokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status, and duration.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordToolInvocationWithTenant records an MCP tool invocation including the
// tenant it was made for. The tenant label is only added when detailed labels
// are enabled.
func (m *Metrics) RecordToolInvocationWithTenant(ctx context.Context, toolName, status, tenantID string, duration time.Duration) {
	if m == nil || m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if m.detailedLabels && tenantID != "" {
		attrs = append(attrs, attribute.String(attrTenant, tenantID))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordBooking records a booking attempt. Outcome should be one of the
// Outcome* constants.
func (m *Metrics) RecordBooking(ctx context.Context, tenantID, outcome string) {
	if m == nil || m.bookingsTotal == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrOutcome, outcome),
	}
	if m.detailedLabels && tenantID != "" {
		attrs = append(attrs, attribute.String(attrTenant, tenantID))
	}

	m.bookingsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordSlotsOffered records how many open slots an availability search
// returned.
func (m *Metrics) RecordSlotsOffered(ctx context.Context, tenantID string, count int) {
	if m == nil || m.slotsOffered == nil {
		return
	}

	var attrs []attribute.KeyValue
	if m.detailedLabels && tenantID != "" {
		attrs = append(attrs, attribute.String(attrTenant, tenantID))
	}

	m.slotsOffered.Record(ctx, int64(count), metric.WithAttributes(attrs...))
}

// IncrementActiveSessions increments the active sessions counter.
func (m *Metrics) IncrementActiveSessions(ctx context.Context) {
	if m == nil || m.activeSessions == nil {
		return
	}

	m.activeSessions.Add(ctx, 1)
}

// DecrementActiveSessions decrements the active sessions counter.
func (m *Metrics) DecrementActiveSessions(ctx context.Context) {
	if m == nil || m.activeSessions == nil {
		return
	}

	m.activeSessions.Add(ctx, -1)
}
