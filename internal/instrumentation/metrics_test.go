package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, detailedLabels bool) *Provider {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
		DetailedLabels:  detailedLabels,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	return provider
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordHTTPRequest(ctx, "GET", "/metrics", 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "GET", "/readyz", 503, 50*time.Millisecond)
}

func TestMetrics_RecordCalendarOperation(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.RecordCalendarOperation(ctx, OperationFreeBusy, StatusSuccess, 200*time.Millisecond)
	metrics.RecordCalendarOperation(ctx, OperationInsertEvent, StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordTokenRefresh(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic; tenant label is dropped without detailed labels
	metrics.RecordTokenRefresh(ctx, "tenant-1", true)
	metrics.RecordTokenRefresh(ctx, "tenant-1", false)
}

func TestMetrics_RecordTokenRefresh_DetailedLabels(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, true).Metrics()

	// Should not panic with the tenant label included
	metrics.RecordTokenRefresh(ctx, "tenant-1", true)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.RecordToolInvocation(ctx, "booking_find_slots", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "booking_create_event", StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordToolInvocationWithTenant(t *testing.T) {
	ctx := context.Background()

	for _, detailed := range []bool{false, true} {
		metrics := newTestProvider(t, detailed).Metrics()

		// Should not panic in either label mode
		metrics.RecordToolInvocationWithTenant(ctx, "booking_find_slots", StatusSuccess, "tenant-1", 100*time.Millisecond)
	}
}

func TestMetrics_RecordBooking(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.RecordBooking(ctx, "tenant-1", OutcomeSuccess)
	metrics.RecordBooking(ctx, "tenant-1", OutcomeNotConnected)
	metrics.RecordBooking(ctx, "tenant-1", OutcomeProviderError)
	metrics.RecordBooking(ctx, "tenant-1", OutcomeInvalidRequest)
}

func TestMetrics_RecordSlotsOffered(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.RecordSlotsOffered(ctx, "tenant-1", 0)
	metrics.RecordSlotsOffered(ctx, "tenant-1", 6)
}

func TestMetrics_ActiveSessions(t *testing.T) {
	ctx := context.Background()
	metrics := newTestProvider(t, false).Metrics()

	// Should not panic
	metrics.IncrementActiveSessions(ctx)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}

func TestMetrics_NoOp_WhenDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil even when disabled")
	}

	// All of these should not panic with nil underlying instruments
	metrics.RecordHTTPRequest(ctx, "GET", "/metrics", 200, 100*time.Millisecond)
	metrics.RecordCalendarOperation(ctx, OperationFreeBusy, StatusSuccess, 200*time.Millisecond)
	metrics.RecordTokenRefresh(ctx, "tenant-1", true)
	metrics.RecordToolInvocation(ctx, "test_tool", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocationWithTenant(ctx, "test_tool", StatusSuccess, "tenant-1", 100*time.Millisecond)
	metrics.RecordBooking(ctx, "tenant-1", OutcomeSuccess)
	metrics.RecordSlotsOffered(ctx, "tenant-1", 3)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}

func TestMetrics_NilReceiver(t *testing.T) {
	ctx := context.Background()

	var metrics *Metrics

	// A nil recorder disables recording without panicking
	metrics.RecordHTTPRequest(ctx, "GET", "/metrics", 200, time.Millisecond)
	metrics.RecordCalendarOperation(ctx, OperationFreeBusy, StatusSuccess, time.Millisecond)
	metrics.RecordTokenRefresh(ctx, "tenant-1", false)
	metrics.RecordToolInvocation(ctx, "test_tool", StatusSuccess, time.Millisecond)
	metrics.RecordToolInvocationWithTenant(ctx, "test_tool", StatusSuccess, "tenant-1", time.Millisecond)
	metrics.RecordBooking(ctx, "tenant-1", OutcomeSuccess)
	metrics.RecordSlotsOffered(ctx, "tenant-1", 1)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}
