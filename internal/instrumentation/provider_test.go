package instrumentation

import (
	"context"
	"testing"
	"time"
)

func TestNewProvider_Disabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName: "test-service",
		Enabled:     false,
	})
	if err != nil {
		t.Fatalf("failed to create disabled provider: %v", err)
	}

	if provider.Enabled() {
		t.Error("provider should report disabled")
	}
	if provider.Metrics() == nil {
		t.Error("disabled provider should still return a metrics recorder")
	}
	if provider.Tracer("test") == nil {
		t.Error("disabled provider should return a no-op tracer")
	}
	if err := provider.Shutdown(ctx); err != nil {
		t.Errorf("shutdown of disabled provider should be a no-op, got %v", err)
	}
}

func TestNewProvider_Prometheus(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	defer func() { _ = provider.Shutdown(ctx) }()

	if !provider.Enabled() {
		t.Error("provider should report enabled")
	}
	if provider.Metrics() == nil {
		t.Error("expected a metrics recorder")
	}
	if provider.Tracer("test") == nil {
		t.Error("expected a tracer")
	}
}

func TestNewProvider_UnsupportedMetricsExporter(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		Enabled:         true,
		MetricsExporter: "statsd",
		TracingExporter: ExporterNone,
	})
	if err == nil {
		t.Fatal("expected an error for an unsupported metrics exporter")
	}
}

func TestNewProvider_OTLPWithoutEndpoint(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		Enabled:         true,
		MetricsExporter: ExporterOTLP,
		TracingExporter: ExporterNone,
	})
	if err == nil {
		t.Fatal("expected an error when the OTLP endpoint is missing")
	}
}
