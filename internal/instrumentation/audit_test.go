package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

const (
	testTenant       = "tenant-1"
	testCustomer     = "+15551234567"
	testToolSlots    = "booking_find_slots"
	testToolBook     = "booking_create_event"
	testEventID      = "evt_abc123"
	testErrorMessage = "calendar provider insert_event failed"
)

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation(testToolSlots)

	if ti.Tool != testToolSlots {
		t.Errorf("Tool = %q, want %q", ti.Tool, testToolSlots)
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}

	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("Success should be true")
	}
	if ti.Duration < 0 {
		t.Error("Duration should not be negative")
	}
	if ti.Error != "" {
		t.Errorf("Error should be empty, got %q", ti.Error)
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation(testToolBook)
	err := errors.New(testErrorMessage)

	ti.CompleteWithError(err)

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Error != testErrorMessage {
		t.Errorf("Error = %q, want %q", ti.Error, testErrorMessage)
	}
}

func TestToolInvocation_Builders(t *testing.T) {
	ti := NewToolInvocation(testToolBook).
		WithTenant(testTenant).
		WithOperation(OperationInsertEvent).
		WithCustomer(testCustomer).
		WithEvent(testEventID)

	if ti.TenantID != testTenant {
		t.Errorf("TenantID = %q, want %q", ti.TenantID, testTenant)
	}
	if ti.Operation != OperationInsertEvent {
		t.Errorf("Operation = %q, want %q", ti.Operation, OperationInsertEvent)
	}
	if ti.CustomerContact != testCustomer {
		t.Errorf("CustomerContact = %q, want %q", ti.CustomerContact, testCustomer)
	}
	if ti.EventID != testEventID {
		t.Errorf("EventID = %q, want %q", ti.EventID, testEventID)
	}
}

func TestToolInvocation_Status(t *testing.T) {
	ti := NewToolInvocation(testToolSlots)

	ti.Complete(true, nil)
	if ti.Status() != StatusSuccess {
		t.Errorf("Status() = %q, want %q", ti.Status(), StatusSuccess)
	}

	ti.Complete(false, nil)
	if ti.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", ti.Status(), StatusError)
	}
}

func TestToolInvocation_LogAttrsAnonymizesCustomer(t *testing.T) {
	ti := NewToolInvocation(testToolBook).
		WithTenant(testTenant).
		WithCustomer(testCustomer).
		CompleteSuccess()

	for _, attr := range ti.LogAttrs() {
		if attr.Key == "customer" {
			t.Error("LogAttrs must not contain the raw customer contact")
		}
		if attr.Key == "customer_hash" && strings.Contains(attr.Value.String(), testCustomer) {
			t.Error("customer hash must not contain the raw contact")
		}
	}
}

func TestToolInvocation_LogAuditAttrsIncludesCustomer(t *testing.T) {
	ti := NewToolInvocation(testToolBook).
		WithCustomer(testCustomer).
		CompleteSuccess()

	found := false
	for _, attr := range ti.LogAuditAttrs() {
		if attr.Key == "customer" && attr.Value.String() == testCustomer {
			found = true
		}
	}
	if !found {
		t.Error("LogAuditAttrs should include the raw customer contact")
	}
}

func TestAuditLogger_LogToolInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLogger(logger)
	al.LogToolInvocation(NewToolInvocation(testToolSlots).
		WithTenant(testTenant).
		WithCustomer(testCustomer).
		CompleteSuccess())

	out := buf.String()
	if !strings.Contains(out, "tool_executed") {
		t.Errorf("expected tool_executed message, got %q", out)
	}
	if strings.Contains(out, testCustomer) {
		t.Error("default audit logging must not leak raw customer contact")
	}
}

func TestAuditLogger_LogToolInvocationWithPII(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true, IncludePII: true})
	al.LogToolInvocation(NewToolInvocation(testToolBook).
		WithCustomer(testCustomer).
		CompleteSuccess())

	if !strings.Contains(buf.String(), testCustomer) {
		t.Error("PII-enabled audit logging should include the raw customer contact")
	}
}

func TestAuditLogger_FailureLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLogger(logger)
	al.LogToolInvocation(NewToolInvocation(testToolBook).
		CompleteWithError(errors.New(testErrorMessage)))

	out := buf.String()
	if !strings.Contains(out, "tool_failed") {
		t.Errorf("expected tool_failed message, got %q", out)
	}
	if !strings.Contains(out, "WARN") {
		t.Errorf("expected WARN level, got %q", out)
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: false})
	al.LogToolInvocation(NewToolInvocation(testToolSlots).CompleteSuccess())
	al.LogToolAudit(NewToolInvocation(testToolSlots).CompleteSuccess())

	if buf.Len() != 0 {
		t.Errorf("disabled audit logger should write nothing, got %q", buf.String())
	}
}
