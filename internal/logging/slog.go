package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation    = "operation"
	KeyTenantID     = "tenant_id"
	KeyCalendarID   = "calendar_id"
	KeyEventID      = "event_id"
	KeyTool         = "tool"
	KeyDuration     = "duration"
	KeyStatus       = "status"
	KeyError        = "error"
	KeyCustomerHash = "customer_hash"
)

// Status values for consistent logging.
// Note: These are intentionally duplicated from instrumentation package
// to avoid circular dependencies (instrumentation imports logging).
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// WithTool returns a logger with the tool attribute set.
func WithTool(logger *slog.Logger, tool string) *slog.Logger {
	return logger.With(slog.String(KeyTool, tool))
}

// WithTenant returns a logger with the tenant attribute set.
func WithTenant(logger *slog.Logger, tenantID string) *slog.Logger {
	return logger.With(slog.String(KeyTenantID, tenantID))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// TenantID returns a slog attribute for the tenant identifier.
func TenantID(tenantID string) slog.Attr {
	return slog.String(KeyTenantID, tenantID)
}

// CalendarID returns a slog attribute for the provider calendar id.
func CalendarID(calendarID string) slog.Attr {
	return slog.String(KeyCalendarID, calendarID)
}

// EventID returns a slog attribute for a provider event id.
func EventID(eventID string) slog.Attr {
	return slog.String(KeyEventID, eventID)
}

// Tool returns a slog attribute for the tool name.
func Tool(tool string) slog.Attr {
	return slog.String(KeyTool, tool)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from output.
// This allows safely passing Err(maybeNilErr) without adding empty attributes.
//
// Usage:
//
//	logger.Info("operation", logging.Err(err))  // Safe even if err is nil
func Err(err error) slog.Attr {
	if err == nil {
		// Return an empty Group that slog will omit from output
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// AnonymizeCustomer returns a hashed handle for a customer contact
// detail (name or phone) so bookings can be correlated in logs without
// recording PII.
func AnonymizeCustomer(contact string) string {
	if contact == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(contact))
	return "customer:" + hex.EncodeToString(hash[:8])
}

// CustomerHash returns a slog attribute with the anonymized customer contact.
//
// Usage:
//
//	logger.Info("appointment booked", logging.CustomerHash(req.CustomerPhone))
func CustomerHash(contact string) slog.Attr {
	return slog.String(KeyCustomerHash, AnonymizeCustomer(contact))
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content,
// as even partial token prefixes can aid attacks.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
