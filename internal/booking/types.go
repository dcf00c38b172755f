package booking

import (
	"fmt"
	"time"
)

// ErrorKind classifies booking failures for the dialog layer.
// A live voice agent only needs these three cases to pick a spoken
// fallback; finer-grained OAuth or provider failure modes are
// deliberately collapsed before they reach this boundary.
type ErrorKind string

const (
	// ErrorNotConnected means the tenant has no working calendar
	// connection: no active row, or a token refresh failed. The two are
	// indistinguishable on purpose.
	ErrorNotConnected ErrorKind = "not_connected"

	// ErrorProviderAPI means the calendar provider rejected or failed a
	// busy-interval query or an event insert.
	ErrorProviderAPI ErrorKind = "provider_api_error"

	// ErrorInvalidRequest means the booking request itself was
	// malformed, typically an unparseable date or time of day.
	ErrorInvalidRequest ErrorKind = "invalid_request"
)

// BookingRequest carries everything needed to book one appointment.
type BookingRequest struct {
	TenantID string

	// PreferredDate is the calendar day in "2006-01-02" form.
	PreferredDate string

	// PreferredTime is the time of day, e.g. "14:00" or "2:00 PM".
	PreferredTime string

	// DurationMinutes overrides the tenant default for slot search only.
	// The created event always uses the tenant's default duration.
	DurationMinutes int

	CustomerName  string
	CustomerPhone string
	ServiceType   string
	Notes         string
}

// BookingResult reports the outcome of CreateEvent. It is a result
// value, not an error: CreateEvent never fails with a Go error so the
// caller can always speak something sensible to the end user.
type BookingResult struct {
	Success   bool
	EventID   string
	Formatted string

	ErrorKind   ErrorKind
	ErrorDetail string
}

// SlotList is the outcome of a successful availability search.
// A nil *SlotList means "tenant not connected". A non-nil SlotList with
// zero Slots means the search ran and found nothing; Formatted then
// carries a fixed fallback sentence so voice playback never receives an
// empty utterance.
type SlotList struct {
	// Slots holds candidate start instants in chronological order.
	Slots []time.Time

	// Formatted is the spoken rendering of Slots, candidates joined
	// with ", or ".
	Formatted string
}

// ISOSlots returns the candidate starts as RFC 3339 strings, the shape
// handed to tool callers over the wire.
func (l *SlotList) ISOSlots() []string {
	out := make([]string, len(l.Slots))
	for i, s := range l.Slots {
		out[i] = s.Format(time.RFC3339)
	}
	return out
}

// ProviderError wraps a failed calendar provider call.
type ProviderError struct {
	// Op names the provider operation, e.g. "free_busy" or "insert_event".
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("calendar provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RequestError reports an unusable field in a booking request.
type RequestError struct {
	Field  string
	Reason string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
