package calendar

import (
	"context"
	"time"
)

// API is the provider surface the booking core consumes.
type API interface {
	// FreeBusy returns the busy intervals for one calendar over
	// [from, to), sorted by start.
	FreeBusy(ctx context.Context, calendarID string, from, to time.Time) ([]BusyInterval, error)

	// InsertEvent creates an event and returns the provider's event id.
	InsertEvent(ctx context.Context, calendarID string, input EventInput) (string, error)
}
