package calendar

import "time"

// BusyInterval is a provider-reported [Start, End) range during which
// the calendar is already occupied. Intervals are read-only input to
// availability resolution.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// EventInput carries the fields written when creating a booking event.
type EventInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time

	// TimeZone is an IANA zone name for the event times. When empty the
	// RFC 3339 offsets in Start/End stand on their own and the zone is
	// recorded as UTC.
	TimeZone string
}
