package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/booklinehq/bookline/internal/calendar"
	"github.com/booklinehq/bookline/internal/logging"
)

// Business hours and search bounds for candidate generation. Hours are
// local wall-clock; weekends are never offered.
const (
	businessDayStartHour = 9
	businessDayEndHour   = 17
	maxOfferedSlots      = 6
	slotStep             = time.Hour
)

// noSlotsFallback is spoken when a search ran but found nothing. Voice
// playback must never receive an empty utterance, so an empty slot list
// still carries a sentence.
const noSlotsFallback = "I could not find any open times in that period."

// FindSlots returns up to six bookable start times for the tenant,
// or (nil, nil) when the tenant has no active calendar connection.
// A connected tenant whose window is fully booked gets a non-nil list
// with zero slots and the fallback sentence, never nil.
//
// durationMinutes overrides the tenant's default duration for this
// search only; zero or negative means "use the tenant default".
func (s *Service) FindSlots(ctx context.Context, tenantID, preferredDate string, durationMinutes int) (*SlotList, error) {
	logger := logging.WithTenant(logging.WithOperation(s.logger, "find_slots"), tenantID)

	session, err := s.sessions.GetSession(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		logger.Debug("slot search for tenant without calendar connection")
		return nil, nil
	}

	// Now is read once per search. Every past-candidate comparison below
	// uses this instant, so a slow search stays self-consistent.
	now := s.now()

	windowStart, windowEnd, err := s.searchWindow(now, preferredDate, session.BookingWindowDays)
	if err != nil {
		return nil, err
	}

	duration := durationMinutes
	if duration <= 0 {
		duration = session.DefaultDurationMinutes
	}
	slotLen := time.Duration(duration+session.BufferMinutes) * time.Minute

	api, err := s.calendars(ctx, session)
	if err != nil {
		logger.Error("failed to build calendar client", logging.Err(err))
		return nil, &ProviderError{Op: "create_client", Err: err}
	}

	busy, err := api.FreeBusy(ctx, session.CalendarID, windowStart, windowEnd)
	if err != nil {
		if calendar.IsAuthError(err) {
			logger.Warn("calendar credentials rejected during free/busy query", logging.Err(err))
		} else {
			logger.Error("free/busy query failed", logging.Err(err))
		}
		return nil, &ProviderError{Op: "free_busy", Err: err}
	}

	slots := findOpenSlots(windowStart, windowEnd, now, slotLen, busy)

	logger.Info("slot search completed",
		slog.String("window_start", windowStart.Format(time.RFC3339)),
		slog.String("window_end", windowEnd.Format(time.RFC3339)),
		slog.Int("busy_intervals", len(busy)),
		slog.Int("slots_found", len(slots)),
	)

	return &SlotList{Slots: slots, Formatted: formatSlots(slots)}, nil
}

// searchWindow computes the half-open interval one search covers. With
// a preferred date the window is exactly that calendar day; without one
// it spans the tenant's booking window starting today. A window start
// already in the past is pulled forward to now before the start is
// truncated to midnight, so asking about yesterday searches today
// instead of failing.
func (s *Service) searchWindow(now time.Time, preferredDate string, windowDays int) (time.Time, time.Time, error) {
	base := now
	singleDay := false
	if preferredDate != "" {
		day, err := time.ParseInLocation(dateLayout, preferredDate, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, &RequestError{
				Field:  "preferred_date",
				Reason: fmt.Sprintf("%q is not a valid date, expected YYYY-MM-DD", preferredDate),
			}
		}
		base = day
		singleDay = true
	}
	if base.Before(now) {
		base = now
	}

	start := startOfDay(base)
	if singleDay {
		return start, start.AddDate(0, 0, 1), nil
	}
	return start, start.AddDate(0, 0, windowDays), nil
}

// findOpenSlots walks the window at one-hour steps and collects starts
// whose test interval [cursor, cursor+slotLen) clears every busy
// interval. Candidates are generated in chronological order, at most
// maxOfferedSlots of them. The caller captures now once; candidates not
// strictly after it are skipped.
func findOpenSlots(windowStart, windowEnd, now time.Time, slotLen time.Duration, busy []calendar.BusyInterval) []time.Time {
	var slots []time.Time
	cursor := windowStart
	for cursor.Before(windowEnd) && len(slots) < maxOfferedSlots {
		switch {
		case isWeekend(cursor):
			cursor = nextDayAt(cursor, businessDayStartHour)
		case cursor.Hour() < businessDayStartHour:
			cursor = sameDayAt(cursor, businessDayStartHour)
		case cursor.Hour() >= businessDayEndHour:
			cursor = nextDayAt(cursor, businessDayStartHour)
		case !cursor.After(now):
			cursor = cursor.Add(slotStep)
		case conflictsBusy(cursor, cursor.Add(slotLen), busy):
			cursor = cursor.Add(slotStep)
		default:
			slots = append(slots, cursor)
			cursor = cursor.Add(slotStep)
		}
	}
	return slots
}

// conflictsBusy reports whether [start, end) overlaps any busy
// interval. Overlap is strict: intervals that merely touch at an
// endpoint do not conflict.
func conflictsBusy(start, end time.Time, busy []calendar.BusyInterval) bool {
	for _, b := range busy {
		if start.Before(b.End) && end.After(b.Start) {
			return true
		}
	}
	return false
}

func formatSlots(slots []time.Time) string {
	if len(slots) == 0 {
		return noSlotsFallback
	}
	phrases := make([]string, len(slots))
	for i, slot := range slots {
		phrases[i] = FormatForVoice(slot)
	}
	return strings.Join(phrases, ", or ")
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func startOfDay(t time.Time) time.Time {
	return sameDayAt(t, 0)
}

func sameDayAt(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

func nextDayAt(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, hour, 0, 0, 0, t.Location())
}
