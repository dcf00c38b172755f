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

const dateLayout = "2006-01-02"

// timeLayouts are the accepted time-of-day spellings, tried in order
// against the uppercased input.
var timeLayouts = []string{"15:04", "3:04 PM", "3:04PM", "3 PM", "3PM"}

// provenanceMarker identifies agent-booked events in the calendar UI
// and in event descriptions fetched later.
const provenanceMarker = "Booked by AI assistant"

// CreateEvent books one appointment and reports the outcome as a
// result, never as an error: the caller is a live conversation that
// must always have something to say. The created event spans the
// tenant's default duration regardless of any duration in the request;
// request durations only steer slot search.
func (s *Service) CreateEvent(ctx context.Context, req BookingRequest) *BookingResult {
	logger := logging.WithTenant(logging.WithOperation(s.logger, "create_event"), req.TenantID)

	session, err := s.sessions.GetSession(ctx, req.TenantID)
	if err != nil {
		logger.Error("failed to load tenant session", logging.Err(err))
		return failure(ErrorNotConnected, "calendar connection unavailable")
	}
	if session == nil {
		logger.Warn("booking attempt for tenant without calendar connection")
		return failure(ErrorNotConnected, "tenant has no active calendar connection")
	}

	start, err := s.parseStart(req.PreferredDate, req.PreferredTime)
	if err != nil {
		logger.Warn("rejected booking request", logging.Err(err))
		return failure(ErrorInvalidRequest, err.Error())
	}
	end := start.Add(time.Duration(session.DefaultDurationMinutes) * time.Minute)

	api, err := s.calendars(ctx, session)
	if err != nil {
		logger.Error("failed to build calendar client", logging.Err(err))
		return failure(ErrorProviderAPI, err.Error())
	}

	input := calendar.EventInput{
		Summary:     eventSummary(req),
		Description: eventDescription(req),
		Start:       start,
		End:         end,
		TimeZone:    locationName(s.loc),
	}

	eventID, err := api.InsertEvent(ctx, session.CalendarID, input)
	if err != nil {
		if calendar.IsAuthError(err) {
			logger.Warn("calendar credentials rejected during event creation", logging.Err(err))
		} else {
			logger.Error("event creation failed", logging.Err(err))
		}
		return failure(ErrorProviderAPI, err.Error())
	}

	logger.Info("appointment booked",
		logging.EventID(eventID),
		logging.CalendarID(session.CalendarID),
		logging.CustomerHash(req.CustomerPhone),
		slog.String("start", start.Format(time.RFC3339)),
		slog.Int("duration_minutes", session.DefaultDurationMinutes),
	)

	return &BookingResult{
		Success:   true,
		EventID:   eventID,
		Formatted: fmt.Sprintf("%s for %d minutes", FormatForVoice(start), session.DefaultDurationMinutes),
	}
}

// parseStart combines the request's date and time of day into one
// instant in the service's location.
func (s *Service) parseStart(dateStr, timeStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, &RequestError{Field: "preferred_date", Reason: "required to book an appointment"}
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, s.loc)
	if err != nil {
		return time.Time{}, &RequestError{
			Field:  "preferred_date",
			Reason: fmt.Sprintf("%q is not a valid date, expected YYYY-MM-DD", dateStr),
		}
	}

	if timeStr == "" {
		return time.Time{}, &RequestError{Field: "preferred_time", Reason: "required to book an appointment"}
	}
	normalized := strings.ToUpper(strings.TrimSpace(timeStr))
	for _, layout := range timeLayouts {
		if tod, err := time.ParseInLocation(layout, normalized, s.loc); err == nil {
			return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, s.loc), nil
		}
	}
	return time.Time{}, &RequestError{
		Field:  "preferred_time",
		Reason: fmt.Sprintf("%q is not a recognized time of day", timeStr),
	}
}

func eventSummary(req BookingRequest) string {
	service := req.ServiceType
	if service == "" {
		service = "Appointment"
	}
	return service + " - " + req.CustomerName
}

func eventDescription(req BookingRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Customer: %s\n", req.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", req.CustomerPhone)
	if req.ServiceType != "" {
		fmt.Fprintf(&b, "Service: %s\n", req.ServiceType)
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", req.Notes)
	}
	b.WriteString("\n")
	b.WriteString(provenanceMarker)
	return b.String()
}

// locationName returns the IANA name of loc. The process-local zone
// stringifies as "Local", which no provider accepts, so it maps to
// empty and the provider default applies.
func locationName(loc *time.Location) string {
	name := loc.String()
	if name == "Local" {
		return ""
	}
	return name
}

func failure(kind ErrorKind, detail string) *BookingResult {
	return &BookingResult{ErrorKind: kind, ErrorDetail: detail}
}
