package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/booklinehq/bookline/internal/instrumentation"
)

// Client wraps the Google Calendar service for one authenticated tenant.
type Client struct {
	svc *calendar.Service
}

// statically assert Client satisfies the provider surface.
var _ API = (*Client)(nil)

// NewClient builds a Calendar client from an OAuth2 token source.
// Refresh is owned by the caller; pass a static source unless the
// transport should refresh behind the caller's back.
func NewClient(ctx context.Context, source oauth2.TokenSource) (*Client, error) {
	httpClient := oauth2.NewClient(ctx, source)

	// Force HTTP/1.1 by disabling HTTP/2
	if transport, ok := httpClient.Transport.(*oauth2.Transport); ok {
		transport.Base = &http.Transport{ForceAttemptHTTP2: false}
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &Client{svc: svc}, nil
}

// FreeBusy queries busy intervals for calendarID over [from, to).
func (c *Client) FreeBusy(ctx context.Context, calendarID string, from, to time.Time) (_ []BusyInterval, err error) {
	ctx, span := instrumentation.StartCalendarSpan(ctx, instrumentation.OperationFreeBusy)
	defer func() {
		if err != nil {
			instrumentation.SetSpanError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}
		span.End()
	}()

	query := &calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: calendarID}},
	}

	result, err := c.svc.Freebusy.Query(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("query free/busy for %s: %w", calendarID, err)
	}

	cal, ok := result.Calendars[calendarID]
	if !ok {
		return nil, nil
	}
	if len(cal.Errors) > 0 {
		return nil, fmt.Errorf("free/busy lookup for %s: %s", calendarID, cal.Errors[0].Reason)
	}

	intervals := make([]BusyInterval, 0, len(cal.Busy))
	for _, busy := range cal.Busy {
		start, err := time.Parse(time.RFC3339, busy.Start)
		if err != nil {
			return nil, fmt.Errorf("parse busy start %q: %w", busy.Start, err)
		}
		end, err := time.Parse(time.RFC3339, busy.End)
		if err != nil {
			return nil, fmt.Errorf("parse busy end %q: %w", busy.End, err)
		}
		intervals = append(intervals, BusyInterval{Start: start, End: end})
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})

	return intervals, nil
}

// InsertEvent creates an event on calendarID and returns its id.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, input EventInput) (_ string, err error) {
	ctx, span := instrumentation.StartCalendarSpan(ctx, instrumentation.OperationInsertEvent)
	defer func() {
		if err != nil {
			instrumentation.SetSpanError(span, err)
		} else {
			instrumentation.SetSpanSuccess(span)
		}
		span.End()
	}()

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
	}

	created, err := c.svc.Events.Insert(calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("insert event on %s: %w", calendarID, err)
	}

	return created.Id, nil
}

// IsAuthError reports whether err is a provider-side authorization
// failure, meaning the stored credentials are no longer honored.
func IsAuthError(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized || StatusCode(err) == http.StatusForbidden
}

// StatusCode extracts the provider HTTP status from err, or 0 when err
// carries none.
func StatusCode(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
