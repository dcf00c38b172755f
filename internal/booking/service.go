package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/booklinehq/bookline/internal/calendar"
	"github.com/booklinehq/bookline/internal/credentials"
)

// SessionProvider yields ready-to-use tenant sessions. Implemented by
// credentials.Manager; a nil session with a nil error means the tenant
// is not connected.
type SessionProvider interface {
	GetSession(ctx context.Context, tenantID string) (*credentials.Session, error)
}

// CalendarFactory builds a provider client for one session. The
// indirection exists so the provider can be swapped out, most usefully
// in tests.
type CalendarFactory func(ctx context.Context, session *credentials.Session) (calendar.API, error)

// GoogleCalendars is the production CalendarFactory, backed by the
// Google Calendar API with the session's access token.
func GoogleCalendars(ctx context.Context, session *credentials.Session) (calendar.API, error) {
	return calendar.NewClient(ctx, session.TokenSource())
}

// Service answers availability searches and books appointments on top
// of per-tenant calendar sessions. Every entry point is a self-contained
// request; the service holds no per-call state.
type Service struct {
	sessions  SessionProvider
	calendars CalendarFactory
	logger    *slog.Logger

	// now and loc are fixed in tests to make slot generation and
	// business-hour checks deterministic.
	now func() time.Time
	loc *time.Location
}

// NewService creates a booking service backed by Google Calendar.
func NewService(sessions SessionProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions:  sessions,
		calendars: GoogleCalendars,
		logger:    logger,
		now:       time.Now,
		loc:       time.Local,
	}
}

// NewServiceWithCalendars creates a booking service with a custom
// calendar factory instead of the Google-backed default.
func NewServiceWithCalendars(sessions SessionProvider, calendars CalendarFactory, logger *slog.Logger) *Service {
	svc := NewService(sessions, logger)
	if calendars != nil {
		svc.calendars = calendars
	}
	return svc
}
