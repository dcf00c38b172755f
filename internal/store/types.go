package store

import "time"

// Defaults for scheduling fields that were never configured by the tenant.
const (
	DefaultCalendarID        = "primary"
	DefaultDurationMinutes   = 60
	DefaultBufferMinutes     = 15
	DefaultBookingWindowDays = 14
)

// CalendarConnection is one tenant's link to an external calendar account.
//
// RefreshToken and TokenExpiresAt are optional. An empty RefreshToken means
// the provider issued none, so the access token cannot be renewed. A zero
// TokenExpiresAt means the expiry is unknown and the token is assumed valid.
type CalendarConnection struct {
	ID           string
	TenantID     string
	AccessToken  string
	RefreshToken string
	CalendarID   string

	TokenExpiresAt time.Time

	DefaultDurationMinutes int
	BufferMinutes          int
	BookingWindowDays      int

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyDefaults fills unset scheduling fields. An empty calendar ID and
// zero or negative numeric values count as unset, mirroring the column
// defaults in the database schema.
func (c *CalendarConnection) ApplyDefaults() {
	if c.CalendarID == "" {
		c.CalendarID = DefaultCalendarID
	}
	if c.DefaultDurationMinutes <= 0 {
		c.DefaultDurationMinutes = DefaultDurationMinutes
	}
	if c.BufferMinutes <= 0 {
		c.BufferMinutes = DefaultBufferMinutes
	}
	if c.BookingWindowDays <= 0 {
		c.BookingWindowDays = DefaultBookingWindowDays
	}
}
