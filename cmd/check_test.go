package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/booklinehq/bookline/internal/store"
)

func TestConnectionReport(t *testing.T) {
	now := time.Date(2030, time.January, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		conn        *store.CalendarConnection
		wantLines   []string
		absentLines []string
	}{
		{
			name: "healthy connection",
			conn: &store.CalendarConnection{
				TenantID:               "tenant-1",
				AccessToken:            "super-secret-access",
				RefreshToken:           "super-secret-refresh",
				CalendarID:             "primary",
				TokenExpiresAt:         now.Add(30 * time.Minute),
				DefaultDurationMinutes: 60,
				BufferMinutes:          15,
				BookingWindowDays:      14,
			},
			wantLines: []string{
				"Tenant:          tenant-1",
				"Calendar:        primary",
				"Token health:    valid",
				"expires in 30m0s",
				"Refresh token:   stored",
				"Appointments:    60 minutes + 15 minutes buffer",
				"Booking window:  14 days",
			},
		},
		{
			name: "expired token without refresh token",
			conn: &store.CalendarConnection{
				TenantID:       "tenant-2",
				AccessToken:    "super-secret-access",
				CalendarID:     "primary",
				TokenExpiresAt: now.Add(-time.Hour),
			},
			wantLines: []string{
				"Token health:    no_refresh_token",
				"expired 1h0m0s ago",
				"Refresh token:   missing",
			},
		},
		{
			name: "unknown expiry",
			conn: &store.CalendarConnection{
				TenantID:     "tenant-3",
				AccessToken:  "super-secret-access",
				RefreshToken: "super-secret-refresh",
				CalendarID:   "work",
			},
			wantLines: []string{
				"Token health:    unknown",
				"Token expiry:    unknown",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := connectionReport(tt.conn, now)

			for _, want := range tt.wantLines {
				if !strings.Contains(report, want) {
					t.Errorf("report missing %q:\n%s", want, report)
				}
			}

			// Token values must never show up in the report.
			for _, secret := range []string{"super-secret-access", "super-secret-refresh"} {
				if strings.Contains(report, secret) {
					t.Errorf("report leaks %q:\n%s", secret, report)
				}
			}
		})
	}
}

func TestDescribeExpiry(t *testing.T) {
	now := time.Date(2030, time.January, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      string
	}{
		{"future", now.Add(90 * time.Minute), "expires in 1h30m0s"},
		{"past", now.Add(-45 * time.Second), "expired 45s ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describeExpiry(tt.expiresAt, now); got != tt.want {
				t.Errorf("describeExpiry() = %q, want %q", got, tt.want)
			}
		})
	}
}
