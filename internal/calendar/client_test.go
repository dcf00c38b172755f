package calendar

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: 0,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: 0,
		},
		{
			name: "googleapi error",
			err:  &googleapi.Error{Code: http.StatusForbidden},
			want: http.StatusForbidden,
		},
		{
			name: "wrapped googleapi error",
			err:  fmt.Errorf("query free/busy: %w", &googleapi.Error{Code: http.StatusUnauthorized}),
			want: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "unauthorized",
			err:  &googleapi.Error{Code: http.StatusUnauthorized},
			want: true,
		},
		{
			name: "forbidden wrapped",
			err:  fmt.Errorf("insert event: %w", &googleapi.Error{Code: http.StatusForbidden}),
			want: true,
		},
		{
			name: "rate limited",
			err:  &googleapi.Error{Code: http.StatusTooManyRequests},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("network down"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthError(tt.err); got != tt.want {
				t.Errorf("IsAuthError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventInputTimes(t *testing.T) {
	start := time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC)
	input := EventInput{
		Summary: "Consultation - Ada",
		Start:   start,
		End:     start.Add(time.Hour),
	}

	if !input.End.After(input.Start) {
		t.Error("expected End after Start")
	}
	if got := input.End.Sub(input.Start); got != time.Hour {
		t.Errorf("duration = %v, want %v", got, time.Hour)
	}
}
