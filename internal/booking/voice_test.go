package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatForVoice(t *testing.T) {
	tests := []struct {
		name     string
		instant  time.Time
		expected string
	}{
		{
			name:     "on the hour omits the minute phrase",
			instant:  time.Date(2026, time.March, 3, 15, 0, 0, 0, time.UTC),
			expected: "Tuesday March three at three PM",
		},
		{
			name:     "midnight is twelve AM",
			instant:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: "Thursday January one at twelve AM",
		},
		{
			name:     "noon is twelve PM",
			instant:  time.Date(2026, time.September, 5, 12, 0, 0, 0, time.UTC),
			expected: "Saturday September five at twelve PM",
		},
		{
			name:     "single digit minute",
			instant:  time.Date(2026, time.January, 2, 9, 5, 0, 0, time.UTC),
			expected: "Friday January two at nine five AM",
		},
		{
			name:     "compound minute words",
			instant:  time.Date(2026, time.March, 20, 16, 45, 0, 0, time.UTC),
			expected: "Friday March twenty at four forty five PM",
		},
		{
			name:     "round tens minute",
			instant:  time.Date(2026, time.September, 30, 10, 30, 0, 0, time.UTC),
			expected: "Wednesday September thirty at ten thirty AM",
		},
		{
			name:     "compound day of month",
			instant:  time.Date(2026, time.January, 21, 23, 59, 0, 0, time.UTC),
			expected: "Wednesday January twenty one at eleven fifty nine PM",
		},
		{
			name:     "late morning stays AM",
			instant:  time.Date(2026, time.January, 5, 11, 0, 0, 0, time.UTC),
			expected: "Monday January five at eleven AM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatForVoice(tt.instant))
		})
	}
}

func TestFormatForVoiceOmitsZeroMinute(t *testing.T) {
	formatted := FormatForVoice(time.Date(2026, time.March, 3, 15, 0, 0, 0, time.UTC))

	assert.Contains(t, formatted, "three PM")
	assert.NotContains(t, formatted, "three zero PM")
}

func TestNumberInWords(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "zero"},
		{1, "one"},
		{7, "seven"},
		{13, "thirteen"},
		{19, "nineteen"},
		{20, "twenty"},
		{21, "twenty one"},
		{35, "thirty five"},
		{40, "forty"},
		{59, "fifty nine"},
		{60, "60"},
		{100, "100"},
		{-1, "-1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, numberInWords(tt.n), "numberInWords(%d)", tt.n)
	}
}
