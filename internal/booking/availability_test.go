package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booklinehq/bookline/internal/calendar"
)

// septemberDay builds an instant on the given 2026 September day.
// 2026-09-02 is a Wednesday and 2026-09-05 a Saturday, which the
// weekday and weekend cases below rely on.
func septemberDay(day, hour, minute int) time.Time {
	return time.Date(2026, time.September, day, hour, minute, 0, 0, time.UTC)
}

func TestFindOpenSlotsSkipsBusyIntervals(t *testing.T) {
	windowStart := septemberDay(2, 0, 0)
	windowEnd := septemberDay(3, 0, 0)
	now := septemberDay(2, 8, 0)
	slotLen := 75 * time.Minute
	busy := []calendar.BusyInterval{{Start: septemberDay(2, 10, 0), End: septemberDay(2, 11, 0)}}

	slots := findOpenSlots(windowStart, windowEnd, now, slotLen, busy)

	// 09:00 and 10:00 both reach into the 10:00-11:00 busy block once
	// the trailing buffer counts, so 11:00 is the first opening.
	expected := []time.Time{
		septemberDay(2, 11, 0),
		septemberDay(2, 12, 0),
		septemberDay(2, 13, 0),
		septemberDay(2, 14, 0),
		septemberDay(2, 15, 0),
		septemberDay(2, 16, 0),
	}
	assert.Equal(t, expected, slots)
}

func TestFindOpenSlotsBusinessHoursOnly(t *testing.T) {
	slots := findOpenSlots(septemberDay(2, 0, 0), septemberDay(3, 0, 0), septemberDay(2, 5, 0), 75*time.Minute, nil)

	require.Len(t, slots, 6)
	assert.Equal(t, septemberDay(2, 9, 0), slots[0])
	for _, slot := range slots {
		assert.GreaterOrEqual(t, slot.Hour(), businessDayStartHour)
		assert.Less(t, slot.Hour(), businessDayEndHour)
		assert.NotEqual(t, time.Saturday, slot.Weekday())
		assert.NotEqual(t, time.Sunday, slot.Weekday())
	}
}

func TestFindOpenSlotsSkipsWeekendToMonday(t *testing.T) {
	// Window opens on Saturday; everything offered lands on Monday.
	slots := findOpenSlots(septemberDay(5, 0, 0), septemberDay(8, 0, 0), septemberDay(5, 6, 0), 75*time.Minute, nil)

	require.Len(t, slots, 6)
	for i, slot := range slots {
		assert.Equal(t, time.Monday, slot.Weekday())
		assert.Equal(t, septemberDay(7, 9+i, 0), slot)
	}
}

func TestFindOpenSlotsSkipsPastHours(t *testing.T) {
	now := septemberDay(2, 13, 30)

	slots := findOpenSlots(septemberDay(2, 0, 0), septemberDay(3, 0, 0), now, 75*time.Minute, nil)

	expected := []time.Time{
		septemberDay(2, 14, 0),
		septemberDay(2, 15, 0),
		septemberDay(2, 16, 0),
	}
	assert.Equal(t, expected, slots)
	for _, slot := range slots {
		assert.True(t, slot.After(now))
	}
}

func TestFindOpenSlotsCursorAtNowIsNotOffered(t *testing.T) {
	now := septemberDay(2, 9, 0)

	slots := findOpenSlots(septemberDay(2, 0, 0), septemberDay(3, 0, 0), now, 75*time.Minute, nil)

	require.NotEmpty(t, slots)
	assert.Equal(t, septemberDay(2, 10, 0), slots[0], "a slot starting exactly now is already too late to offer")
}

func TestFindOpenSlotsEveningRollsToNextDay(t *testing.T) {
	now := septemberDay(2, 18, 30)

	slots := findOpenSlots(septemberDay(2, 0, 0), septemberDay(4, 0, 0), now, 75*time.Minute, nil)

	require.Len(t, slots, 6)
	for i, slot := range slots {
		assert.Equal(t, septemberDay(3, 9+i, 0), slot)
	}
}

func TestFindOpenSlotsCapsAtSix(t *testing.T) {
	// Two wide-open weeks still yield at most six candidates.
	slots := findOpenSlots(septemberDay(2, 0, 0), septemberDay(16, 0, 0), septemberDay(2, 5, 0), 75*time.Minute, nil)

	assert.Len(t, slots, 6)
}

func TestFindOpenSlotsEmptyWhenWindowFullyBusy(t *testing.T) {
	busy := []calendar.BusyInterval{{Start: septemberDay(2, 0, 0), End: septemberDay(3, 0, 0)}}

	slots := findOpenSlots(septemberDay(2, 0, 0), septemberDay(3, 0, 0), septemberDay(2, 5, 0), 75*time.Minute, busy)

	assert.Empty(t, slots)
}

func TestFindOpenSlotsClearBusyIntervals(t *testing.T) {
	busy := []calendar.BusyInterval{
		{Start: septemberDay(2, 9, 30), End: septemberDay(2, 10, 30)},
		{Start: septemberDay(2, 13, 0), End: septemberDay(2, 14, 0)},
	}
	slotLen := 75 * time.Minute

	slots := findOpenSlots(septemberDay(2, 0, 0), septemberDay(3, 0, 0), septemberDay(2, 5, 0), slotLen, busy)

	require.NotEmpty(t, slots)
	for _, slot := range slots {
		assert.False(t, conflictsBusy(slot, slot.Add(slotLen), busy),
			"offered slot %v overlaps a busy interval", slot)
	}
}

func TestConflictsBusy(t *testing.T) {
	busy := []calendar.BusyInterval{{Start: septemberDay(2, 10, 0), End: septemberDay(2, 11, 0)}}

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{
			name:     "candidate ends exactly at busy start",
			start:    septemberDay(2, 9, 0),
			end:      septemberDay(2, 10, 0),
			conflict: false,
		},
		{
			name:     "candidate starts exactly at busy end",
			start:    septemberDay(2, 11, 0),
			end:      septemberDay(2, 12, 0),
			conflict: false,
		},
		{
			name:     "candidate reaches into busy interval",
			start:    septemberDay(2, 9, 30),
			end:      septemberDay(2, 10, 30),
			conflict: true,
		},
		{
			name:     "candidate contains busy interval",
			start:    septemberDay(2, 9, 0),
			end:      septemberDay(2, 12, 0),
			conflict: true,
		},
		{
			name:     "busy interval contains candidate",
			start:    septemberDay(2, 10, 15),
			end:      septemberDay(2, 10, 45),
			conflict: true,
		},
		{
			name:     "disjoint",
			start:    septemberDay(2, 14, 0),
			end:      septemberDay(2, 15, 0),
			conflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, conflictsBusy(tt.start, tt.end, busy))
		})
	}
}

func TestSearchWindow(t *testing.T) {
	now := septemberDay(2, 14, 30)
	svc := newTestService(t, nil, nil, now)

	tests := []struct {
		name          string
		preferredDate string
		windowDays    int
		wantStart     time.Time
		wantEnd       time.Time
	}{
		{
			name:       "no preferred date spans the booking window from today",
			windowDays: 14,
			wantStart:  septemberDay(2, 0, 0),
			wantEnd:    septemberDay(16, 0, 0),
		},
		{
			name:          "future date covers exactly that day",
			preferredDate: "2026-09-10",
			windowDays:    14,
			wantStart:     septemberDay(10, 0, 0),
			wantEnd:       septemberDay(11, 0, 0),
		},
		{
			name:          "today stays today",
			preferredDate: "2026-09-02",
			windowDays:    14,
			wantStart:     septemberDay(2, 0, 0),
			wantEnd:       septemberDay(3, 0, 0),
		},
		{
			name:          "past date is pulled forward to today",
			preferredDate: "2026-08-30",
			windowDays:    14,
			wantStart:     septemberDay(2, 0, 0),
			wantEnd:       septemberDay(3, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := svc.searchWindow(now, tt.preferredDate, tt.windowDays)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestSearchWindowRejectsMalformedDate(t *testing.T) {
	now := septemberDay(2, 14, 30)
	svc := newTestService(t, nil, nil, now)

	_, _, err := svc.searchWindow(now, "September 10th", 14)

	require.Error(t, err)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "preferred_date", reqErr.Field)
}
