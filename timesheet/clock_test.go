package timesheet_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontual/timesheet-engine/timesheet"
)

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParseClock_ValidValues(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"08:00", 8},
		{"00:00", 0},
		{"08:30", 8.5},
		{"12:15", 12.25},
		{"23:59", 23 + 59.0/60},
		{"100:00", 100}, // totals beyond one day are legitimate quantities
	}
	for _, c := range cases {
		got, err := timesheet.ParseClock(c.in)
		require.NoError(t, err, "parse %q", c.in)
		assert.InDelta(t, c.want, got.Float64(), 1e-9, "parse %q", c.in)
	}
}

func TestParseClock_MalformedValues(t *testing.T) {
	// Malformed input must fail loudly, never silently become zero.
	for _, in := range []string{"", "8", "8:0:0", "ab:cd", "08:60", "-1:00", "08:-5", "08:", ":30"} {
		_, err := timesheet.ParseClock(in)
		assert.Error(t, err, "parse %q should fail", in)
		assert.ErrorIs(t, err, timesheet.ErrParse, "parse %q", in)

		var parseErr *timesheet.ClockParseError
		assert.True(t, errors.As(err, &parseErr), "parse %q should carry the offending value", in)
	}
}

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{8, "08:00"},
		{0, "00:00"},
		{8.5, "08:30"},
		{-1.25, "-01:15"},
		{0.5, "00:30"},
		{26, "26:00"}, // monthly totals exceed 24h
	}
	for _, c := range cases {
		assert.Equal(t, c.want, timesheet.FormatClock(timesheet.NewHours(c.in)), "format %v", c.in)
	}
}

func TestClock_RoundTrip(t *testing.T) {
	// Any valid "HH:MM" survives parse-then-format unchanged.
	for _, in := range []string{"00:00", "08:00", "09:17", "12:59", "23:01"} {
		h, err := timesheet.ParseClock(in)
		require.NoError(t, err)
		assert.Equal(t, in, timesheet.FormatClock(h))
	}
}

// =============================================================================
// CALENDAR HELPER TESTS
// =============================================================================

func TestDayKey(t *testing.T) {
	morning := time.Date(2025, time.June, 3, 8, 1, 0, 0, time.UTC)
	evening := time.Date(2025, time.June, 3, 18, 4, 0, 0, time.UTC)
	nextDay := time.Date(2025, time.June, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-06-03", timesheet.DayKey(morning))
	assert.Equal(t, timesheet.DayKey(morning), timesheet.DayKey(evening))
	assert.NotEqual(t, timesheet.DayKey(morning), timesheet.DayKey(nextDay))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 31, timesheet.DaysInMonth(2025, 0))  // January
	assert.Equal(t, 28, timesheet.DaysInMonth(2025, 1))  // February
	assert.Equal(t, 29, timesheet.DaysInMonth(2024, 1))  // leap February
	assert.Equal(t, 30, timesheet.DaysInMonth(2025, 5))  // June
	assert.Equal(t, 31, timesheet.DaysInMonth(2025, 11)) // December
}

func TestMonthRange_CoversWholeMonth(t *testing.T) {
	from, to := timesheet.MonthRange(2025, 5) // June

	assert.Equal(t, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), from)
	assert.True(t, to.After(time.Date(2025, time.June, 30, 23, 59, 59, 0, time.UTC)))
	assert.True(t, to.Before(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
}
