package timesheet

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CLOCK CONVERSION - "HH:MM" <-> decimal hours
// =============================================================================

var sixty = decimal.NewFromInt(60)

// ParseClock converts a sign-less "HH:MM" string to decimal hours
// (H + M/60). Malformed input fails with a ClockParseError; it is never
// silently treated as zero.
func ParseClock(s string) (Hours, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return ZeroHours(), &ClockParseError{Value: s}
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 {
		return ZeroHours(), &ClockParseError{Value: s}
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return ZeroHours(), &ClockParseError{Value: s}
	}
	return Hours{Value: decimal.NewFromInt(int64(h)).Add(decimal.NewFromInt(int64(m)).Div(sixty))}, nil
}

// FormatClock renders decimal hours as "HH:MM", rounding to the nearest
// minute. Negative values carry a leading minus sign; zero is "00:00".
func FormatClock(h Hours) string {
	sign := ""
	if h.IsNegative() {
		sign = "-"
	}
	totalMinutes := h.Value.Abs().Mul(sixty).Round(0).IntPart()
	return fmt.Sprintf("%s%02d:%02d", sign, totalMinutes/60, totalMinutes%60)
}

// =============================================================================
// DAY KEYS - String-equality day comparison
// =============================================================================

// DayKey returns the calendar-day key of t in t's own location. Records are
// bucketed into days by comparing these keys for string equality.
func DayKey(t time.Time) string { return t.Format("2006-01-02") }

// =============================================================================
// MONTH HELPERS - Zero-based month index
// =============================================================================

// ValidMonthIndex reports whether m is a zero-based month index (0-11).
func ValidMonthIndex(m int) bool { return m >= 0 && m <= 11 }

// DaysInMonth returns the number of calendar days in the given year and
// zero-based month index.
func DaysInMonth(year, monthIndex int) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, time.Month(monthIndex+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDay returns midnight UTC of the given day (1-based) in the given
// year and zero-based month index.
func MonthDay(year, monthIndex, day int) time.Time {
	return time.Date(year, time.Month(monthIndex+1), day, 0, 0, 0, 0, time.UTC)
}

// MonthRange returns the inclusive [first, last] day bounds of the month,
// used by stores to serve a snapshot of records for a report.
func MonthRange(year, monthIndex int) (time.Time, time.Time) {
	first := MonthDay(year, monthIndex, 1)
	last := MonthDay(year, monthIndex, DaysInMonth(year, monthIndex))
	return first, last.Add(24*time.Hour - time.Nanosecond)
}
