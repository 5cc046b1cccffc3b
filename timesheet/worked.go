package timesheet

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// WORKED-HOURS CALCULATOR
// =============================================================================

var secondsPerHour = decimal.NewFromInt(3600)

// span returns the hours between two punches (difference of instants over
// 3600 seconds).
func span(from, to *PunchRecord) Hours {
	seconds := int64(to.Timestamp.Sub(from.Timestamp).Seconds())
	return Hours{Value: decimal.NewFromInt(seconds).Div(secondsPerHour)}
}

// WorkedHours computes the decimal hours actually worked on a day from its
// classified punches:
//
//   - entry and exit present, both lunch punches present:
//     (lunchOut - entry) + (exit - lunchIn)
//   - entry and exit present, lunch incomplete: exit - entry
//   - entry or exit missing: zero
//
// If the punches are out of chronological order the raw (negative) value is
// returned together with a ChronologyError; the caller decides whether to
// clamp the day to zero or reject it.
func WorkedHours(day DayPunches) (Hours, error) {
	if day.Entry == nil || day.Exit == nil {
		return ZeroHours(), nil
	}

	var worked Hours
	if day.LunchOut != nil && day.LunchIn != nil {
		worked = span(day.Entry, day.LunchOut).Add(span(day.LunchIn, day.Exit))
	} else {
		worked = span(day.Entry, day.Exit)
	}

	if worked.IsNegative() {
		return worked, &ChronologyError{Date: day.Entry.Timestamp, Span: worked}
	}
	return worked, nil
}
