/*
schedule.go - Expected-hours resolution

PURPOSE:
  Derives the hours an employee is expected to work on a given date from
  the schedule variant and the weekday.

POLICY NOTES:
  The configured time windows are descriptive data only: the engine
  accounts a fixed 8 hours for every working day, including Fridays with a
  reduced window. Recorded schedule display and expected-hours accounting
  are intentionally separate concerns; the windows still travel with the
  report for display.

  The 12x36 variant is not a pure schedule function: a shift day is
  expected to have 12 hours only if the day saw any worked or credited
  activity, otherwise zero.
*/
package timesheet

import "time"

// Expected-hours constants. Eight hours for any regular working day,
// twelve for an active 12x36 shift day.
var (
	expectedStandard = HoursFromInt(8)
	expectedShift    = HoursFromInt(12)
)

// ExpectedHours resolves the expected decimal hours for a date. The worked
// and credited amounts of the same day are inputs because of the 12x36
// activity coupling; they are ignored for the other variants.
//
// Decision order:
//  1. 12x36: 12 if the day had any worked or credited hours, else 0
//  2. Sunday: 0
//  3. Saturday under 5x2: 0
//  4. otherwise: 8
func ExpectedHours(cfg ScheduleConfig, date time.Time, worked, credited Hours) Hours {
	if cfg.Variant == TwelveByThirtySix {
		if worked.IsPositive() || credited.IsPositive() {
			return expectedShift
		}
		return ZeroHours()
	}
	switch date.Weekday() {
	case time.Sunday:
		return ZeroHours()
	case time.Saturday:
		if cfg.Variant == FiveByTwo {
			return ZeroHours()
		}
	}
	return expectedStandard
}

// WeekendOrOff reports whether the date is a non-working day for the
// schedule: every Sunday, plus Saturday under 5x2.
func WeekendOrOff(cfg ScheduleConfig, date time.Time) bool {
	switch date.Weekday() {
	case time.Sunday:
		return true
	case time.Saturday:
		return cfg.Variant == FiveByTwo
	}
	return false
}

// WindowFor returns the display window for a date: the reduced window on
// Friday, the standard window otherwise. Display data only.
func WindowFor(cfg ScheduleConfig, date time.Time) TimeWindow {
	if date.Weekday() == time.Friday {
		return cfg.Reduced
	}
	return cfg.Standard
}
