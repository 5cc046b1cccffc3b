/*
report.go - Daily balance assembly and monthly aggregation

PURPOSE:
  The engine's main entry point: fold an employee's punch and absence
  records for one calendar month into a mirror report of daily balances
  and a signed monthly total.

DETERMINISM:
  ComputeMonthlyReport is a pure function. Re-running it with identical
  inputs produces identical output: no hidden state, no randomness, no
  current-time dependency beyond the explicit year and month.

DEGRADATION POLICY:
  A single malformed record fails only its own day, not the month. In
  lenient mode (default) the offending day is treated as worked=0,
  credited=0 and a Warning is appended to the report. Strict mode aborts
  the whole report on the first such day.

SEE ALSO:
  - classifier.go, worked.go, schedule.go, absence.go: per-day components
  - store.go: snapshot-read contract that feeds this function
*/
package timesheet

import (
	"errors"
	"fmt"
)

// ComputeOptions tunes report computation.
type ComputeOptions struct {
	// Strict aborts the whole report on the first malformed day instead
	// of degrading it to zero with a warning.
	Strict bool
}

// ComputeMonthlyReport builds the mirror report for one employee and
// month. monthIndex is zero-based (0 = January). Records belonging to
// other employees are skipped, so an unfiltered snapshot may be passed.
// Days are emitted ascending, one per calendar day of the month.
func ComputeMonthlyReport(cfg ScheduleConfig, punches []PunchRecord, absences []AbsenceRecord, year, monthIndex int, opts ComputeOptions) (MonthlyReport, error) {
	if !ValidMonthIndex(monthIndex) {
		return MonthlyReport{}, fmt.Errorf("%w: %d", ErrMonthIndex, monthIndex)
	}
	if cfg.EmployeeName == "" || !cfg.Variant.Known() {
		return MonthlyReport{}, ErrConfigMissing
	}

	punches = filterPunches(punches, cfg.EmployeeName)
	absences = filterAbsences(absences, cfg.EmployeeName)

	report := MonthlyReport{
		EmployeeName: cfg.EmployeeName,
		Year:         year,
		Month:        monthIndex,
		Total:        ZeroHours(),
	}

	for d := 1; d <= DaysInMonth(year, monthIndex); d++ {
		date := MonthDay(year, monthIndex, d)
		key := DayKey(date)

		day := DayPunches{}
		if len(punches) > 0 {
			day = ClassifyDay(punches, key)
		}

		worked, err := WorkedHours(day)
		if err != nil {
			if opts.Strict {
				return MonthlyReport{}, err
			}
			var chrono *ChronologyError
			if errors.As(err, &chrono) {
				report.Warnings = append(report.Warnings, Warning{
					Date:    date,
					Code:    "chronology",
					Message: chrono.Error(),
				})
			}
			worked = ZeroHours()
		}

		credited, absence, err := CreditForDay(absences, key)
		if err != nil {
			if opts.Strict {
				return MonthlyReport{}, err
			}
			report.Warnings = append(report.Warnings, Warning{
				Date:    date,
				Code:    "credit_parse",
				Message: err.Error(),
			})
			credited = ZeroHours()
		}

		expected := ExpectedHours(cfg, date, worked, credited)
		balance := worked.Add(credited).Sub(expected)
		counts := expected.IsPositive() || worked.IsPositive()

		if counts {
			report.Total = report.Total.Add(balance)
		}

		report.Days = append(report.Days, DailyBalance{
			Date:              date,
			Weekday:           date.Weekday(),
			WeekendOrOff:      WeekendOrOff(cfg, date),
			Punches:           day,
			Absence:           absence,
			Worked:            worked,
			Credited:          credited,
			Expected:          expected,
			Balance:           balance,
			CountsTowardTotal: counts,
		})
	}

	return report, nil
}

func filterPunches(records []PunchRecord, employee string) []PunchRecord {
	out := make([]PunchRecord, 0, len(records))
	for _, r := range records {
		if r.EmployeeName == employee {
			out = append(out, r)
		}
	}
	return out
}

func filterAbsences(records []AbsenceRecord, employee string) []AbsenceRecord {
	out := make([]AbsenceRecord, 0, len(records))
	for _, r := range records {
		if r.EmployeeName == employee {
			out = append(out, r)
		}
	}
	return out
}
