package timesheet

// =============================================================================
// ABSENCE CREDIT RESOLVER
// =============================================================================

// CreditForDay finds the approved absence backing a day's credit and
// converts its "HH:MM" credited-hours value to decimal hours.
//
// Selection: the FIRST record in input order with status Aprovado and a
// non-empty credited-hours string, matched to the day by string equality
// on the day key. Multiple submissions may exist for the same day; only
// the first approved one counts.
//
// A day with no qualifying record yields zero credit and no error. A
// malformed credited-hours string fails with a ClockParseError rather
// than silently returning zero; the caller decides whether to degrade
// the day or surface the failure.
func CreditForDay(absences []AbsenceRecord, dayKey string) (Hours, *AbsenceRecord, error) {
	for i := range absences {
		r := &absences[i]
		if r.Status != StatusApproved || r.CreditedHours == "" {
			continue
		}
		if DayKey(r.Timestamp) != dayKey {
			continue
		}
		credit, err := ParseClock(r.CreditedHours)
		if err != nil {
			return ZeroHours(), r, err
		}
		return credit, r, nil
	}
	return ZeroHours(), nil, nil
}
