package timesheet

// =============================================================================
// PUNCH CLASSIFIER - Canonical punch selection per day
// =============================================================================

// DayPunches holds the canonical punch of each type for one calendar day.
// A nil slot means the day lacks that punch type.
type DayPunches struct {
	Entry    *PunchRecord
	LunchOut *PunchRecord
	LunchIn  *PunchRecord
	Exit     *PunchRecord
}

// Empty reports whether the day has no punches at all.
func (dp DayPunches) Empty() bool {
	return dp.Entry == nil && dp.LunchOut == nil && dp.LunchIn == nil && dp.Exit == nil
}

// Get returns the slot for the given punch type, or nil for unknown types.
func (dp DayPunches) Get(t PunchType) *PunchRecord {
	switch t {
	case PunchEntry:
		return dp.Entry
	case PunchLunchOut:
		return dp.LunchOut
	case PunchLunchIn:
		return dp.LunchIn
	case PunchExit:
		return dp.Exit
	}
	return nil
}

// ClassifyDay selects the canonical punches for one calendar day out of a
// record stream. Matching is by string equality on the day key, so the
// caller may pass an unfiltered stream. For each type, the FIRST record
// encountered in input order wins; the input is expected to be in
// submission order and no secondary sort is applied. Unrecognized punch
// types are ignored. Pure function: records are never mutated.
func ClassifyDay(records []PunchRecord, dayKey string) DayPunches {
	var dp DayPunches
	for i := range records {
		r := &records[i]
		if DayKey(r.Timestamp) != dayKey {
			continue
		}
		switch r.Type {
		case PunchEntry:
			if dp.Entry == nil {
				dp.Entry = r
			}
		case PunchLunchOut:
			if dp.LunchOut == nil {
				dp.LunchOut = r
			}
		case PunchLunchIn:
			if dp.LunchIn == nil {
				dp.LunchIn = r
			}
		case PunchExit:
			if dp.Exit == nil {
				dp.Exit = r
			}
		}
	}
	return dp
}
