/*
errors.go - Centralized error types for the reconciliation engine

PURPOSE:
  All engine error kinds in one place. Every failure here is local and
  recoverable: it is returned to the caller (review UI or reporting UI),
  never fatal to the process.

ERROR CATEGORIES:
  1. Transition errors - approval state machine misuse
  2. Parse errors      - malformed "HH:MM" clock strings
  3. Chronology errors - punches out of chronological order
  4. Lookup errors     - missing schedule config or records

USAGE:
  Callers branch with errors.Is():

    if errors.Is(err, timesheet.ErrInvalidTransition) {
        // record already approved or rejected
    }

SEE ALSO:
  - approval.go: Uses transition and input errors
  - report.go:   Uses parse and chronology errors
  - store.go:    Uses lookup errors
*/
package timesheet

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTransition is returned when approving or rejecting a record
	// that is no longer pending. Terminal states never transition again.
	ErrInvalidTransition = errors.New("invalid transition: record is not pending")

	// ErrInvalidInput is returned when an approval carries a credited-hours
	// string that is not valid "HH:MM". The record is left untouched.
	ErrInvalidInput = errors.New("invalid credited hours")

	// ErrParse is returned when a stored credited-hours string turns out to
	// be malformed during report computation.
	ErrParse = errors.New("malformed clock value")

	// ErrChronology is returned when a day's punches produce a negative
	// worked span (e.g. exit stamped before entry).
	ErrChronology = errors.New("punches out of chronological order")

	// ErrConfigMissing is returned when no schedule config exists for an
	// employee being reported on. The report fails rather than assuming a
	// default variant.
	ErrConfigMissing = errors.New("schedule config missing")

	// ErrMonthIndex is returned for a month index outside 0-11.
	ErrMonthIndex = errors.New("month index out of range")

	// ErrRecordNotFound is returned by stores for unknown record IDs.
	ErrRecordNotFound = errors.New("record not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ClockParseError reports a malformed "HH:MM" value.
type ClockParseError struct {
	Value string
}

func (e *ClockParseError) Error() string { return fmt.Sprintf("malformed clock value %q", e.Value) }
func (e *ClockParseError) Unwrap() error { return ErrParse }

// TransitionError reports an approval-state-machine misuse.
type TransitionError struct {
	RecordID string
	Status   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("record %s is %s, not %s", e.RecordID, e.Status, StatusPending)
}
func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// ChronologyError reports a negative worked span for a day. Span carries
// the raw (negative) hours so the caller can decide to clamp or reject.
type ChronologyError struct {
	Date time.Time
	Span Hours
}

func (e *ChronologyError) Error() string {
	return fmt.Sprintf("punches on %s yield negative span %s", DayKey(e.Date), FormatClock(e.Span))
}
func (e *ChronologyError) Unwrap() error { return ErrChronology }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input
// or bad submitted data rather than an internal failure. Chronology and
// parse failures both qualify: they point at the records, not the engine.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrParse) ||
		errors.Is(err, ErrChronology) ||
		errors.Is(err, ErrMonthIndex)
}

// IsNotFound returns true if the error indicates a missing record or config.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound) || errors.Is(err, ErrConfigMissing)
}
