/*
Package timesheet implements the attendance reconciliation engine.

PURPOSE:
  This package contains the domain types and algorithms that turn a raw
  stream of punch and absence records into a monthly mirror report: worked
  hours, expected hours, absence credit, and a signed balance per day,
  aggregated into a monthly total.

KEY CONCEPTS IN THIS FILE (types.go):
  - PunchRecord: A single clock event (entry, lunch out, lunch in, exit)
  - AbsenceRecord: A justification submission with an approval lifecycle
  - ScheduleConfig: An employee's expected working pattern
  - Hours: A decimal quantity of hours
  - DailyBalance / MonthlyReport: The engine's output

DESIGN PRINCIPLES:
  1. Immutability: Records are never mutated by the engine
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Purity: Reports are recomputed fresh from records on every call;
     the engine holds no state and has no current-time dependency
  4. Wire fidelity: Punch types and statuses keep the exact strings the
     upstream collaborators persist ("Entrada", "Pendente", ...)

SEE ALSO:
  - classifier.go: Canonical punch selection per day
  - worked.go:     Worked-hours calculation
  - schedule.go:   Expected-hours resolution
  - absence.go:    Absence credit resolution
  - approval.go:   Justification approval state machine
  - report.go:     Daily assembly and monthly aggregation
*/
package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS - Decimal quantity of hours
// =============================================================================

// Hours is a signed decimal number of hours. All engine arithmetic goes
// through this type so minute-level math stays exact.
type Hours struct {
	Value decimal.Decimal
}

func NewHours(value float64) Hours  { return Hours{Value: decimal.NewFromFloat(value)} }
func HoursFromInt(value int) Hours  { return Hours{Value: decimal.NewFromInt(int64(value))} }
func ZeroHours() Hours              { return Hours{Value: decimal.Zero} }

func (h Hours) Add(o Hours) Hours    { return Hours{Value: h.Value.Add(o.Value)} }
func (h Hours) Sub(o Hours) Hours    { return Hours{Value: h.Value.Sub(o.Value)} }
func (h Hours) Neg() Hours           { return Hours{Value: h.Value.Neg()} }
func (h Hours) IsNegative() bool     { return h.Value.IsNegative() }
func (h Hours) IsPositive() bool     { return h.Value.IsPositive() }
func (h Hours) IsZero() bool         { return h.Value.IsZero() }
func (h Hours) Equal(o Hours) bool   { return h.Value.Equal(o.Value) }
func (h Hours) Float64() float64     { f, _ := h.Value.Float64(); return f }

// =============================================================================
// PUNCH RECORD - One clock event
// =============================================================================

// PunchType enumerates the four clock events of a working day. The string
// values are the canonical wire values produced by the submission
// collaborator; the engine tolerates (ignores) anything else.
type PunchType string

const (
	PunchEntry    PunchType = "Entrada"
	PunchLunchOut PunchType = "Saída Almoço"
	PunchLunchIn  PunchType = "Entrada Almoço"
	PunchExit     PunchType = "Saída"
)

// PunchTypes is the canonical display order of the four punch slots.
var PunchTypes = [4]PunchType{PunchEntry, PunchLunchOut, PunchLunchIn, PunchExit}

// Known reports whether t is one of the four recognized punch types.
func (t PunchType) Known() bool {
	switch t {
	case PunchEntry, PunchLunchOut, PunchLunchIn, PunchExit:
		return true
	}
	return false
}

// PunchRecord is a single clock event. Immutable once created; the
// timestamp is server-assigned at submission time.
type PunchRecord struct {
	ID           string
	EmployeeName string
	Type         PunchType
	Timestamp    time.Time
}

// =============================================================================
// ABSENCE RECORD - One justification submission
// =============================================================================

// Status is the lifecycle state of an absence justification.
// Pendente may transition to Aprovado or Rejeitado; both are terminal.
type Status string

const (
	StatusPending  Status = "Pendente"
	StatusApproved Status = "Aprovado"
	StatusRejected Status = "Rejeitado"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// AbsenceRecord is a justification submission. CreditedHours is a sign-less
// "HH:MM" string, set only when the record is approved.
type AbsenceRecord struct {
	ID            string
	EmployeeName  string
	Timestamp     time.Time
	Justification string
	Status        Status
	CreditedHours string
}

// =============================================================================
// SCHEDULE CONFIG - Expected working pattern
// =============================================================================

// ScheduleVariant is the weekly work-pattern category.
type ScheduleVariant string

const (
	FiveByTwo         ScheduleVariant = "5x2"   // Mon-Fri
	SixByOne          ScheduleVariant = "6x1"   // Mon-Sat
	TwelveByThirtySix ScheduleVariant = "12x36" // shift work
)

// Known reports whether v is a recognized schedule variant.
func (v ScheduleVariant) Known() bool {
	switch v {
	case FiveByTwo, SixByOne, TwelveByThirtySix:
		return true
	}
	return false
}

// TimeWindow holds the four wall-clock "HH:MM" values of a working day.
// The engine does not enforce any ordering between them; they are
// descriptive data for display, not inputs to the expected-hours math.
type TimeWindow struct {
	Entry    string
	LunchOut string
	LunchIn  string
	Exit     string
}

// DefaultStandardWindow and DefaultReducedWindow are the windows new
// employees are seeded with.
var (
	DefaultStandardWindow = TimeWindow{Entry: "08:00", LunchOut: "12:00", LunchIn: "13:00", Exit: "18:00"}
	DefaultReducedWindow  = TimeWindow{Entry: "08:00", LunchOut: "12:00", LunchIn: "13:00", Exit: "17:00"}
)

// ScheduleConfig is one employee's expected working pattern. The employee
// name is the identity key; there is no separate numeric ID.
// Both windows are always populated: Standard covers Monday-Thursday (and
// Saturday under 6x1), Reduced covers Friday.
type ScheduleConfig struct {
	EmployeeName string
	Variant      ScheduleVariant
	Standard     TimeWindow
	Reduced      TimeWindow
}

// =============================================================================
// ENGINE OUTPUT - Daily balances and the monthly report
// =============================================================================

// DailyBalance is the reconciled state of one calendar day.
// Balance = Worked + Credited - Expected.
type DailyBalance struct {
	Date         time.Time
	Weekday      time.Weekday
	WeekendOrOff bool

	Punches DayPunches     // canonical punches selected for the day
	Absence *AbsenceRecord // approved absence backing the credit, if any

	Worked   Hours
	Credited Hours
	Expected Hours
	Balance  Hours

	// CountsTowardTotal is true iff Expected > 0 or Worked > 0. Days with
	// no schedule and no activity must not pollute the monthly sum.
	CountsTowardTotal bool
}

// Warning reports a day the engine degraded gracefully instead of failing
// the whole report (lenient mode only).
type Warning struct {
	Date    time.Time
	Code    string // "chronology" or "credit_parse"
	Message string
}

// MonthlyReport is the mirror report for one employee and calendar month:
// one DailyBalance per day, ascending, plus the signed total over the
// days that count.
type MonthlyReport struct {
	EmployeeName string
	Year         int
	Month        int // zero-based month index (0 = January)
	Days         []DailyBalance
	Total        Hours
	Warnings     []Warning
}
