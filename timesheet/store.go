/*
store.go - Collaborator contracts for record and schedule persistence

PURPOSE:
  Defines the interfaces between the pure engine and its external
  collaborators. The engine itself never touches storage; it consumes a
  snapshot of records handed to it at call time.

SNAPSHOT-READ CONTRACT:
  Reconciliation needs PunchesFor/AbsencesFor to return a consistent,
  duplicate-free set of records for an employee and range, ordered by
  submission time. There is no subscription or streaming surface; live
  record feeds are a UI concern outside this core.

APPROVAL ATOMICITY:
  ApproveAbsence/RejectAbsence must apply the pending check and the
  write as ONE atomic unit per record: of two concurrent attempts on the
  same record exactly one succeeds and the other fails with
  ErrInvalidTransition, and a concurrent reader observes the record
  either fully before or fully after the transition, never in between.

IMPLEMENTATIONS:
  - timesheet/store/memory.go: In-memory, for tests and dev
  - store/sqlite:              Production SQLite
*/
package timesheet

import (
	"context"
	"time"
)

// =============================================================================
// RECORD STORE - Punch and absence persistence
// =============================================================================

// RecordStore persists punch and absence records. Punch records are
// append-only; absence records mutate only through the approval
// transitions.
type RecordStore interface {
	// AppendPunch persists a punch record. Records are immutable once
	// written.
	AppendPunch(ctx context.Context, rec PunchRecord) error

	// AppendAbsence persists a new absence justification (status Pendente).
	AppendAbsence(ctx context.Context, rec AbsenceRecord) error

	// PunchesFor returns the employee's punch records with timestamps in
	// [from, to], ordered by submission time.
	PunchesFor(ctx context.Context, employee string, from, to time.Time) ([]PunchRecord, error)

	// AbsencesFor returns the employee's absence records with timestamps
	// in [from, to], ordered by submission time.
	AbsencesFor(ctx context.Context, employee string, from, to time.Time) ([]AbsenceRecord, error)

	// PendingAbsences returns all absence records still awaiting review,
	// oldest first.
	PendingAbsences(ctx context.Context) ([]AbsenceRecord, error)

	// GetAbsence returns one absence record, or ErrRecordNotFound.
	GetAbsence(ctx context.Context, id string) (*AbsenceRecord, error)

	// ApproveAbsence atomically transitions a pending record to Aprovado
	// with the given credited "HH:MM" hours and returns the updated
	// record. Fails with ErrInvalidInput on a malformed credited value
	// (before any mutation), ErrInvalidTransition if the record is no
	// longer pending, ErrRecordNotFound if it does not exist.
	ApproveAbsence(ctx context.Context, id, creditedHours string) (*AbsenceRecord, error)

	// RejectAbsence atomically transitions a pending record to Rejeitado.
	// Same failure modes as ApproveAbsence, minus input validation.
	RejectAbsence(ctx context.Context, id string) (*AbsenceRecord, error)

	// RecentActivity returns the newest records (punches and absences
	// merged), newest first, for the manager dashboard feed.
	RecentActivity(ctx context.Context, limit int) ([]Activity, error)

	// CountOnDay returns how many records (punches plus absences) were
	// submitted on the given calendar day.
	CountOnDay(ctx context.Context, day time.Time) (int, error)

	// CountPending returns how many records await review.
	CountPending(ctx context.Context) (int, error)
}

// Activity is one row of the dashboard feed: a punch or an absence
// submission.
type Activity struct {
	ID           string
	EmployeeName string
	Kind         ActivityKind
	PunchType    PunchType // set when Kind == ActivityPunch
	Status       Status    // set when Kind == ActivityAbsence
	Timestamp    time.Time
}

type ActivityKind string

const (
	ActivityPunch   ActivityKind = "ponto"
	ActivityAbsence ActivityKind = "ausencia"
)

// =============================================================================
// EMPLOYEE STORE - Schedule configs keyed by employee name
// =============================================================================

// EmployeeStore persists schedule configs. The employee name is the key.
type EmployeeStore interface {
	// SaveEmployee inserts or replaces the employee's schedule config.
	SaveEmployee(ctx context.Context, cfg ScheduleConfig) error

	// GetEmployee returns the schedule config for an employee, or
	// ErrConfigMissing.
	GetEmployee(ctx context.Context, name string) (*ScheduleConfig, error)

	// ListEmployees returns all schedule configs ordered by name.
	ListEmployees(ctx context.Context) ([]ScheduleConfig, error)

	// DeleteEmployee removes the employee's schedule config.
	DeleteEmployee(ctx context.Context, name string) error
}
