/*
approval.go - Absence justification approval state machine

PURPOSE:
  Governs the lifecycle of an absence justification:

    Pendente -> Aprovado (carries credited "HH:MM" hours)
    Pendente -> Rejeitado

  Both outcomes are terminal; no record ever transitions away from them.

VALIDATE-THEN-COMMIT:
  Approve validates the credited-hours string BEFORE any state change.
  A malformed value fails with ErrInvalidInput and the record is
  returned untouched.

CONCURRENCY:
  These are pure functions over record values. The atomicity guarantee -
  two concurrent attempts on the same record yield exactly one success
  and one ErrInvalidTransition, and a concurrent report read never
  observes a half-applied transition - is enforced by the stores, which
  apply the pending check and the write as one atomic unit per record.

SEE ALSO:
  - store.go:            RecordStore approval contract
  - store/memory.go:     Mutex-held check-and-set
  - store/sqlite:        Guarded UPDATE (status = 'Pendente')
*/
package timesheet

// Approve transitions a pending record to Aprovado with the given credited
// "HH:MM" hours, returning the transitioned copy. Fails with a
// TransitionError if the record is not pending, or ErrInvalidInput if the
// credited-hours string is malformed; in both cases rec is unchanged.
func Approve(rec AbsenceRecord, creditedHours string) (AbsenceRecord, error) {
	if _, err := ParseClock(creditedHours); err != nil {
		return rec, ErrInvalidInput
	}
	if rec.Status != StatusPending {
		return rec, &TransitionError{RecordID: rec.ID, Status: rec.Status}
	}
	rec.Status = StatusApproved
	rec.CreditedHours = creditedHours
	return rec, nil
}

// Reject transitions a pending record to Rejeitado, leaving credited hours
// unset. Fails with a TransitionError if the record is not pending.
func Reject(rec AbsenceRecord) (AbsenceRecord, error) {
	if rec.Status != StatusPending {
		return rec, &TransitionError{RecordID: rec.ID, Status: rec.Status}
	}
	rec.Status = StatusRejected
	rec.CreditedHours = ""
	return rec, nil
}
