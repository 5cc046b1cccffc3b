package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pontual/timesheet-engine/store/sqlite"
	"github.com/pontual/timesheet-engine/timesheet"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func punch(id, employee string, typ timesheet.PunchType, ts time.Time) timesheet.PunchRecord {
	return timesheet.PunchRecord{ID: id, EmployeeName: employee, Type: typ, Timestamp: ts}
}

func absence(id, employee string, ts time.Time) timesheet.AbsenceRecord {
	return timesheet.AbsenceRecord{
		ID:            id,
		EmployeeName:  employee,
		Timestamp:     ts,
		Justification: "Atestado médico",
		Status:        timesheet.StatusPending,
	}
}

// =============================================================================
// PUNCH TESTS
// =============================================================================

func TestSQLite_PunchRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2025, time.June, 3, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendPunch(ctx, punch("p-1", "ana", timesheet.PunchEntry, ts)))

	from, to := timesheet.MonthRange(2025, 5)
	got, err := store.PunchesFor(ctx, "ana", from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-1", got[0].ID)
	assert.Equal(t, timesheet.PunchEntry, got[0].Type)
	assert.True(t, ts.Equal(got[0].Timestamp))
}

func TestSQLite_PunchRangeAndEmployeeFiltering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	june := time.Date(2025, time.June, 3, 8, 0, 0, 0, time.UTC)
	july := time.Date(2025, time.July, 3, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendPunch(ctx, punch("p-1", "ana", timesheet.PunchEntry, june)))
	require.NoError(t, store.AppendPunch(ctx, punch("p-2", "ana", timesheet.PunchEntry, july)))
	require.NoError(t, store.AppendPunch(ctx, punch("p-3", "bruno", timesheet.PunchEntry, june)))

	from, to := timesheet.MonthRange(2025, 5)
	got, err := store.PunchesFor(ctx, "ana", from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p-1", got[0].ID)
}

func TestSQLite_PunchesOrderedByTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendPunch(ctx, punch("p-exit", "ana", timesheet.PunchExit, day.Add(18*time.Hour))))
	require.NoError(t, store.AppendPunch(ctx, punch("p-entry", "ana", timesheet.PunchEntry, day.Add(8*time.Hour))))

	from, to := timesheet.MonthRange(2025, 5)
	got, err := store.PunchesFor(ctx, "ana", from, to)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p-entry", got[0].ID)
	assert.Equal(t, "p-exit", got[1].ID)
}

func TestSQLite_FractionalSecondTimestamps(t *testing.T) {
	// GIVEN: Records with sub-second timestamps
	// WHEN: Range-filtering and ordering by the stored TEXT column
	// THEN: They filter and sort exactly like whole-second records

	store := newTestStore(t)
	ctx := context.Background()

	// First half-second of the month: must belong to the monthly snapshot.
	firstInstant := time.Date(2025, time.June, 1, 0, 0, 0, 500_000_000, time.UTC)
	require.NoError(t, store.AppendPunch(ctx, punch("p-first", "ana", timesheet.PunchEntry, firstInstant)))

	from, to := timesheet.MonthRange(2025, 5)
	got, err := store.PunchesFor(ctx, "ana", from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, firstInstant.Equal(got[0].Timestamp))

	// Same-second records keep chronological order regardless of how many
	// fractional digits each carries.
	base := time.Date(2025, time.June, 3, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendPunch(ctx, punch("p-later", "ana", timesheet.PunchEntry, base.Add(510*time.Millisecond))))
	require.NoError(t, store.AppendPunch(ctx, punch("p-earlier", "ana", timesheet.PunchEntry, base.Add(500*time.Millisecond))))

	got, err = store.PunchesFor(ctx, "ana", from, to)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "p-earlier", got[1].ID)
	assert.Equal(t, "p-later", got[2].ID)

	count, err := store.CountOnDay(ctx, firstInstant)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

// =============================================================================
// ABSENCE AND APPROVAL TESTS
// =============================================================================

func TestSQLite_AbsenceLifecycle(t *testing.T) {
	// GIVEN: A pending absence
	// WHEN: Approving it with credited hours
	// THEN: Status and credit persist; the record leaves the pending queue

	store := newTestStore(t)
	ctx := context.Background()
	ts := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendAbsence(ctx, absence("abs-1", "ana", ts)))

	pending, err := store.PendingAbsences(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	rec, err := store.ApproveAbsence(ctx, "abs-1", "08:00")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusApproved, rec.Status)
	assert.Equal(t, "08:00", rec.CreditedHours)

	pending, err = store.PendingAbsences(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	from, to := timesheet.MonthRange(2025, 5)
	stored, err := store.AbsencesFor(ctx, "ana", from, to)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, timesheet.StatusApproved, stored[0].Status)
}

func TestSQLite_ApproveTwice_SecondLoses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ts := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendAbsence(ctx, absence("abs-1", "ana", ts)))

	_, err := store.ApproveAbsence(ctx, "abs-1", "08:00")
	require.NoError(t, err)

	_, err = store.ApproveAbsence(ctx, "abs-1", "04:00")
	assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)

	var transErr *timesheet.TransitionError
	require.True(t, errors.As(err, &transErr))
	assert.Equal(t, timesheet.StatusApproved, transErr.Status)

	// The losing attempt must not have overwritten the credit.
	rec, err := store.GetAbsence(ctx, "abs-1")
	require.NoError(t, err)
	assert.Equal(t, "08:00", rec.CreditedHours)
}

func TestSQLite_RejectClearsCredit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ts := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendAbsence(ctx, absence("abs-1", "ana", ts)))

	rec, err := store.RejectAbsence(ctx, "abs-1")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusRejected, rec.Status)
	assert.Empty(t, rec.CreditedHours)

	_, err = store.ApproveAbsence(ctx, "abs-1", "08:00")
	assert.ErrorIs(t, err, timesheet.ErrInvalidTransition)
}

func TestSQLite_ApproveValidatesBeforeWriting(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	ts := time.Date(2025, time.June, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendAbsence(ctx, absence("abs-1", "ana", ts)))

	_, err := store.ApproveAbsence(ctx, "abs-1", "nope")
	assert.ErrorIs(t, err, timesheet.ErrInvalidInput)

	rec, err := store.GetAbsence(ctx, "abs-1")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusPending, rec.Status, "failed validation must not touch the record")
}

func TestSQLite_UnknownRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetAbsence(ctx, "missing")
	assert.ErrorIs(t, err, timesheet.ErrRecordNotFound)

	_, err = store.ApproveAbsence(ctx, "missing", "08:00")
	assert.ErrorIs(t, err, timesheet.ErrRecordNotFound)

	_, err = store.RejectAbsence(ctx, "missing")
	assert.ErrorIs(t, err, timesheet.ErrRecordNotFound)
}

// =============================================================================
// DASHBOARD QUERY TESTS
// =============================================================================

func TestSQLite_DashboardQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	day := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendPunch(ctx, punch("p-1", "ana", timesheet.PunchEntry, day.Add(8*time.Hour))))
	require.NoError(t, store.AppendPunch(ctx, punch("p-2", "ana", timesheet.PunchExit, day.Add(18*time.Hour))))
	require.NoError(t, store.AppendAbsence(ctx, absence("abs-1", "bruno", day.Add(9*time.Hour))))
	require.NoError(t, store.AppendAbsence(ctx, absence("abs-2", "bruno", day.AddDate(0, 0, -1))))

	count, err := store.CountOnDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	pending, err := store.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, pending)

	feed, err := store.RecentActivity(ctx, 3)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "p-2", feed[0].ID, "newest first")
	assert.Equal(t, timesheet.ActivityPunch, feed[0].Kind)
}

// =============================================================================
// EMPLOYEE TESTS
// =============================================================================

func TestSQLite_EmployeeUpsertAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	cfg := timesheet.ScheduleConfig{
		EmployeeName: "ana",
		Variant:      timesheet.FiveByTwo,
		Standard:     timesheet.DefaultStandardWindow,
		Reduced:      timesheet.DefaultReducedWindow,
	}
	require.NoError(t, store.SaveEmployee(ctx, cfg))

	got, err := store.GetEmployee(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, cfg, *got)

	cfg.Variant = timesheet.TwelveByThirtySix
	cfg.Standard.Exit = "20:00"
	require.NoError(t, store.SaveEmployee(ctx, cfg))

	got, err = store.GetEmployee(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, timesheet.TwelveByThirtySix, got.Variant)
	assert.Equal(t, "20:00", got.Standard.Exit)

	require.NoError(t, store.DeleteEmployee(ctx, "ana"))
	_, err = store.GetEmployee(ctx, "ana")
	assert.ErrorIs(t, err, timesheet.ErrConfigMissing)
}

func TestSQLite_ListEmployeesOrderedByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"carla", "ana", "bruno"} {
		require.NoError(t, store.SaveEmployee(ctx, timesheet.ScheduleConfig{
			EmployeeName: name,
			Variant:      timesheet.FiveByTwo,
			Standard:     timesheet.DefaultStandardWindow,
			Reduced:      timesheet.DefaultReducedWindow,
		}))
	}

	list, err := store.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ana", list[0].EmployeeName)
	assert.Equal(t, "carla", list[2].EmployeeName)
}

// =============================================================================
// END-TO-END: STORE SNAPSHOT FEEDS THE ENGINE
// =============================================================================

func TestSQLite_SnapshotDrivesReport(t *testing.T) {
	// GIVEN: A month of records persisted in SQLite
	// WHEN: Loading the snapshot and computing the report
	// THEN: The engine sees exactly the month's records

	store := newTestStore(t)
	ctx := context.Background()

	cfg := timesheet.ScheduleConfig{
		EmployeeName: "ana",
		Variant:      timesheet.FiveByTwo,
		Standard:     timesheet.DefaultStandardWindow,
		Reduced:      timesheet.DefaultReducedWindow,
	}
	require.NoError(t, store.SaveEmployee(ctx, cfg))

	tuesday := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.AppendPunch(ctx, punch("p-1", "ana", timesheet.PunchEntry, tuesday.Add(8*time.Hour))))
	require.NoError(t, store.AppendPunch(ctx, punch("p-2", "ana", timesheet.PunchLunchOut, tuesday.Add(12*time.Hour))))
	require.NoError(t, store.AppendPunch(ctx, punch("p-3", "ana", timesheet.PunchLunchIn, tuesday.Add(13*time.Hour))))
	require.NoError(t, store.AppendPunch(ctx, punch("p-4", "ana", timesheet.PunchExit, tuesday.Add(18*time.Hour))))

	require.NoError(t, store.AppendAbsence(ctx, absence("abs-1", "ana", tuesday.AddDate(0, 0, 1).Add(9*time.Hour))))
	_, err := store.ApproveAbsence(ctx, "abs-1", "08:00")
	require.NoError(t, err)

	from, to := timesheet.MonthRange(2025, 5)
	punches, err := store.PunchesFor(ctx, "ana", from, to)
	require.NoError(t, err)
	absences, err := store.AbsencesFor(ctx, "ana", from, to)
	require.NoError(t, err)

	report, err := timesheet.ComputeMonthlyReport(cfg, punches, absences, 2025, 5, timesheet.ComputeOptions{})
	require.NoError(t, err)

	assert.InDelta(t, 9, report.Days[2].Worked.Float64(), 1e-9)
	assert.InDelta(t, 8, report.Days[3].Credited.Float64(), 1e-9)
	assert.Empty(t, report.Warnings)
}
