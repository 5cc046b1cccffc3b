/*
Package sqlite provides a SQLite-backed implementation of the timesheet
storage interfaces.

PURPOSE:
  Implements timesheet.RecordStore and timesheet.EmployeeStore using
  SQLite. In production the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

KEY TABLES:
  employees:       Schedule configs, keyed by employee name
  punch_records:   Immutable clock events
  absence_records: Justifications with approval lifecycle

APPROVAL ATOMICITY:
  The pending check and the status write are one guarded UPDATE:

    UPDATE absence_records SET status = ... WHERE id = ? AND status = 'Pendente'

  Of two concurrent approvals of the same record, exactly one UPDATE
  affects a row; the loser gets ErrInvalidTransition. A concurrent
  report read sees the record fully before or fully after the
  transition, never in between.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the single writer.

USAGE:
  store, err := sqlite.New("./data/ponto.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - timesheet/store.go:        Interface definitions
  - timesheet/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pontual/timesheet-engine/timesheet"
)

// Store implements the timesheet storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var (
	_ timesheet.RecordStore   = (*Store)(nil)
	_ timesheet.EmployeeStore = (*Store)(nil)
)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Employees (schedule configs, keyed by name)
	CREATE TABLE IF NOT EXISTS employees (
		name TEXT PRIMARY KEY,
		variant TEXT NOT NULL,
		std_entry TEXT NOT NULL,
		std_lunch_out TEXT NOT NULL,
		std_lunch_in TEXT NOT NULL,
		std_exit TEXT NOT NULL,
		red_entry TEXT NOT NULL,
		red_lunch_out TEXT NOT NULL,
		red_lunch_in TEXT NOT NULL,
		red_exit TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Punch records (immutable clock events)
	CREATE TABLE IF NOT EXISTS punch_records (
		id TEXT PRIMARY KEY,
		employee_name TEXT NOT NULL,
		punch_type TEXT NOT NULL,
		timestamp TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_punches_employee_time
		ON punch_records(employee_name, timestamp);

	-- Absence records (justifications with approval lifecycle)
	CREATE TABLE IF NOT EXISTS absence_records (
		id TEXT PRIMARY KEY,
		employee_name TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		justification TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pendente',
		credited_hours TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_absences_employee_time
		ON absence_records(employee_name, timestamp);
	CREATE INDEX IF NOT EXISTS idx_absences_status
		ON absence_records(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Timestamps are stored as fixed-width UTC strings so lexicographic
// comparison matches chronological order down to the nanosecond.
// RFC3339Nano would trim trailing zeros and break TEXT ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func encodeTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func decodeTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }

// =============================================================================
// RECORD STORE - punches
// =============================================================================

func (s *Store) AppendPunch(ctx context.Context, rec timesheet.PunchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO punch_records (id, employee_name, punch_type, timestamp) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.EmployeeName, string(rec.Type), encodeTime(rec.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to append punch: %w", err)
	}
	return nil
}

func (s *Store) PunchesFor(ctx context.Context, employee string, from, to time.Time) ([]timesheet.PunchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_name, punch_type, timestamp
		 FROM punch_records
		 WHERE employee_name = ? AND timestamp >= ? AND timestamp <= ?
		 ORDER BY timestamp ASC`,
		employee, encodeTime(from), encodeTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []timesheet.PunchRecord
	for rows.Next() {
		var rec timesheet.PunchRecord
		var punchType, ts string
		if err := rows.Scan(&rec.ID, &rec.EmployeeName, &punchType, &ts); err != nil {
			return nil, err
		}
		rec.Type = timesheet.PunchType(punchType)
		if rec.Timestamp, err = decodeTime(ts); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// =============================================================================
// RECORD STORE - absences
// =============================================================================

func (s *Store) AppendAbsence(ctx context.Context, rec timesheet.AbsenceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := rec.Status
	if status == "" {
		status = timesheet.StatusPending
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO absence_records (id, employee_name, timestamp, justification, status, credited_hours, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.EmployeeName, encodeTime(rec.Timestamp), rec.Justification,
		string(status), rec.CreditedHours, encodeTime(rec.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to append absence: %w", err)
	}
	return nil
}

func (s *Store) AbsencesFor(ctx context.Context, employee string, from, to time.Time) ([]timesheet.AbsenceRecord, error) {
	return s.queryAbsences(ctx,
		`SELECT id, employee_name, timestamp, justification, status, credited_hours
		 FROM absence_records
		 WHERE employee_name = ? AND timestamp >= ? AND timestamp <= ?
		 ORDER BY timestamp ASC`,
		employee, encodeTime(from), encodeTime(to))
}

func (s *Store) PendingAbsences(ctx context.Context) ([]timesheet.AbsenceRecord, error) {
	return s.queryAbsences(ctx,
		`SELECT id, employee_name, timestamp, justification, status, credited_hours
		 FROM absence_records
		 WHERE status = ?
		 ORDER BY timestamp ASC`,
		string(timesheet.StatusPending))
}

func (s *Store) GetAbsence(ctx context.Context, id string) (*timesheet.AbsenceRecord, error) {
	records, err := s.queryAbsences(ctx,
		`SELECT id, employee_name, timestamp, justification, status, credited_hours
		 FROM absence_records WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, timesheet.ErrRecordNotFound
	}
	return &records[0], nil
}

func (s *Store) queryAbsences(ctx context.Context, query string, args ...any) ([]timesheet.AbsenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []timesheet.AbsenceRecord
	for rows.Next() {
		var rec timesheet.AbsenceRecord
		var status, ts string
		if err := rows.Scan(&rec.ID, &rec.EmployeeName, &ts, &rec.Justification, &status, &rec.CreditedHours); err != nil {
			return nil, err
		}
		rec.Status = timesheet.Status(status)
		if rec.Timestamp, err = decodeTime(ts); err != nil {
			return nil, err
		}
		result = append(result, rec)
	}
	return result, rows.Err()
}

// ApproveAbsence validates the credited value first, then applies the
// transition with a guarded UPDATE so the pending check and the write are
// atomic per record.
func (s *Store) ApproveAbsence(ctx context.Context, id, creditedHours string) (*timesheet.AbsenceRecord, error) {
	if _, err := timesheet.ParseClock(creditedHours); err != nil {
		return nil, timesheet.ErrInvalidInput
	}
	return s.transition(ctx, id,
		`UPDATE absence_records
		 SET status = ?, credited_hours = ?, updated_at = ?
		 WHERE id = ? AND status = ?`,
		string(timesheet.StatusApproved), creditedHours, encodeTime(time.Now()),
		id, string(timesheet.StatusPending))
}

func (s *Store) RejectAbsence(ctx context.Context, id string) (*timesheet.AbsenceRecord, error) {
	return s.transition(ctx, id,
		`UPDATE absence_records
		 SET status = ?, credited_hours = '', updated_at = ?
		 WHERE id = ? AND status = ?`,
		string(timesheet.StatusRejected), encodeTime(time.Now()),
		id, string(timesheet.StatusPending))
}

func (s *Store) transition(ctx context.Context, id, query string, args ...any) (*timesheet.AbsenceRecord, error) {
	s.mu.Lock()

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	affected, err := res.RowsAffected()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	rec, getErr := s.GetAbsence(ctx, id)
	if affected == 0 {
		if getErr != nil {
			return nil, timesheet.ErrRecordNotFound
		}
		// Record exists but was no longer pending: the transition lost.
		return nil, &timesheet.TransitionError{RecordID: id, Status: rec.Status}
	}
	return rec, getErr
}

// =============================================================================
// RECORD STORE - dashboard queries
// =============================================================================

func (s *Store) RecentActivity(ctx context.Context, limit int) ([]timesheet.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, employee_name, 'ponto' AS kind, punch_type, '' AS status, timestamp FROM punch_records
		 UNION ALL
		 SELECT id, employee_name, 'ausencia' AS kind, '' AS punch_type, status, timestamp FROM absence_records
		 ORDER BY timestamp DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feed []timesheet.Activity
	for rows.Next() {
		var a timesheet.Activity
		var kind, punchType, status, ts string
		if err := rows.Scan(&a.ID, &a.EmployeeName, &kind, &punchType, &status, &ts); err != nil {
			return nil, err
		}
		a.Kind = timesheet.ActivityKind(kind)
		a.PunchType = timesheet.PunchType(punchType)
		a.Status = timesheet.Status(status)
		if a.Timestamp, err = decodeTime(ts); err != nil {
			return nil, err
		}
		feed = append(feed, a)
	}
	return feed, rows.Err()
}

func (s *Store) CountOnDay(ctx context.Context, day time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from, to := dayBounds(day)
	var punches, absences int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM punch_records WHERE timestamp >= ? AND timestamp <= ?`,
		from, to).Scan(&punches)
	if err != nil {
		return 0, err
	}
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM absence_records WHERE timestamp >= ? AND timestamp <= ?`,
		from, to).Scan(&absences)
	if err != nil {
		return 0, err
	}
	return punches + absences, nil
}

func (s *Store) CountPending(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM absence_records WHERE status = ?`,
		string(timesheet.StatusPending)).Scan(&count)
	return count, err
}

func dayBounds(day time.Time) (string, string) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return encodeTime(start), encodeTime(end)
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

func (s *Store) SaveEmployee(ctx context.Context, cfg timesheet.ScheduleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (name, variant,
			std_entry, std_lunch_out, std_lunch_in, std_exit,
			red_entry, red_lunch_out, red_lunch_in, red_exit, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			variant = excluded.variant,
			std_entry = excluded.std_entry,
			std_lunch_out = excluded.std_lunch_out,
			std_lunch_in = excluded.std_lunch_in,
			std_exit = excluded.std_exit,
			red_entry = excluded.red_entry,
			red_lunch_out = excluded.red_lunch_out,
			red_lunch_in = excluded.red_lunch_in,
			red_exit = excluded.red_exit`,
		cfg.EmployeeName, string(cfg.Variant),
		cfg.Standard.Entry, cfg.Standard.LunchOut, cfg.Standard.LunchIn, cfg.Standard.Exit,
		cfg.Reduced.Entry, cfg.Reduced.LunchOut, cfg.Reduced.LunchIn, cfg.Reduced.Exit,
		encodeTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (s *Store) GetEmployee(ctx context.Context, name string) (*timesheet.ScheduleConfig, error) {
	configs, err := s.queryEmployees(ctx,
		`SELECT name, variant,
			std_entry, std_lunch_out, std_lunch_in, std_exit,
			red_entry, red_lunch_out, red_lunch_in, red_exit
		 FROM employees WHERE name = ?`, name)
	if err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, timesheet.ErrConfigMissing
	}
	return &configs[0], nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]timesheet.ScheduleConfig, error) {
	return s.queryEmployees(ctx,
		`SELECT name, variant,
			std_entry, std_lunch_out, std_lunch_in, std_exit,
			red_entry, red_lunch_out, red_lunch_in, red_exit
		 FROM employees ORDER BY name ASC`)
}

func (s *Store) DeleteEmployee(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE name = ?`, name)
	return err
}

func (s *Store) queryEmployees(ctx context.Context, query string, args ...any) ([]timesheet.ScheduleConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []timesheet.ScheduleConfig
	for rows.Next() {
		var cfg timesheet.ScheduleConfig
		var variant string
		if err := rows.Scan(&cfg.EmployeeName, &variant,
			&cfg.Standard.Entry, &cfg.Standard.LunchOut, &cfg.Standard.LunchIn, &cfg.Standard.Exit,
			&cfg.Reduced.Entry, &cfg.Reduced.LunchOut, &cfg.Reduced.LunchIn, &cfg.Reduced.Exit); err != nil {
			return nil, err
		}
		cfg.Variant = timesheet.ScheduleVariant(variant)
		result = append(result, cfg)
	}
	return result, rows.Err()
}
