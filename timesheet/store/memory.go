// Package store provides in-memory implementations of the timesheet
// persistence interfaces, for tests and development.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pontual/timesheet-engine/timesheet"
)

// =============================================================================
// MEMORY STORE - In-memory RecordStore + EmployeeStore
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	punches   []timesheet.PunchRecord
	absences  map[string]*timesheet.AbsenceRecord
	absOrder  []string // absence IDs in submission order
	employees map[string]timesheet.ScheduleConfig
}

func NewMemory() *Memory {
	return &Memory{
		absences:  make(map[string]*timesheet.AbsenceRecord),
		employees: make(map[string]timesheet.ScheduleConfig),
	}
}

var (
	_ timesheet.RecordStore   = (*Memory)(nil)
	_ timesheet.EmployeeStore = (*Memory)(nil)
)

// =============================================================================
// RECORD STORE
// =============================================================================

func (m *Memory) AppendPunch(_ context.Context, rec timesheet.PunchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.punches = append(m.punches, rec)
	return nil
}

func (m *Memory) AppendAbsence(_ context.Context, rec timesheet.AbsenceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := rec
	m.absences[rec.ID] = &cp
	m.absOrder = append(m.absOrder, rec.ID)
	return nil
}

func (m *Memory) PunchesFor(_ context.Context, employee string, from, to time.Time) ([]timesheet.PunchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []timesheet.PunchRecord
	for _, r := range m.punches {
		if r.EmployeeName == employee && inRange(r.Timestamp, from, to) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *Memory) AbsencesFor(_ context.Context, employee string, from, to time.Time) ([]timesheet.AbsenceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []timesheet.AbsenceRecord
	for _, id := range m.absOrder {
		r := m.absences[id]
		if r.EmployeeName == employee && inRange(r.Timestamp, from, to) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *Memory) PendingAbsences(_ context.Context) ([]timesheet.AbsenceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []timesheet.AbsenceRecord
	for _, id := range m.absOrder {
		if r := m.absences[id]; r.Status == timesheet.StatusPending {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *Memory) GetAbsence(_ context.Context, id string) (*timesheet.AbsenceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.absences[id]
	if !ok {
		return nil, timesheet.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

// ApproveAbsence applies the pending check and the write under one lock
// hold, so concurrent attempts on the same record see exactly one winner
// and readers never observe a half-applied transition.
func (m *Memory) ApproveAbsence(_ context.Context, id, creditedHours string) (*timesheet.AbsenceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.absences[id]
	if !ok {
		return nil, timesheet.ErrRecordNotFound
	}
	updated, err := timesheet.Approve(*r, creditedHours)
	if err != nil {
		return nil, err
	}
	*r = updated
	cp := updated
	return &cp, nil
}

func (m *Memory) RejectAbsence(_ context.Context, id string) (*timesheet.AbsenceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.absences[id]
	if !ok {
		return nil, timesheet.ErrRecordNotFound
	}
	updated, err := timesheet.Reject(*r)
	if err != nil {
		return nil, err
	}
	*r = updated
	cp := updated
	return &cp, nil
}

func (m *Memory) RecentActivity(_ context.Context, limit int) ([]timesheet.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var feed []timesheet.Activity
	for _, r := range m.punches {
		feed = append(feed, timesheet.Activity{
			ID:           r.ID,
			EmployeeName: r.EmployeeName,
			Kind:         timesheet.ActivityPunch,
			PunchType:    r.Type,
			Timestamp:    r.Timestamp,
		})
	}
	for _, id := range m.absOrder {
		r := m.absences[id]
		feed = append(feed, timesheet.Activity{
			ID:           r.ID,
			EmployeeName: r.EmployeeName,
			Kind:         timesheet.ActivityAbsence,
			Status:       r.Status,
			Timestamp:    r.Timestamp,
		})
	}
	sort.SliceStable(feed, func(i, j int) bool { return feed[i].Timestamp.After(feed[j].Timestamp) })
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

func (m *Memory) CountOnDay(_ context.Context, day time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := timesheet.DayKey(day)
	count := 0
	for _, r := range m.punches {
		if timesheet.DayKey(r.Timestamp) == key {
			count++
		}
	}
	for _, id := range m.absOrder {
		if timesheet.DayKey(m.absences[id].Timestamp) == key {
			count++
		}
	}
	return count, nil
}

func (m *Memory) CountPending(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, r := range m.absences {
		if r.Status == timesheet.StatusPending {
			count++
		}
	}
	return count, nil
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

func (m *Memory) SaveEmployee(_ context.Context, cfg timesheet.ScheduleConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[cfg.EmployeeName] = cfg
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, name string) (*timesheet.ScheduleConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.employees[name]
	if !ok {
		return nil, timesheet.ErrConfigMissing
	}
	return &cfg, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]timesheet.ScheduleConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]timesheet.ScheduleConfig, 0, len(m.employees))
	for _, cfg := range m.employees {
		result = append(result, cfg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EmployeeName < result[j].EmployeeName })
	return result, nil
}

func (m *Memory) DeleteEmployee(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.employees, name)
	return nil
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
