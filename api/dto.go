/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/pontual/timesheet-engine/timesheet"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// WindowDTO carries the four "HH:MM" values of a schedule window.
type WindowDTO struct {
	Entry    string `json:"entry"`
	LunchOut string `json:"lunch_out"`
	LunchIn  string `json:"lunch_in"`
	Exit     string `json:"exit"`
}

// EmployeeDTO represents an employee's schedule config in API responses.
type EmployeeDTO struct {
	Name     string    `json:"name"`
	Variant  string    `json:"variant"`
	Standard WindowDTO `json:"standard_window"`
	Reduced  WindowDTO `json:"reduced_window"`
}

// SaveEmployeeRequest creates or updates an employee. Omitted windows fall
// back to the seeded defaults.
type SaveEmployeeRequest struct {
	Name     string     `json:"name"`
	Variant  string     `json:"variant"`
	Standard *WindowDTO `json:"standard_window,omitempty"`
	Reduced  *WindowDTO `json:"reduced_window,omitempty"`
}

// SubmitPunchRequest submits one clock event. The timestamp is assigned by
// the server, never by the client.
type SubmitPunchRequest struct {
	EmployeeName string `json:"employee_name"`
	PunchType    string `json:"punch_type"`
}

// SubmitAbsenceRequest submits one absence justification.
type SubmitAbsenceRequest struct {
	EmployeeName  string `json:"employee_name"`
	Justification string `json:"justification"`
}

// AbsenceDTO represents an absence record in API responses.
type AbsenceDTO struct {
	ID            string `json:"id"`
	EmployeeName  string `json:"employee_name"`
	SubmittedAt   string `json:"submitted_at"`
	Justification string `json:"justification"`
	Status        string `json:"status"`
	CreditedHours string `json:"credited_hours,omitempty"`
}

// PunchDTO represents a punch record in API responses.
type PunchDTO struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employee_name"`
	PunchType    string `json:"punch_type"`
	Timestamp    string `json:"timestamp"`
}

// ApproveAbsenceRequest carries the credited hours for an approval.
type ApproveAbsenceRequest struct {
	CreditedHours string `json:"credited_hours"`
}

// ReportDayDTO is one row of the mirror report. Clock times are "HH:MM"
// display strings; missing punches are empty. All hour quantities also
// travel pre-formatted as signed "HH:MM" for display.
type ReportDayDTO struct {
	Date         string `json:"date"`
	Weekday      string `json:"weekday"`
	WeekendOrOff bool   `json:"weekend_or_off"`

	Entry    string `json:"entry,omitempty"`
	LunchOut string `json:"lunch_out,omitempty"`
	LunchIn  string `json:"lunch_in,omitempty"`
	Exit     string `json:"exit,omitempty"`

	Worked   float64 `json:"worked"`
	Credited float64 `json:"credited"`
	Expected float64 `json:"expected"`
	Balance  float64 `json:"balance"`

	WorkedClock  string `json:"worked_clock"`
	BalanceClock string `json:"balance_clock"`

	Counts bool `json:"counts_toward_total"`
}

// ReportDTO is the monthly mirror report plus the schedule display data.
type ReportDTO struct {
	EmployeeName string         `json:"employee_name"`
	Year         int            `json:"year"`
	Month        int            `json:"month"` // 1-12 as requested
	Variant      string         `json:"variant"`
	Standard     WindowDTO      `json:"standard_window"`
	Reduced      WindowDTO      `json:"reduced_window"`
	Days         []ReportDayDTO `json:"days"`
	Total        float64        `json:"total_balance"`
	TotalClock   string         `json:"total_balance_clock"`
	Warnings     []WarningDTO   `json:"warnings,omitempty"`
}

// WarningDTO reports a degraded day in a lenient-mode report.
type WarningDTO struct {
	Date    string `json:"date"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ActivityDTO is one row of the dashboard feed.
type ActivityDTO struct {
	ID           string `json:"id"`
	EmployeeName string `json:"employee_name"`
	Kind         string `json:"kind"`
	PunchType    string `json:"punch_type,omitempty"`
	Status       string `json:"status,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// DashboardDTO is the manager overview.
type DashboardDTO struct {
	RecordsToday  int           `json:"records_today"`
	EmployeeCount int           `json:"employee_count"`
	PendingCount  int           `json:"pending_count"`
	Recent        []ActivityDTO `json:"recent"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toWindowDTO(w timesheet.TimeWindow) WindowDTO {
	return WindowDTO{Entry: w.Entry, LunchOut: w.LunchOut, LunchIn: w.LunchIn, Exit: w.Exit}
}

func toWindow(w WindowDTO) timesheet.TimeWindow {
	return timesheet.TimeWindow{Entry: w.Entry, LunchOut: w.LunchOut, LunchIn: w.LunchIn, Exit: w.Exit}
}

func toEmployeeDTO(cfg timesheet.ScheduleConfig) EmployeeDTO {
	return EmployeeDTO{
		Name:     cfg.EmployeeName,
		Variant:  string(cfg.Variant),
		Standard: toWindowDTO(cfg.Standard),
		Reduced:  toWindowDTO(cfg.Reduced),
	}
}

func toAbsenceDTO(rec timesheet.AbsenceRecord) AbsenceDTO {
	return AbsenceDTO{
		ID:            rec.ID,
		EmployeeName:  rec.EmployeeName,
		SubmittedAt:   rec.Timestamp.Format(time.RFC3339),
		Justification: rec.Justification,
		Status:        string(rec.Status),
		CreditedHours: rec.CreditedHours,
	}
}

func toPunchDTO(rec timesheet.PunchRecord) PunchDTO {
	return PunchDTO{
		ID:           rec.ID,
		EmployeeName: rec.EmployeeName,
		PunchType:    string(rec.Type),
		Timestamp:    rec.Timestamp.Format(time.RFC3339),
	}
}

func clockOf(rec *timesheet.PunchRecord) string {
	if rec == nil {
		return ""
	}
	return rec.Timestamp.Format("15:04")
}

func toReportDTO(cfg timesheet.ScheduleConfig, report timesheet.MonthlyReport) ReportDTO {
	dto := ReportDTO{
		EmployeeName: report.EmployeeName,
		Year:         report.Year,
		Month:        report.Month + 1,
		Variant:      string(cfg.Variant),
		Standard:     toWindowDTO(cfg.Standard),
		Reduced:      toWindowDTO(cfg.Reduced),
		Total:        report.Total.Float64(),
		TotalClock:   timesheet.FormatClock(report.Total),
	}
	for _, day := range report.Days {
		dto.Days = append(dto.Days, ReportDayDTO{
			Date:         timesheet.DayKey(day.Date),
			Weekday:      day.Weekday.String(),
			WeekendOrOff: day.WeekendOrOff,
			Entry:        clockOf(day.Punches.Get(timesheet.PunchEntry)),
			LunchOut:     clockOf(day.Punches.Get(timesheet.PunchLunchOut)),
			LunchIn:      clockOf(day.Punches.Get(timesheet.PunchLunchIn)),
			Exit:         clockOf(day.Punches.Get(timesheet.PunchExit)),
			Worked:       day.Worked.Float64(),
			Credited:     day.Credited.Float64(),
			Expected:     day.Expected.Float64(),
			Balance:      day.Balance.Float64(),
			WorkedClock:  timesheet.FormatClock(day.Worked),
			BalanceClock: timesheet.FormatClock(day.Balance),
			Counts:       day.CountsTowardTotal,
		})
	}
	for _, w := range report.Warnings {
		dto.Warnings = append(dto.Warnings, WarningDTO{
			Date:    timesheet.DayKey(w.Date),
			Code:    w.Code,
			Message: w.Message,
		})
	}
	return dto
}

func toActivityDTO(a timesheet.Activity) ActivityDTO {
	return ActivityDTO{
		ID:           a.ID,
		EmployeeName: a.EmployeeName,
		Kind:         string(a.Kind),
		PunchType:    string(a.PunchType),
		Status:       string(a.Status),
		Timestamp:    a.Timestamp.Format(time.RFC3339),
	}
}
