/*
handlers.go - HTTP API handlers for the attendance system

PURPOSE:
  Exposes the reconciliation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine and
  the stores.

ENDPOINTS:
  Employees:
    GET    /api/employees                   List schedule configs
    POST   /api/employees                   Create/update a schedule config
    GET    /api/employees/{name}            Get one schedule config
    DELETE /api/employees/{name}            Remove a schedule config
    GET    /api/employees/{name}/report     Monthly mirror report

  Records:
    POST   /api/punches                     Submit a clock event
    POST   /api/absences                    Submit a justification
    GET    /api/absences/pending            List pending justifications
    POST   /api/absences/{id}/approve       Approve with credited hours
    POST   /api/absences/{id}/reject        Reject

  Dashboard:
    GET    /api/dashboard                   Manager overview

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call engine / store
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, malformed clock strings
  - 404: Unknown employee or record
  - 409: Conflict (approval of a non-pending record)
  - 500: Internal errors

SEE ALSO:
  - dto.go:    Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pontual/timesheet-engine/timesheet"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Records   timesheet.RecordStore
	Employees timesheet.EmployeeStore

	// now assigns server timestamps to submissions; overridable in tests.
	now func() time.Time
}

// NewHandler creates a new handler over the given stores.
func NewHandler(records timesheet.RecordStore, employees timesheet.EmployeeStore) *Handler {
	return &Handler{
		Records:   records,
		Employees: employees,
		now:       time.Now,
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all schedule configs.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	configs, err := h.Employees.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(configs))
	for i, cfg := range configs {
		dtos[i] = toEmployeeDTO(cfg)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SaveEmployee creates or updates a schedule config. Omitted windows fall
// back to the seeded defaults; both windows are always populated.
func (h *Handler) SaveEmployee(w http.ResponseWriter, r *http.Request) {
	var req SaveEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required", nil)
		return
	}
	variant := timesheet.ScheduleVariant(req.Variant)
	if !variant.Known() {
		writeError(w, http.StatusBadRequest, "Unknown schedule variant (use 5x2, 6x1 or 12x36)", nil)
		return
	}

	cfg := timesheet.ScheduleConfig{
		EmployeeName: req.Name,
		Variant:      variant,
		Standard:     timesheet.DefaultStandardWindow,
		Reduced:      timesheet.DefaultReducedWindow,
	}
	if req.Standard != nil {
		cfg.Standard = toWindow(*req.Standard)
	}
	if req.Reduced != nil {
		cfg.Reduced = toWindow(*req.Reduced)
	}

	if err := h.Employees.SaveEmployee(r.Context(), cfg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(cfg))
}

// GetEmployee returns one schedule config.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	cfg, err := h.Employees.GetEmployee(r.Context(), name)
	if err != nil {
		if timesheet.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*cfg))
}

// DeleteEmployee removes a schedule config.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.Employees.DeleteEmployee(r.Context(), name); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RECORD SUBMISSION HANDLERS
// =============================================================================

// SubmitPunch records one clock event with a server-assigned timestamp.
func (h *Handler) SubmitPunch(w http.ResponseWriter, r *http.Request) {
	var req SubmitPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeName == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required", nil)
		return
	}
	punchType := timesheet.PunchType(req.PunchType)
	if !punchType.Known() {
		writeError(w, http.StatusBadRequest, "Unknown punch type (use "+allowedPunchTypes()+")", nil)
		return
	}
	if _, err := h.Employees.GetEmployee(r.Context(), req.EmployeeName); err != nil {
		if timesheet.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to look up employee", err)
		return
	}

	rec := timesheet.PunchRecord{
		ID:           uuid.NewString(),
		EmployeeName: req.EmployeeName,
		Type:         punchType,
		Timestamp:    h.now(),
	}
	if err := h.Records.AppendPunch(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record punch", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPunchDTO(rec))
}

// SubmitAbsence records one justification, created pending.
func (h *Handler) SubmitAbsence(w http.ResponseWriter, r *http.Request) {
	var req SubmitAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeName == "" {
		writeError(w, http.StatusBadRequest, "Employee name is required", nil)
		return
	}
	if req.Justification == "" {
		writeError(w, http.StatusBadRequest, "Justification text is required", nil)
		return
	}
	if _, err := h.Employees.GetEmployee(r.Context(), req.EmployeeName); err != nil {
		if timesheet.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to look up employee", err)
		return
	}

	rec := timesheet.AbsenceRecord{
		ID:            uuid.NewString(),
		EmployeeName:  req.EmployeeName,
		Timestamp:     h.now(),
		Justification: req.Justification,
		Status:        timesheet.StatusPending,
	}
	if err := h.Records.AppendAbsence(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record absence", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAbsenceDTO(rec))
}

// =============================================================================
// REVIEW HANDLERS
// =============================================================================

// ListPendingAbsences returns justifications awaiting review, oldest first.
func (h *Handler) ListPendingAbsences(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Records.PendingAbsences(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list pending absences", err)
		return
	}

	dtos := make([]AbsenceDTO, len(pending))
	for i, rec := range pending {
		dtos[i] = toAbsenceDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ApproveAbsence approves a pending justification with credited hours.
func (h *Handler) ApproveAbsence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ApproveAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.Records.ApproveAbsence(r.Context(), id, req.CreditedHours)
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAbsenceDTO(*rec))
}

// RejectAbsence rejects a pending justification.
func (h *Handler) RejectAbsence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.Records.RejectAbsence(r.Context(), id)
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAbsenceDTO(*rec))
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, timesheet.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "Absence record not found", nil)
	case errors.Is(err, timesheet.ErrInvalidTransition):
		var transErr *timesheet.TransitionError
		if errors.As(err, &transErr) && transErr.Status.Terminal() {
			writeError(w, http.StatusConflict, "Record already decided: "+string(transErr.Status), nil)
			return
		}
		writeError(w, http.StatusConflict, "Record is no longer pending", err)
	case errors.Is(err, timesheet.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Credited hours must be HH:MM", nil)
	default:
		writeError(w, http.StatusInternalServerError, "Failed to update absence", err)
	}
}

// allowedPunchTypes renders the four punch slots for validation messages.
func allowedPunchTypes() string {
	names := make([]string, 0, len(timesheet.PunchTypes))
	for _, t := range timesheet.PunchTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

// =============================================================================
// REPORT HANDLER
// =============================================================================

// GetReport computes the monthly mirror report for one employee.
// Query params: year (e.g. 2025), month (1-12), strict (optional bool).
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid month (use 1-12)", err)
		return
	}
	monthIndex := month - 1
	strict := r.URL.Query().Get("strict") == "true"

	ctx := r.Context()
	cfg, err := h.Employees.GetEmployee(ctx, name)
	if err != nil {
		if timesheet.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}

	from, to := timesheet.MonthRange(year, monthIndex)
	punches, err := h.Records.PunchesFor(ctx, name, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load punches", err)
		return
	}
	absences, err := h.Records.AbsencesFor(ctx, name, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load absences", err)
		return
	}

	report, err := timesheet.ComputeMonthlyReport(*cfg, punches, absences, year, monthIndex,
		timesheet.ComputeOptions{Strict: strict})
	if err != nil {
		if timesheet.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Report computation failed", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Report computation failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toReportDTO(*cfg, report))
}

// =============================================================================
// DASHBOARD HANDLER
// =============================================================================

// Dashboard returns the manager overview: today's submission count,
// employee count, pending count and the recent activity feed.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	today, err := h.Records.CountOnDay(ctx, h.now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count today's records", err)
		return
	}
	pending, err := h.Records.CountPending(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count pending records", err)
		return
	}
	employees, err := h.Employees.ListEmployees(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	recent, err := h.Records.RecentActivity(ctx, 8)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load recent activity", err)
		return
	}

	dto := DashboardDTO{
		RecordsToday:  today,
		EmployeeCount: len(employees),
		PendingCount:  pending,
	}
	for _, a := range recent {
		dto.Recent = append(dto.Recent, toActivityDTO(a))
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
