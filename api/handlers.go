/*
handlers.go - HTTP API handlers for the workforce engine

PURPOSE:
  Exposes the employee, attendance, payroll, vacation and report services
  via REST API. Handles HTTP request/response, JSON serialization, and
  delegates to the domain services.

ENDPOINTS:
  Employees:
    GET    /api/employees                         List (q, status, role, department)
    POST   /api/employees                         Create
    GET    /api/employees/{id}                    Get
    PUT    /api/employees/{id}                    Update profile
    POST   /api/employees/{id}/deactivate         Mark inactive
    POST   /api/employees/{id}/activate           Mark active
    PUT    /api/employees/{id}/settings           Update pay/attendance settings
    GET    /api/employees/{id}/attendance         Records + summary
    POST   /api/employees/{id}/attendance         Record attendance
    GET    /api/employees/{id}/payments           Payments + summary
    POST   /api/employees/{id}/payments           Record payment
    GET    /api/employees/{id}/payroll-progress   Progress for ?month=YYYY-MM
    GET    /api/employees/{id}/vacations          Requests + totals
    POST   /api/employees/{id}/vacations          Submit request
    GET    /api/employees/{id}/vacation-balance   Annual balance for ?year=

  Attendance:
    GET    /api/attendance                        List (q, employee, date, from, to, type)
    GET    /api/attendance/stats                  Daily counts for ?date=

  Payments:
    GET    /api/payments                          List (q, employee, type, status, month)
    GET    /api/payments/stats                    Monthly summary for ?month=
    POST   /api/payments/{id}/mark-paid           pending -> paid

  Vacations:
    GET    /api/vacations                         List (q, employee, type, status)
    GET    /api/vacations/stats                   Counts by status
    POST   /api/vacations/{id}/approve            pending -> approved
    POST   /api/vacations/{id}/reject             pending -> rejected

  Dashboard / Reports / Settings / Admin:
    GET    /api/dashboard                         KPIs for ?date=
    GET    /api/reports                           Available reports
    GET    /api/reports/{type}                    Export ?month=&format=csv|xlsx|json
    GET    /api/settings/work                     Company work schedule
    PUT    /api/settings/work                     Update work schedule
    POST   /api/admin/auto-attendance             Run auto-attendance for ?date=

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors (with per-field messages), invalid input
  - 404: Resource not found
  - 409: Invalid status transition
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo data loader
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/employee"
	"github.com/warp/workforce/payroll"
	"github.com/warp/workforce/report"
	"github.com/warp/workforce/vacation"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      core.Store
	Employees  *employee.Service
	Attendance *attendance.Service
	Payroll    *payroll.Service
	Vacations  *vacation.Service
	Reports    *report.Service

	// Now is the clock used for date defaults ("today", "this month").
	Now func() time.Time

	mu              sync.RWMutex
	currentScenario string
}

// Options tunes the domain rules the handler's services enforce.
type Options struct {
	Policy vacation.Policy
	Rules  attendance.Rules
}

func DefaultOptions() Options {
	return Options{Policy: vacation.DefaultPolicy(), Rules: attendance.DefaultRules()}
}

// NewHandler creates a new handler with services over the given store.
func NewHandler(store core.Store, opts Options) *Handler {
	return &Handler{
		Store:      store,
		Employees:  employee.NewService(store),
		Attendance: attendance.NewService(store, opts.Rules),
		Payroll:    payroll.NewService(store),
		Vacations:  vacation.NewService(store, opts.Policy),
		Reports:    report.NewService(store, opts.Policy),
		Now:        time.Now,
	}
}

func (h *Handler) today() core.Date { return core.DateOf(h.Now()) }

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns employees matching the query filters.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employees, err := h.Employees.List(r.Context(), core.EmployeeFilter{
		Search:     q.Get("q"),
		Status:     core.EmployeeStatus(q.Get("status")),
		Role:       core.Role(q.Get("role")),
		Department: q.Get("department"),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Employees.Get(r.Context(), employeeID(r))
	if err != nil {
		writeDomainError(w, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// CreateEmployee creates a new employee with default settings.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	emp, err := h.Employees.Create(r.Context(), toEmployeeInput(req))
	if err != nil {
		writeDomainError(w, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(*emp))
}

// UpdateEmployee replaces profile fields. Status and settings are untouched.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	emp, err := h.Employees.Update(r.Context(), employeeID(r), toEmployeeInput(req))
	if err != nil {
		writeDomainError(w, "Failed to update employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

func (h *Handler) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Employees.Deactivate(r.Context(), employeeID(r))
	if err != nil {
		writeDomainError(w, "Failed to deactivate employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

func (h *Handler) ActivateEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Employees.Activate(r.Context(), employeeID(r))
	if err != nil {
		writeDomainError(w, "Failed to activate employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// UpdateEmployeeSettings stores new pay and attendance settings.
func (h *Handler) UpdateEmployeeSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	settings, err := toSettings(req)
	if err != nil {
		writeDomainError(w, "Invalid settings", err)
		return
	}
	emp, err := h.Employees.UpdateSettings(r.Context(), employeeID(r), settings)
	if err != nil {
		writeDomainError(w, "Failed to update settings", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp))
}

// =============================================================================
// ATTENDANCE HANDLERS
// =============================================================================

// ListAttendance returns attendance records matching the query filters.
func (h *Handler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := core.NewValidator()
	f := core.AttendanceFilter{
		EmployeeID: core.EmployeeID(q.Get("employee")),
		Search:     q.Get("q"),
		Category:   core.AttendanceCategory(q.Get("type")),
		Date:       optionalDate(v, q.Get("date"), "date"),
		From:       optionalDate(v, q.Get("from"), "from"),
		To:         optionalDate(v, q.Get("to"), "to"),
	}
	if err := v.Err(); err != nil {
		writeDomainError(w, "Invalid query", err)
		return
	}

	records, err := h.Attendance.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list attendance", err)
		return
	}
	writeJSON(w, http.StatusOK, toAttendanceDTOs(records))
}

// GetAttendanceStats returns the day's counts by category.
func (h *Handler) GetAttendanceStats(w http.ResponseWriter, r *http.Request) {
	date, err := h.queryDate(r, "date")
	if err != nil {
		writeDomainError(w, "Invalid query", err)
		return
	}

	stats, err := h.Attendance.DailyStats(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute attendance stats", err)
		return
	}
	writeJSON(w, http.StatusOK, toDailyStatsDTO(stats))
}

// ListEmployeeAttendance returns one employee's records and totals.
func (h *Handler) ListEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	records, summary, err := h.Attendance.ForEmployee(r.Context(), employeeID(r))
	if err != nil {
		writeDomainError(w, "Failed to list attendance", err)
		return
	}
	writeJSON(w, http.StatusOK, EmployeeAttendanceResponse{
		Records: toAttendanceDTOs(records),
		Summary: toAttendanceSummaryDTO(summary),
	})
}

// RecordAttendance records a manual attendance entry.
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	var req AttendanceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.Attendance.Record(r.Context(), employeeID(r), attendance.Input{
		Date:      req.Date,
		Category:  req.Type,
		EntryTime: req.EntryTime,
		ExitTime:  req.ExitTime,
	})
	if err != nil {
		writeDomainError(w, "Failed to record attendance", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAttendanceDTO(*rec))
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// ListPayments returns payments matching the query filters.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := core.PaymentFilter{
		EmployeeID: core.EmployeeID(q.Get("employee")),
		Search:     q.Get("q"),
		Category:   core.PaymentCategory(q.Get("type")),
		Status:     core.PaymentStatus(q.Get("status")),
	}
	if q.Get("month") != "" {
		month, err := h.queryMonth(r, "month")
		if err != nil {
			writeDomainError(w, "Invalid query", err)
			return
		}
		f.Month = &month
	}

	payments, err := h.Payroll.List(r.Context(), f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTOs(payments))
}

// GetPaymentStats returns the month's totals by category.
func (h *Handler) GetPaymentStats(w http.ResponseWriter, r *http.Request) {
	month, err := h.queryMonth(r, "month")
	if err != nil {
		writeDomainError(w, "Invalid query", err)
		return
	}

	summary, err := h.Payroll.MonthlySummary(r.Context(), month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute payment stats", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentSummaryDTO(summary))
}

func (h *Handler) ListEmployeePayments(w http.ResponseWriter, r *http.Request) {
	payments, summary, err := h.Payroll.ForEmployee(r.Context(), employeeID(r))
	if err != nil {
		writeDomainError(w, "Failed to list payments", err)
		return
	}
	writeJSON(w, http.StatusOK, EmployeePaymentsResponse{
		Payments: toPaymentDTOs(payments),
		Summary:  toPaymentSummaryDTO(summary),
	})
}

// RecordPayment records a salary, bonus or deduction.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	p, err := h.Payroll.Record(r.Context(), employeeID(r), payroll.Input{
		Category:    req.Type,
		Amount:      string(req.Amount),
		Date:        req.Date,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeDomainError(w, "Failed to record payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(*p))
}

func (h *Handler) MarkPaymentPaid(w http.ResponseWriter, r *http.Request) {
	p, err := h.Payroll.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to mark payment paid", err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTO(*p))
}

// GetPayrollProgress returns paid-to-date vs monthly salary.
func (h *Handler) GetPayrollProgress(w http.ResponseWriter, r *http.Request) {
	month, err := h.queryMonth(r, "month")
	if err != nil {
		writeDomainError(w, "Invalid query", err)
		return
	}

	progress, err := h.Payroll.Progress(r.Context(), employeeID(r), month)
	if err != nil {
		writeDomainError(w, "Failed to compute payroll progress", err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressDTO(progress))
}

// =============================================================================
// VACATION HANDLERS
// =============================================================================

// ListVacations returns requests matching the query filters.
func (h *Handler) ListVacations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	requests, err := h.Vacations.List(r.Context(), core.VacationFilter{
		EmployeeID: core.EmployeeID(q.Get("employee")),
		Search:     q.Get("q"),
		Type:       core.VacationType(q.Get("type")),
		Status:     core.VacationStatus(q.Get("status")),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list vacations", err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTOs(requests))
}

func (h *Handler) GetVacationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Vacations.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute vacation stats", err)
		return
	}
	writeJSON(w, http.StatusOK, VacationStatsDTO{
		Pending:      stats.Pending,
		Approved:     stats.Approved,
		Rejected:     stats.Rejected,
		ApprovedDays: stats.ApprovedDays,
	})
}

func (h *Handler) ListEmployeeVacations(w http.ResponseWriter, r *http.Request) {
	requests, totals, err := h.Vacations.ForEmployee(r.Context(), employeeID(r))
	if err != nil {
		writeDomainError(w, "Failed to list vacations", err)
		return
	}
	writeJSON(w, http.StatusOK, EmployeeVacationsResponse{
		Vacations:   toVacationDTOs(requests),
		UsedDays:    totals.UsedDays,
		PendingDays: totals.PendingDays,
	})
}

// SubmitVacation files a pending leave request.
func (h *Handler) SubmitVacation(w http.ResponseWriter, r *http.Request) {
	var req VacationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	v, err := h.Vacations.Submit(r.Context(), employeeID(r), vacation.Input{
		Type:      req.Type,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	})
	if err != nil {
		writeDomainError(w, "Failed to submit vacation request", err)
		return
	}
	writeJSON(w, http.StatusCreated, toVacationDTO(*v))
}

// GetVacationBalance returns the annual leave balance for ?year= (default: this year).
func (h *Handler) GetVacationBalance(w http.ResponseWriter, r *http.Request) {
	year := h.today().Year()
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 {
			v := core.NewValidator()
			v.Add("year", core.ErrInvalidValue, "Year must be a positive number")
			writeDomainError(w, "Invalid query", v.Err())
			return
		}
		year = y
	}

	balance, err := h.Vacations.Balance(r.Context(), employeeID(r), year)
	if err != nil {
		writeDomainError(w, "Failed to compute vacation balance", err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceDTO(balance))
}

func (h *Handler) ApproveVacation(w http.ResponseWriter, r *http.Request) {
	v, err := h.Vacations.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to approve vacation request", err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(*v))
}

func (h *Handler) RejectVacation(w http.ResponseWriter, r *http.Request) {
	v, err := h.Vacations.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to reject vacation request", err)
		return
	}
	writeJSON(w, http.StatusOK, toVacationDTO(*v))
}

// =============================================================================
// DASHBOARD / REPORTS
// =============================================================================

// GetDashboard returns the overview KPIs for ?date= (default: today).
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	date, err := h.queryDate(r, "date")
	if err != nil {
		writeDomainError(w, "Invalid query", err)
		return
	}

	d, err := h.Reports.Dashboard(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardDTO(d))
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	available := report.Available()
	dtos := make([]ReportDTO, len(available))
	for i, d := range available {
		dtos[i] = ReportDTO{Type: string(d.Kind), Name: d.Name, Description: d.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ExportReport renders a monthly report as CSV, XLSX or JSON (default).
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	month, err := h.queryMonth(r, "month")
	if err != nil {
		writeDomainError(w, "Invalid query", err)
		return
	}
	format := report.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = report.FormatJSON
	}
	if !format.Valid() {
		v := core.NewValidator()
		v.Add("format", core.ErrInvalidValue, fmt.Sprintf("Unknown export format %q", format))
		writeDomainError(w, "Invalid query", v.Err())
		return
	}

	rep, err := h.Reports.Build(r.Context(), report.Kind(chi.URLParam(r, "type")), month)
	if err != nil {
		writeDomainError(w, "Failed to build report", err)
		return
	}

	// Render fully before writing headers so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := report.Export(&buf, rep, format); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export report", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if format != report.FormatJSON {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.FileName(format)))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// =============================================================================
// SETTINGS / ADMIN
// =============================================================================

func (h *Handler) GetWorkSchedule(w http.ResponseWriter, r *http.Request) {
	ws, err := h.Attendance.Schedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load work schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkScheduleDTO(ws))
}

func (h *Handler) UpdateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	var req WorkScheduleDTO
	if !decodeBody(w, r, &req) {
		return
	}

	ws, err := h.Attendance.UpdateSchedule(r.Context(), attendance.ScheduleInput{
		EntryTime:    req.EntryTime,
		ExitTime:     req.ExitTime,
		BreakMinutes: req.BreakMinutes,
		GraceMinutes: req.GraceMinutes,
	})
	if err != nil {
		writeDomainError(w, "Failed to update work schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkScheduleDTO(ws))
}

// RunAutoAttendance generates auto-attendance for ?date= (default: today).
func (h *Handler) RunAutoAttendance(w http.ResponseWriter, r *http.Request) {
	date, err := h.queryDate(r, "date")
	if err != nil {
		writeDomainError(w, "Invalid query", err)
		return
	}

	result, err := h.Attendance.GenerateAuto(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to run auto-attendance", err)
		return
	}
	writeJSON(w, http.StatusOK, AutoAttendanceResponse{
		Date:      result.Date.String(),
		Created:   toAttendanceDTOs(result.Created),
		Skipped:   result.Skipped,
		OverLimit: idStrings(result.OverLimit),
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors to HTTP status codes. Unrecognised
// errors become 500 with message.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: ve.Error(),
			Fields:  ve.Fields(),
		})
	case core.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case core.IsConflict(err):
		writeError(w, http.StatusConflict, "Invalid status transition", err)
	case core.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

// decodeBody decodes the JSON body into dst, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

func employeeID(r *http.Request) core.EmployeeID {
	return core.EmployeeID(chi.URLParam(r, "id"))
}

// queryDate parses a YYYY-MM-DD query parameter, defaulting to today.
func (h *Handler) queryDate(r *http.Request, key string) (core.Date, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return h.today(), nil
	}
	d, err := core.ParseDate(s)
	if err != nil {
		v := core.NewValidator()
		v.Add(key, core.ErrInvalidValue, "Date must be YYYY-MM-DD")
		return core.Date{}, v.Err()
	}
	return d, nil
}

// queryMonth parses a YYYY-MM query parameter, defaulting to the current month.
func (h *Handler) queryMonth(r *http.Request, key string) (core.Month, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return h.today().Month(), nil
	}
	m, err := core.ParseMonth(s)
	if err != nil {
		v := core.NewValidator()
		v.Add(key, core.ErrInvalidValue, "Month must be YYYY-MM")
		return core.Month{}, v.Err()
	}
	return m, nil
}

func optionalDate(v *core.Validator, s, field string) *core.Date {
	if s == "" {
		return nil
	}
	d, err := core.ParseDate(s)
	if !v.Check(field, err == nil, core.ErrInvalidValue, "Date must be YYYY-MM-DD") {
		return nil
	}
	return &d
}

func toEmployeeInput(req EmployeeRequest) employee.Input {
	return employee.Input{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		JobTitle:   req.JobTitle,
		Department: req.Department,
		Role:       req.Role,
		SalaryType: req.SalaryType,
		Salary:     string(req.Salary),
		HireDate:   req.HireDate,
	}
}

// toSettings parses the numeric fields; range checks are left to
// employee.ValidateSettings.
func toSettings(req SettingsRequest) (core.Settings, error) {
	v := core.NewValidator()
	parse := func(field string, n json.Number) decimal.Decimal {
		d, err := decimal.NewFromString(string(n))
		v.Check(field, err == nil, core.ErrInvalidValue, "Must be a number")
		return d
	}
	s := core.Settings{
		DailyWorkHours:  parse("dailyWorkHours", req.DailyWorkHours),
		HourPrice:       parse("hourPrice", req.HourPrice),
		DayPrice:        parse("dayPrice", req.DayPrice),
		MonthPrice:      parse("monthPrice", req.MonthPrice),
		ExtraHoursPrice: parse("extraHoursPrice", req.ExtraHoursPrice),
		AutoAttendance:  req.AutoAttendance,
	}
	return s, v.Err()
}

func idStrings(ids []core.EmployeeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
