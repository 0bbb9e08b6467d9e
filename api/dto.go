/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract:
  - Decimals become JSON numbers
  - Dates are YYYY-MM-DD strings, clock times HH:MM (null when absent)
  - Field names are camelCase, matching the field keys of validation errors

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Employee:    EmployeeDTO, SettingsDTO, EmployeeRequest, SettingsRequest
  Attendance:  AttendanceDTO, AttendanceRequest, DailyStatsDTO, AttendanceSummaryDTO
  Payments:    PaymentDTO, PaymentRequest, PayrollProgressDTO, PaymentSummaryDTO
  Vacations:   VacationDTO, VacationRequest, VacationBalanceDTO, VacationStatsDTO
  Dashboard:   DashboardDTO
  Settings:    WorkScheduleDTO
  Scenarios:   ScenarioDTO

VALIDATION:
  Validation is done by the domain packages, not in DTOs. DTOs are pure
  data carriers; numeric request fields are json.Number so that malformed
  amounts surface as field errors instead of decode failures.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/payroll"
	"github.com/warp/workforce/report"
	"github.com/warp/workforce/vacation"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

type SettingsDTO struct {
	DailyWorkHours  float64 `json:"dailyWorkHours"`
	HourPrice       float64 `json:"hourPrice"`
	DayPrice        float64 `json:"dayPrice"`
	MonthPrice      float64 `json:"monthPrice"`
	ExtraHoursPrice float64 `json:"extraHoursPrice"`
	AutoAttendance  bool    `json:"autoAttendance"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         string      `json:"id"`
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	JobTitle   string      `json:"jobTitle"`
	Department string      `json:"department"`
	Role       string      `json:"role"`
	Status     string      `json:"status"`
	SalaryType string      `json:"salaryType"`
	Salary     float64     `json:"salary"`
	HireDate   string      `json:"hireDate"`
	Settings   SettingsDTO `json:"settings"`
}

// EmployeeRequest is the body of create and update.
type EmployeeRequest struct {
	FullName   string      `json:"fullName"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	JobTitle   string      `json:"jobTitle"`
	Department string      `json:"department"`
	Role       string      `json:"role"`
	SalaryType string      `json:"salaryType"`
	Salary     json.Number `json:"salary"`
	HireDate   string      `json:"hireDate"`
}

type SettingsRequest struct {
	DailyWorkHours  json.Number `json:"dailyWorkHours"`
	HourPrice       json.Number `json:"hourPrice"`
	DayPrice        json.Number `json:"dayPrice"`
	MonthPrice      json.Number `json:"monthPrice"`
	ExtraHoursPrice json.Number `json:"extraHoursPrice"`
	AutoAttendance  bool        `json:"autoAttendance"`
}

// =============================================================================
// ATTENDANCE
// =============================================================================

type AttendanceDTO struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Date         string  `json:"date"`
	EntryTime    *string `json:"entryTime"`
	ExitTime     *string `json:"exitTime"`
	WorkedHours  float64 `json:"workedHours"`
	Type         string  `json:"type"`
	IsAuto       bool    `json:"isAuto"`
}

// AttendanceRequest records attendance. Type may be omitted, in which case
// it is inferred from the entry time and the work schedule.
type AttendanceRequest struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	EntryTime string `json:"entryTime"`
	ExitTime  string `json:"exitTime"`
}

type DailyStatsDTO struct {
	Date     string `json:"date"`
	Present  int    `json:"present"`
	Late     int    `json:"late"`
	Absent   int    `json:"absent"`
	Vacation int    `json:"vacation"`
	HalfDay  int    `json:"halfDay"`
}

type AttendanceSummaryDTO struct {
	Present       int     `json:"present"`
	Late          int     `json:"late"`
	Absent        int     `json:"absent"`
	TotalHours    float64 `json:"totalHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	OvertimePay   float64 `json:"overtimePay"`
}

// EmployeeAttendanceResponse is the profile attendance tab.
type EmployeeAttendanceResponse struct {
	Records []AttendanceDTO      `json:"records"`
	Summary AttendanceSummaryDTO `json:"summary"`
}

type AutoAttendanceResponse struct {
	Date    string          `json:"date"`
	Created []AttendanceDTO `json:"created"`
	Skipped int             `json:"skipped"`
	// OverLimit holds employee ids whose schedule exceeds their daily limit.
	OverLimit []string `json:"overLimit"`
}

// =============================================================================
// PAYMENTS
// =============================================================================

type PaymentDTO struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employeeId"`
	EmployeeName string  `json:"employeeName"`
	Date         string  `json:"date"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	Status       string  `json:"status"`
	Description  string  `json:"description"`
}

// PaymentRequest records a payment. Amount is always positive; deductions
// are negated on save.
type PaymentRequest struct {
	Type        string      `json:"type"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
}

type PaymentSummaryDTO struct {
	TotalSalaries   float64 `json:"totalSalaries"`
	TotalBonuses    float64 `json:"totalBonuses"`
	TotalDeductions float64 `json:"totalDeductions"`
	PendingAmount   float64 `json:"pendingAmount"`
}

type EmployeePaymentsResponse struct {
	Payments []PaymentDTO      `json:"payments"`
	Summary  PaymentSummaryDTO `json:"summary"`
}

type PayrollProgressDTO struct {
	EmployeeID      string  `json:"employeeId"`
	Month           string  `json:"month"`
	MonthlySalary   float64 `json:"monthlySalary"`
	PaidSoFar       float64 `json:"paidSoFar"`
	TotalDeductions float64 `json:"totalDeductions"`
	RemainingDues   float64 `json:"remainingDues"`
	PaidPercentage  float64 `json:"paidPercentage"`
}

// =============================================================================
// VACATIONS
// =============================================================================

type VacationDTO struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Type         string `json:"type"`
	Paid         bool   `json:"paid"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Days         int    `json:"days"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
}

type VacationRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

type VacationBalanceDTO struct {
	EmployeeID   string  `json:"employeeId"`
	Year         int     `json:"year"`
	Allowance    int     `json:"allowance"`
	Used         int     `json:"used"`
	Pending      int     `json:"pending"`
	Remaining    int     `json:"remaining"`
	UsagePercent float64 `json:"usagePercent"`
}

type VacationStatsDTO struct {
	Pending      int `json:"pending"`
	Approved     int `json:"approved"`
	Rejected     int `json:"rejected"`
	ApprovedDays int `json:"approvedDays"`
}

type EmployeeVacationsResponse struct {
	Vacations   []VacationDTO `json:"vacations"`
	UsedDays    int           `json:"usedDays"`
	PendingDays int           `json:"pendingDays"`
}

// =============================================================================
// DASHBOARD / SETTINGS / SCENARIOS
// =============================================================================

type DashboardDTO struct {
	Date              string            `json:"date"`
	TotalEmployees    int               `json:"totalEmployees"`
	ActiveEmployees   int               `json:"activeEmployees"`
	AttendancePercent int               `json:"todayAttendancePercent"`
	MonthlyPayroll    float64           `json:"monthlyPayrollTotal"`
	OnVacation        int               `json:"employeesOnVacation"`
	Today             DailyStatsDTO     `json:"today"`
	PayrollBreakdown  PaymentSummaryDTO `json:"payrollBreakdown"`
	VacationUsed      int               `json:"vacationUsed"`
	VacationRemaining int               `json:"vacationRemaining"`
	AttendanceTrend   []DailyStatsDTO   `json:"attendanceTrend"`
}

type WorkScheduleDTO struct {
	EntryTime    string `json:"entryTime"`
	ExitTime     string `json:"exitTime"`
	BreakMinutes int    `json:"breakMinutes"`
	GraceMinutes int    `json:"graceMinutes"`
}

type ReportDTO struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response. Fields carries per-field
// validation messages.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func num(d decimal.Decimal) float64 { return d.InexactFloat64() }

func clockStr(c *core.ClockTime) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func toSettingsDTO(s core.Settings) SettingsDTO {
	return SettingsDTO{
		DailyWorkHours:  num(s.DailyWorkHours),
		HourPrice:       num(s.HourPrice),
		DayPrice:        num(s.DayPrice),
		MonthPrice:      num(s.MonthPrice),
		ExtraHoursPrice: num(s.ExtraHoursPrice),
		AutoAttendance:  s.AutoAttendance,
	}
}

func toEmployeeDTO(e core.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:         string(e.ID),
		FullName:   e.FullName,
		Email:      e.Email,
		Phone:      e.Phone,
		JobTitle:   e.JobTitle,
		Department: e.Department,
		Role:       string(e.Role),
		Status:     string(e.Status),
		SalaryType: string(e.SalaryType),
		Salary:     num(e.Salary),
		HireDate:   e.HireDate.String(),
		Settings:   toSettingsDTO(e.Settings),
	}
}

func toAttendanceDTO(a core.Attendance) AttendanceDTO {
	return AttendanceDTO{
		ID:           a.ID,
		EmployeeID:   string(a.EmployeeID),
		EmployeeName: a.EmployeeName,
		Date:         a.Date.String(),
		EntryTime:    clockStr(a.EntryTime),
		ExitTime:     clockStr(a.ExitTime),
		WorkedHours:  num(a.WorkedHours),
		Type:         string(a.Category),
		IsAuto:       a.IsAuto,
	}
}

func toAttendanceDTOs(records []core.Attendance) []AttendanceDTO {
	out := make([]AttendanceDTO, len(records))
	for i, a := range records {
		out[i] = toAttendanceDTO(a)
	}
	return out
}

func toDailyStatsDTO(s attendance.DailyStats) DailyStatsDTO {
	return DailyStatsDTO{
		Date:     s.Date.String(),
		Present:  s.Present,
		Late:     s.Late,
		Absent:   s.Absent,
		Vacation: s.Vacation,
		HalfDay:  s.HalfDay,
	}
}

func toAttendanceSummaryDTO(s attendance.Summary) AttendanceSummaryDTO {
	return AttendanceSummaryDTO{
		Present:       s.Present,
		Late:          s.Late,
		Absent:        s.Absent,
		TotalHours:    num(s.TotalHours),
		OvertimeHours: num(s.OvertimeHours),
		OvertimePay:   num(s.OvertimePay),
	}
}

func toPaymentDTO(p core.Payment) PaymentDTO {
	return PaymentDTO{
		ID:           p.ID,
		EmployeeID:   string(p.EmployeeID),
		EmployeeName: p.EmployeeName,
		Date:         p.Date.String(),
		Amount:       num(p.Amount),
		Type:         string(p.Category),
		Status:       string(p.Status),
		Description:  p.Description,
	}
}

func toPaymentDTOs(payments []core.Payment) []PaymentDTO {
	out := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		out[i] = toPaymentDTO(p)
	}
	return out
}

func toPaymentSummaryDTO(s payroll.Summary) PaymentSummaryDTO {
	return PaymentSummaryDTO{
		TotalSalaries:   num(s.TotalSalaries),
		TotalBonuses:    num(s.TotalBonuses),
		TotalDeductions: num(s.TotalDeductions),
		PendingAmount:   num(s.PendingAmount),
	}
}

func toProgressDTO(p payroll.Progress) PayrollProgressDTO {
	return PayrollProgressDTO{
		EmployeeID:      string(p.EmployeeID),
		Month:           p.Month.String(),
		MonthlySalary:   num(p.MonthlySalary),
		PaidSoFar:       num(p.PaidSoFar),
		TotalDeductions: num(p.TotalDeductions),
		RemainingDues:   num(p.RemainingDues),
		PaidPercentage:  num(core.Round2(p.PaidPercentage)),
	}
}

func toVacationDTO(v core.Vacation) VacationDTO {
	return VacationDTO{
		ID:           v.ID,
		EmployeeID:   string(v.EmployeeID),
		EmployeeName: v.EmployeeName,
		Type:         string(v.Type),
		Paid:         v.Type.Paid(),
		StartDate:    v.StartDate.String(),
		EndDate:      v.EndDate.String(),
		Days:         v.Days,
		Status:       string(v.Status),
		Reason:       v.Reason,
	}
}

func toVacationDTOs(vs []core.Vacation) []VacationDTO {
	out := make([]VacationDTO, len(vs))
	for i, v := range vs {
		out[i] = toVacationDTO(v)
	}
	return out
}

func toBalanceDTO(b vacation.Balance) VacationBalanceDTO {
	return VacationBalanceDTO{
		EmployeeID:   string(b.EmployeeID),
		Year:         b.Year,
		Allowance:    b.Allowance,
		Used:         b.Used,
		Pending:      b.Pending,
		Remaining:    b.Remaining,
		UsagePercent: num(core.Round2(b.UsagePercent)),
	}
}

func toDashboardDTO(d *report.Dashboard) DashboardDTO {
	trend := make([]DailyStatsDTO, len(d.AttendanceTrend))
	for i, s := range d.AttendanceTrend {
		trend[i] = toDailyStatsDTO(s)
	}
	return DashboardDTO{
		Date:              d.Date.String(),
		TotalEmployees:    d.TotalEmployees,
		ActiveEmployees:   d.ActiveEmployees,
		AttendancePercent: d.AttendancePercent,
		MonthlyPayroll:    num(d.MonthlyPayroll),
		OnVacation:        d.OnVacation,
		Today:             toDailyStatsDTO(d.Today),
		PayrollBreakdown:  toPaymentSummaryDTO(d.PayrollBreakdown),
		VacationUsed:      d.VacationUsage.Used,
		VacationRemaining: d.VacationUsage.Remaining,
		AttendanceTrend:   trend,
	}
}

func toWorkScheduleDTO(ws core.WorkSchedule) WorkScheduleDTO {
	return WorkScheduleDTO{
		EntryTime:    ws.EntryTime.String(),
		ExitTime:     ws.ExitTime.String(),
		BreakMinutes: ws.BreakMinutes,
		GraceMinutes: ws.GraceMinutes,
	}
}
