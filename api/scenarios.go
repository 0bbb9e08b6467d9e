/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for demos. The "demo" scenario is the retail store the dashboard
	was designed around: eight employees, a day and a half of attendance,
	January 2026 payroll and a handful of leave requests.

AVAILABLE SCENARIOS:

	demo:   Retail store, January 2026 (dashboard date 2026-01-13)
	empty:  No employees, default work schedule

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Save the work schedule
 3. Save employees, attendance, payments, vacations as-is
    (stored records bypass validation, exactly like an import)

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "demo"}

USAGE VIA CLI:

	workforce seed --scenario demo

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: request handling helpers
  - cmd/server/main.go: seed command
*/
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/payroll"
	"github.com/warp/workforce/vacation"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "demo",
		Name:        "Retail Store",
		Description: "Eight employees with January 2026 attendance, payroll and leave",
	},
	{
		ID:          "empty",
		Name:        "Empty",
		Description: "No data, default work schedule",
	},
}

// Scenarios returns the IDs of the loadable scenarios.
func Scenarios() []string {
	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s.ID
	}
	return ids
}

// LoadScenario resets store and loads the scenario named id.
func LoadScenario(ctx context.Context, store core.Store, id string) error {
	var load func(context.Context, core.Store) error
	switch id {
	case "demo":
		load = loadDemoScenario
	case "empty":
		load = func(ctx context.Context, s core.Store) error {
			return s.SaveWorkSchedule(ctx, core.DefaultWorkSchedule())
		}
	default:
		v := core.NewValidator()
		v.Add("scenario_id", core.ErrInvalidValue, fmt.Sprintf("Unknown scenario %q", id))
		return v.Err()
	}

	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := load(ctx, store); err != nil {
		return fmt.Errorf("load %s: %w", id, err)
	}
	return nil
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentScenario
	h.mu.RUnlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// SetCurrentScenario records a scenario loaded outside the API, e.g. by
// the serve --seed flag.
func (h *Handler) SetCurrentScenario(id string) {
	h.mu.Lock()
	h.currentScenario = id
	h.mu.Unlock()
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentScenario = ""
	if err := LoadScenario(r.Context(), h.Store, req.ScenarioID); err != nil {
		writeDomainError(w, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}
	h.currentScenario = req.ScenarioID

	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// DEMO SCENARIO
// =============================================================================

type demoEmployee struct {
	id, name, email, phone, title, dept string
	role                                core.Role
	status                              core.EmployeeStatus
	salaryType                          core.SalaryType
	salary                              int64
	hired                               string
	hours, hour, day, month, extra      int64
	auto                                bool
}

var demoEmployees = []demoEmployee{
	{"1", "Sarah Johnson", "sarah.johnson@store.com", "+1 555-0101", "Store Manager", "Management", core.RoleManager, core.StatusActive, core.SalaryMonthly, 5500, "2021-03-15", 8, 35, 280, 5500, 45, true},
	{"2", "Michael Chen", "michael.chen@store.com", "+1 555-0102", "Sales Associate", "Sales", core.RoleEmployee, core.StatusActive, core.SalaryHourly, 18, "2022-06-20", 8, 18, 144, 2880, 25, false},
	{"3", "Emily Rodriguez", "emily.rodriguez@store.com", "+1 555-0103", "Inventory Manager", "Inventory", core.RoleManager, core.StatusActive, core.SalaryMonthly, 4200, "2021-09-10", 8, 28, 224, 4200, 38, true},
	{"4", "James Wilson", "james.wilson@store.com", "+1 555-0104", "Cashier", "Sales", core.RoleEmployee, core.StatusActive, core.SalaryHourly, 16, "2023-01-05", 6, 16, 96, 1920, 22, false},
	{"5", "Amanda Foster", "amanda.foster@store.com", "+1 555-0105", "Visual Merchandiser", "Marketing", core.RoleEmployee, core.StatusActive, core.SalaryDaily, 180, "2022-11-15", 8, 22, 180, 3600, 30, true},
	{"6", "David Thompson", "david.thompson@store.com", "+1 555-0106", "Security Officer", "Security", core.RoleEmployee, core.StatusInactive, core.SalaryHourly, 20, "2020-08-20", 8, 20, 160, 3200, 28, false},
	{"7", "Lisa Martinez", "lisa.martinez@store.com", "+1 555-0107", "Customer Service Rep", "Customer Service", core.RoleEmployee, core.StatusActive, core.SalaryHourly, 17, "2023-04-01", 8, 17, 136, 2720, 24, false},
	{"8", "Robert Kim", "robert.kim@store.com", "+1 555-0108", "Shift Supervisor", "Operations", core.RoleEmployee, core.StatusActive, core.SalaryMonthly, 3800, "2022-02-28", 8, 24, 192, 3800, 32, true},
}

type demoAttendance struct {
	id, emp, date, entry, exit string
	category                   core.AttendanceCategory
	auto                       bool
}

var demoAttendanceRecords = []demoAttendance{
	{"1", "1", "2026-01-13", "08:55", "17:05", core.AttendancePresent, true},
	{"2", "2", "2026-01-13", "09:15", "17:30", core.AttendanceLate, false},
	{"3", "3", "2026-01-13", "08:45", "17:00", core.AttendancePresent, true},
	{"4", "4", "2026-01-13", "", "", core.AttendanceAbsent, false},
	{"5", "5", "2026-01-13", "09:00", "17:00", core.AttendancePresent, true},
	{"6", "7", "2026-01-13", "08:50", "17:10", core.AttendancePresent, false},
	{"7", "8", "2026-01-13", "", "", core.AttendanceVacation, false},
	{"8", "1", "2026-01-12", "09:00", "17:00", core.AttendancePresent, true},
	{"9", "2", "2026-01-12", "09:00", "17:00", core.AttendancePresent, false},
	{"10", "3", "2026-01-12", "09:05", "17:15", core.AttendancePresent, true},
}

type demoPayment struct {
	id, emp, date string
	amount        int64
	category      core.PaymentCategory
	description   string
	status        core.PaymentStatus
}

var demoPayments = []demoPayment{
	{"1", "1", "2026-01-01", 5500, core.PaymentSalary, "January 2026 Salary", core.PaymentPaid},
	{"2", "1", "2026-01-10", 500, core.PaymentBonus, "Performance Bonus Q4", core.PaymentPaid},
	{"3", "2", "2026-01-01", 2880, core.PaymentSalary, "January 2026 Salary", core.PaymentPaid},
	{"4", "3", "2026-01-01", 4200, core.PaymentSalary, "January 2026 Salary", core.PaymentPaid},
	{"5", "3", "2026-01-05", 150, core.PaymentDeduction, "Health Insurance", core.PaymentPaid},
	{"6", "4", "2026-01-01", 1920, core.PaymentSalary, "January 2026 Salary", core.PaymentPending},
	{"7", "5", "2026-01-01", 3600, core.PaymentSalary, "January 2026 Salary", core.PaymentPaid},
	{"8", "7", "2026-01-01", 2720, core.PaymentSalary, "January 2026 Salary", core.PaymentPaid},
	{"9", "8", "2026-01-01", 3800, core.PaymentSalary, "January 2026 Salary", core.PaymentPaid},
	{"10", "8", "2026-01-08", 300, core.PaymentBonus, "Holiday Bonus", core.PaymentPaid},
}

type demoVacation struct {
	id, emp    string
	vtype      core.VacationType
	start, end string
	status     core.VacationStatus
	reason     string
}

var demoVacations = []demoVacation{
	{"1", "8", core.VacationAnnual, "2026-01-13", "2026-01-17", core.VacationApproved, "Family vacation"},
	{"2", "2", core.VacationSick, "2026-01-20", "2026-01-21", core.VacationPending, "Medical appointment"},
	{"3", "5", core.VacationPersonal, "2026-01-25", "2026-01-25", core.VacationApproved, "Personal matters"},
	{"4", "1", core.VacationAnnual, "2026-02-01", "2026-02-07", core.VacationPending, "Winter vacation"},
	{"5", "3", core.VacationAnnual, "2025-12-24", "2025-12-31", core.VacationApproved, "Holiday break"},
}

func loadDemoScenario(ctx context.Context, store core.Store) error {
	if err := store.SaveWorkSchedule(ctx, core.DefaultWorkSchedule()); err != nil {
		return err
	}

	names := make(map[string]string, len(demoEmployees))
	for _, d := range demoEmployees {
		names[d.id] = d.name
		e := core.Employee{
			ID:         core.EmployeeID(d.id),
			FullName:   d.name,
			Email:      d.email,
			Phone:      d.phone,
			JobTitle:   d.title,
			Department: d.dept,
			Role:       d.role,
			Status:     d.status,
			SalaryType: d.salaryType,
			Salary:     decimal.NewFromInt(d.salary),
			HireDate:   core.MustParseDate(d.hired),
			Settings: core.Settings{
				DailyWorkHours:  decimal.NewFromInt(d.hours),
				HourPrice:       decimal.NewFromInt(d.hour),
				DayPrice:        decimal.NewFromInt(d.day),
				MonthPrice:      decimal.NewFromInt(d.month),
				ExtraHoursPrice: decimal.NewFromInt(d.extra),
				AutoAttendance:  d.auto,
			},
		}
		if err := store.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}

	for _, d := range demoAttendanceRecords {
		a := core.Attendance{
			ID:           "att-" + d.id,
			EmployeeID:   core.EmployeeID(d.emp),
			EmployeeName: names[d.emp],
			Date:         core.MustParseDate(d.date),
			EntryTime:    demoClock(d.entry),
			ExitTime:     demoClock(d.exit),
			Category:     d.category,
			IsAuto:       d.auto,
		}
		a.WorkedHours = attendance.WorkedHours(a.EntryTime, a.ExitTime, a.Category)
		if err := store.SaveAttendance(ctx, a); err != nil {
			return err
		}
	}

	for _, d := range demoPayments {
		p := core.Payment{
			ID:           "pay-" + d.id,
			EmployeeID:   core.EmployeeID(d.emp),
			EmployeeName: names[d.emp],
			Date:         core.MustParseDate(d.date),
			Amount:       payroll.Normalize(d.category, decimal.NewFromInt(d.amount)),
			Category:     d.category,
			Status:       d.status,
			Description:  d.description,
		}
		if err := store.SavePayment(ctx, p); err != nil {
			return err
		}
	}

	for _, d := range demoVacations {
		start, end := core.MustParseDate(d.start), core.MustParseDate(d.end)
		v := core.Vacation{
			ID:           "vac-" + d.id,
			EmployeeID:   core.EmployeeID(d.emp),
			EmployeeName: names[d.emp],
			Type:         d.vtype,
			StartDate:    start,
			EndDate:      end,
			Days:         vacation.DayCount(start, end),
			Status:       d.status,
			Reason:       d.reason,
		}
		if err := store.SaveVacation(ctx, v); err != nil {
			return err
		}
	}
	return nil
}

func demoClock(s string) *core.ClockTime {
	if s == "" {
		return nil
	}
	c, err := core.ParseClockTime(s)
	if err != nil {
		return nil
	}
	return &c
}
