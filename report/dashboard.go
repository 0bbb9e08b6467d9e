/*
Package report aggregates workforce data into the dashboard and into
exportable monthly reports.

PURPOSE:
  Everything here is read-only. Aggregates are derived from the store on
  every call; nothing is cached or persisted.

DASHBOARD:
  For a reference date:
  - Total and active employee counts
  - Attendance percent: (present + late + half-day) / active * 100, rounded
  - Monthly payroll: salary payments dated in the date's month (any status)
  - On vacation: approved requests covering the date
  - Payroll breakdown: salaries, bonuses, deductions for the month
  - Vacation usage: annual days used vs remaining across active employees
  - Attendance trend: the 7 days ending at the date, oldest first

REPORTS:
  payroll, attendance and employee reports for one month, each a slice of
  flat rows with csv tags. See export.go for CSV, XLSX and JSON output.

SEE ALSO:
  - attendance/stats.go: Daily, Trend
  - payroll/rules.go: MonthlySummary
  - vacation/rules.go: ComputeBalance, OnVacation
*/
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/payroll"
	"github.com/warp/workforce/vacation"
)

// TrendDays is the length of the dashboard attendance trend.
const TrendDays = 7

// Service builds dashboards and reports from a store.
type Service struct {
	store  core.Store
	policy vacation.Policy
}

func NewService(store core.Store, policy vacation.Policy) *Service {
	return &Service{store: store, policy: policy}
}

// VacationUsage is annual leave consumption summed over active employees.
type VacationUsage struct {
	Used      int
	Remaining int
}

// Dashboard is the overview page for one date.
type Dashboard struct {
	Date              core.Date
	TotalEmployees    int
	ActiveEmployees   int
	AttendancePercent int
	Today             attendance.DailyStats
	MonthlyPayroll    decimal.Decimal
	OnVacation        int
	PayrollBreakdown  payroll.Summary
	VacationUsage     VacationUsage
	AttendanceTrend   []attendance.DailyStats
}

// Dashboard computes the overview for date.
func (s *Service) Dashboard(ctx context.Context, date core.Date) (*Dashboard, error) {
	employees, err := s.store.ListEmployees(ctx, core.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	from := date.AddDays(-(TrendDays - 1))
	records, err := s.store.ListAttendance(ctx, core.AttendanceFilter{From: &from, To: &date})
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	month := date.Month()
	payments, err := s.store.ListPayments(ctx, core.PaymentFilter{Month: &month})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	requests, err := s.store.ListVacations(ctx, core.VacationFilter{})
	if err != nil {
		return nil, fmt.Errorf("list vacations: %w", err)
	}

	return BuildDashboard(date, employees, records, payments, requests, s.policy), nil
}

// BuildDashboard is the pure aggregation behind Service.Dashboard.
func BuildDashboard(
	date core.Date,
	employees []core.Employee,
	records []core.Attendance,
	payments []core.Payment,
	requests []core.Vacation,
	policy vacation.Policy,
) *Dashboard {
	d := &Dashboard{
		Date:            date,
		TotalEmployees:  len(employees),
		Today:           attendance.Daily(records, date),
		AttendanceTrend: attendance.Trend(records, date, TrendDays),
	}

	for _, e := range employees {
		if !e.IsActive() {
			continue
		}
		d.ActiveEmployees++
		b := policy.ComputeBalance(e.ID, date.Year(), requests)
		d.VacationUsage.Used += b.Used
		if b.Remaining > 0 {
			d.VacationUsage.Remaining += b.Remaining
		}
	}

	pct := core.Percent(decimal.NewFromInt(int64(d.Today.Attended())), decimal.NewFromInt(int64(d.ActiveEmployees)))
	d.AttendancePercent = int(pct.Round(0).IntPart())

	d.PayrollBreakdown = payroll.MonthlySummary(payments, date.Month())
	d.MonthlyPayroll = d.PayrollBreakdown.TotalSalaries
	d.OnVacation = len(vacation.OnVacation(requests, date))

	return d
}
