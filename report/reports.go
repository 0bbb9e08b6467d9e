package report

import (
	"context"
	"fmt"

	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/payroll"
	"github.com/warp/workforce/vacation"
)

// Kind identifies a report.
type Kind string

const (
	KindPayroll    Kind = "payroll"
	KindAttendance Kind = "attendance"
	KindEmployee   Kind = "employee"
)

// Descriptor describes an available report.
type Descriptor struct {
	Kind        Kind
	Name        string
	Description string
}

// Available lists the reports Build understands.
func Available() []Descriptor {
	return []Descriptor{
		{KindPayroll, "Payroll Report", "Monthly salary, bonuses, and deductions"},
		{KindAttendance, "Attendance Report", "Daily attendance tracking and summaries"},
		{KindEmployee, "Employee Report", "Employee details and status overview"},
	}
}

func (k Kind) Valid() bool {
	return k == KindPayroll || k == KindAttendance || k == KindEmployee
}

// Report is one generated report. Rows is a slice of PayrollRow,
// AttendanceRow or EmployeeRow depending on Kind.
type Report struct {
	Kind  Kind
	Month core.Month
	Title string
	Rows  any
}

// Len returns the number of rows.
func (r *Report) Len() int {
	switch rows := r.Rows.(type) {
	case []PayrollRow:
		return len(rows)
	case []AttendanceRow:
		return len(rows)
	case []EmployeeRow:
		return len(rows)
	}
	return 0
}

// =============================================================================
// ROWS
// =============================================================================

type PayrollRow struct {
	Employee    string `csv:"employee" json:"employee"`
	Date        string `csv:"date" json:"date"`
	Type        string `csv:"type" json:"type"`
	Amount      string `csv:"amount" json:"amount"`
	Status      string `csv:"status" json:"status"`
	Description string `csv:"description" json:"description"`
}

type AttendanceRow struct {
	Employee    string `csv:"employee" json:"employee"`
	Date        string `csv:"date" json:"date"`
	EntryTime   string `csv:"entry_time" json:"entryTime"`
	ExitTime    string `csv:"exit_time" json:"exitTime"`
	WorkedHours string `csv:"worked_hours" json:"workedHours"`
	Category    string `csv:"category" json:"category"`
	Auto        bool   `csv:"auto" json:"auto"`
}

// EmployeeRow is one employee's month at a glance.
type EmployeeRow struct {
	Employee       string `csv:"employee" json:"employee"`
	Department     string `csv:"department" json:"department"`
	JobTitle       string `csv:"job_title" json:"jobTitle"`
	Status         string `csv:"status" json:"status"`
	MonthlySalary  string `csv:"monthly_salary" json:"monthlySalary"`
	PaidSoFar      string `csv:"paid_so_far" json:"paidSoFar"`
	RemainingDues  string `csv:"remaining_dues" json:"remainingDues"`
	Present        int    `csv:"present" json:"present"`
	Late           int    `csv:"late" json:"late"`
	Absent         int    `csv:"absent" json:"absent"`
	WorkedHours    string `csv:"worked_hours" json:"workedHours"`
	VacationUsed   int    `csv:"vacation_used" json:"vacationUsed"`
	VacationRemain int    `csv:"vacation_remaining" json:"vacationRemaining"`
}

// =============================================================================
// BUILD
// =============================================================================

// Build generates the kind report for month.
func (s *Service) Build(ctx context.Context, kind Kind, month core.Month) (*Report, error) {
	if !kind.Valid() {
		v := core.NewValidator()
		v.Add("type", core.ErrInvalidValue, fmt.Sprintf("Unknown report type %q", kind))
		return nil, v.Err()
	}

	r := &Report{Kind: kind, Month: month, Title: title(kind, month)}
	switch kind {
	case KindPayroll:
		payments, err := s.store.ListPayments(ctx, core.PaymentFilter{Month: &month})
		if err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		r.Rows = PayrollRows(payments)

	case KindAttendance:
		from, to := month.Start(), month.End()
		records, err := s.store.ListAttendance(ctx, core.AttendanceFilter{From: &from, To: &to})
		if err != nil {
			return nil, fmt.Errorf("list attendance: %w", err)
		}
		r.Rows = AttendanceRows(records)

	case KindEmployee:
		rows, err := s.employeeRows(ctx, month)
		if err != nil {
			return nil, err
		}
		r.Rows = rows
	}
	return r, nil
}

func title(kind Kind, month core.Month) string {
	for _, d := range Available() {
		if d.Kind == kind {
			return fmt.Sprintf("%s - %s", d.Name, month.Start().Time().Format("January 2006"))
		}
	}
	return string(kind)
}

func PayrollRows(payments []core.Payment) []PayrollRow {
	rows := make([]PayrollRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PayrollRow{
			Employee:    p.EmployeeName,
			Date:        p.Date.String(),
			Type:        string(p.Category),
			Amount:      p.Amount.StringFixed(2),
			Status:      string(p.Status),
			Description: p.Description,
		})
	}
	return rows
}

func AttendanceRows(records []core.Attendance) []AttendanceRow {
	rows := make([]AttendanceRow, 0, len(records))
	for _, a := range records {
		row := AttendanceRow{
			Employee:    a.EmployeeName,
			Date:        a.Date.String(),
			WorkedHours: a.WorkedHours.StringFixed(2),
			Category:    string(a.Category),
			Auto:        a.IsAuto,
		}
		if a.EntryTime != nil {
			row.EntryTime = a.EntryTime.String()
		}
		if a.ExitTime != nil {
			row.ExitTime = a.ExitTime.String()
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Service) employeeRows(ctx context.Context, month core.Month) ([]EmployeeRow, error) {
	employees, err := s.store.ListEmployees(ctx, core.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	from, to := month.Start(), month.End()
	records, err := s.store.ListAttendance(ctx, core.AttendanceFilter{From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	payments, err := s.store.ListPayments(ctx, core.PaymentFilter{Month: &month})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	requests, err := s.store.ListVacations(ctx, core.VacationFilter{})
	if err != nil {
		return nil, fmt.Errorf("list vacations: %w", err)
	}
	return EmployeeRows(employees, records, payments, requests, month, s.policy), nil
}

// EmployeeRows joins each employee with their month of attendance,
// payroll progress and annual leave balance.
func EmployeeRows(
	employees []core.Employee,
	records []core.Attendance,
	payments []core.Payment,
	requests []core.Vacation,
	month core.Month,
	policy vacation.Policy,
) []EmployeeRow {
	byEmployee := map[core.EmployeeID][]core.Attendance{}
	for _, a := range records {
		if month.Contains(a.Date) {
			byEmployee[a.EmployeeID] = append(byEmployee[a.EmployeeID], a)
		}
	}

	rows := make([]EmployeeRow, 0, len(employees))
	for _, e := range employees {
		att := attendance.Summarize(byEmployee[e.ID], e.Settings)
		prog := payroll.ComputeProgress(e, payments, month)
		bal := policy.ComputeBalance(e.ID, month.Year, requests)
		rows = append(rows, EmployeeRow{
			Employee:       e.FullName,
			Department:     e.Department,
			JobTitle:       e.JobTitle,
			Status:         string(e.Status),
			MonthlySalary:  prog.MonthlySalary.StringFixed(2),
			PaidSoFar:      prog.PaidSoFar.StringFixed(2),
			RemainingDues:  prog.RemainingDues.StringFixed(2),
			Present:        att.Present,
			Late:           att.Late,
			Absent:         att.Absent,
			WorkedHours:    att.TotalHours.StringFixed(2),
			VacationUsed:   bal.Used,
			VacationRemain: bal.Remaining,
		})
	}
	return rows
}
