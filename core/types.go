/*
Package core provides the shared workforce domain model.

PURPOSE:
  Holds the entity records every domain package works on (employees,
  attendance, payments, vacation requests), the calendar/clock types they
  are keyed by, money arithmetic, error types and the store interfaces.
  Business rules live in the domain packages (attendance, vacation,
  payroll, employee), not here.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee + Settings: directory record and pay configuration
  - Attendance: one day of presence for one employee
  - Payment: signed money movement (deductions are negative)
  - Vacation: a leave request over an inclusive date range
  - WorkSchedule: company-wide default working day

DESIGN PRINCIPLES:
  1. Flat records: references are plain IDs, the employee name is
     denormalized onto child records for search
  2. Precision: money and hours use decimal.Decimal
  3. Typed enums: string types with explicit Valid() checks

SEE ALSO:
  - time.go: Date and ClockTime
  - money.go: decimal helpers
  - store.go: persistence interfaces
*/
package core

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// =============================================================================
// EMPLOYEE
// =============================================================================

type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
)

func (s EmployeeStatus) Valid() bool { return s == StatusActive || s == StatusInactive }

// SalaryType is the billing basis of an employee.
type SalaryType string

const (
	SalaryHourly  SalaryType = "hour"
	SalaryDaily   SalaryType = "day"
	SalaryMonthly SalaryType = "month"
)

func (s SalaryType) Valid() bool {
	switch s {
	case SalaryHourly, SalaryDaily, SalaryMonthly:
		return true
	}
	return false
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleViewer   Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleViewer:
		return true
	}
	return false
}

// Settings is the per-employee pay and attendance configuration.
type Settings struct {
	DailyWorkHours  decimal.Decimal
	HourPrice       decimal.Decimal
	DayPrice        decimal.Decimal
	MonthPrice      decimal.Decimal
	ExtraHoursPrice decimal.Decimal
	AutoAttendance  bool
}

type Employee struct {
	ID         EmployeeID
	FullName   string
	Email      string
	Phone      string
	JobTitle   string
	Department string
	Role       Role
	Status     EmployeeStatus
	SalaryType SalaryType
	Salary     decimal.Decimal
	HireDate   Date
	Settings   Settings
}

func (e Employee) IsActive() bool { return e.Status == StatusActive }

// =============================================================================
// ATTENDANCE
// =============================================================================

type AttendanceCategory string

const (
	AttendancePresent  AttendanceCategory = "present"
	AttendanceLate     AttendanceCategory = "late"
	AttendanceAbsent   AttendanceCategory = "absent"
	AttendanceVacation AttendanceCategory = "vacation"
	AttendanceHalfDay  AttendanceCategory = "half-day"
)

// AttendanceCategories lists every category in display order.
var AttendanceCategories = []AttendanceCategory{
	AttendancePresent, AttendanceLate, AttendanceAbsent, AttendanceVacation, AttendanceHalfDay,
}

func (c AttendanceCategory) Valid() bool {
	for _, known := range AttendanceCategories {
		if c == known {
			return true
		}
	}
	return false
}

// RequiresTimes reports whether entry/exit times are meaningful for the category.
func (c AttendanceCategory) RequiresTimes() bool {
	return c != AttendanceAbsent && c != AttendanceVacation
}

// Attendance is one day of presence for one employee.
// EntryTime/ExitTime are nil when the employee did not clock in.
type Attendance struct {
	ID           string
	EmployeeID   EmployeeID
	EmployeeName string
	Date         Date
	EntryTime    *ClockTime
	ExitTime     *ClockTime
	WorkedHours  decimal.Decimal
	Category     AttendanceCategory
	IsAuto       bool
}

// =============================================================================
// PAYMENT
// =============================================================================

type PaymentCategory string

const (
	PaymentSalary    PaymentCategory = "salary"
	PaymentBonus     PaymentCategory = "bonus"
	PaymentDeduction PaymentCategory = "deduction"
)

func (c PaymentCategory) Valid() bool {
	switch c {
	case PaymentSalary, PaymentBonus, PaymentDeduction:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

func (s PaymentStatus) Valid() bool { return s == PaymentPaid || s == PaymentPending }

// Payment is a signed money movement. Deductions carry a negative Amount.
type Payment struct {
	ID           string
	EmployeeID   EmployeeID
	EmployeeName string
	Date         Date
	Amount       decimal.Decimal
	Category     PaymentCategory
	Status       PaymentStatus
	Description  string
}

// =============================================================================
// VACATION
// =============================================================================

type VacationType string

const (
	VacationAnnual    VacationType = "annual"
	VacationSick      VacationType = "sick"
	VacationPersonal  VacationType = "personal"
	VacationUnpaid    VacationType = "unpaid"
	VacationMaternity VacationType = "maternity"
)

func (t VacationType) Valid() bool {
	switch t {
	case VacationAnnual, VacationSick, VacationPersonal, VacationUnpaid, VacationMaternity:
		return true
	}
	return false
}

// Paid reports whether leave of this type is paid.
func (t VacationType) Paid() bool { return t != VacationUnpaid }

type VacationStatus string

const (
	VacationApproved VacationStatus = "approved"
	VacationPending  VacationStatus = "pending"
	VacationRejected VacationStatus = "rejected"
)

func (s VacationStatus) Valid() bool {
	switch s {
	case VacationApproved, VacationPending, VacationRejected:
		return true
	}
	return false
}

// Vacation is a leave request over the inclusive range [StartDate, EndDate].
type Vacation struct {
	ID           string
	EmployeeID   EmployeeID
	EmployeeName string
	Type         VacationType
	StartDate    Date
	EndDate      Date
	Days         int
	Status       VacationStatus
	Reason       string
}

// Covers reports whether the request spans the given day.
func (v Vacation) Covers(d Date) bool {
	return !d.Before(v.StartDate) && !d.After(v.EndDate)
}

// =============================================================================
// WORK SCHEDULE
// =============================================================================

// WorkSchedule is the company default working day.
type WorkSchedule struct {
	EntryTime    ClockTime
	ExitTime     ClockTime
	BreakMinutes int
	GraceMinutes int
}

// DefaultWorkSchedule is 09:00-17:00 with a one hour break.
func DefaultWorkSchedule() WorkSchedule {
	return WorkSchedule{
		EntryTime:    NewClockTime(9, 0),
		ExitTime:     NewClockTime(17, 0),
		BreakMinutes: 60,
		GraceMinutes: 10,
	}
}
