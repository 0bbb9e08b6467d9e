/*
store.go - Persistence interfaces for workforce records

PURPOSE:
  Defines the interface between the domain services and the database.
  Different implementations can use SQLite or in-memory storage.

KEY INTERFACES:
  EmployeeStore:   Directory records
  AttendanceStore: Daily attendance records
  PaymentStore:    Payment records
  VacationStore:   Leave requests
  ScheduleStore:   Company work schedule
  Store:           All of the above plus Reset

NOT-FOUND CONTRACT:
  Get* methods return (nil, nil) when the record does not exist. Services
  turn that into a *NotFoundError; stores never invent one.

FILTERS:
  List* methods take a filter whose zero value matches everything.
  Matches() is the single definition of filter semantics: the memory store
  calls it directly, the SQLite store mirrors it in SQL.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite
  - core/store/memory.go: In-memory for testing

SEE ALSO:
  - attendance/service.go, payroll/service.go, vacation/service.go,
    employee/service.go: consumers
*/
package core

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// STORE INTERFACES
// =============================================================================

type EmployeeStore interface {
	// SaveEmployee inserts or replaces an employee.
	SaveEmployee(ctx context.Context, e Employee) error
	GetEmployee(ctx context.Context, id EmployeeID) (*Employee, error)
	ListEmployees(ctx context.Context, f EmployeeFilter) ([]Employee, error)
}

type AttendanceStore interface {
	SaveAttendance(ctx context.Context, a Attendance) error
	GetAttendance(ctx context.Context, id string) (*Attendance, error)
	// ListAttendance returns records ordered by date descending, then employee.
	ListAttendance(ctx context.Context, f AttendanceFilter) ([]Attendance, error)
}

type PaymentStore interface {
	SavePayment(ctx context.Context, p Payment) error
	GetPayment(ctx context.Context, id string) (*Payment, error)
	// ListPayments returns records ordered by date descending.
	ListPayments(ctx context.Context, f PaymentFilter) ([]Payment, error)
}

type VacationStore interface {
	SaveVacation(ctx context.Context, v Vacation) error
	GetVacation(ctx context.Context, id string) (*Vacation, error)
	// ListVacations returns requests ordered by start date descending.
	ListVacations(ctx context.Context, f VacationFilter) ([]Vacation, error)
}

type ScheduleStore interface {
	// GetWorkSchedule returns the stored schedule, or DefaultWorkSchedule when unset.
	GetWorkSchedule(ctx context.Context) (WorkSchedule, error)
	SaveWorkSchedule(ctx context.Context, s WorkSchedule) error
}

// Store is the full persistence surface.
type Store interface {
	EmployeeStore
	AttendanceStore
	PaymentStore
	VacationStore
	ScheduleStore

	// Reset removes all records. Development/demo only.
	Reset(ctx context.Context) error
}

// =============================================================================
// FILTERS
// =============================================================================

// EmployeeFilter matches on name (case-insensitive) or phone substring.
type EmployeeFilter struct {
	Search     string
	Status     EmployeeStatus
	Role       Role
	Department string
}

func (f EmployeeFilter) Matches(e Employee) bool {
	if f.Search != "" &&
		!containsFold(e.FullName, f.Search) &&
		!strings.Contains(e.Phone, f.Search) {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.Role != "" && e.Role != f.Role {
		return false
	}
	if f.Department != "" && !strings.EqualFold(e.Department, f.Department) {
		return false
	}
	return true
}

type AttendanceFilter struct {
	EmployeeID EmployeeID
	Search     string
	Date       *Date
	From, To   *Date
	Category   AttendanceCategory
}

func (f AttendanceFilter) Matches(a Attendance) bool {
	if f.EmployeeID != "" && a.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Search != "" && !containsFold(a.EmployeeName, f.Search) {
		return false
	}
	if f.Date != nil && !a.Date.Equal(*f.Date) {
		return false
	}
	if f.From != nil && a.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && a.Date.After(*f.To) {
		return false
	}
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	return true
}

type PaymentFilter struct {
	EmployeeID EmployeeID
	Search     string
	Category   PaymentCategory
	Status     PaymentStatus
	Month      *Month
}

func (f PaymentFilter) Matches(p Payment) bool {
	if f.EmployeeID != "" && p.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Search != "" && !containsFold(p.EmployeeName, f.Search) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Month != nil && !f.Month.Contains(p.Date) {
		return false
	}
	return true
}

type VacationFilter struct {
	EmployeeID EmployeeID
	Search     string
	Type       VacationType
	Status     VacationStatus
}

func (f VacationFilter) Matches(v Vacation) bool {
	if f.EmployeeID != "" && v.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Search != "" && !containsFold(v.EmployeeName, f.Search) {
		return false
	}
	if f.Type != "" && v.Type != f.Type {
		return false
	}
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// =============================================================================
// IDS
// =============================================================================

// NewID returns a random record identifier.
func NewID() string { return uuid.NewString() }
