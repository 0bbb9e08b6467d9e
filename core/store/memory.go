// Package store provides core.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/workforce/core"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu         sync.RWMutex
	employees  map[core.EmployeeID]core.Employee
	attendance map[string]core.Attendance
	payments   map[string]core.Payment
	vacations  map[string]core.Vacation
	schedule   *core.WorkSchedule
}

var _ core.Store = (*Memory)(nil)

func NewMemory() *Memory {
	m := &Memory{}
	m.resetLocked()
	return m
}

func (m *Memory) resetLocked() {
	m.employees = make(map[core.EmployeeID]core.Employee)
	m.attendance = make(map[string]core.Attendance)
	m.payments = make(map[string]core.Payment)
	m.vacations = make(map[string]core.Vacation)
	m.schedule = nil
}

func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
	return nil
}

// -----------------------------------------------------------------------------
// Employees
// -----------------------------------------------------------------------------

func (m *Memory) SaveEmployee(_ context.Context, e core.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.ID] = e
	return nil
}

func (m *Memory) GetEmployee(_ context.Context, id core.EmployeeID) (*core.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *Memory) ListEmployees(_ context.Context, f core.EmployeeFilter) ([]core.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []core.Employee{}
	for _, e := range m.employees {
		if f.Matches(e) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

// -----------------------------------------------------------------------------
// Attendance
// -----------------------------------------------------------------------------

func (m *Memory) SaveAttendance(_ context.Context, a core.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendance[a.ID] = a
	return nil
}

func (m *Memory) GetAttendance(_ context.Context, id string) (*core.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attendance[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (m *Memory) ListAttendance(_ context.Context, f core.AttendanceFilter) ([]core.Attendance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []core.Attendance{}
	for _, a := range m.attendance {
		if f.Matches(a) {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].EmployeeName < result[j].EmployeeName
	})
	return result, nil
}

// -----------------------------------------------------------------------------
// Payments
// -----------------------------------------------------------------------------

func (m *Memory) SavePayment(_ context.Context, p core.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
	return nil
}

func (m *Memory) GetPayment(_ context.Context, id string) (*core.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *Memory) ListPayments(_ context.Context, f core.PaymentFilter) ([]core.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []core.Payment{}
	for _, p := range m.payments {
		if f.Matches(p) {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// -----------------------------------------------------------------------------
// Vacations
// -----------------------------------------------------------------------------

func (m *Memory) SaveVacation(_ context.Context, v core.Vacation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vacations[v.ID] = v
	return nil
}

func (m *Memory) GetVacation(_ context.Context, id string) (*core.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vacations[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (m *Memory) ListVacations(_ context.Context, f core.VacationFilter) ([]core.Vacation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []core.Vacation{}
	for _, v := range m.vacations {
		if f.Matches(v) {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartDate.Equal(result[j].StartDate) {
			return result[i].StartDate.After(result[j].StartDate)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// -----------------------------------------------------------------------------
// Work schedule
// -----------------------------------------------------------------------------

func (m *Memory) GetWorkSchedule(_ context.Context) (core.WorkSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.schedule == nil {
		return core.DefaultWorkSchedule(), nil
	}
	return *m.schedule, nil
}

func (m *Memory) SaveWorkSchedule(_ context.Context, s core.WorkSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = &s
	return nil
}
