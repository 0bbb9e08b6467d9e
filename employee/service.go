package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/warp/workforce/core"
)

// Service manages directory records. It takes the full store because a
// rename is copied onto the employee's attendance, payment and vacation
// records, which carry the name for search and reports.
type Service struct {
	store core.Store
	now   func() time.Time
}

func NewService(store core.Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Create validates and stores a new employee with default settings.
func (s *Service) Create(ctx context.Context, in Input) (*core.Employee, error) {
	e, err := Build(in, core.DateOf(s.now()))
	if err != nil {
		return nil, err
	}
	e.ID = core.EmployeeID(core.NewID())
	if err := s.store.SaveEmployee(ctx, e); err != nil {
		return nil, fmt.Errorf("save employee: %w", err)
	}
	return &e, nil
}

// Update replaces an employee's profile fields, keeping ID, status and settings.
func (s *Service) Update(ctx context.Context, id core.EmployeeID, in Input) (*core.Employee, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.HireDate == "" {
		in.HireDate = current.HireDate.String()
	}
	e, err := Build(in, current.HireDate)
	if err != nil {
		return nil, err
	}
	e.ID = current.ID
	e.Status = current.Status
	e.Settings = current.Settings
	if err := s.store.SaveEmployee(ctx, e); err != nil {
		return nil, fmt.Errorf("save employee: %w", err)
	}
	if e.FullName != current.FullName {
		if err := s.rename(ctx, e.ID, e.FullName); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

// rename rewrites the denormalized employee name on every linked record.
func (s *Service) rename(ctx context.Context, id core.EmployeeID, name string) error {
	attendance, err := s.store.ListAttendance(ctx, core.AttendanceFilter{EmployeeID: id})
	if err != nil {
		return fmt.Errorf("list attendance: %w", err)
	}
	for _, a := range attendance {
		a.EmployeeName = name
		if err := s.store.SaveAttendance(ctx, a); err != nil {
			return fmt.Errorf("rename attendance %s: %w", a.ID, err)
		}
	}

	payments, err := s.store.ListPayments(ctx, core.PaymentFilter{EmployeeID: id})
	if err != nil {
		return fmt.Errorf("list payments: %w", err)
	}
	for _, p := range payments {
		p.EmployeeName = name
		if err := s.store.SavePayment(ctx, p); err != nil {
			return fmt.Errorf("rename payment %s: %w", p.ID, err)
		}
	}

	vacations, err := s.store.ListVacations(ctx, core.VacationFilter{EmployeeID: id})
	if err != nil {
		return fmt.Errorf("list vacations: %w", err)
	}
	for _, v := range vacations {
		v.EmployeeName = name
		if err := s.store.SaveVacation(ctx, v); err != nil {
			return fmt.Errorf("rename vacation %s: %w", v.ID, err)
		}
	}
	return nil
}

// UpdateSettings validates and stores new pay/attendance settings.
func (s *Service) UpdateSettings(ctx context.Context, id core.EmployeeID, settings core.Settings) (*core.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	e.Settings = settings
	if err := s.store.SaveEmployee(ctx, *e); err != nil {
		return nil, fmt.Errorf("save employee: %w", err)
	}
	return e, nil
}

// Deactivate marks an employee inactive.
func (s *Service) Deactivate(ctx context.Context, id core.EmployeeID) (*core.Employee, error) {
	return s.setStatus(ctx, id, core.StatusInactive)
}

// Activate marks an employee active.
func (s *Service) Activate(ctx context.Context, id core.EmployeeID) (*core.Employee, error) {
	return s.setStatus(ctx, id, core.StatusActive)
}

func (s *Service) setStatus(ctx context.Context, id core.EmployeeID, status core.EmployeeStatus) (*core.Employee, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := SetStatus(*e, status)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveEmployee(ctx, updated); err != nil {
		return nil, fmt.Errorf("save employee: %w", err)
	}
	return &updated, nil
}

// Get returns an employee or a *core.NotFoundError.
func (s *Service) Get(ctx context.Context, id core.EmployeeID) (*core.Employee, error) {
	e, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if e == nil {
		return nil, &core.NotFoundError{Kind: "employee", ID: string(id)}
	}
	return e, nil
}

func (s *Service) List(ctx context.Context, f core.EmployeeFilter) ([]core.Employee, error) {
	return s.store.ListEmployees(ctx, f)
}
