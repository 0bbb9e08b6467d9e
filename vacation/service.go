package vacation

import (
	"context"
	"fmt"
	"sync"

	"github.com/warp/workforce/core"
)

// Service submits and decides leave requests against a store.
//
// Writes hold mu from the balance read to the save, so concurrent
// approvals cannot both spend the same remaining days.
type Service struct {
	store  core.Store
	policy Policy
	mu     sync.Mutex
}

func NewService(store core.Store, policy Policy) *Service {
	return &Service{store: store, policy: policy}
}

func (s *Service) Policy() Policy { return s.policy }

// Balance returns the employee's annual leave balance for year.
func (s *Service) Balance(ctx context.Context, employeeID core.EmployeeID, year int) (Balance, error) {
	if _, err := s.employee(ctx, employeeID); err != nil {
		return Balance{}, err
	}
	return s.balance(ctx, employeeID, year)
}

func (s *Service) balance(ctx context.Context, employeeID core.EmployeeID, year int) (Balance, error) {
	requests, err := s.store.ListVacations(ctx, core.VacationFilter{EmployeeID: employeeID, Type: core.VacationAnnual})
	if err != nil {
		return Balance{}, fmt.Errorf("list vacations: %w", err)
	}
	return s.policy.ComputeBalance(employeeID, year, requests), nil
}

// Submit validates a new request and stores it as pending.
func (s *Service) Submit(ctx context.Context, employeeID core.EmployeeID, in Input) (*core.Vacation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	var balanceErr error
	req, err := Build(in, *emp, func(year int) Balance {
		b, err := s.balance(ctx, employeeID, year)
		balanceErr = err
		return b
	})
	if balanceErr != nil {
		return nil, balanceErr
	}
	if err != nil {
		return nil, err
	}

	req.ID = core.NewID()
	if err := s.store.SaveVacation(ctx, req); err != nil {
		return nil, fmt.Errorf("save vacation: %w", err)
	}
	return &req, nil
}

// Approve approves a pending request.
func (s *Service) Approve(ctx context.Context, id string) (*core.Vacation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	balance, err := s.balance(ctx, req.EmployeeID, req.StartDate.Year())
	if err != nil {
		return nil, err
	}
	updated, err := Approve(*req, balance)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveVacation(ctx, updated); err != nil {
		return nil, fmt.Errorf("save vacation: %w", err)
	}
	return &updated, nil
}

// Reject rejects a pending request.
func (s *Service) Reject(ctx context.Context, id string) (*core.Vacation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := Reject(*req)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveVacation(ctx, updated); err != nil {
		return nil, fmt.Errorf("save vacation: %w", err)
	}
	return &updated, nil
}

func (s *Service) List(ctx context.Context, f core.VacationFilter) ([]core.Vacation, error) {
	return s.store.ListVacations(ctx, f)
}

// Stats summarizes every request in the store.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	all, err := s.store.ListVacations(ctx, core.VacationFilter{})
	if err != nil {
		return Stats{}, err
	}
	return Summarize(all), nil
}

// ForEmployee returns an employee's requests and their totals.
func (s *Service) ForEmployee(ctx context.Context, employeeID core.EmployeeID) ([]core.Vacation, Totals, error) {
	if _, err := s.employee(ctx, employeeID); err != nil {
		return nil, Totals{}, err
	}
	requests, err := s.store.ListVacations(ctx, core.VacationFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, Totals{}, err
	}
	return requests, EmployeeTotals(requests), nil
}

func (s *Service) employee(ctx context.Context, id core.EmployeeID) (*core.Employee, error) {
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, &core.NotFoundError{Kind: "employee", ID: string(id)}
	}
	return emp, nil
}

func (s *Service) get(ctx context.Context, id string) (*core.Vacation, error) {
	req, err := s.store.GetVacation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load vacation: %w", err)
	}
	if req == nil {
		return nil, &core.NotFoundError{Kind: "vacation", ID: id}
	}
	return req, nil
}
