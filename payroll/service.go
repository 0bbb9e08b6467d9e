package payroll

import (
	"context"
	"fmt"

	"github.com/warp/workforce/core"
)

// Service records payments and reports payroll progress.
type Service struct {
	store core.Store
}

func NewService(store core.Store) *Service {
	return &Service{store: store}
}

// Record validates a payment for an employee and saves it.
func (s *Service) Record(ctx context.Context, employeeID core.EmployeeID, in Input) (*core.Payment, error) {
	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	p, err := Build(in, *emp)
	if err != nil {
		return nil, err
	}
	p.ID = core.NewID()
	if err := s.store.SavePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}
	return &p, nil
}

// MarkPaid settles a pending payment.
func (s *Service) MarkPaid(ctx context.Context, id string) (*core.Payment, error) {
	p, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load payment: %w", err)
	}
	if p == nil {
		return nil, &core.NotFoundError{Kind: "payment", ID: id}
	}
	updated, err := MarkPaid(*p)
	if err != nil {
		return nil, err
	}
	if err := s.store.SavePayment(ctx, updated); err != nil {
		return nil, fmt.Errorf("save payment: %w", err)
	}
	return &updated, nil
}

// Progress returns an employee's payroll progress for month.
func (s *Service) Progress(ctx context.Context, employeeID core.EmployeeID, month core.Month) (Progress, error) {
	emp, err := s.employee(ctx, employeeID)
	if err != nil {
		return Progress{}, err
	}
	payments, err := s.store.ListPayments(ctx, core.PaymentFilter{EmployeeID: employeeID, Month: &month})
	if err != nil {
		return Progress{}, fmt.Errorf("list payments: %w", err)
	}
	return ComputeProgress(*emp, payments, month), nil
}

func (s *Service) List(ctx context.Context, f core.PaymentFilter) ([]core.Payment, error) {
	return s.store.ListPayments(ctx, f)
}

// MonthlySummary totals all payments in month.
func (s *Service) MonthlySummary(ctx context.Context, month core.Month) (Summary, error) {
	payments, err := s.store.ListPayments(ctx, core.PaymentFilter{Month: &month})
	if err != nil {
		return Summary{}, err
	}
	return MonthlySummary(payments, month), nil
}

// ForEmployee returns an employee's payments and their summary.
func (s *Service) ForEmployee(ctx context.Context, employeeID core.EmployeeID) ([]core.Payment, Summary, error) {
	if _, err := s.employee(ctx, employeeID); err != nil {
		return nil, Summary{}, err
	}
	payments, err := s.store.ListPayments(ctx, core.PaymentFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, Summary{}, err
	}
	return payments, EmployeeSummary(payments), nil
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
