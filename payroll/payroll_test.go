package payroll_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/core/store"
	"github.com/warp/workforce/payroll"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func jan2026() core.Month { return core.Month{Year: 2026, Month: 1} }

func employeeWithSalary(id, monthPrice string) core.Employee {
	return core.Employee{
		ID:       core.EmployeeID(id),
		FullName: "Employee " + id,
		Status:   core.StatusActive,
		Settings: core.Settings{MonthPrice: dec(monthPrice)},
	}
}

func payment(emp, day, amount string, cat core.PaymentCategory, status core.PaymentStatus) core.Payment {
	return core.Payment{
		ID:         emp + day + amount,
		EmployeeID: core.EmployeeID(emp),
		Date:       core.MustParseDate(day),
		Amount:     dec(amount),
		Category:   cat,
		Status:     status,
	}
}

// =============================================================================
// PROGRESS
// =============================================================================

func TestProgress_FullyPaidCapsAt100(t *testing.T) {
	// GIVEN: monthPrice 5500, salary 5500 paid + 500 bonus paid
	emp := employeeWithSalary("1", "5500")
	payments := []core.Payment{
		payment("1", "2026-01-01", "5500", core.PaymentSalary, core.PaymentPaid),
		payment("1", "2026-01-10", "500", core.PaymentBonus, core.PaymentPaid),
	}

	p := payroll.ComputeProgress(emp, payments, jan2026())

	assert.True(t, dec("6000").Equal(p.PaidSoFar))
	assert.True(t, p.RemainingDues.IsZero())
	assert.Equal(t, "100", p.PaidPercentage.String())
}

func TestProgress_ExactSalary(t *testing.T) {
	emp := employeeWithSalary("1", "5500")
	p := payroll.ComputeProgress(emp, []core.Payment{
		payment("1", "2026-01-01", "5500", core.PaymentSalary, core.PaymentPaid),
	}, jan2026())
	assert.True(t, p.RemainingDues.IsZero())
	assert.Equal(t, "100", p.PaidPercentage.String())
}

func TestProgress_IgnoresPendingDeductionsAndOtherMonths(t *testing.T) {
	emp := employeeWithSalary("3", "4200")
	payments := []core.Payment{
		payment("3", "2026-01-01", "2100", core.PaymentSalary, core.PaymentPaid),
		payment("3", "2026-01-05", "-150", core.PaymentDeduction, core.PaymentPaid),
		payment("3", "2026-01-20", "1000", core.PaymentSalary, core.PaymentPending),
		payment("3", "2025-12-01", "4200", core.PaymentSalary, core.PaymentPaid),
		payment("9", "2026-01-01", "9999", core.PaymentSalary, core.PaymentPaid),
	}

	p := payroll.ComputeProgress(emp, payments, jan2026())

	assert.True(t, dec("2100").Equal(p.PaidSoFar), p.PaidSoFar.String())
	assert.True(t, dec("150").Equal(p.TotalDeductions))
	assert.True(t, dec("2100").Equal(p.RemainingDues))
	assert.Equal(t, "50", p.PaidPercentage.String())
}

func TestProgress_RemainingNeverNegative(t *testing.T) {
	for _, paid := range []string{"0", "1", "2879.99", "2880", "2880.01", "10000"} {
		emp := employeeWithSalary("2", "2880")
		p := payroll.ComputeProgress(emp, []core.Payment{
			payment("2", "2026-01-01", paid, core.PaymentSalary, core.PaymentPaid),
		}, jan2026())

		want := decimal.Max(decimal.Zero, dec("2880").Sub(dec(paid)))
		assert.True(t, want.Equal(p.RemainingDues), "paid %s", paid)
		assert.False(t, p.RemainingDues.IsNegative())
		assert.False(t, p.PaidPercentage.GreaterThan(decimal.NewFromInt(100)))
	}
}

func TestProgress_ZeroSalary(t *testing.T) {
	p := payroll.ComputeProgress(employeeWithSalary("1", "0"), nil, jan2026())
	assert.True(t, p.PaidPercentage.IsZero())
	assert.True(t, p.RemainingDues.IsZero())
}

// =============================================================================
// BUILD / VALIDATION
// =============================================================================

func TestBuild_NormalizesDeductionSign(t *testing.T) {
	emp := employeeWithSalary("3", "4200")
	p, err := payroll.Build(payroll.Input{
		Category: "deduction", Amount: "150", Date: "2026-01-05", Description: "Health Insurance",
	}, emp)
	require.NoError(t, err)
	assert.True(t, dec("-150").Equal(p.Amount))
	assert.Equal(t, core.PaymentPending, p.Status)

	p, err = payroll.Build(payroll.Input{
		Category: "bonus", Amount: "500", Date: "2026-01-10", Description: "Q4", Status: "paid",
	}, emp)
	require.NoError(t, err)
	assert.True(t, dec("500").Equal(p.Amount))
	assert.Equal(t, core.PaymentPaid, p.Status)
}

func TestBuild_ValidationMessages(t *testing.T) {
	emp := employeeWithSalary("1", "5500")
	for _, amount := range []string{"", "0", "-5", "abc"} {
		_, err := payroll.Build(payroll.Input{Category: "salary", Amount: amount, Date: "2026-01-01", Description: "x"}, emp)
		var ve *core.ValidationError
		require.ErrorAs(t, err, &ve, "amount %q", amount)
		assert.Equal(t, "Amount must be greater than 0", ve.Fields()["amount"])
		assert.ErrorIs(t, err, core.ErrNonPositive)
	}

	_, err := payroll.Build(payroll.Input{Category: "tips", Amount: "10", Description: " "}, emp)
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Date is required", ve.Fields()["date"])
	assert.Equal(t, "Description is required", ve.Fields()["description"])
	assert.Contains(t, ve.Fields(), "type")
}

func TestMarkPaid(t *testing.T) {
	p := payment("4", "2026-01-01", "1920", core.PaymentSalary, core.PaymentPending)
	paid, err := payroll.MarkPaid(p)
	require.NoError(t, err)
	assert.Equal(t, core.PaymentPaid, paid.Status)

	_, err = payroll.MarkPaid(paid)
	assert.ErrorIs(t, err, core.ErrInvalidTransition)
}

// =============================================================================
// SUMMARIES
// =============================================================================

func TestMonthlySummary(t *testing.T) {
	payments := []core.Payment{
		payment("1", "2026-01-01", "5500", core.PaymentSalary, core.PaymentPaid),
		payment("1", "2026-01-10", "500", core.PaymentBonus, core.PaymentPaid),
		payment("3", "2026-01-05", "-150", core.PaymentDeduction, core.PaymentPaid),
		payment("4", "2026-01-01", "1920", core.PaymentSalary, core.PaymentPending),
		payment("4", "2025-12-01", "1920", core.PaymentSalary, core.PaymentPaid),
	}
	s := payroll.MonthlySummary(payments, jan2026())
	assert.True(t, dec("7420").Equal(s.TotalSalaries))
	assert.True(t, dec("500").Equal(s.TotalBonuses))
	assert.True(t, dec("150").Equal(s.TotalDeductions))
	assert.True(t, dec("1920").Equal(s.PendingAmount))

	e := payroll.EmployeeSummary(payments[3:4])
	assert.True(t, e.TotalSalaries.IsZero(), "pending salary is not paid")
	assert.True(t, dec("1920").Equal(e.PendingAmount))
}

// =============================================================================
// SERVICE
// =============================================================================

func TestService_RecordMarkPaidProgress(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.SaveEmployee(ctx, employeeWithSalary("4", "1920")))
	svc := payroll.NewService(st)

	p, err := svc.Record(ctx, "4", payroll.Input{Category: "salary", Amount: "1920", Date: "2026-01-01", Description: "January 2026 Salary"})
	require.NoError(t, err)

	prog, err := svc.Progress(ctx, "4", jan2026())
	require.NoError(t, err)
	assert.True(t, prog.PaidSoFar.IsZero(), "pending payments are not paid")

	_, err = svc.MarkPaid(ctx, p.ID)
	require.NoError(t, err)

	prog, err = svc.Progress(ctx, "4", jan2026())
	require.NoError(t, err)
	assert.True(t, prog.RemainingDues.IsZero())
	assert.Equal(t, "100", prog.PaidPercentage.String())

	_, err = svc.MarkPaid(ctx, p.ID)
	assert.True(t, core.IsConflict(err))
	_, err = svc.MarkPaid(ctx, "nope")
	assert.True(t, core.IsNotFound(err))
}
