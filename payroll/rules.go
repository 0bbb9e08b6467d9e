/*
Package payroll tracks payments against an employee's monthly salary.

PURPOSE:
  Validates and normalizes payment entries, and derives how much of the
  month's salary has been paid.

SIGN CONVENTION:
  Amounts are entered positive. Deductions are stored negative so that a
  plain sum over an employee's payments is their net pay; salary and bonus
  entries stay positive.

PROGRESS:
  paid       = sum(paid, non-deduction payments in month)   (bonuses count)
  deductions = sum(|deduction| in month)                    (any status)
  remaining  = max(0, month price - paid)
  percent    = min(100, paid / month price * 100)

SEE ALSO:
  - service.go: store-backed operations
*/
package payroll

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce/core"
)

// =============================================================================
// PROGRESS
// =============================================================================

// Progress is an employee's payroll position for one month.
type Progress struct {
	EmployeeID      core.EmployeeID
	Month           core.Month
	MonthlySalary   decimal.Decimal
	PaidSoFar       decimal.Decimal
	TotalDeductions decimal.Decimal
	RemainingDues   decimal.Decimal
	PaidPercentage  decimal.Decimal
}

// ComputeProgress derives emp's progress for month from payments.
// Payments of other employees or months are ignored.
func ComputeProgress(emp core.Employee, payments []core.Payment, month core.Month) Progress {
	p := Progress{
		EmployeeID:      emp.ID,
		Month:           month,
		MonthlySalary:   emp.Settings.MonthPrice,
		PaidSoFar:       decimal.Zero,
		TotalDeductions: decimal.Zero,
	}
	for _, pay := range payments {
		if pay.EmployeeID != emp.ID || !month.Contains(pay.Date) {
			continue
		}
		if pay.Category == core.PaymentDeduction {
			p.TotalDeductions = p.TotalDeductions.Add(pay.Amount.Abs())
			continue
		}
		if pay.Status == core.PaymentPaid {
			p.PaidSoFar = p.PaidSoFar.Add(pay.Amount)
		}
	}
	p.RemainingDues = core.NonNegative(p.MonthlySalary.Sub(p.PaidSoFar))
	p.PaidPercentage = core.Percent(p.PaidSoFar, p.MonthlySalary)
	return p
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

// Input is a payment form as submitted. Amount is the positive magnitude.
type Input struct {
	Category    string
	Amount      string
	Date        string
	Description string
	Status      string
}

// Build validates in and returns a normalized payment (without ID).
// Status defaults to pending.
func Build(in Input, emp core.Employee) (core.Payment, error) {
	v := core.NewValidator()

	category := core.PaymentCategory(in.Category)
	v.Check("type", category.Valid(), core.ErrInvalidValue, fmt.Sprintf("Unknown payment type %q", in.Category))

	status := core.PaymentStatus(in.Status)
	if status == "" {
		status = core.PaymentPending
	}
	v.Check("status", status.Valid(), core.ErrInvalidValue, fmt.Sprintf("Unknown payment status %q", in.Status))

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	v.Check("amount", err == nil && amount.IsPositive(), core.ErrNonPositive, "Amount must be greater than 0")

	var date core.Date
	if v.Required("date", in.Date, "Date is required") {
		d, err := core.ParseDate(in.Date)
		if v.Check("date", err == nil, core.ErrInvalidValue, "Date must be YYYY-MM-DD") {
			date = d
		}
	}

	v.Required("description", in.Description, "Description is required")

	if err := v.Err(); err != nil {
		return core.Payment{}, err
	}

	return core.Payment{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Date:         date,
		Amount:       Normalize(category, amount),
		Category:     category,
		Status:       status,
		Description:  strings.TrimSpace(in.Description),
	}, nil
}

// Normalize applies the sign convention: deductions negative, everything else positive.
func Normalize(category core.PaymentCategory, amount decimal.Decimal) decimal.Decimal {
	if category == core.PaymentDeduction {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// MarkPaid moves a pending payment to paid.
func MarkPaid(p core.Payment) (core.Payment, error) {
	if p.Status != core.PaymentPending {
		return p, &core.TransitionError{Kind: "payment", ID: p.ID, From: string(p.Status), To: string(core.PaymentPaid)}
	}
	p.Status = core.PaymentPaid
	return p, nil
}

// =============================================================================
// SUMMARIES
// =============================================================================

// Summary totals a set of payments by category. Deductions are absolute.
type Summary struct {
	TotalSalaries   decimal.Decimal
	TotalBonuses    decimal.Decimal
	TotalDeductions decimal.Decimal
	PendingAmount   decimal.Decimal
}

// MonthlySummary totals every payment dated in month.
func MonthlySummary(payments []core.Payment, month core.Month) Summary {
	var inMonth []core.Payment
	for _, p := range payments {
		if month.Contains(p.Date) {
			inMonth = append(inMonth, p)
		}
	}
	return summarize(inMonth, false)
}

// EmployeeSummary totals an employee's payment history. Only paid
// salaries count towards TotalSalaries.
func EmployeeSummary(payments []core.Payment) Summary {
	return summarize(payments, true)
}

func summarize(payments []core.Payment, paidSalariesOnly bool) Summary {
	s := Summary{
		TotalSalaries:   decimal.Zero,
		TotalBonuses:    decimal.Zero,
		TotalDeductions: decimal.Zero,
		PendingAmount:   decimal.Zero,
	}
	for _, p := range payments {
		switch p.Category {
		case core.PaymentSalary:
			if !paidSalariesOnly || p.Status == core.PaymentPaid {
				s.TotalSalaries = s.TotalSalaries.Add(p.Amount)
			}
		case core.PaymentBonus:
			s.TotalBonuses = s.TotalBonuses.Add(p.Amount)
		case core.PaymentDeduction:
			s.TotalDeductions = s.TotalDeductions.Add(p.Amount.Abs())
		}
		if p.Status == core.PaymentPending {
			s.PendingAmount = s.PendingAmount.Add(p.Amount)
		}
	}
	return s
}
