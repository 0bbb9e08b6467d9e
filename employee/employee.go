// Package employee manages the employee directory.
package employee

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce/core"
)

var maxDailyHours = decimal.NewFromInt(24)

// DefaultSettings are applied to newly created employees until the admin
// edits them on the profile page.
func DefaultSettings() core.Settings {
	return core.Settings{
		DailyWorkHours:  decimal.NewFromInt(8),
		HourPrice:       decimal.NewFromInt(20),
		DayPrice:        decimal.NewFromInt(160),
		MonthPrice:      decimal.NewFromInt(3200),
		ExtraHoursPrice: decimal.NewFromInt(28),
		AutoAttendance:  false,
	}
}

// Input is the create/update form.
type Input struct {
	FullName   string
	Email      string
	Phone      string
	JobTitle   string
	Department string
	Role       string
	SalaryType string
	Salary     string
	HireDate   string
}

// Build validates in and returns an active employee (without ID).
// Empty role defaults to employee, empty salary type to month, empty hire
// date to today.
func Build(in Input, today core.Date) (core.Employee, error) {
	v := core.NewValidator()

	v.Required("fullName", in.FullName, "Full name is required")
	if v.Required("email", in.Email, "Email is required") {
		_, err := mail.ParseAddress(strings.TrimSpace(in.Email))
		v.Check("email", err == nil, core.ErrInvalidValue, "Email is not valid")
	}

	role := core.Role(in.Role)
	if role == "" {
		role = core.RoleEmployee
	}
	v.Check("role", role.Valid(), core.ErrInvalidValue, fmt.Sprintf("Unknown role %q", in.Role))

	salaryType := core.SalaryType(in.SalaryType)
	if salaryType == "" {
		salaryType = core.SalaryMonthly
	}
	v.Check("salaryType", salaryType.Valid(), core.ErrInvalidValue, fmt.Sprintf("Unknown salary type %q", in.SalaryType))

	salary, err := decimal.NewFromString(strings.TrimSpace(in.Salary))
	v.Check("salary", err == nil && salary.IsPositive(), core.ErrNonPositive, "Salary must be greater than 0")

	hireDate := today
	if in.HireDate != "" {
		d, err := core.ParseDate(in.HireDate)
		if v.Check("hireDate", err == nil, core.ErrInvalidValue, "Hire date must be YYYY-MM-DD") {
			hireDate = d
		}
	}

	if err := v.Err(); err != nil {
		return core.Employee{}, err
	}

	return core.Employee{
		FullName:   strings.TrimSpace(in.FullName),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		JobTitle:   strings.TrimSpace(in.JobTitle),
		Department: strings.TrimSpace(in.Department),
		Role:       role,
		Status:     core.StatusActive,
		SalaryType: salaryType,
		Salary:     salary,
		HireDate:   hireDate,
		Settings:   DefaultSettings(),
	}, nil
}

// ValidateSettings checks a settings update.
func ValidateSettings(s core.Settings) error {
	v := core.NewValidator()
	v.Check("dailyWorkHours", s.DailyWorkHours.IsPositive() && !s.DailyWorkHours.GreaterThan(maxDailyHours),
		core.ErrInvalidValue, "Daily work hours must be between 0 and 24")
	prices := []struct {
		field string
		value decimal.Decimal
	}{
		{"hourPrice", s.HourPrice},
		{"dayPrice", s.DayPrice},
		{"monthPrice", s.MonthPrice},
		{"extraHoursPrice", s.ExtraHoursPrice},
	}
	for _, p := range prices {
		v.Check(p.field, !p.value.IsNegative(), core.ErrInvalidValue, "Price cannot be negative")
	}
	return v.Err()
}

// SetStatus returns e with status applied. Setting the current status again is a no-op.
func SetStatus(e core.Employee, status core.EmployeeStatus) (core.Employee, error) {
	if !status.Valid() {
		return e, fmt.Errorf("status %q: %w", status, core.ErrInvalidValue)
	}
	e.Status = status
	return e, nil
}
