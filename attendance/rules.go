// Package attendance derives worked hours and validates daily attendance records.
package attendance

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce/core"
)

var sixty = decimal.NewFromInt(60)

// =============================================================================
// RULES
// =============================================================================

// Rules holds the tunable limits for attendance entry.
type Rules struct {
	// MaxExtraHours is how far past the employee's daily hours a single
	// record may go before it is rejected.
	MaxExtraHours decimal.Decimal
}

func DefaultRules() Rules {
	return Rules{MaxExtraHours: decimal.NewFromInt(4)}
}

// MaxWorkedHours is the upper bound for one day: daily work hours + MaxExtraHours.
func (r Rules) MaxWorkedHours(s core.Settings) decimal.Decimal {
	return s.DailyWorkHours.Add(r.MaxExtraHours)
}

// =============================================================================
// DERIVATIONS
// =============================================================================

// WorkedHours returns (exit - entry) in hours rounded to two decimals.
// Absent and vacation days are always zero, as are missing or non-increasing
// time pairs.
func WorkedHours(entry, exit *core.ClockTime, category core.AttendanceCategory) decimal.Decimal {
	if !category.RequiresTimes() || entry == nil || exit == nil {
		return decimal.Zero
	}
	if !exit.After(*entry) {
		return decimal.Zero
	}
	minutes := decimal.NewFromInt(int64(exit.Minutes() - entry.Minutes()))
	return core.Round2(minutes.Div(sixty))
}

// Overtime returns the hours worked beyond dailyHours, never negative.
func Overtime(worked, dailyHours decimal.Decimal) decimal.Decimal {
	return core.NonNegative(worked.Sub(dailyHours))
}

// OvertimePay prices the overtime of a record at the employee's extra-hours rate.
func OvertimePay(worked decimal.Decimal, s core.Settings) decimal.Decimal {
	return core.Round2(Overtime(worked, s.DailyWorkHours).Mul(s.ExtraHoursPrice))
}

// InferCategory classifies an arrival against the schedule: late once the
// entry passes the scheduled start plus grace minutes.
func InferCategory(entry core.ClockTime, schedule core.WorkSchedule) core.AttendanceCategory {
	if entry.After(schedule.EntryTime.AddMinutes(schedule.GraceMinutes)) {
		return core.AttendanceLate
	}
	return core.AttendancePresent
}

// =============================================================================
// INPUT VALIDATION
// =============================================================================

// Input is an attendance form as submitted. Category may be empty, in
// which case it is inferred from the entry time.
type Input struct {
	Date      string
	Category  string
	EntryTime string
	ExitTime  string
}

// Build validates in for emp and returns the derived record (without ID).
// All failing fields are reported together as a *core.ValidationError.
func Build(in Input, emp core.Employee, schedule core.WorkSchedule, rules Rules) (core.Attendance, error) {
	v := core.NewValidator()

	var date core.Date
	if v.Required("date", in.Date, "Date is required") {
		d, err := core.ParseDate(in.Date)
		if v.Check("date", err == nil, core.ErrInvalidValue, "Date must be YYYY-MM-DD") {
			date = d
		}
	}

	category := core.AttendanceCategory(in.Category)
	if category != "" {
		v.Check("category", category.Valid(), core.ErrInvalidValue,
			fmt.Sprintf("Unknown attendance type %q", in.Category))
	}

	rec := core.Attendance{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Date:         date,
		Category:     category,
		WorkedHours:  decimal.Zero,
	}

	if category == "" || category.RequiresTimes() {
		if v.Required("entryTime", in.EntryTime, "Entry time is required") {
			entry, err := core.ParseClockTime(in.EntryTime)
			if v.Check("entryTime", err == nil, core.ErrInvalidValue, "Entry time must be HH:MM") {
				rec.EntryTime = &entry
			}
		}
		if in.ExitTime != "" {
			exit, err := core.ParseClockTime(in.ExitTime)
			if v.Check("exitTime", err == nil, core.ErrInvalidValue, "Exit time must be HH:MM") {
				rec.ExitTime = &exit
			}
		}
		if rec.Category == "" && rec.EntryTime != nil {
			rec.Category = InferCategory(*rec.EntryTime, schedule)
		}

		rec.WorkedHours = WorkedHours(rec.EntryTime, rec.ExitTime, rec.Category)
		limit := rules.MaxWorkedHours(emp.Settings)
		v.Check("workedHours", !rec.WorkedHours.GreaterThan(limit), core.ErrHoursExceeded,
			fmt.Sprintf("Worked hours exceed maximum allowed (%sh)", limit.String()))
	}

	if err := v.Err(); err != nil {
		return core.Attendance{}, err
	}
	return rec, nil
}
