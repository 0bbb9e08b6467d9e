/*
Package vacation implements leave requests and the annual leave balance.

PURPOSE:
  Derives request day counts, computes how much annual leave an employee
  has left, validates new requests against that balance and moves
  requests through pending -> approved | rejected.

BALANCE MODEL:
  Every employee gets a fixed annual allowance (21 days by default) per
  calendar year. Only APPROVED requests of type ANNUAL consume it; pending
  requests are shown separately and do not reduce the balance. Other leave
  types (sick, personal, unpaid, maternity) never touch the allowance.

  remaining = allowance - sum(days of approved annual requests starting in year)

DAY COUNT:
  Inclusive calendar days: (end - start) + 1, floored at 1. Weekends and
  holidays are counted.

SEE ALSO:
  - service.go: store-backed submit/approve/reject
  - core/types.go: Vacation record
*/
package vacation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/workforce/core"
)

// DefaultAnnualAllowance is the yearly annual-leave entitlement in days.
const DefaultAnnualAllowance = 21

// =============================================================================
// POLICY
// =============================================================================

type Policy struct {
	AnnualAllowance int
}

func DefaultPolicy() Policy {
	return Policy{AnnualAllowance: DefaultAnnualAllowance}
}

// =============================================================================
// DAY COUNT
// =============================================================================

// DayCount returns the inclusive number of days in [start, end], at least 1.
func DayCount(start, end core.Date) int {
	days := core.DaysBetween(start, end) + 1
	if days < 1 {
		return 1
	}
	return days
}

// =============================================================================
// BALANCE
// =============================================================================

// Balance is an employee's annual leave position for one year.
type Balance struct {
	EmployeeID core.EmployeeID
	Year       int
	Allowance  int
	Used       int
	Pending    int
	// Remaining may go negative when approvals were made outside the rules.
	Remaining int
	// UsagePercent is Used/Allowance*100, capped at 100.
	UsagePercent decimal.Decimal
}

// ComputeBalance derives the annual balance of employeeID for year from requests.
func (p Policy) ComputeBalance(employeeID core.EmployeeID, year int, requests []core.Vacation) Balance {
	b := Balance{EmployeeID: employeeID, Year: year, Allowance: p.AnnualAllowance}
	for _, r := range requests {
		if r.EmployeeID != employeeID || r.Type != core.VacationAnnual || r.StartDate.Year() != year {
			continue
		}
		switch r.Status {
		case core.VacationApproved:
			b.Used += r.Days
		case core.VacationPending:
			b.Pending += r.Days
		}
	}
	b.Remaining = b.Allowance - b.Used
	b.UsagePercent = core.Percent(decimal.NewFromInt(int64(b.Used)), decimal.NewFromInt(int64(b.Allowance)))
	return b
}

// Exceeds reports whether an annual request of days would overdraw the balance.
func (b Balance) Exceeds(days int) bool { return days > b.Remaining }

// =============================================================================
// INPUT VALIDATION
// =============================================================================

// Input is a leave request form as submitted.
type Input struct {
	Type      string
	StartDate string
	EndDate   string
	Reason    string
}

// Build validates in and returns a pending request (without ID).
// balanceFor is only called for annual leave, with the year the request
// starts in.
func Build(in Input, emp core.Employee, balanceFor func(year int) Balance) (core.Vacation, error) {
	v := core.NewValidator()

	vt := core.VacationType(in.Type)
	v.Check("type", vt.Valid(), core.ErrInvalidValue, fmt.Sprintf("Unknown vacation type %q", in.Type))

	var start, end core.Date
	startOK := false
	if v.Required("startDate", in.StartDate, "Start date is required") {
		d, err := core.ParseDate(in.StartDate)
		startOK = v.Check("startDate", err == nil, core.ErrInvalidValue, "Start date must be YYYY-MM-DD")
		start = d
	}
	endOK := false
	if v.Required("endDate", in.EndDate, "End date is required") {
		d, err := core.ParseDate(in.EndDate)
		endOK = v.Check("endDate", err == nil, core.ErrInvalidValue, "End date must be YYYY-MM-DD")
		end = d
	}
	if startOK && endOK {
		endOK = v.Check("endDate", !end.Before(start), core.ErrDateOrder, "End date must be after start date")
	}

	v.Required("reason", in.Reason, "Reason is required")

	req := core.Vacation{
		EmployeeID:   emp.ID,
		EmployeeName: emp.FullName,
		Type:         vt,
		StartDate:    start,
		EndDate:      end,
		Status:       core.VacationPending,
		Reason:       strings.TrimSpace(in.Reason),
	}

	if startOK && endOK {
		req.Days = DayCount(start, end)
		if vt == core.VacationAnnual {
			b := balanceFor(start.Year())
			v.Check("days", !b.Exceeds(req.Days), core.ErrBalanceExceeded,
				fmt.Sprintf("Requested %d days exceeds remaining balance of %d days", req.Days, b.Remaining))
		}
	}

	if err := v.Err(); err != nil {
		return core.Vacation{}, err
	}
	return req, nil
}

// =============================================================================
// STATUS TRANSITIONS
// =============================================================================

// Approve moves a pending request to approved. Annual requests are
// re-checked against balance, which must exclude the request itself.
func Approve(req core.Vacation, balance Balance) (core.Vacation, error) {
	if req.Status != core.VacationPending {
		return req, &core.TransitionError{Kind: "vacation", ID: req.ID, From: string(req.Status), To: string(core.VacationApproved)}
	}
	if req.Type == core.VacationAnnual && balance.Exceeds(req.Days) {
		v := core.NewValidator()
		v.Add("days", core.ErrBalanceExceeded,
			fmt.Sprintf("Requested %d days exceeds remaining balance of %d days", req.Days, balance.Remaining))
		return req, v.Err()
	}
	req.Status = core.VacationApproved
	return req, nil
}

// Reject moves a pending request to rejected.
func Reject(req core.Vacation) (core.Vacation, error) {
	if req.Status != core.VacationPending {
		return req, &core.TransitionError{Kind: "vacation", ID: req.ID, From: string(req.Status), To: string(core.VacationRejected)}
	}
	req.Status = core.VacationRejected
	return req, nil
}

// =============================================================================
// AGGREGATES
// =============================================================================

// Stats counts requests by status.
type Stats struct {
	Pending      int
	Approved     int
	Rejected     int
	ApprovedDays int
}

func Summarize(requests []core.Vacation) Stats {
	var s Stats
	for _, r := range requests {
		switch r.Status {
		case core.VacationPending:
			s.Pending++
		case core.VacationApproved:
			s.Approved++
			s.ApprovedDays += r.Days
		case core.VacationRejected:
			s.Rejected++
		}
	}
	return s
}

// Totals are an employee's used (approved) and pending days across all types.
type Totals struct {
	UsedDays    int
	PendingDays int
}

func EmployeeTotals(requests []core.Vacation) Totals {
	var t Totals
	for _, r := range requests {
		switch r.Status {
		case core.VacationApproved:
			t.UsedDays += r.Days
		case core.VacationPending:
			t.PendingDays += r.Days
		}
	}
	return t
}

// OnVacation returns the approved requests covering date.
func OnVacation(requests []core.Vacation, date core.Date) []core.Vacation {
	var out []core.Vacation
	for _, r := range requests {
		if r.Status == core.VacationApproved && r.Covers(date) {
			out = append(out, r)
		}
	}
	return out
}
