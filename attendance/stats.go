package attendance

import (
	"github.com/shopspring/decimal"
	"github.com/warp/workforce/core"
)

// DailyStats counts one day's records by category.
type DailyStats struct {
	Date     core.Date
	Present  int
	Late     int
	Absent   int
	Vacation int
	HalfDay  int
}

// Attended is the number of employees who showed up at all.
func (s DailyStats) Attended() int { return s.Present + s.Late + s.HalfDay }

// Daily counts the records dated on date.
func Daily(records []core.Attendance, date core.Date) DailyStats {
	stats := DailyStats{Date: date}
	for _, r := range records {
		if !r.Date.Equal(date) {
			continue
		}
		switch r.Category {
		case core.AttendancePresent:
			stats.Present++
		case core.AttendanceLate:
			stats.Late++
		case core.AttendanceAbsent:
			stats.Absent++
		case core.AttendanceVacation:
			stats.Vacation++
		case core.AttendanceHalfDay:
			stats.HalfDay++
		}
	}
	return stats
}

// Trend returns one DailyStats per day for the n days ending at end, oldest first.
func Trend(records []core.Attendance, end core.Date, n int) []DailyStats {
	out := make([]DailyStats, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, Daily(records, end.AddDays(-i)))
	}
	return out
}

// Summary is an employee's attendance totals.
type Summary struct {
	Present       int
	Late          int
	Absent        int
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	OvertimePay   decimal.Decimal
}

// Summarize totals an employee's records against their settings.
func Summarize(records []core.Attendance, s core.Settings) Summary {
	sum := Summary{TotalHours: decimal.Zero, OvertimeHours: decimal.Zero, OvertimePay: decimal.Zero}
	for _, r := range records {
		switch r.Category {
		case core.AttendancePresent:
			sum.Present++
		case core.AttendanceLate:
			sum.Late++
		case core.AttendanceAbsent:
			sum.Absent++
		}
		sum.TotalHours = sum.TotalHours.Add(r.WorkedHours)
		sum.OvertimeHours = sum.OvertimeHours.Add(Overtime(r.WorkedHours, s.DailyWorkHours))
		sum.OvertimePay = sum.OvertimePay.Add(OvertimePay(r.WorkedHours, s))
	}
	return sum
}
