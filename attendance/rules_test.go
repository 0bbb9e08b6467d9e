package attendance_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/core"
)

func clock(s string) *core.ClockTime {
	c, err := core.ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return &c
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testEmployee(dailyHours int64) core.Employee {
	return core.Employee{
		ID:       "emp-1",
		FullName: "Sarah Johnson",
		Status:   core.StatusActive,
		Settings: core.Settings{
			DailyWorkHours:  decimal.NewFromInt(dailyHours),
			ExtraHoursPrice: decimal.NewFromInt(45),
		},
	}
}

// =============================================================================
// WORKED HOURS
// =============================================================================

func TestWorkedHours_RoundsToTwoDecimals(t *testing.T) {
	cases := []struct {
		entry, exit string
		want        string
	}{
		{"08:55", "17:05", "8.17"},
		{"09:15", "17:30", "8.25"},
		{"08:50", "17:10", "8.33"},
		{"09:00", "17:00", "8"},
		{"09:00", "09:01", "0.02"},
		{"00:00", "23:59", "23.98"},
	}
	for _, tc := range cases {
		t.Run(tc.entry+"-"+tc.exit, func(t *testing.T) {
			got := attendance.WorkedHours(clock(tc.entry), clock(tc.exit), core.AttendancePresent)
			assert.True(t, dec(tc.want).Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestWorkedHours_MatchesMinuteFormulaForAllPairs(t *testing.T) {
	// Every pair on a 15-minute grid: hours == round((exit-entry)/60, 2)
	for entry := 0; entry < 24*60; entry += 15 {
		for exit := entry + 15; exit < 24*60; exit += 45 {
			in := core.NewClockTime(entry/60, entry%60)
			out := core.NewClockTime(exit/60, exit%60)
			want := decimal.NewFromInt(int64(exit - entry)).Div(decimal.NewFromInt(60)).Round(2)
			got := attendance.WorkedHours(&in, &out, core.AttendanceLate)
			require.True(t, want.Equal(got), "%s-%s: want %s, got %s", in, out, want, got)
		}
	}
}

func TestWorkedHours_ZeroForAbsentAndVacation(t *testing.T) {
	for _, c := range []core.AttendanceCategory{core.AttendanceAbsent, core.AttendanceVacation} {
		got := attendance.WorkedHours(clock("09:00"), clock("17:00"), c)
		assert.True(t, got.IsZero(), "%s should have zero hours", c)
	}
}

func TestWorkedHours_ZeroWhenExitNotAfterEntry(t *testing.T) {
	assert.True(t, attendance.WorkedHours(clock("17:00"), clock("09:00"), core.AttendancePresent).IsZero())
	assert.True(t, attendance.WorkedHours(clock("09:00"), clock("09:00"), core.AttendancePresent).IsZero())
	assert.True(t, attendance.WorkedHours(clock("09:00"), nil, core.AttendancePresent).IsZero())
	assert.True(t, attendance.WorkedHours(nil, clock("17:00"), core.AttendanceHalfDay).IsZero())
}

func TestOvertime(t *testing.T) {
	s := testEmployee(8).Settings
	assert.True(t, dec("1.5").Equal(attendance.Overtime(dec("9.5"), s.DailyWorkHours)))
	assert.True(t, attendance.Overtime(dec("7"), s.DailyWorkHours).IsZero())
	assert.True(t, dec("67.5").Equal(attendance.OvertimePay(dec("9.5"), s)))
}

func TestInferCategory_UsesGraceMinutes(t *testing.T) {
	schedule := core.DefaultWorkSchedule()
	assert.Equal(t, core.AttendancePresent, attendance.InferCategory(*clock("08:45"), schedule))
	assert.Equal(t, core.AttendancePresent, attendance.InferCategory(*clock("09:05"), schedule))
	assert.Equal(t, core.AttendancePresent, attendance.InferCategory(*clock("09:10"), schedule))
	assert.Equal(t, core.AttendanceLate, attendance.InferCategory(*clock("09:11"), schedule))
	assert.Equal(t, core.AttendanceLate, attendance.InferCategory(*clock("09:15"), schedule))
}

// =============================================================================
// BUILD / VALIDATION
// =============================================================================

func TestBuild_DerivesHours(t *testing.T) {
	rec, err := attendance.Build(attendance.Input{
		Date: "2026-01-13", Category: "present", EntryTime: "08:55", ExitTime: "17:05",
	}, testEmployee(8), core.DefaultWorkSchedule(), attendance.DefaultRules())
	require.NoError(t, err)

	assert.Equal(t, "2026-01-13", rec.Date.String())
	assert.True(t, dec("8.17").Equal(rec.WorkedHours))
	assert.Equal(t, core.EmployeeID("emp-1"), rec.EmployeeID)
	assert.Equal(t, "Sarah Johnson", rec.EmployeeName)
	assert.False(t, rec.IsAuto)
}

func TestBuild_InfersLateWhenCategoryOmitted(t *testing.T) {
	rec, err := attendance.Build(attendance.Input{
		Date: "2026-01-13", EntryTime: "09:15", ExitTime: "17:30",
	}, testEmployee(8), core.DefaultWorkSchedule(), attendance.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, core.AttendanceLate, rec.Category)
}

func TestBuild_AbsentIgnoresTimes(t *testing.T) {
	rec, err := attendance.Build(attendance.Input{
		Date: "2026-01-13", Category: "absent", EntryTime: "garbage",
	}, testEmployee(8), core.DefaultWorkSchedule(), attendance.DefaultRules())
	require.NoError(t, err)
	assert.Nil(t, rec.EntryTime)
	assert.True(t, rec.WorkedHours.IsZero())
}

func TestBuild_RequiredFields(t *testing.T) {
	_, err := attendance.Build(attendance.Input{Category: "present"},
		testEmployee(8), core.DefaultWorkSchedule(), attendance.DefaultRules())
	require.Error(t, err)

	var ve *core.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Date is required", ve.Fields()["date"])
	assert.Equal(t, "Entry time is required", ve.Fields()["entryTime"])
	assert.ErrorIs(t, err, core.ErrRequired)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestBuild_RejectsHoursAboveDailyPlusFour(t *testing.T) {
	// GIVEN: a 6-hour employee, limit 10h
	emp := testEmployee(6)

	// WHEN: 10h exactly -> allowed
	_, err := attendance.Build(attendance.Input{
		Date: "2026-01-13", Category: "present", EntryTime: "08:00", ExitTime: "18:00",
	}, emp, core.DefaultWorkSchedule(), attendance.DefaultRules())
	require.NoError(t, err)

	// WHEN: 10h01 -> rejected
	_, err = attendance.Build(attendance.Input{
		Date: "2026-01-13", Category: "present", EntryTime: "08:00", ExitTime: "18:01",
	}, emp, core.DefaultWorkSchedule(), attendance.DefaultRules())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrHoursExceeded)

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Worked hours exceed maximum allowed (10h)", ve.Fields()["workedHours"])
}

func TestBuild_UnknownCategoryAndBadTimes(t *testing.T) {
	_, err := attendance.Build(attendance.Input{
		Date: "13/01/2026", Category: "sleeping", EntryTime: "9am", ExitTime: "25:00",
	}, testEmployee(8), core.DefaultWorkSchedule(), attendance.DefaultRules())

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := ve.Fields()
	assert.Contains(t, fields, "date")
	assert.Contains(t, fields, "category")
	assert.Contains(t, fields, "entryTime")
	assert.Contains(t, fields, "exitTime")
	assert.ErrorIs(t, err, core.ErrInvalidValue)
}

// =============================================================================
// STATS
// =============================================================================

func TestDailyAndSummary(t *testing.T) {
	day := core.MustParseDate("2026-01-13")
	records := []core.Attendance{
		{Date: day, Category: core.AttendancePresent, WorkedHours: dec("8.17")},
		{Date: day, Category: core.AttendanceLate, WorkedHours: dec("9.5")},
		{Date: day, Category: core.AttendanceAbsent},
		{Date: day, Category: core.AttendanceVacation},
		{Date: day, Category: core.AttendanceHalfDay, WorkedHours: dec("4")},
		{Date: day.AddDays(-1), Category: core.AttendancePresent, WorkedHours: dec("8")},
	}

	stats := attendance.Daily(records, day)
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 1, stats.Late)
	assert.Equal(t, 1, stats.Absent)
	assert.Equal(t, 1, stats.Vacation)
	assert.Equal(t, 1, stats.HalfDay)
	assert.Equal(t, 3, stats.Attended())

	trend := attendance.Trend(records, day, 7)
	require.Len(t, trend, 7)
	assert.Equal(t, day, trend[6].Date)
	assert.Equal(t, 1, trend[5].Present)

	sum := attendance.Summarize(records, testEmployee(8).Settings)
	assert.Equal(t, 2, sum.Present)
	assert.Equal(t, 1, sum.Late)
	assert.Equal(t, 1, sum.Absent)
	assert.True(t, dec("29.67").Equal(sum.TotalHours), sum.TotalHours.String())
	assert.True(t, dec("1.67").Equal(sum.OvertimeHours), sum.OvertimeHours.String())
	assert.True(t, dec("75.15").Equal(sum.OvertimePay), sum.OvertimePay.String())
}

func TestSummarize_OvertimePayMatchesPerRecordPay(t *testing.T) {
	// GIVEN: Two days whose overtime pay rounds up individually
	s := testEmployee(8).Settings
	records := []core.Attendance{
		{Category: core.AttendancePresent, WorkedHours: dec("8.333")},
		{Category: core.AttendancePresent, WorkedHours: dec("8.333")},
	}

	// WHEN: Summarizing
	sum := attendance.Summarize(records, s)

	// THEN: The total is the sum of what each record pays, 14.99 twice
	assert.True(t, dec("14.99").Equal(attendance.OvertimePay(dec("8.333"), s)))
	assert.True(t, dec("29.98").Equal(sum.OvertimePay), sum.OvertimePay.String())
}
