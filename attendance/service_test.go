package attendance_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/core/store"
)

func seededStore(t *testing.T) *store.Memory {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()

	save := func(id, name string, auto bool, status core.EmployeeStatus) {
		require.NoError(t, st.SaveEmployee(ctx, core.Employee{
			ID: core.EmployeeID(id), FullName: name, Status: status,
			Settings: core.Settings{DailyWorkHours: decimal.NewFromInt(8), AutoAttendance: auto},
		}))
	}
	save("1", "Sarah Johnson", true, core.StatusActive)
	save("2", "Michael Chen", false, core.StatusActive)
	save("3", "Emily Rodriguez", true, core.StatusActive)
	save("6", "David Thompson", true, core.StatusInactive)
	save("8", "Robert Kim", true, core.StatusActive)

	require.NoError(t, st.SaveVacation(ctx, core.Vacation{
		ID: "v1", EmployeeID: "8", EmployeeName: "Robert Kim", Type: core.VacationAnnual,
		StartDate: core.MustParseDate("2026-01-13"), EndDate: core.MustParseDate("2026-01-17"),
		Days: 5, Status: core.VacationApproved,
	}))
	return st
}

func TestService_RecordRejectsSecondRecordSameDay(t *testing.T) {
	ctx := context.Background()
	svc := attendance.NewService(seededStore(t), attendance.DefaultRules())

	in := attendance.Input{Date: "2026-01-13", EntryTime: "09:15", ExitTime: "17:30"}
	rec, err := svc.Record(ctx, "2", in)
	require.NoError(t, err)
	assert.Equal(t, core.AttendanceLate, rec.Category)
	assert.Equal(t, "Michael Chen", rec.EmployeeName)

	_, err = svc.Record(ctx, "2", in)
	assert.ErrorIs(t, err, core.ErrValidation)

	_, err = svc.Record(ctx, "missing", in)
	assert.True(t, core.IsNotFound(err))
}

func TestService_GenerateAutoIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	svc := attendance.NewService(st, attendance.DefaultRules())
	date := core.MustParseDate("2026-01-13")

	// GIVEN: Emily already clocked in manually
	_, err := svc.Record(ctx, "3", attendance.Input{Date: "2026-01-13", EntryTime: "08:45", ExitTime: "17:00"})
	require.NoError(t, err)

	// WHEN: auto-attendance runs
	result, err := svc.GenerateAuto(ctx, date)
	require.NoError(t, err)

	// THEN: Sarah gets a present record, Robert a vacation record,
	// Emily is skipped, Michael (no flag) and David (inactive) are ignored
	require.Len(t, result.Created, 2)
	assert.Equal(t, 1, result.Skipped)

	byEmployee := map[core.EmployeeID]core.Attendance{}
	for _, a := range result.Created {
		byEmployee[a.EmployeeID] = a
		assert.True(t, a.IsAuto)
	}
	sarah := byEmployee["1"]
	assert.Equal(t, core.AttendancePresent, sarah.Category)
	assert.Equal(t, "09:00", sarah.EntryTime.String())
	assert.Equal(t, "8", sarah.WorkedHours.String())

	robert := byEmployee["8"]
	assert.Equal(t, core.AttendanceVacation, robert.Category)
	assert.Nil(t, robert.EntryTime)
	assert.True(t, robert.WorkedHours.IsZero())

	// Running again creates nothing
	again, err := svc.GenerateAuto(ctx, date)
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Equal(t, 3, again.Skipped)

	all, err := svc.List(ctx, core.AttendanceFilter{Date: &date})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestService_DailyStatsAndForEmployee(t *testing.T) {
	ctx := context.Background()
	svc := attendance.NewService(seededStore(t), attendance.DefaultRules())

	_, err := svc.Record(ctx, "1", attendance.Input{Date: "2026-01-13", EntryTime: "08:00", ExitTime: "18:30"})
	require.NoError(t, err)
	_, err = svc.Record(ctx, "2", attendance.Input{Date: "2026-01-13", Category: "absent"})
	require.NoError(t, err)

	stats, err := svc.DailyStats(ctx, core.MustParseDate("2026-01-13"))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 1, stats.Absent)

	records, summary, err := svc.ForEmployee(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "10.5", summary.TotalHours.String())
	assert.Equal(t, "2.5", summary.OvertimeHours.String())
}

func TestBuildSchedule(t *testing.T) {
	ws, err := attendance.BuildSchedule(attendance.ScheduleInput{
		EntryTime: "08:30", ExitTime: "16:30", BreakMinutes: 30, GraceMinutes: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "08:30", ws.EntryTime.String())
	assert.Equal(t, 30, ws.BreakMinutes)

	_, err = attendance.BuildSchedule(attendance.ScheduleInput{
		EntryTime: "17:00", ExitTime: "09:00", GraceMinutes: -1,
	})
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Exit time must be after entry time", ve.Fields()["exitTime"])
	assert.Contains(t, ve.Fields(), "graceMinutes")

	_, err = attendance.BuildSchedule(attendance.ScheduleInput{EntryTime: "9am", ExitTime: "17:00"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Entry time must be HH:MM", ve.Fields()["entryTime"])
}

func TestService_UpdateSchedule(t *testing.T) {
	ctx := context.Background()
	svc := attendance.NewService(store.NewMemory(), attendance.DefaultRules())

	ws, err := svc.Schedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultWorkSchedule(), ws)

	_, err = svc.UpdateSchedule(ctx, attendance.ScheduleInput{EntryTime: "10:00", ExitTime: "18:00", BreakMinutes: 45})
	require.NoError(t, err)

	ws, err = svc.Schedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10:00", ws.EntryTime.String())
	assert.Equal(t, 45, ws.BreakMinutes)
}

func TestService_ConcurrentRecordsKeepOnePerDay(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	svc := attendance.NewService(st, attendance.DefaultRules())
	date := core.MustParseDate("2026-01-13")

	// GIVEN: Several clients submitting Michael's day at once
	const clients = 8
	var wg sync.WaitGroup
	errs := make([]error, clients)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Record(ctx, "2", attendance.Input{Date: "2026-01-13", EntryTime: "09:00", ExitTime: "17:00"})
		}(i)
	}
	wg.Wait()

	// THEN: Exactly one is stored, the rest fail validation
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, core.ErrValidation)
	}
	assert.Equal(t, 1, succeeded)

	records, err := svc.List(ctx, core.AttendanceFilter{EmployeeID: "2", Date: &date})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestService_GenerateAutoSkipsScheduleOverLimit(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t)
	svc := attendance.NewService(st, attendance.DefaultRules())

	// GIVEN: A 06:00-22:00 schedule, 16 hours against an 8+4 hour limit
	require.NoError(t, st.SaveWorkSchedule(ctx, core.WorkSchedule{
		EntryTime: core.NewClockTime(6, 0), ExitTime: core.NewClockTime(22, 0),
		BreakMinutes: 60, GraceMinutes: 10,
	}))
	date := core.MustParseDate("2026-01-13")

	// WHEN: auto-attendance runs
	result, err := svc.GenerateAuto(ctx, date)
	require.NoError(t, err)

	// THEN: Sarah and Emily are reported instead of recorded, while Robert's
	// vacation record carries no hours and is still written
	assert.ElementsMatch(t, []core.EmployeeID{"1", "3"}, result.OverLimit)
	require.Len(t, result.Created, 1)
	assert.Equal(t, core.EmployeeID("8"), result.Created[0].EmployeeID)
	assert.Equal(t, core.AttendanceVacation, result.Created[0].Category)

	all, err := svc.List(ctx, core.AttendanceFilter{Date: &date})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
