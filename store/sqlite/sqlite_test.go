package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/core/store"
	"github.com/warp/workforce/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEmployee(id, name string) core.Employee {
	return core.Employee{
		ID:         core.EmployeeID(id),
		FullName:   name,
		Email:      id + "@store.com",
		Phone:      "+1 555-01" + id,
		JobTitle:   "Cashier",
		Department: "Sales",
		Role:       core.RoleEmployee,
		Status:     core.StatusActive,
		SalaryType: core.SalaryHourly,
		Salary:     decimal.RequireFromString("18.5"),
		HireDate:   core.MustParseDate("2024-03-01"),
		Settings: core.Settings{
			DailyWorkHours:  decimal.NewFromInt(8),
			HourPrice:       decimal.RequireFromString("18.5"),
			DayPrice:        decimal.NewFromInt(148),
			MonthPrice:      decimal.NewFromInt(2960),
			ExtraHoursPrice: decimal.RequireFromString("27.75"),
			AutoAttendance:  true,
		},
	}
}

func TestEmployees_RoundTripAndFilter(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.SaveEmployee(ctx, sampleEmployee("1", "Sarah Johnson")))
	require.NoError(t, s.SaveEmployee(ctx, sampleEmployee("2", "Michael Chen")))

	got, err := s.GetEmployee(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Sarah Johnson", got.FullName)
	assert.Equal(t, "18.5", got.Salary.String())
	assert.Equal(t, "27.75", got.Settings.ExtraHoursPrice.String())
	assert.True(t, got.Settings.AutoAttendance)
	assert.Equal(t, "2024-03-01", got.HireDate.String())

	missing, err := s.GetEmployee(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// Upsert
	got.Status = core.StatusInactive
	require.NoError(t, s.SaveEmployee(ctx, *got))

	all, err := s.ListEmployees(ctx, core.EmployeeFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Michael Chen", all[0].FullName, "ordered by name")

	inactive, err := s.ListEmployees(ctx, core.EmployeeFilter{Status: core.StatusInactive})
	require.NoError(t, err)
	assert.Len(t, inactive, 1)

	byName, err := s.ListEmployees(ctx, core.EmployeeFilter{Search: "CHEN"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, core.EmployeeID("2"), byName[0].ID)

	byPhone, err := s.ListEmployees(ctx, core.EmployeeFilter{Search: "555-011"})
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)

	byDept, err := s.ListEmployees(ctx, core.EmployeeFilter{Department: "sales"})
	require.NoError(t, err)
	assert.Len(t, byDept, 2)
}

func TestAttendance_OptionalTimesAndOrdering(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	jan13 := core.MustParseDate("2026-01-13")
	jan14 := core.MustParseDate("2026-01-14")

	require.NoError(t, s.SaveAttendance(ctx, core.Attendance{
		ID: "a1", EmployeeID: "1", EmployeeName: "Sarah Johnson", Date: jan13,
		EntryTime:   core.ClockPtr(core.NewClockTime(8, 55)),
		ExitTime:    core.ClockPtr(core.NewClockTime(17, 5)),
		WorkedHours: decimal.RequireFromString("8.17"),
		Category:    core.AttendancePresent,
	}))
	require.NoError(t, s.SaveAttendance(ctx, core.Attendance{
		ID: "a2", EmployeeID: "2", EmployeeName: "Michael Chen", Date: jan14,
		WorkedHours: decimal.Zero, Category: core.AttendanceAbsent, IsAuto: true,
	}))

	got, err := s.GetAttendance(ctx, "a1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "08:55", got.EntryTime.String())
	assert.Equal(t, "17:05", got.ExitTime.String())
	assert.Equal(t, "8.17", got.WorkedHours.String())

	absent, err := s.GetAttendance(ctx, "a2")
	require.NoError(t, err)
	assert.Nil(t, absent.EntryTime)
	assert.Nil(t, absent.ExitTime)
	assert.True(t, absent.IsAuto)

	all, err := s.ListAttendance(ctx, core.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a2", all[0].ID, "newest date first")

	onDate, err := s.ListAttendance(ctx, core.AttendanceFilter{Date: &jan13})
	require.NoError(t, err)
	assert.Len(t, onDate, 1)

	ranged, err := s.ListAttendance(ctx, core.AttendanceFilter{From: &jan13, To: &jan14, Category: core.AttendanceAbsent})
	require.NoError(t, err)
	assert.Len(t, ranged, 1)

	// A second record for the same employee and day is rejected
	err = s.SaveAttendance(ctx, core.Attendance{
		ID: "a3", EmployeeID: "1", EmployeeName: "Sarah Johnson", Date: jan13,
		WorkedHours: decimal.Zero, Category: core.AttendanceAbsent,
	})
	assert.ErrorIs(t, err, core.ErrInvalidValue)
}

func TestPayments_MonthFilter(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	save := func(id, day, amount string, cat core.PaymentCategory) {
		require.NoError(t, s.SavePayment(ctx, core.Payment{
			ID: id, EmployeeID: "1", EmployeeName: "Sarah Johnson",
			Date: core.MustParseDate(day), Amount: decimal.RequireFromString(amount),
			Category: cat, Status: core.PaymentPaid, Description: id,
		}))
	}
	save("p1", "2026-01-01", "5500", core.PaymentSalary)
	save("p2", "2026-01-31", "-150", core.PaymentDeduction)
	save("p3", "2025-12-31", "5500", core.PaymentSalary)

	jan := core.Month{Year: 2026, Month: 1}
	inJan, err := s.ListPayments(ctx, core.PaymentFilter{Month: &jan})
	require.NoError(t, err)
	require.Len(t, inJan, 2)
	assert.Equal(t, "p2", inJan[0].ID)
	assert.Equal(t, "-150", inJan[0].Amount.String())

	deductions, err := s.ListPayments(ctx, core.PaymentFilter{Category: core.PaymentDeduction})
	require.NoError(t, err)
	assert.Len(t, deductions, 1)

	p, err := s.GetPayment(ctx, "p3")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", p.Date.String())
}

func TestVacations_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	v := core.Vacation{
		ID: "v1", EmployeeID: "1", EmployeeName: "Sarah Johnson", Type: core.VacationAnnual,
		StartDate: core.MustParseDate("2026-01-13"), EndDate: core.MustParseDate("2026-01-17"),
		Days: 5, Status: core.VacationPending, Reason: "Family trip",
	}
	require.NoError(t, s.SaveVacation(ctx, v))

	v.Status = core.VacationApproved
	require.NoError(t, s.SaveVacation(ctx, v))

	got, err := s.GetVacation(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, core.VacationApproved, got.Status)
	assert.Equal(t, 5, got.Days)
	assert.Equal(t, "2026-01-17", got.EndDate.String())

	approved, err := s.ListVacations(ctx, core.VacationFilter{Status: core.VacationApproved, Search: "sarah"})
	require.NoError(t, err)
	assert.Len(t, approved, 1)
}

func TestWorkSchedule_DefaultAndSave(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	ws, err := s.GetWorkSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.DefaultWorkSchedule(), ws)

	ws.EntryTime = core.NewClockTime(8, 30)
	ws.GraceMinutes = 5
	require.NoError(t, s.SaveWorkSchedule(ctx, ws))

	got, err := s.GetWorkSchedule(ctx)
	require.NoError(t, err)
	assert.Equal(t, "08:30", got.EntryTime.String())
	assert.Equal(t, 5, got.GraceMinutes)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	require.NoError(t, s.SaveEmployee(ctx, sampleEmployee("1", "Sarah Johnson")))

	require.NoError(t, s.Reset(ctx))

	all, err := s.ListEmployees(ctx, core.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSearch_MatchesMemoryStore(t *testing.T) {
	ctx := context.Background()
	db := newStore(t)
	mem := store.NewMemory()

	// GIVEN: The same names in both stores, including non-ASCII ones
	names := map[string]string{
		"1": "Sarah Johnson",
		"2": "Élodie Durand",
		"3": "ÖMER ŞAHİN",
		"4": "Anna_Lee",
	}
	for id, name := range names {
		e := sampleEmployee(id, name)
		e.Department = "Ventes Générales"
		require.NoError(t, db.SaveEmployee(ctx, e))
		require.NoError(t, mem.SaveEmployee(ctx, e))
		a := core.Attendance{
			ID: "a" + id, EmployeeID: e.ID, EmployeeName: name,
			Date: core.MustParseDate("2026-01-13"), WorkedHours: decimal.NewFromInt(8),
			Category: core.AttendancePresent,
		}
		require.NoError(t, db.SaveAttendance(ctx, a))
		require.NoError(t, mem.SaveAttendance(ctx, a))
	}

	ids := func(es []core.Employee) []core.EmployeeID {
		out := []core.EmployeeID{}
		for _, e := range es {
			out = append(out, e.ID)
		}
		return out
	}

	tests := []struct {
		search string
		want   []core.EmployeeID
	}{
		{"_", []core.EmployeeID{"4"}},
		{"%", []core.EmployeeID{}},
		{"a%n", []core.EmployeeID{}},
		{"élodie", []core.EmployeeID{"2"}},
		{"ÉLODIE", []core.EmployeeID{"2"}},
		{"ömer", []core.EmployeeID{"3"}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			// WHEN: Searching both stores
			got, err := db.ListEmployees(ctx, core.EmployeeFilter{Search: tt.search})
			require.NoError(t, err)
			want, err := mem.ListEmployees(ctx, core.EmployeeFilter{Search: tt.search})
			require.NoError(t, err)

			// THEN: Both return the same employees, wildcards taken literally
			assert.ElementsMatch(t, tt.want, ids(got))
			assert.ElementsMatch(t, ids(want), ids(got))

			records, err := db.ListAttendance(ctx, core.AttendanceFilter{Search: tt.search})
			require.NoError(t, err)
			assert.Len(t, records, len(tt.want))
		})
	}

	byDept, err := db.ListEmployees(ctx, core.EmployeeFilter{Department: "VENTES GÉNÉRALES"})
	require.NoError(t, err)
	assert.Len(t, byDept, len(names))
}

func TestCorruptDecimalIsAnError(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "workforce.db")
	s, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.SaveEmployee(ctx, sampleEmployee("1", "Sarah Johnson")))
	require.NoError(t, s.SavePayment(ctx, core.Payment{
		ID: "p1", EmployeeID: "1", EmployeeName: "Sarah Johnson",
		Date: core.MustParseDate("2026-01-01"), Amount: decimal.NewFromInt(5500),
		Category: core.PaymentSalary, Status: core.PaymentPaid,
	}))

	// GIVEN: Money columns edited outside the application
	raw, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer raw.Close()
	_, err = raw.Exec(`UPDATE payments SET amount = '5,500' WHERE id = 'p1'`)
	require.NoError(t, err)
	_, err = raw.Exec(`UPDATE employees SET salary = 'n/a' WHERE id = '1'`)
	require.NoError(t, err)

	// WHEN: Reading them back
	// THEN: The rows fail loudly instead of reading as zero
	_, err = s.ListPayments(ctx, core.PaymentFilter{})
	assert.ErrorContains(t, err, "failed to scan payment")
	_, err = s.GetPayment(ctx, "p1")
	assert.Error(t, err)
	_, err = s.GetEmployee(ctx, "1")
	assert.ErrorContains(t, err, "failed to scan employee")
}
