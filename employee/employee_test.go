package employee_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/workforce/core"
	"github.com/warp/workforce/core/store"
	"github.com/warp/workforce/employee"
	"github.com/warp/workforce/store/sqlite"
)

func validInput() employee.Input {
	return employee.Input{
		FullName:   "John Doe",
		Email:      "john@store.com",
		Phone:      "+1 555-0199",
		JobTitle:   "Cashier",
		Department: "Sales",
		SalaryType: "hour",
		Salary:     "18",
	}
}

func TestBuild_AppliesDefaults(t *testing.T) {
	today := core.MustParseDate("2026-01-13")
	in := validInput()
	in.SalaryType = ""

	e, err := employee.Build(in, today)
	require.NoError(t, err)

	assert.Equal(t, core.StatusActive, e.Status)
	assert.Equal(t, core.RoleEmployee, e.Role)
	assert.Equal(t, core.SalaryMonthly, e.SalaryType)
	assert.Equal(t, today, e.HireDate)
	assert.Equal(t, employee.DefaultSettings(), e.Settings)
	assert.Equal(t, "3200", e.Settings.MonthPrice.String())
}

func TestBuild_Validation(t *testing.T) {
	_, err := employee.Build(employee.Input{
		Email: "not-an-email", Role: "owner", SalaryType: "week", Salary: "0", HireDate: "yesterday",
	}, core.MustParseDate("2026-01-13"))

	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	fields := ve.Fields()
	assert.Equal(t, "Full name is required", fields["fullName"])
	assert.Equal(t, "Email is not valid", fields["email"])
	assert.Equal(t, "Salary must be greater than 0", fields["salary"])
	assert.Contains(t, fields, "role")
	assert.Contains(t, fields, "salaryType")
	assert.Contains(t, fields, "hireDate")
}

func TestValidateSettings(t *testing.T) {
	s := employee.DefaultSettings()
	require.NoError(t, employee.ValidateSettings(s))

	s.DailyWorkHours = decimal.Zero
	s.HourPrice = decimal.NewFromInt(-1)
	err := employee.ValidateSettings(s)
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields(), "dailyWorkHours")
	assert.Contains(t, ve.Fields(), "hourPrice")

	s = employee.DefaultSettings()
	s.DailyWorkHours = decimal.NewFromInt(25)
	assert.Error(t, employee.ValidateSettings(s))
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := employee.NewService(store.NewMemory())

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	// Deactivate persists
	_, err = svc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, core.StatusInactive, got.Status)

	// Filters
	inactive, err := svc.List(ctx, core.EmployeeFilter{Status: core.StatusInactive})
	require.NoError(t, err)
	assert.Len(t, inactive, 1)
	byPhone, err := svc.List(ctx, core.EmployeeFilter{Search: "555-0199"})
	require.NoError(t, err)
	assert.Len(t, byPhone, 1)
	byName, err := svc.List(ctx, core.EmployeeFilter{Search: "JOHN"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)
	none, err := svc.List(ctx, core.EmployeeFilter{Department: "Security"})
	require.NoError(t, err)
	assert.Empty(t, none)

	// Update keeps status and settings
	settings := employee.DefaultSettings()
	settings.AutoAttendance = true
	_, err = svc.UpdateSettings(ctx, created.ID, settings)
	require.NoError(t, err)

	in := validInput()
	in.JobTitle = "Shift Supervisor"
	updated, err := svc.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Shift Supervisor", updated.JobTitle)
	assert.Equal(t, core.StatusInactive, updated.Status)
	assert.True(t, updated.Settings.AutoAttendance)
	assert.Equal(t, created.HireDate, updated.HireDate)

	_, err = svc.Activate(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, core.IsNotFound(err))
}

func TestService_UpdateRenamesLinkedRecords(t *testing.T) {
	newSQLite := func(t *testing.T) core.Store {
		db, err := sqlite.New(":memory:")
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		return db
	}
	stores := map[string]func(t *testing.T) core.Store{
		"memory": func(*testing.T) core.Store { return store.NewMemory() },
		"sqlite": newSQLite,
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			st := newStore(t)
			svc := employee.NewService(st)

			// GIVEN: John with one record of each kind
			john, err := svc.Create(ctx, validInput())
			require.NoError(t, err)
			day := core.MustParseDate("2026-01-13")
			require.NoError(t, st.SaveAttendance(ctx, core.Attendance{
				ID: "a1", EmployeeID: john.ID, EmployeeName: john.FullName, Date: day,
				WorkedHours: decimal.NewFromInt(8), Category: core.AttendancePresent,
			}))
			require.NoError(t, st.SavePayment(ctx, core.Payment{
				ID: "p1", EmployeeID: john.ID, EmployeeName: john.FullName, Date: day,
				Amount: decimal.NewFromInt(100), Category: core.PaymentBonus, Status: core.PaymentPaid,
			}))
			require.NoError(t, st.SaveVacation(ctx, core.Vacation{
				ID: "v1", EmployeeID: john.ID, EmployeeName: john.FullName, Type: core.VacationAnnual,
				StartDate: day, EndDate: day, Days: 1, Status: core.VacationPending,
			}))

			// WHEN: His name changes
			in := validInput()
			in.FullName = "Jonathan Doe-Smith"
			_, err = svc.Update(ctx, john.ID, in)
			require.NoError(t, err)

			// THEN: Searches by the new name find every record, the old name none
			attendance, err := st.ListAttendance(ctx, core.AttendanceFilter{Search: "jonathan"})
			require.NoError(t, err)
			require.Len(t, attendance, 1)
			assert.Equal(t, "Jonathan Doe-Smith", attendance[0].EmployeeName)

			payments, err := st.ListPayments(ctx, core.PaymentFilter{Search: "jonathan"})
			require.NoError(t, err)
			require.Len(t, payments, 1)
			assert.Equal(t, "100", payments[0].Amount.String())

			vacations, err := st.ListVacations(ctx, core.VacationFilter{Search: "jonathan"})
			require.NoError(t, err)
			require.Len(t, vacations, 1)
			assert.Equal(t, core.VacationPending, vacations[0].Status)

			stale, err := st.ListAttendance(ctx, core.AttendanceFilter{Search: "john doe"})
			require.NoError(t, err)
			assert.Empty(t, stale)
		})
	}
}
