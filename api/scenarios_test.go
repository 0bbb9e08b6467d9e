/*
scenarios_test.go - Unit tests for demo scenarios

PURPOSE:
	Tests that each scenario correctly sets up the expected state:
	- Employees are created with their settings
	- Attendance, payments and vacations carry derived values
	- Loading is repeatable (reset first)

These tests ensure scenarios work correctly and can be used as integration tests.
*/
package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/workforce/core"
	"github.com/warp/workforce/core/store"
	"github.com/warp/workforce/store/sqlite"
)

func TestScenario_Demo(t *testing.T) {
	// GIVEN: An empty SQLite store
	// WHEN: Loading the demo scenario
	// THEN: All demo records exist with derived fields filled in

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	require.NoError(t, LoadScenario(ctx, db, "demo"))

	employees, err := db.ListEmployees(ctx, core.EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, employees, 8)

	records, err := db.ListAttendance(ctx, core.AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 10)

	payments, err := db.ListPayments(ctx, core.PaymentFilter{})
	require.NoError(t, err)
	assert.Len(t, payments, 10)

	deduction, err := db.GetPayment(ctx, "pay-5")
	require.NoError(t, err)
	require.NotNil(t, deduction)
	assert.Equal(t, "-150", deduction.Amount.String())

	late, err := db.GetAttendance(ctx, "att-2")
	require.NoError(t, err)
	require.NotNil(t, late)
	assert.Equal(t, "8.25", late.WorkedHours.String())
	assert.Equal(t, "Michael Chen", late.EmployeeName)

	holiday, err := db.GetVacation(ctx, "vac-5")
	require.NoError(t, err)
	require.NotNil(t, holiday)
	assert.Equal(t, 8, holiday.Days)
}

func TestScenario_LoadTwiceResets(t *testing.T) {
	s := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, LoadScenario(ctx, s, "demo"))
	require.NoError(t, LoadScenario(ctx, s, "demo"))

	employees, err := s.ListEmployees(ctx, core.EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, employees, 8)

	require.NoError(t, LoadScenario(ctx, s, "empty"))
	employees, err = s.ListEmployees(ctx, core.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, employees)
}

func TestScenario_Unknown(t *testing.T) {
	err := LoadScenario(context.Background(), store.NewMemory(), "nope")

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestScenarioEndpoints(t *testing.T) {
	router, _ := setupDemoServer(t)

	list := decode[[]ScenarioDTO](t, do(t, router, http.MethodGet, "/api/scenarios", nil))
	assert.Len(t, list, 2)

	// Nothing loaded through the API yet
	rec := do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))

	rec = do(t, router, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "missing"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[ErrorResponse](t, rec).Fields, "scenario_id")

	rec = do(t, router, http.MethodPost, "/api/scenarios/load", map[string]string{"scenario_id": "demo"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	current := decode[ScenarioDTO](t, do(t, router, http.MethodGet, "/api/scenarios/current", nil))
	assert.Equal(t, "demo", current.ID)

	rec = do(t, router, http.MethodPost, "/api/scenarios/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	employees := decode[[]EmployeeDTO](t, do(t, router, http.MethodGet, "/api/employees", nil))
	assert.Empty(t, employees)
	rec = do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}
