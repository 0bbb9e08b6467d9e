/*
Package sqlite provides a SQLite-backed implementation of core.Store.

PURPOSE:
  Persists employees, attendance, payments, vacation requests and the
  company work schedule. Every domain service works against core.Store,
  so this package and core/store.Memory are interchangeable.

KEY TABLES:
  employees:      Directory records with embedded pay settings
  attendance:     One row per employee per day
  payments:       Signed payment entries (deductions negative)
  vacations:      Leave requests
  work_schedule:  Single-row company schedule

VALUE ENCODING:
  - Money and hours: decimal strings (never REAL, no float drift)
  - Dates:           TEXT YYYY-MM-DD (sortable, comparable in SQL)
  - Clock times:     TEXT HH:MM, NULL when absent

INDEXES:
  - idx_attendance_employee_date: UNIQUE, one record per employee per day
  - idx_payments_employee_date:   payroll progress (hot path)
  - idx_vacations_employee:       balance calculation

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In-memory databases are pinned to a
  single connection, since each new connection would see an empty database.

WAL MODE:
  File databases are opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/workforce.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - core/store.go: Interface definitions and filter semantics
  - core/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/workforce/core"
)

// driverName is go-sqlite3 with a fold(text) function registered on every
// connection. fold lowercases with Go's Unicode rules, the same folding
// core filters use, where SQLite's LOWER only knows ASCII.
const driverName = "sqlite3_workforce"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", strings.ToLower, true)
		},
	})
}

// Store implements core.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ core.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL"
	if dbPath == ":memory:" {
		dsn = "file::memory:?_foreign_keys=on"
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT,
		job_title TEXT,
		department TEXT,
		role TEXT NOT NULL DEFAULT 'employee',
		status TEXT NOT NULL DEFAULT 'active',
		salary_type TEXT NOT NULL,
		salary TEXT NOT NULL,
		hire_date TEXT NOT NULL,
		daily_work_hours TEXT NOT NULL,
		hour_price TEXT NOT NULL,
		day_price TEXT NOT NULL,
		month_price TEXT NOT NULL,
		extra_hours_price TEXT NOT NULL,
		auto_attendance BOOLEAN NOT NULL DEFAULT FALSE
	);

	CREATE INDEX IF NOT EXISTS idx_employees_status
		ON employees(status);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		date TEXT NOT NULL,
		entry_time TEXT,
		exit_time TEXT,
		worked_hours TEXT NOT NULL,
		category TEXT NOT NULL,
		is_auto BOOLEAN NOT NULL DEFAULT FALSE
	);

	-- One attendance record per employee per day
	CREATE UNIQUE INDEX IF NOT EXISTS idx_attendance_employee_date
		ON attendance(employee_id, date);
	CREATE INDEX IF NOT EXISTS idx_attendance_date
		ON attendance(date);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		date TEXT NOT NULL,
		amount TEXT NOT NULL,
		category TEXT NOT NULL,
		status TEXT NOT NULL,
		description TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_payments_employee_date
		ON payments(employee_id, date);

	CREATE TABLE IF NOT EXISTS vacations (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		days INTEGER NOT NULL,
		status TEXT NOT NULL,
		reason TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_vacations_employee
		ON vacations(employee_id);
	CREATE INDEX IF NOT EXISTS idx_vacations_status
		ON vacations(status);

	CREATE TABLE IF NOT EXISTS work_schedule (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		entry_time TEXT NOT NULL,
		exit_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL,
		grace_minutes INTEGER NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset clears all data (for demo/testing).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"attendance", "payments", "vacations", "employees", "work_schedule"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

const employeeColumns = `id, full_name, email, phone, job_title, department, role, status,
	salary_type, salary, hire_date, daily_work_hours, hour_price, day_price, month_price,
	extra_hours_price, auto_attendance`

// SaveEmployee inserts or updates an employee.
func (s *Store) SaveEmployee(ctx context.Context, e core.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			email = excluded.email,
			phone = excluded.phone,
			job_title = excluded.job_title,
			department = excluded.department,
			role = excluded.role,
			status = excluded.status,
			salary_type = excluded.salary_type,
			salary = excluded.salary,
			hire_date = excluded.hire_date,
			daily_work_hours = excluded.daily_work_hours,
			hour_price = excluded.hour_price,
			day_price = excluded.day_price,
			month_price = excluded.month_price,
			extra_hours_price = excluded.extra_hours_price,
			auto_attendance = excluded.auto_attendance
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.FullName, e.Email, e.Phone, e.JobTitle, e.Department, e.Role, e.Status,
		e.SalaryType, e.Salary.String(), e.HireDate.String(),
		e.Settings.DailyWorkHours.String(),
		e.Settings.HourPrice.String(),
		e.Settings.DayPrice.String(),
		e.Settings.MonthPrice.String(),
		e.Settings.ExtraHoursPrice.String(),
		e.Settings.AutoAttendance,
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

// GetEmployee retrieves an employee by ID. Returns nil, nil when missing.
func (s *Store) GetEmployee(ctx context.Context, id core.EmployeeID) (*core.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.queryEmployees(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE id = ?", id)
	if err != nil || len(employees) == 0 {
		return nil, err
	}
	return &employees[0], nil
}

// ListEmployees returns employees matching f ordered by name.
func (s *Store) ListEmployees(ctx context.Context, f core.EmployeeFilter) ([]core.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := where{}
	if f.Search != "" {
		w.add("(instr(fold(full_name), fold(?)) > 0 OR instr(phone, ?) > 0)", f.Search, f.Search)
	}
	w.addIf(f.Status != "", "status = ?", f.Status)
	w.addIf(f.Role != "", "role = ?", f.Role)
	w.addIf(f.Department != "", "fold(department) = fold(?)", f.Department)

	return s.queryEmployees(ctx,
		"SELECT "+employeeColumns+" FROM employees"+w.sql()+" ORDER BY full_name ASC", w.args...)
}

func (s *Store) queryEmployees(ctx context.Context, query string, args ...any) ([]core.Employee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []core.Employee{}
	for rows.Next() {
		var (
			e                           core.Employee
			phone, jobTitle, department sql.NullString
			hireDate                    string
		)
		// decimal.Decimal scans TEXT itself and rejects malformed values
		err := rows.Scan(
			&e.ID, &e.FullName, &e.Email, &phone, &jobTitle, &department, &e.Role, &e.Status,
			&e.SalaryType, &e.Salary, &hireDate,
			&e.Settings.DailyWorkHours, &e.Settings.HourPrice, &e.Settings.DayPrice,
			&e.Settings.MonthPrice, &e.Settings.ExtraHoursPrice, &e.Settings.AutoAttendance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.Phone = phone.String
		e.JobTitle = jobTitle.String
		e.Department = department.String
		e.HireDate = parseDate(hireDate)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// =============================================================================
// ATTENDANCE STORE
// =============================================================================

const attendanceColumns = `id, employee_id, employee_name, date, entry_time, exit_time,
	worked_hours, category, is_auto`

// SaveAttendance inserts or updates an attendance record.
func (s *Store) SaveAttendance(ctx context.Context, a core.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO attendance (` + attendanceColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_name = excluded.employee_name,
			date = excluded.date,
			entry_time = excluded.entry_time,
			exit_time = excluded.exit_time,
			worked_hours = excluded.worked_hours,
			category = excluded.category,
			is_auto = excluded.is_auto
	`

	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.EmployeeID, a.EmployeeName, a.Date.String(),
		nullClock(a.EntryTime), nullClock(a.ExitTime),
		a.WorkedHours.String(), a.Category, a.IsAuto,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("attendance for %s on %s: %w", a.EmployeeID, a.Date, core.ErrInvalidValue)
		}
		return fmt.Errorf("failed to save attendance: %w", err)
	}
	return nil
}

func (s *Store) GetAttendance(ctx context.Context, id string) (*core.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.queryAttendance(ctx,
		"SELECT "+attendanceColumns+" FROM attendance WHERE id = ?", id)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

func (s *Store) ListAttendance(ctx context.Context, f core.AttendanceFilter) ([]core.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := where{}
	w.addIf(f.EmployeeID != "", "employee_id = ?", f.EmployeeID)
	w.addIf(f.Search != "", "instr(fold(employee_name), fold(?)) > 0", f.Search)
	if f.Date != nil {
		w.add("date = ?", f.Date.String())
	}
	if f.From != nil {
		w.add("date >= ?", f.From.String())
	}
	if f.To != nil {
		w.add("date <= ?", f.To.String())
	}
	w.addIf(f.Category != "", "category = ?", f.Category)

	return s.queryAttendance(ctx,
		"SELECT "+attendanceColumns+" FROM attendance"+w.sql()+" ORDER BY date DESC, employee_name ASC", w.args...)
}

func (s *Store) queryAttendance(ctx context.Context, query string, args ...any) ([]core.Attendance, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	records := []core.Attendance{}
	for rows.Next() {
		var (
			a                   core.Attendance
			date                string
			entryTime, exitTime sql.NullString
		)
		err := rows.Scan(&a.ID, &a.EmployeeID, &a.EmployeeName, &date,
			&entryTime, &exitTime, &a.WorkedHours, &a.Category, &a.IsAuto)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		a.Date = parseDate(date)
		a.EntryTime = parseClock(entryTime)
		a.ExitTime = parseClock(exitTime)
		records = append(records, a)
	}
	return records, rows.Err()
}

// =============================================================================
// PAYMENT STORE
// =============================================================================

const paymentColumns = `id, employee_id, employee_name, date, amount, category, status, description`

func (s *Store) SavePayment(ctx context.Context, p core.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_name = excluded.employee_name,
			date = excluded.date,
			amount = excluded.amount,
			category = excluded.category,
			status = excluded.status,
			description = excluded.description
	`

	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.EmployeeID, p.EmployeeName, p.Date.String(),
		p.Amount.String(), p.Category, p.Status, p.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

func (s *Store) GetPayment(ctx context.Context, id string) (*core.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payments, err := s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id = ?", id)
	if err != nil || len(payments) == 0 {
		return nil, err
	}
	return &payments[0], nil
}

func (s *Store) ListPayments(ctx context.Context, f core.PaymentFilter) ([]core.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := where{}
	w.addIf(f.EmployeeID != "", "employee_id = ?", f.EmployeeID)
	w.addIf(f.Search != "", "instr(fold(employee_name), fold(?)) > 0", f.Search)
	w.addIf(f.Category != "", "category = ?", f.Category)
	w.addIf(f.Status != "", "status = ?", f.Status)
	if f.Month != nil {
		w.add("date >= ? AND date <= ?", f.Month.Start().String(), f.Month.End().String())
	}

	return s.queryPayments(ctx,
		"SELECT "+paymentColumns+" FROM payments"+w.sql()+" ORDER BY date DESC, id ASC", w.args...)
}

func (s *Store) queryPayments(ctx context.Context, query string, args ...any) ([]core.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []core.Payment{}
	for rows.Next() {
		var (
			p           core.Payment
			date        string
			description sql.NullString
		)
		err := rows.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName, &date,
			&p.Amount, &p.Category, &p.Status, &description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Date = parseDate(date)
		p.Description = description.String
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// =============================================================================
// VACATION STORE
// =============================================================================

const vacationColumns = `id, employee_id, employee_name, type, start_date, end_date, days, status, reason`

func (s *Store) SaveVacation(ctx context.Context, v core.Vacation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO vacations (` + vacationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			employee_name = excluded.employee_name,
			type = excluded.type,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			days = excluded.days,
			status = excluded.status,
			reason = excluded.reason
	`

	_, err := s.db.ExecContext(ctx, query,
		v.ID, v.EmployeeID, v.EmployeeName, v.Type,
		v.StartDate.String(), v.EndDate.String(), v.Days, v.Status, v.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to save vacation: %w", err)
	}
	return nil
}

func (s *Store) GetVacation(ctx context.Context, id string) (*core.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vacations, err := s.queryVacations(ctx,
		"SELECT "+vacationColumns+" FROM vacations WHERE id = ?", id)
	if err != nil || len(vacations) == 0 {
		return nil, err
	}
	return &vacations[0], nil
}

func (s *Store) ListVacations(ctx context.Context, f core.VacationFilter) ([]core.Vacation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w := where{}
	w.addIf(f.EmployeeID != "", "employee_id = ?", f.EmployeeID)
	w.addIf(f.Search != "", "instr(fold(employee_name), fold(?)) > 0", f.Search)
	w.addIf(f.Type != "", "type = ?", f.Type)
	w.addIf(f.Status != "", "status = ?", f.Status)

	return s.queryVacations(ctx,
		"SELECT "+vacationColumns+" FROM vacations"+w.sql()+" ORDER BY start_date DESC, id ASC", w.args...)
}

func (s *Store) queryVacations(ctx context.Context, query string, args ...any) ([]core.Vacation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vacations: %w", err)
	}
	defer rows.Close()

	vacations := []core.Vacation{}
	for rows.Next() {
		var (
			v          core.Vacation
			start, end string
			reason     sql.NullString
		)
		err := rows.Scan(&v.ID, &v.EmployeeID, &v.EmployeeName, &v.Type,
			&start, &end, &v.Days, &v.Status, &reason)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vacation: %w", err)
		}
		v.StartDate = parseDate(start)
		v.EndDate = parseDate(end)
		v.Reason = reason.String
		vacations = append(vacations, v)
	}
	return vacations, rows.Err()
}

// =============================================================================
// WORK SCHEDULE STORE
// =============================================================================

func (s *Store) GetWorkSchedule(ctx context.Context) (core.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		ws          core.WorkSchedule
		entry, exit string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT entry_time, exit_time, break_minutes, grace_minutes FROM work_schedule WHERE id = 1",
	).Scan(&entry, &exit, &ws.BreakMinutes, &ws.GraceMinutes)
	if err == sql.ErrNoRows {
		return core.DefaultWorkSchedule(), nil
	}
	if err != nil {
		return core.WorkSchedule{}, fmt.Errorf("failed to load work schedule: %w", err)
	}

	if ws.EntryTime, err = core.ParseClockTime(entry); err != nil {
		return core.WorkSchedule{}, err
	}
	if ws.ExitTime, err = core.ParseClockTime(exit); err != nil {
		return core.WorkSchedule{}, err
	}
	return ws, nil
}

func (s *Store) SaveWorkSchedule(ctx context.Context, ws core.WorkSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_schedule (id, entry_time, exit_time, break_minutes, grace_minutes)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			entry_time = excluded.entry_time,
			exit_time = excluded.exit_time,
			break_minutes = excluded.break_minutes,
			grace_minutes = excluded.grace_minutes
	`, ws.EntryTime.String(), ws.ExitTime.String(), ws.BreakMinutes, ws.GraceMinutes)
	if err != nil {
		return fmt.Errorf("failed to save work schedule: %w", err)
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// where accumulates AND-ed conditions.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) addIf(ok bool, cond string, args ...any) {
	if ok {
		w.add(cond, args...)
	}
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func nullClock(c *core.ClockTime) sql.NullString {
	if c == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: c.String(), Valid: true}
}

func parseClock(s sql.NullString) *core.ClockTime {
	if !s.Valid || s.String == "" {
		return nil
	}
	c, err := core.ParseClockTime(s.String)
	if err != nil {
		return nil
	}
	return &c
}

func parseDate(s string) core.Date {
	d, _ := core.ParseDate(s)
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
