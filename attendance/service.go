package attendance

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/warp/workforce/core"
)

// =============================================================================
// SERVICE - Store-backed attendance operations
// =============================================================================

// Service records and queries attendance.
//
// Record and GenerateAuto hold mu across the duplicate check and the save,
// keeping at most one record per employee per day on any store.
type Service struct {
	store core.Store
	rules Rules
	mu    sync.Mutex
}

func NewService(store core.Store, rules Rules) *Service {
	return &Service{store: store, rules: rules}
}

// Rules returns the limits the service validates against.
func (s *Service) Rules() Rules { return s.rules }

// Record validates a manual attendance entry for an employee and saves it.
func (s *Service) Record(ctx context.Context, employeeID core.EmployeeID, in Input) (*core.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, &core.NotFoundError{Kind: "employee", ID: string(employeeID)}
	}

	schedule, err := s.store.GetWorkSchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("load work schedule: %w", err)
	}

	rec, err := Build(in, *emp, schedule, s.rules)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.ListAttendance(ctx, core.AttendanceFilter{EmployeeID: emp.ID, Date: &rec.Date})
	if err != nil {
		return nil, fmt.Errorf("check existing attendance: %w", err)
	}
	if len(existing) > 0 {
		v := core.NewValidator()
		v.Add("date", core.ErrInvalidValue, "Attendance already recorded for "+rec.Date.String())
		return nil, v.Err()
	}

	rec.ID = core.NewID()
	if err := s.store.SaveAttendance(ctx, rec); err != nil {
		return nil, fmt.Errorf("save attendance: %w", err)
	}
	return &rec, nil
}

// List returns records matching f.
func (s *Service) List(ctx context.Context, f core.AttendanceFilter) ([]core.Attendance, error) {
	return s.store.ListAttendance(ctx, f)
}

// DailyStats counts the records of one day.
func (s *Service) DailyStats(ctx context.Context, date core.Date) (DailyStats, error) {
	records, err := s.store.ListAttendance(ctx, core.AttendanceFilter{Date: &date})
	if err != nil {
		return DailyStats{}, err
	}
	return Daily(records, date), nil
}

// ForEmployee returns an employee's records and their summary.
func (s *Service) ForEmployee(ctx context.Context, employeeID core.EmployeeID) ([]core.Attendance, Summary, error) {
	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, Summary{}, &core.NotFoundError{Kind: "employee", ID: string(employeeID)}
	}
	records, err := s.store.ListAttendance(ctx, core.AttendanceFilter{EmployeeID: employeeID})
	if err != nil {
		return nil, Summary{}, err
	}
	return records, Summarize(records, emp.Settings), nil
}

// =============================================================================
// AUTO-ATTENDANCE
// =============================================================================

// AutoResult reports one auto-attendance run.
type AutoResult struct {
	Date    core.Date
	Created []core.Attendance
	// Skipped counts employees that already had a record for the date.
	Skipped int
	// OverLimit lists employees whose scheduled day is longer than their
	// daily hours plus the allowed extra hours. No record is written.
	OverLimit []core.EmployeeID
}

// GenerateAuto fills in the day's attendance for active employees flagged
// for auto-attendance. An employee on approved leave gets a vacation record,
// everyone else a present record at the scheduled hours. Employees that
// already have a record for the date are skipped, so reruns are harmless.
// A scheduled day above Rules.MaxWorkedHours for an employee is reported in
// OverLimit instead of being recorded.
func (s *Service) GenerateAuto(ctx context.Context, date core.Date) (AutoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := AutoResult{Date: date}

	employees, err := s.store.ListEmployees(ctx, core.EmployeeFilter{Status: core.StatusActive})
	if err != nil {
		return result, fmt.Errorf("list employees: %w", err)
	}
	schedule, err := s.store.GetWorkSchedule(ctx)
	if err != nil {
		return result, fmt.Errorf("load work schedule: %w", err)
	}
	approved, err := s.store.ListVacations(ctx, core.VacationFilter{Status: core.VacationApproved})
	if err != nil {
		return result, fmt.Errorf("list vacations: %w", err)
	}
	onLeave := make(map[core.EmployeeID]bool)
	for _, v := range approved {
		if v.Covers(date) {
			onLeave[v.EmployeeID] = true
		}
	}

	for _, emp := range employees {
		if !emp.Settings.AutoAttendance {
			continue
		}
		existing, err := s.store.ListAttendance(ctx, core.AttendanceFilter{EmployeeID: emp.ID, Date: &date})
		if err != nil {
			return result, fmt.Errorf("check attendance for %s: %w", emp.ID, err)
		}
		if len(existing) > 0 {
			result.Skipped++
			continue
		}

		rec := core.Attendance{
			ID:           core.NewID(),
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Date:         date,
			Category:     core.AttendancePresent,
			IsAuto:       true,
		}
		if onLeave[emp.ID] {
			rec.Category = core.AttendanceVacation
		} else {
			rec.EntryTime = core.ClockPtr(schedule.EntryTime)
			rec.ExitTime = core.ClockPtr(schedule.ExitTime)
		}
		rec.WorkedHours = WorkedHours(rec.EntryTime, rec.ExitTime, rec.Category)
		if limit := s.rules.MaxWorkedHours(emp.Settings); rec.WorkedHours.GreaterThan(limit) {
			log.Printf("[AutoAttendance] %s: skipped %s, scheduled %sh exceeds %sh",
				date, emp.ID, rec.WorkedHours, limit)
			result.OverLimit = append(result.OverLimit, emp.ID)
			continue
		}

		if err := s.store.SaveAttendance(ctx, rec); err != nil {
			return result, fmt.Errorf("save auto attendance for %s: %w", emp.ID, err)
		}
		result.Created = append(result.Created, rec)
	}

	log.Printf("[AutoAttendance] %s: created %d, skipped %d, over limit %d",
		date, len(result.Created), result.Skipped, len(result.OverLimit))
	return result, nil
}
