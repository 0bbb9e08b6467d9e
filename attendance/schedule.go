package attendance

import (
	"context"
	"fmt"

	"github.com/warp/workforce/core"
)

// ScheduleInput is the company work schedule form.
type ScheduleInput struct {
	EntryTime    string
	ExitTime     string
	BreakMinutes int
	GraceMinutes int
}

// BuildSchedule validates in. Exit must be after entry and the break must
// fit inside the working day.
func BuildSchedule(in ScheduleInput) (core.WorkSchedule, error) {
	v := core.NewValidator()
	var ws core.WorkSchedule

	if v.Required("entryTime", in.EntryTime, "Entry time is required") {
		t, err := core.ParseClockTime(in.EntryTime)
		if v.Check("entryTime", err == nil, core.ErrInvalidValue, "Entry time must be HH:MM") {
			ws.EntryTime = t
		}
	}
	if v.Required("exitTime", in.ExitTime, "Exit time is required") {
		t, err := core.ParseClockTime(in.ExitTime)
		if v.Check("exitTime", err == nil, core.ErrInvalidValue, "Exit time must be HH:MM") {
			ws.ExitTime = t
		}
	}
	if !v.Has("entryTime") && !v.Has("exitTime") {
		v.Check("exitTime", ws.ExitTime.After(ws.EntryTime), core.ErrDateOrder, "Exit time must be after entry time")
	}

	span := ws.ExitTime.Minutes() - ws.EntryTime.Minutes()
	v.Check("breakMinutes", in.BreakMinutes >= 0, core.ErrInvalidValue, "Break minutes cannot be negative")
	if !v.Has("exitTime") && !v.Has("breakMinutes") {
		v.Check("breakMinutes", in.BreakMinutes < span, core.ErrInvalidValue, "Break must be shorter than the working day")
	}
	v.Check("graceMinutes", in.GraceMinutes >= 0, core.ErrInvalidValue, "Grace minutes cannot be negative")

	if err := v.Err(); err != nil {
		return core.WorkSchedule{}, err
	}
	ws.BreakMinutes = in.BreakMinutes
	ws.GraceMinutes = in.GraceMinutes
	return ws, nil
}

// Schedule returns the company work schedule.
func (s *Service) Schedule(ctx context.Context) (core.WorkSchedule, error) {
	return s.store.GetWorkSchedule(ctx)
}

// UpdateSchedule validates and stores a new company work schedule.
func (s *Service) UpdateSchedule(ctx context.Context, in ScheduleInput) (core.WorkSchedule, error) {
	ws, err := BuildSchedule(in)
	if err != nil {
		return core.WorkSchedule{}, err
	}
	if err := s.store.SaveWorkSchedule(ctx, ws); err != nil {
		return core.WorkSchedule{}, fmt.Errorf("save work schedule: %w", err)
	}
	return ws, nil
}
