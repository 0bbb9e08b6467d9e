/*
scheduler.go - Automated auto-attendance scheduler

PURPOSE:
  Periodically fills in today's attendance for employees whose settings
  have auto-attendance enabled. Shares the generation logic with the
  POST /api/admin/auto-attendance endpoint.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Runs once immediately on start, then on every tick
  - Generation is idempotent per (employee, date): employees that already
    have a record for the day are skipped, so overlapping runs are safe
  - Logs each run with the [Scheduler] prefix

CONFIGURATION:
  - CheckInterval: How often to run (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewAutoAttendanceScheduler(handler.Attendance)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - attendance/service.go: GenerateAuto
  - handlers.go: RunAutoAttendance endpoint (manual trigger)
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/workforce/attendance"
	"github.com/warp/workforce/core"
)

// AutoAttendanceScheduler runs auto-attendance in the background.
type AutoAttendanceScheduler struct {
	Attendance    *attendance.Service
	CheckInterval time.Duration
	Enabled       bool

	// Now is the clock that decides which date a run targets.
	Now func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex

	// lastMu is separate from mu: Stop holds mu while waiting on the run loop.
	lastMu  sync.Mutex
	lastRun time.Time
}

// NewAutoAttendanceScheduler creates a new scheduler.
func NewAutoAttendanceScheduler(svc *attendance.Service) *AutoAttendanceScheduler {
	return &AutoAttendanceScheduler{
		Attendance:    svc,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		Now:           time.Now,
	}
}

// Start begins the scheduler.
func (s *AutoAttendanceScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run(s.ticker, s.stop)

	log.Printf("[Scheduler] Started with check interval: %v", s.CheckInterval)
}

// Stop stops the scheduler and waits for an in-flight run to finish.
func (s *AutoAttendanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.ticker = nil
		log.Println("[Scheduler] Stopped")
	}
}

func (s *AutoAttendanceScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	// Run immediately on start
	s.RunNow(context.Background())
	log.Printf("[Scheduler] Next check at %s", s.GetNextRunTime().Format(time.RFC3339))

	for {
		select {
		case <-ticker.C:
			s.RunNow(context.Background())
			log.Printf("[Scheduler] Next check at %s", s.GetNextRunTime().Format(time.RFC3339))
		case <-stop:
			return
		}
	}
}

// RunNow generates auto-attendance for today (for testing/admin).
func (s *AutoAttendanceScheduler) RunNow(ctx context.Context) (attendance.AutoResult, error) {
	now := s.Now()
	date := core.DateOf(now)

	result, err := s.Attendance.GenerateAuto(ctx, date)
	if err != nil {
		log.Printf("[Scheduler] Auto-attendance for %s failed: %v", date, err)
		return result, err
	}
	if len(result.Created) > 0 || result.Skipped > 0 || len(result.OverLimit) > 0 {
		log.Printf("[Scheduler] Auto-attendance for %s: %d created, %d skipped (already recorded), %d over limit",
			date, len(result.Created), result.Skipped, len(result.OverLimit))
	}

	s.lastMu.Lock()
	s.lastRun = now
	s.lastMu.Unlock()
	return result, nil
}

// LastRun returns when the last successful run finished, zero if none.
func (s *AutoAttendanceScheduler) LastRun() time.Time {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	return s.lastRun
}

// GetNextRunTime returns when the next scheduled check will occur.
func (s *AutoAttendanceScheduler) GetNextRunTime() time.Time {
	return s.Now().Add(s.CheckInterval)
}
