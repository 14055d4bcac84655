package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/clock"
)

// AttendanceJobs closes punch-ins that were never punched out. A stale row
// gets its punch-out snapped to the scheduled end of its window, so the day
// still normalizes instead of counting as fully absent.
type AttendanceJobs struct {
	clock          clock.Clock
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   schedule.ScheduleRepository
}

func NewAttendanceJobs(
	clk clock.Clock,
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		clock:          clk,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_punches", 1*time.Hour, j.AutoCloseStalePunches)
}

func (j *AttendanceJobs) AutoCloseStalePunches(ctx context.Context) error {
	now := j.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stale, err := j.attendanceRepo.ListOpenOlderThan(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list stale punch-ins: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	closed := 0
	for _, att := range stale {
		win := schedule.DefaultWindow
		sched, err := j.scheduleRepo.GetActiveSchedule(ctx, att.EmployeeID, att.Date, att.CompanyID)
		if err == nil {
			if w, ok := sched.WindowFor(att.Date); ok {
				win = w
			}
		}

		end := win.End.At(att.Date)
		if !end.After(win.Start.At(att.Date)) {
			end = end.AddDate(0, 0, 1)
		}
		// Punch-out must stay strictly after punch-in, even for a punch-in
		// past the scheduled end.
		if att.PunchIn != nil && !end.After(*att.PunchIn) {
			end = att.PunchIn.Add(time.Minute)
		}

		att.PunchOut = &end
		if err := j.attendanceRepo.Update(ctx, att); err != nil {
			slog.Error("Cron: failed to auto-close punch", "attendance_id", att.ID, "error", err)
			continue
		}
		closed++
	}

	slog.Info("Cron: auto-closed stale punch-ins", "count", closed)
	return nil
}
