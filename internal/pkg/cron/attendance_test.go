package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/clock"
)

type stubAttendanceRepo struct {
	stale   []attendance.Attendance
	updated []attendance.Attendance
}

func (s *stubAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (s *stubAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	s.updated = append(s.updated, att)
	return nil
}

func (s *stubAttendanceRepo) GetByID(ctx context.Context, id, companyID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (s *stubAttendanceRepo) GetOpenPunch(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (s *stubAttendanceRepo) HasPunchedInOn(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	return false, nil
}

func (s *stubAttendanceRepo) GetRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (s *stubAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (s *stubAttendanceRepo) ListOpenOlderThan(ctx context.Context, cutoffDate time.Time) ([]attendance.Attendance, error) {
	return s.stale, nil
}

type stubScheduleRepo struct{}

func (stubScheduleRepo) Create(ctx context.Context, s schedule.Schedule, rawWorkingDays string) (schedule.Schedule, error) {
	return s, nil
}

func (stubScheduleRepo) GetActiveSchedule(ctx context.Context, employeeID string, date time.Time, companyID string) (schedule.Schedule, error) {
	return schedule.Schedule{}, schedule.ErrNoActiveSchedule
}

func (stubScheduleRepo) ListByEmployee(ctx context.Context, employeeID, companyID string) ([]schedule.Schedule, error) {
	return nil, nil
}

func (stubScheduleRepo) Delete(ctx context.Context, id, companyID string) error {
	return nil
}

func TestAutoCloseStalePunchesSnapsToScheduledEnd(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	punchIn := day.Add(9 * time.Hour)
	repo := &stubAttendanceRepo{stale: []attendance.Attendance{{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       day,
		PunchIn:    &punchIn,
	}}}

	jobs := NewAttendanceJobs(clock.Fixed(day.AddDate(0, 0, 1)), repo, stubScheduleRepo{})
	require.NoError(t, jobs.AutoCloseStalePunches(context.Background()))

	require.Len(t, repo.updated, 1)
	got := repo.updated[0]
	require.NotNil(t, got.PunchOut)
	assert.True(t, got.PunchOut.Equal(day.Add(17*time.Hour)), "got %s", got.PunchOut)
}

func TestAutoCloseStalePunchesKeepsPunchOutAfterPunchIn(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	// Punched in after the scheduled end of the default window.
	punchIn := day.Add(20 * time.Hour)
	repo := &stubAttendanceRepo{stale: []attendance.Attendance{{
		ID:         "att-2",
		EmployeeID: "emp-1",
		Date:       day,
		PunchIn:    &punchIn,
	}}}

	jobs := NewAttendanceJobs(clock.Fixed(day.AddDate(0, 0, 1)), repo, stubScheduleRepo{})
	require.NoError(t, jobs.AutoCloseStalePunches(context.Background()))

	require.Len(t, repo.updated, 1)
	got := repo.updated[0]
	require.NotNil(t, got.PunchOut)
	assert.True(t, got.PunchOut.After(punchIn), "punch-out %s not after punch-in %s", got.PunchOut, punchIn)
}
