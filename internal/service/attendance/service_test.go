package attendance

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/clock"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func punchContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id":  "company-1",
		"employee_id": "emp-1",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type memAttendanceRepo struct {
	rows []attendance.Attendance
}

func (m *memAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = "att-1"
	m.rows = append(m.rows, att)
	return att, nil
}

func (m *memAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	for i := range m.rows {
		if m.rows[i].ID == att.ID {
			m.rows[i] = att
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (m *memAttendanceRepo) GetByID(ctx context.Context, id, companyID string) (attendance.Attendance, error) {
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (m *memAttendanceRepo) GetOpenPunch(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].EmployeeID == employeeID && m.rows[i].PunchOut == nil {
			return m.rows[i], nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotPunchedIn
}

func (m *memAttendanceRepo) HasPunchedInOn(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	for _, r := range m.rows {
		if r.EmployeeID == employeeID && r.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAttendanceRepo) GetRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Attendance, error) {
	return m.rows, nil
}

func (m *memAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	return m.rows, int64(len(m.rows)), nil
}

func (m *memAttendanceRepo) ListOpenOlderThan(ctx context.Context, cutoffDate time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

type staticScheduleRepo struct {
	schedule schedule.Schedule
	err      error
}

func (s *staticScheduleRepo) Create(ctx context.Context, sc schedule.Schedule, raw string) (schedule.Schedule, error) {
	return sc, nil
}

func (s *staticScheduleRepo) GetActiveSchedule(ctx context.Context, employeeID string, date time.Time, companyID string) (schedule.Schedule, error) {
	if s.err != nil {
		return schedule.Schedule{}, s.err
	}
	return s.schedule, nil
}

func (s *staticScheduleRepo) ListByEmployee(ctx context.Context, employeeID, companyID string) ([]schedule.Schedule, error) {
	return nil, nil
}

func (s *staticScheduleRepo) Delete(ctx context.Context, id, companyID string) error { return nil }

func newService(now time.Time, repo *memAttendanceRepo, schedRepo *staticScheduleRepo) attendance.AttendanceService {
	return NewAttendanceService(
		clock.Fixed(now),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		15,
		repo,
		schedRepo,
	)
}

func TestPunchInOnTime(t *testing.T) {
	// Monday 09:10, inside the 15 minute grace of the default 09:00 start.
	now := time.Date(2025, 6, 2, 9, 10, 0, 0, time.UTC)
	repo := &memAttendanceRepo{}
	svc := newService(now, repo, &staticScheduleRepo{schedule: schedule.DefaultSchedule()})

	resp, err := svc.PunchIn(punchContext(t), attendance.PunchInRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, "2025-06-02", resp.Date)
	require.NotNil(t, resp.PunchIn)
}

func TestPunchInLate(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 20, 0, 0, time.UTC)
	repo := &memAttendanceRepo{}
	svc := newService(now, repo, &staticScheduleRepo{schedule: schedule.DefaultSchedule()})

	resp, err := svc.PunchIn(punchContext(t), attendance.PunchInRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestPunchInTwiceSameDay(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	repo := &memAttendanceRepo{}
	svc := newService(now, repo, &staticScheduleRepo{schedule: schedule.DefaultSchedule()})

	_, err := svc.PunchIn(punchContext(t), attendance.PunchInRequest{})
	require.NoError(t, err)

	_, err = svc.PunchIn(punchContext(t), attendance.PunchInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyPunchedIn)
}

func TestPunchInFallsBackWithoutSchedule(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC)
	repo := &memAttendanceRepo{}
	svc := newService(now, repo, &staticScheduleRepo{err: schedule.ErrNoActiveSchedule})

	resp, err := svc.PunchIn(punchContext(t), attendance.PunchInRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestPunchOutComputesTotals(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	repo := &memAttendanceRepo{rows: []attendance.Attendance{{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       day,
		PunchIn:    &in,
	}}}
	now := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
	svc := newService(now, repo, &staticScheduleRepo{schedule: schedule.DefaultSchedule()})

	resp, err := svc.PunchOut(punchContext(t), attendance.PunchOutRequest{BreakHours: 1})
	require.NoError(t, err)
	require.NotNil(t, resp.PunchOut)
	require.NotNil(t, resp.HoursWorked)
	assert.InDelta(t, 7.0, *resp.HoursWorked, 0.001)
}

func TestPunchOutWithoutOpenPunch(t *testing.T) {
	now := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
	svc := newService(now, &memAttendanceRepo{}, &staticScheduleRepo{schedule: schedule.DefaultSchedule()})

	_, err := svc.PunchOut(punchContext(t), attendance.PunchOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotPunchedIn)
}

func TestPunchOutRejectsInvalidBreak(t *testing.T) {
	now := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
	svc := newService(now, &memAttendanceRepo{}, &staticScheduleRepo{schedule: schedule.DefaultSchedule()})

	_, err := svc.PunchOut(punchContext(t), attendance.PunchOutRequest{BreakHours: -1})
	assert.Error(t, err)
}

func TestUpdateAttendanceRejectsInvertedPunches(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
	repo := &memAttendanceRepo{rows: []attendance.Attendance{{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       day,
		PunchIn:    &in,
		PunchOut:   &out,
	}}}
	svc := newService(out, repo, &staticScheduleRepo{schedule: schedule.DefaultSchedule()})

	bad := "2025-06-02T08:00:00Z"
	_, err := svc.UpdateAttendance(punchContext(t), attendance.UpdateAttendanceRequest{
		ID:       "att-1",
		PunchOut: &bad,
	})
	assert.ErrorIs(t, err, attendance.ErrPunchOutBeforeIn)
}
