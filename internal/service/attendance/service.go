package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/clock"
	payrollsvc "github.com/dexter-morales/hrms-system-go/internal/service/payroll"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceServiceImpl struct {
	clock          clock.Clock
	logger         *slog.Logger
	graceMinutes   int
	attendanceRepo attendance.AttendanceRepository
	scheduleRepo   schedule.ScheduleRepository
}

func NewAttendanceService(
	clk clock.Clock,
	logger *slog.Logger,
	graceMinutes int,
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		clock:          clk,
		logger:         logger,
		graceMinutes:   graceMinutes,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
	}
}

func getClaimsFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return companyID, employeeID, nil
}

func (s *AttendanceServiceImpl) PunchIn(ctx context.Context, req attendance.PunchInRequest) (attendance.AttendanceResponse, error) {
	companyID, employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if req.EmployeeID == "" {
		req.EmployeeID = employeeID
	}

	now := s.clock.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	exists, err := s.attendanceRepo.HasPunchedInOn(ctx, req.EmployeeID, date, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if exists {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyPunchedIn
	}

	status := s.punchInStatus(ctx, req.EmployeeID, companyID, date, now)

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		Date:       date,
		PunchIn:    &now,
		Status:     status,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.toResponse(created, nil), nil
}

// punchInStatus stamps Late when the punch lands past the grace period of the
// scheduled start. Schedule problems degrade to the default window.
func (s *AttendanceServiceImpl) punchInStatus(ctx context.Context, employeeID, companyID string, date, punchIn time.Time) attendance.Status {
	sched, err := s.scheduleRepo.GetActiveSchedule(ctx, employeeID, date, companyID)
	if err != nil {
		if !errors.Is(err, schedule.ErrNoActiveSchedule) && !errors.Is(err, schedule.ErrMalformedSchedule) {
			s.logger.WarnContext(ctx, "schedule lookup failed on punch-in",
				slog.String("employee_id", employeeID),
				slog.Any("error", err),
			)
		}
		sched = schedule.DefaultSchedule()
	}

	win, ok := sched.WindowFor(date)
	if !ok {
		win = schedule.DefaultWindow
	}
	grace := time.Duration(s.graceMinutes) * time.Minute
	if punchIn.After(win.Start.At(date).Add(grace)) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

func (s *AttendanceServiceImpl) PunchOut(ctx context.Context, req attendance.PunchOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if req.EmployeeID == "" {
		req.EmployeeID = employeeID
	}

	open, err := s.attendanceRepo.GetOpenPunch(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	if open.PunchIn != nil && !now.After(*open.PunchIn) {
		return attendance.AttendanceResponse{}, attendance.ErrPunchOutBeforeIn
	}

	open.PunchOut = &now
	open.BreakHours = req.BreakHours
	open.CompanyID = companyID
	if err := s.attendanceRepo.Update(ctx, open); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	totals := s.normalize(ctx, open, companyID)
	return s.toResponse(open, totals), nil
}

func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.toResponse(att, s.normalize(ctx, att, companyID)), nil
}

func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	attendances, total, err := s.attendanceRepo.List(ctx, filter, companyID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	resp := attendance.ListAttendanceResponse{
		Attendances: make([]attendance.AttendanceResponse, 0, len(attendances)),
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
	}
	for _, att := range attendances {
		resp.Attendances = append(resp.Attendances, s.toResponse(att, nil))
	}
	return resp, nil
}

func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Date != nil {
		d, _ := time.Parse("2006-01-02", *req.Date)
		att.Date = d
	}
	if req.PunchIn != nil {
		t, _ := time.Parse(time.RFC3339, *req.PunchIn)
		att.PunchIn = &t
	}
	if req.PunchOut != nil {
		t, _ := time.Parse(time.RFC3339, *req.PunchOut)
		att.PunchOut = &t
	}
	if req.BreakHours != nil {
		att.BreakHours = *req.BreakHours
	}
	if req.Status != nil {
		att.Status = attendance.Status(*req.Status)
	}

	if att.PunchIn != nil && att.PunchOut != nil && !att.PunchOut.After(*att.PunchIn) {
		return attendance.AttendanceResponse{}, attendance.ErrPunchOutBeforeIn
	}

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.toResponse(att, s.normalize(ctx, att, companyID)), nil
}

// normalize computes the day totals for a closed punch pair, nil otherwise.
func (s *AttendanceServiceImpl) normalize(ctx context.Context, att attendance.Attendance, companyID string) *attendance.DayTotals {
	if att.PunchIn == nil {
		return nil
	}

	sched, err := s.scheduleRepo.GetActiveSchedule(ctx, att.EmployeeID, att.Date, companyID)
	if err != nil {
		sched = schedule.DefaultSchedule()
	}
	win, ok := sched.WindowFor(att.Date)
	if !ok {
		win = schedule.DefaultWindow
	}

	totals := payrollsvc.NormalizeDay(win, att.Date, *att.PunchIn, att.PunchOut, att.BreakHours, s.graceMinutes)
	return &totals
}

func (s *AttendanceServiceImpl) toResponse(att attendance.Attendance, totals *attendance.DayTotals) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:         att.ID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date.Format("2006-01-02"),
		BreakHours: att.BreakHours,
		Status:     string(att.Status),
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	if att.PunchIn != nil {
		v := att.PunchIn.Format(time.RFC3339)
		resp.PunchIn = &v
	}
	if att.PunchOut != nil {
		v := att.PunchOut.Format(time.RFC3339)
		resp.PunchOut = &v
	}
	if totals != nil {
		resp.HoursWorked = &totals.HoursWorked
		resp.LateHours = &totals.LateHours
		resp.UndertimeHours = &totals.UndertimeHours
	}
	return resp
}
