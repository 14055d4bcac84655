package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	Update(ctx context.Context, att Attendance) error
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)
	GetOpenPunch(ctx context.Context, employeeID string) (Attendance, error)
	HasPunchedInOn(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error)
	// GetRange returns rows ordered by date ascending, inclusive bounds.
	GetRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Attendance, error)
	List(ctx context.Context, filter AttendanceFilter, companyID string) ([]Attendance, int64, error)
	// ListOpenOlderThan returns open punch-ins whose date is before cutoffDate,
	// used by the auto-close job.
	ListOpenOlderThan(ctx context.Context, cutoffDate time.Time) ([]Attendance, error)
}

type AttendanceService interface {
	PunchIn(ctx context.Context, req PunchInRequest) (AttendanceResponse, error)
	PunchOut(ctx context.Context, req PunchOutRequest) (AttendanceResponse, error)
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}
