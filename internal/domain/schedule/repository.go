package schedule

import (
	"context"
	"time"
)

// ScheduleRepository resolves employee schedules. GetActiveSchedule returns
// the schedule with the latest effective_from whose range contains the date;
// ErrNoActiveSchedule when none applies. Malformed working_days rows are
// reported as ErrMalformedSchedule wrapping the parse failure so callers can
// apply the documented default.
type ScheduleRepository interface {
	Create(ctx context.Context, s Schedule, rawWorkingDays string) (Schedule, error)
	GetActiveSchedule(ctx context.Context, employeeID string, date time.Time, companyID string) (Schedule, error)
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Schedule, error)
	Delete(ctx context.Context, id string, companyID string) error
}

type ScheduleService interface {
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]ScheduleResponse, error)
	Delete(ctx context.Context, id string) error
}
