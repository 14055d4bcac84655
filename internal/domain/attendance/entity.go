package attendance

import "time"

type Attendance struct {
	ID         string
	EmployeeID string
	CompanyID  string
	Date       time.Time // working day, truncated to midnight
	PunchIn    *time.Time
	PunchOut   *time.Time
	BreakHours float64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
	StatusOnLeave Status = "On Leave"
)

// DayTotals is the normalizer's output for one attendance row.
type DayTotals struct {
	HoursWorked    float64
	LateHours      float64
	UndertimeHours float64
}
