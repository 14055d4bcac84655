package leave

import "time"

type LeaveRequest struct {
	ID         string
	EmployeeID string
	CompanyID  string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
	Days       int // inclusive day count
	IsWithPay  bool
	Status     Status
	ManagerApprovedBy *string
	HRApprovedBy      *string
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

// Status tracks the two-step approval: a request is only payroll-effective
// once both the manager and HR have approved it.
type Status string

const (
	StatusPending         Status = "Pending"
	StatusManagerApproved Status = "Manager Approved"
	StatusApproved        Status = "Approved"
	StatusRejected        Status = "Rejected"
)

// CoversDate reports whether date falls inside the request's range.
func (l LeaveRequest) CoversDate(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}
