package overtime

import "time"

type OvertimeRequest struct {
	ID             string
	EmployeeID     string
	CompanyID      string
	Date           time.Time
	RequestedHours float64
	ApprovedHours  *float64
	Status         Status
	ApprovedBy     *string
	Reason         *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName *string
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)
