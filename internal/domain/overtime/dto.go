package overtime

import (
	"github.com/dexter-morales/hrms-system-go/internal/pkg/validator"
)

type CreateOvertimeRequest struct {
	EmployeeID     string  `json:"-"`
	Date           string  `json:"date"`
	RequestedHours float64 `json:"requested_hours"`
	Reason         *string `json:"reason,omitempty"`
}

func (r *CreateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.RequestedHours <= 0 || r.RequestedHours > 16 {
		errs = append(errs, validator.ValidationError{Field: "requested_hours", Message: "must be between 0 and 16"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApproveOvertimeRequest struct {
	ID            string
	ApprovedHours float64 `json:"approved_hours"`
}

func (r *ApproveOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ApprovedHours <= 0 {
		errs = append(errs, validator.ValidationError{Field: "approved_hours", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectOvertimeRequest struct {
	ID     string
	Reason string `json:"reason"`
}

type OvertimeResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   string   `json:"employee_name,omitempty"`
	Date           string   `json:"date"`
	RequestedHours float64  `json:"requested_hours"`
	ApprovedHours  *float64 `json:"approved_hours,omitempty"`
	Status         string   `json:"status"`
	Reason         *string  `json:"reason,omitempty"`
}
