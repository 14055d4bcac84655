package attendance

import (
	"github.com/dexter-morales/hrms-system-go/internal/pkg/validator"
)

type PunchInRequest struct {
	EmployeeID string `json:"-"`
}

type PunchOutRequest struct {
	EmployeeID string  `json:"-"`
	BreakHours float64 `json:"break_hours"`
}

func (r *PunchOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BreakHours < 0 || r.BreakHours > 8 {
		errs = append(errs, validator.ValidationError{Field: "break_hours", Message: "must be between 0 and 8"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAttendanceRequest struct {
	ID         string
	Date       *string  `json:"date,omitempty"`
	PunchIn    *string  `json:"punch_in,omitempty"`
	PunchOut   *string  `json:"punch_out,omitempty"`
	BreakHours *float64 `json:"break_hours,omitempty"`
	Status     *string  `json:"status,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.PunchIn != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "punch_in", Message: "must be an ISO8601 timestamp"})
		}
	}
	if r.PunchOut != nil {
		if _, ok := validator.IsValidDateTime(*r.PunchOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "punch_out", Message: "must be an ISO8601 timestamp"})
		}
	}
	if r.BreakHours != nil && (*r.BreakHours < 0 || *r.BreakHours > 8) {
		errs = append(errs, validator.ValidationError{Field: "break_hours", Message: "must be between 0 and 8"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	PunchIn      *string `json:"punch_in,omitempty"`
	PunchOut     *string `json:"punch_out,omitempty"`
	BreakHours   float64 `json:"break_hours"`
	Status       string  `json:"status"`

	HoursWorked    *float64 `json:"hours_worked,omitempty"`
	LateHours      *float64 `json:"late_hours,omitempty"`
	UndertimeHours *float64 `json:"undertime_hours,omitempty"`
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
}
