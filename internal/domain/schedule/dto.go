package schedule

import (
	"encoding/json"

	"github.com/dexter-morales/hrms-system-go/internal/pkg/validator"
)

type CreateScheduleRequest struct {
	EmployeeID    string          `json:"employee_id"`
	Type          string          `json:"type"`
	WorkingDays   json.RawMessage `json:"working_days"`
	StartTime     string          `json:"start_time,omitempty"`
	EndTime       string          `json:"end_time,omitempty"`
	EffectiveFrom string          `json:"effective_from"`
	EffectiveTo   *string         `json:"effective_to,omitempty"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Type, ScheduleTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'fixed' or 'flexible'"})
	}
	if len(r.WorkingDays) == 0 {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "is required"})
	}
	if r.Type == string(ScheduleTypeFixed) {
		if !validator.IsValidTimeOfDay(r.StartTime) {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
		}
		if !validator.IsValidTimeOfDay(r.EndTime) {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
		}
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EffectiveTo != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveTo); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_to", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Type          string          `json:"type"`
	WorkingDays   json.RawMessage `json:"working_days"`
	StartTime     *string         `json:"start_time,omitempty"`
	EndTime       *string         `json:"end_time,omitempty"`
	EffectiveFrom string          `json:"effective_from"`
	EffectiveTo   *string         `json:"effective_to,omitempty"`
}
