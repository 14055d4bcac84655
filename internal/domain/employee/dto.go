package employee

import (
	"github.com/dexter-morales/hrms-system-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode   string          `json:"employee_code"`
	FullName       string          `json:"full_name"`
	TIN            *string         `json:"tin,omitempty"`
	TaxRegistered  bool            `json:"tax_registered"`
	Role           string          `json:"role"`
	PaySchedule    string          `json:"pay_schedule"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	EmploymentType string          `json:"employment_type"`
	SiteID         *string         `json:"site_id,omitempty"`
	HireDate       string          `json:"hire_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must match format NNNN-NNNN"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.TIN != nil && !validator.IsValidTIN(*r.TIN) {
		errs = append(errs, validator.ValidationError{Field: "tin", Message: "must be a valid TIN"})
	}
	if r.TaxRegistered && r.TIN == nil {
		errs = append(errs, validator.ValidationError{Field: "tin", Message: "is required for tax-registered employees"})
	}
	if !validator.IsInSlice(r.Role, RoleValues) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be one of manager, supervisor, staff, hr"})
	}
	if !validator.IsInSlice(r.PaySchedule, PayScheduleValues) {
		errs = append(errs, validator.ValidationError{Field: "pay_schedule", Message: "must be 'weekly' or 'semi-monthly'"})
	}
	if r.BasicSalary.IsNegative() || r.BasicSalary.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be positive"})
	}
	if !validator.IsInSlice(r.EmploymentType, EmploymentTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "is invalid"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string
	FullName       *string          `json:"full_name,omitempty"`
	TIN            *string          `json:"tin,omitempty"`
	TaxRegistered  *bool            `json:"tax_registered,omitempty"`
	Role           *string          `json:"role,omitempty"`
	PaySchedule    *string          `json:"pay_schedule,omitempty"`
	BasicSalary    *decimal.Decimal `json:"basic_salary,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	SiteID         *string          `json:"site_id,omitempty"`
	Status         *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.TIN != nil && !validator.IsValidTIN(*r.TIN) {
		errs = append(errs, validator.ValidationError{Field: "tin", Message: "must be a valid TIN"})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, RoleValues) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "is invalid"})
	}
	if r.PaySchedule != nil && !validator.IsInSlice(*r.PaySchedule, PayScheduleValues) {
		errs = append(errs, validator.ValidationError{Field: "pay_schedule", Message: "must be 'weekly' or 'semi-monthly'"})
	}
	if r.BasicSalary != nil && !r.BasicSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "basic_salary", Message: "must be positive"})
	}
	if r.EmploymentType != nil && !validator.IsInSlice(*r.EmploymentType, EmploymentTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "is invalid"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	EmployeeCode   string          `json:"employee_code"`
	FullName       string          `json:"full_name"`
	TIN            *string         `json:"tin,omitempty"`
	TaxRegistered  bool            `json:"tax_registered"`
	Role           string          `json:"role"`
	PaySchedule    string          `json:"pay_schedule"`
	BasicSalary    decimal.Decimal `json:"basic_salary"`
	EmploymentType string          `json:"employment_type"`
	Status         string          `json:"status"`
	SiteID         *string         `json:"site_id,omitempty"`
	HireDate       string          `json:"hire_date"`
}
