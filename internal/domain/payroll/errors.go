package payroll

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")
	ErrAlreadyApproved       = errors.New("payroll record already approved")
	ErrInvalidPeriod         = errors.New("invalid payroll period")
	ErrNoBasicSalary         = errors.New("employee has no basic salary configured")
	ErrNotEligible           = errors.New("employee not eligible")
)
