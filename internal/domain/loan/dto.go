package loan

import (
	"github.com/dexter-morales/hrms-system-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateLoanRequest struct {
	EmployeeID         string          `json:"employee_id"`
	Amount             decimal.Decimal `json:"amount"`
	Terms              int             `json:"terms"`
	DeductionFrequency string          `json:"deduction_frequency"`
}

func (r *CreateLoanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.Terms < 1 || r.Terms > 60 {
		errs = append(errs, validator.ValidationError{Field: "terms", Message: "must be between 1 and 60 months"})
	}
	if !validator.IsInSlice(r.DeductionFrequency, FrequencyValues) {
		errs = append(errs, validator.ValidationError{Field: "deduction_frequency", Message: "must be 'once_a_month' or 'twice_a_month'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoanResponse struct {
	ID                 string          `json:"id"`
	EmployeeID         string          `json:"employee_id"`
	Amount             decimal.Decimal `json:"amount"`
	Terms              int             `json:"terms"`
	DeductionFrequency string          `json:"deduction_frequency"`
	Installment        decimal.Decimal `json:"installment"`
	TotalDeducted      decimal.Decimal `json:"total_deducted"`
	Remaining          decimal.Decimal `json:"remaining"`
	FullyPaid          bool            `json:"fully_paid"`
	Status             string          `json:"status"`
}

type LoanDeductionEntryResponse struct {
	ID              string          `json:"id"`
	LoanID          string          `json:"loan_id"`
	PayrollRecordID string          `json:"payroll_record_id"`
	Amount          decimal.Decimal `json:"amount"`
	DeductionDate   string          `json:"deduction_date"`
}
