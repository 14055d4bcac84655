package site

import (
	"github.com/dexter-morales/hrms-system-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateSiteRequest struct {
	Name      string          `json:"name"`
	Allowance decimal.Decimal `json:"allowance"`
}

func (r *CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Allowance.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowance", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SiteResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Allowance decimal.Decimal `json:"allowance"`
}
