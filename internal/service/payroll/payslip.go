package payroll

import (
	"context"
	"fmt"

	"github.com/dexter-morales/hrms-system-go/internal/domain/payroll"
	"github.com/google/uuid"
)

// RefPayslipIssuer mints an opaque payslip reference at approval time. The
// rendering pipeline resolves the reference later; the payroll record only
// stores the handle.
type RefPayslipIssuer struct{}

func NewRefPayslipIssuer() payroll.PayslipIssuer {
	return RefPayslipIssuer{}
}

func (RefPayslipIssuer) Issue(_ context.Context, rec payroll.PayrollRecord) (string, error) {
	return fmt.Sprintf("PS-%s-%s", rec.PeriodEnd.Format("20060102"), uuid.Must(uuid.NewV7()).String()), nil
}
