package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRepository persists generated payroll records.
// All methods take companyID to prevent cross-company data access.
type PayrollRepository interface {
	// UpsertPending inserts or replaces the record keyed by
	// (employee_id, period_start, period_end, site_id), but only while the
	// stored status is still Pending: the status check happens inside the
	// same statement so a concurrent approval cannot be overwritten.
	// Returns ErrAlreadyApproved when the guard blocks the write.
	UpsertPending(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	GetByID(ctx context.Context, id string, companyID string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, companyID string) (PayrollRecord, error)
	List(ctx context.Context, companyID string, filter PayrollFilter) ([]PayrollRecord, int64, error)

	// Approve flips Pending -> Approved and stamps the approver; it returns
	// ErrAlreadyApproved if the record is already locked.
	Approve(ctx context.Context, id string, companyID string, approvedBy string, approvedAt time.Time, payslipRef string) (PayrollRecord, error)

	GetSummary(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (PayrollSummaryResponse, error)

	// SumBasicEarnings totals base pay over approved records in a calendar
	// year, the 13th-month basis.
	SumBasicEarnings(ctx context.Context, employeeID string, year int, companyID string) (decimal.Decimal, error)
}

// PayslipIssuer is the external collaborator that renders an immutable
// payslip artifact once a record is approved. Out of scope here beyond the
// contract: it returns an opaque reference stored on the record.
type PayslipIssuer interface {
	Issue(ctx context.Context, record PayrollRecord) (string, error)
}

type PayrollService interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
	Approve(ctx context.Context, id string) (PayrollRecordResponse, error)
	Get(ctx context.Context, id string) (PayrollRecordResponse, error)
	List(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)
	Summary(ctx context.Context, periodStart, periodEnd time.Time) (PayrollSummaryResponse, error)
	ComputeThirteenthMonth(ctx context.Context, employeeID string, year int) (ThirteenthMonthResponse, error)
}
