package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type LoanRepository interface {
	Create(ctx context.Context, l Loan) (Loan, error)
	GetByID(ctx context.Context, id string, companyID string) (Loan, error)
	// GetActiveByEmployee returns Approved, not fully paid loans with their
	// running TotalDeducted populated from the entries table.
	GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) ([]Loan, error)
	ListByCompany(ctx context.Context, companyID string) ([]Loan, error)
	SetStatus(ctx context.Context, id string, companyID string, status Status) error

	// Entries are append-only; ApplyDeduction inserts the entry and bumps the
	// loan's running total (and fully-paid flag when markPaid) atomically.
	ApplyDeduction(ctx context.Context, entry LoanDeductionEntry, markPaid bool) (LoanDeductionEntry, error)
	ListEntriesByLoan(ctx context.Context, loanID string, companyID string) ([]LoanDeductionEntry, error)
	SumEntriesByLoan(ctx context.Context, loanID string) (decimal.Decimal, error)
}

type LoanService interface {
	Create(ctx context.Context, req CreateLoanRequest) (LoanResponse, error)
	Approve(ctx context.Context, id string) (LoanResponse, error)
	Reject(ctx context.Context, id string) (LoanResponse, error)
	Get(ctx context.Context, id string) (LoanResponse, error)
	List(ctx context.Context) ([]LoanResponse, error)
	ListEntries(ctx context.Context, loanID string) ([]LoanDeductionEntryResponse, error)
}
