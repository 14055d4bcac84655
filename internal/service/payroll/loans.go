package payroll

import (
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/loan"
	"github.com/shopspring/decimal"
)

// LoanDeduction is one scheduled amortization for the current cutoff.
// MarksPaid is set when this deduction clears the remaining balance, so
// approval can flip the loan to fully paid in the same transaction.
type LoanDeduction struct {
	LoanID    string
	Amount    decimal.Decimal
	Date      time.Time
	MarksPaid bool
}

// ScheduleLoanDeductions picks which active loans amortize on this cutoff
// and how much each deducts. The final installment deducts exactly the
// remaining balance, so the lifetime sum of deductions never exceeds the
// loan amount.
func ScheduleLoanDeductions(loans []loan.Loan, c Cutoff, periodEnd time.Time) []LoanDeduction {
	var out []LoanDeduction
	date := DeductionDate(c, periodEnd)
	for _, l := range loans {
		if l.FullyPaid || l.Status != loan.StatusApproved {
			continue
		}
		if !LoanDue(l.DeductionFrequency, c) {
			continue
		}
		remaining := l.Remaining()
		if remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}
		amount := l.Installment()
		if remaining.LessThan(amount) {
			amount = remaining
		}
		out = append(out, LoanDeduction{
			LoanID:    l.ID,
			Amount:    amount,
			Date:      date,
			MarksPaid: remaining.LessThanOrEqual(amount),
		})
	}
	return out
}

// TotalLoanDeduction sums the scheduled amounts.
func TotalLoanDeduction(ds []LoanDeduction) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d.Amount)
	}
	return total.Round(2)
}
