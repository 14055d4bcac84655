package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Loan struct {
	ID                 string
	EmployeeID         string
	CompanyID          string
	Amount             decimal.Decimal // principal
	Terms              int             // months
	DeductionFrequency Frequency
	TotalDeducted      decimal.Decimal
	FullyPaid          bool
	Status             Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Frequency string

const (
	FrequencyOnceAMonth  Frequency = "once_a_month"
	FrequencyTwiceAMonth Frequency = "twice_a_month"
)

var FrequencyValues = []string{
	string(FrequencyOnceAMonth),
	string(FrequencyTwiceAMonth),
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// DeductionsPerMonth maps the frequency to its monthly installment count.
func (f Frequency) DeductionsPerMonth() int {
	if f == FrequencyTwiceAMonth {
		return 2
	}
	return 1
}

// Installment is the per-deduction amount: amount / (terms * per-month count),
// rounded to centavos.
func (l Loan) Installment() decimal.Decimal {
	n := int64(l.Terms * l.DeductionFrequency.DeductionsPerMonth())
	if n <= 0 {
		return decimal.Zero
	}
	return l.Amount.Div(decimal.NewFromInt(n)).Round(2)
}

// Remaining is the balance still owed.
func (l Loan) Remaining() decimal.Decimal {
	return l.Amount.Sub(l.TotalDeducted)
}

// LoanDeductionEntry records a deduction that actually fired in a period,
// linked to the payroll record that caused it.
type LoanDeductionEntry struct {
	ID              string
	LoanID          string
	PayrollRecordID string
	Amount          decimal.Decimal
	DeductionDate   time.Time
	CreatedAt       time.Time
}
