package payroll

import (
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Status enum. "Approved" is the one canonical casing; every comparison goes
// through these constants.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
)

// PayrollRecord is the generator's output: one row per employee per pay
// period. Once Approved it is locked and regeneration must skip it.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	SiteID      *string
	PaySchedule employee.PaySchedule
	PeriodStart time.Time
	PeriodEnd   time.Time

	// Attendance aggregates
	DaysWorked     float64
	LateHours      float64
	UndertimeHours float64
	OvertimeHours  float64
	PaidLeaveDays  float64

	// Earnings
	BasePay       decimal.Decimal
	WeekendPay    decimal.Decimal
	HolidayPay    decimal.Decimal
	NightDiffPay  decimal.Decimal
	OvertimePay   decimal.Decimal
	LeavePay      decimal.Decimal
	SiteAllowance decimal.Decimal
	GrossPay      decimal.Decimal

	// Deductions
	SSS              decimal.Decimal
	PhilHealth       decimal.Decimal
	PagIBIG          decimal.Decimal
	WithholdingTax   decimal.Decimal
	LateUndertimeDeduction decimal.Decimal
	LoanDeductions   decimal.Decimal
	// LoanDetail maps loan id -> amount scheduled this period; entries are
	// only written to the loans ledger at approval time.
	LoanDetail      map[string]decimal.Decimal
	TotalDeductions decimal.Decimal

	NetPay decimal.Decimal

	Status     Status
	ApprovedBy *string
	ApprovedAt *time.Time
	PayslipRef *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// ThirteenthMonth is the statutory annual bonus: total basic earnings for the
// calendar year divided by twelve.
type ThirteenthMonth struct {
	EmployeeID    string
	Year          int
	BasicEarnings decimal.Decimal
	Amount        decimal.Decimal
	Eligible      bool
}
