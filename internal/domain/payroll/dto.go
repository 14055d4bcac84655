package payroll

import (
	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// GenerateRequest describes one payroll generation run. An empty EmployeeIDs
// slice means every active employee on the requested pay schedule.
type GenerateRequest struct {
	PaySchedule string   `json:"pay_schedule"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.PaySchedule, employee.PayScheduleValues) {
		errs = append(errs, validator.ValidationError{Field: "pay_schedule", Message: "must be 'weekly' or 'semi-monthly'"})
	}
	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not precede start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// GenerateResult reports a run's aggregate outcome. Employees that failed are
// skipped, logged, and counted; the run itself still succeeds.
type GenerateResult struct {
	Generated int                     `json:"generated"`
	Skipped   int                     `json:"skipped"`
	Failed    int                     `json:"failed"`
	Records   []PayrollRecordResponse `json:"records"`
}

type ApproveRequest struct {
	ID string
}

type PayrollFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type PayrollRecordResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	PaySchedule  string `json:"pay_schedule"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`

	DaysWorked     float64 `json:"days_worked"`
	LateHours      float64 `json:"late_hours"`
	UndertimeHours float64 `json:"undertime_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	PaidLeaveDays  float64 `json:"paid_leave_days"`

	BasePay       decimal.Decimal `json:"base_pay"`
	WeekendPay    decimal.Decimal `json:"weekend_pay"`
	HolidayPay    decimal.Decimal `json:"holiday_pay"`
	NightDiffPay  decimal.Decimal `json:"night_diff_pay"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	LeavePay      decimal.Decimal `json:"leave_pay"`
	SiteAllowance decimal.Decimal `json:"site_allowance"`
	GrossPay      decimal.Decimal `json:"gross_pay"`

	SSS                    decimal.Decimal            `json:"sss"`
	PhilHealth             decimal.Decimal            `json:"philhealth"`
	PagIBIG                decimal.Decimal            `json:"pagibig"`
	WithholdingTax         decimal.Decimal            `json:"withholding_tax"`
	LateUndertimeDeduction decimal.Decimal            `json:"late_undertime_deduction"`
	LoanDeductions         decimal.Decimal            `json:"loan_deductions"`
	LoanDetail             map[string]decimal.Decimal `json:"loan_detail,omitempty"`
	TotalDeductions        decimal.Decimal            `json:"total_deductions"`

	NetPay decimal.Decimal `json:"net_pay"`

	Status     string  `json:"status"`
	ApprovedAt *string `json:"approved_at,omitempty"`
	PayslipRef *string `json:"payslip_ref,omitempty"`
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

type PayrollSummaryResponse struct {
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	TotalEmployees  int             `json:"total_employees"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	PendingCount    int             `json:"pending_count"`
	ApprovedCount   int             `json:"approved_count"`
}

type ThirteenthMonthResponse struct {
	EmployeeID    string          `json:"employee_id"`
	Year          int             `json:"year"`
	BasicEarnings decimal.Decimal `json:"basic_earnings"`
	Amount        decimal.Decimal `json:"amount"`
	Eligible      bool            `json:"eligible"`
}
