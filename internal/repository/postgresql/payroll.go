package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/payroll"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `id, employee_id, company_id, site_id, pay_schedule, period_start, period_end,
	days_worked, late_hours, undertime_hours, overtime_hours, paid_leave_days,
	base_pay, weekend_pay, holiday_pay, night_diff_pay, overtime_pay, leave_pay, site_allowance, gross_pay,
	sss, philhealth, pagibig, withholding_tax, late_undertime_deduction, loan_deductions, loan_detail,
	total_deductions, net_pay, status, approved_by, approved_at, payslip_ref, created_at, updated_at`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	var loanDetail []byte
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.SiteID, &rec.PaySchedule,
		&rec.PeriodStart, &rec.PeriodEnd,
		&rec.DaysWorked, &rec.LateHours, &rec.UndertimeHours, &rec.OvertimeHours, &rec.PaidLeaveDays,
		&rec.BasePay, &rec.WeekendPay, &rec.HolidayPay, &rec.NightDiffPay, &rec.OvertimePay,
		&rec.LeavePay, &rec.SiteAllowance, &rec.GrossPay,
		&rec.SSS, &rec.PhilHealth, &rec.PagIBIG, &rec.WithholdingTax,
		&rec.LateUndertimeDeduction, &rec.LoanDeductions, &loanDetail,
		&rec.TotalDeductions, &rec.NetPay, &rec.Status, &rec.ApprovedBy, &rec.ApprovedAt,
		&rec.PayslipRef, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	if len(loanDetail) > 0 {
		if err := json.Unmarshal(loanDetail, &rec.LoanDetail); err != nil {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to decode loan detail: %w", err)
		}
	}
	return rec, nil
}

func (r *payrollRepositoryImpl) UpsertPending(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	if rec.ID == "" {
		rec.ID = uuid.Must(uuid.NewV7()).String()
	}

	loanDetail, err := json.Marshal(rec.LoanDetail)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to encode loan detail: %w", err)
	}

	// The status guard sits inside the statement: an Approved row never
	// matches the DO UPDATE predicate, so regeneration cannot overwrite a
	// locked record even under concurrency.
	query := `
		INSERT INTO payroll_records (
			id, employee_id, company_id, site_id, pay_schedule, period_start, period_end,
			days_worked, late_hours, undertime_hours, overtime_hours, paid_leave_days,
			base_pay, weekend_pay, holiday_pay, night_diff_pay, overtime_pay, leave_pay, site_allowance, gross_pay,
			sss, philhealth, pagibig, withholding_tax, late_undertime_deduction, loan_deductions, loan_detail,
			total_deductions, net_pay, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27,
			$28, $29, $30
		)
		ON CONFLICT (employee_id, period_start, period_end) DO UPDATE SET
			site_id = EXCLUDED.site_id,
			days_worked = EXCLUDED.days_worked,
			late_hours = EXCLUDED.late_hours,
			undertime_hours = EXCLUDED.undertime_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			paid_leave_days = EXCLUDED.paid_leave_days,
			base_pay = EXCLUDED.base_pay,
			weekend_pay = EXCLUDED.weekend_pay,
			holiday_pay = EXCLUDED.holiday_pay,
			night_diff_pay = EXCLUDED.night_diff_pay,
			overtime_pay = EXCLUDED.overtime_pay,
			leave_pay = EXCLUDED.leave_pay,
			site_allowance = EXCLUDED.site_allowance,
			gross_pay = EXCLUDED.gross_pay,
			sss = EXCLUDED.sss,
			philhealth = EXCLUDED.philhealth,
			pagibig = EXCLUDED.pagibig,
			withholding_tax = EXCLUDED.withholding_tax,
			late_undertime_deduction = EXCLUDED.late_undertime_deduction,
			loan_deductions = EXCLUDED.loan_deductions,
			loan_detail = EXCLUDED.loan_detail,
			total_deductions = EXCLUDED.total_deductions,
			net_pay = EXCLUDED.net_pay,
			updated_at = NOW()
		WHERE payroll_records.status != 'Approved'
		RETURNING ` + payrollColumns

	saved, err := scanPayrollRecord(q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.CompanyID, rec.SiteID, rec.PaySchedule, rec.PeriodStart, rec.PeriodEnd,
		rec.DaysWorked, rec.LateHours, rec.UndertimeHours, rec.OvertimeHours, rec.PaidLeaveDays,
		rec.BasePay, rec.WeekendPay, rec.HolidayPay, rec.NightDiffPay, rec.OvertimePay,
		rec.LeavePay, rec.SiteAllowance, rec.GrossPay,
		rec.SSS, rec.PhilHealth, rec.PagIBIG, rec.WithholdingTax,
		rec.LateUndertimeDeduction, rec.LoanDeductions, loanDetail,
		rec.TotalDeductions, rec.NetPay, payroll.StatusPending,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrAlreadyApproved
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}
	return saved, nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + ` FROM payroll_records WHERE id = $1 AND company_id = $2`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, companyID string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records
		WHERE employee_id = $1 AND period_start = $2 AND period_end = $3 AND company_id = $4
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, employeeID, periodStart, periodEnd, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepositoryImpl) List(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"p.company_id = $1"}
	args := []any{companyID}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.EmployeeID != nil {
		add("p.employee_id = $%d", *filter.EmployeeID)
	}
	if filter.StartDate != nil {
		add("p.period_start >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		add("p.period_end <= $%d", *filter.EndDate)
	}
	if filter.Status != nil {
		add("p.status = $%d", *filter.Status)
	}

	whereClause := strings.Join(where, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM payroll_records p WHERE ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)
	query := fmt.Sprintf(`
		SELECT p.id, p.employee_id, p.company_id, p.site_id, p.pay_schedule, p.period_start, p.period_end,
			p.days_worked, p.late_hours, p.undertime_hours, p.overtime_hours, p.paid_leave_days,
			p.base_pay, p.weekend_pay, p.holiday_pay, p.night_diff_pay, p.overtime_pay,
			p.leave_pay, p.site_allowance, p.gross_pay,
			p.sss, p.philhealth, p.pagibig, p.withholding_tax, p.late_undertime_deduction,
			p.loan_deductions, p.loan_detail, p.total_deductions, p.net_pay,
			p.status, p.approved_by, p.approved_at, p.payslip_ref, p.created_at, p.updated_at,
			e.full_name, e.employee_code
		FROM payroll_records p
		JOIN employees e ON e.id = p.employee_id
		WHERE %s
		ORDER BY p.period_start DESC, e.employee_code
		LIMIT $%d OFFSET $%d
	`, whereClause, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var rec payroll.PayrollRecord
		var loanDetail []byte
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.CompanyID, &rec.SiteID, &rec.PaySchedule,
			&rec.PeriodStart, &rec.PeriodEnd,
			&rec.DaysWorked, &rec.LateHours, &rec.UndertimeHours, &rec.OvertimeHours, &rec.PaidLeaveDays,
			&rec.BasePay, &rec.WeekendPay, &rec.HolidayPay, &rec.NightDiffPay, &rec.OvertimePay,
			&rec.LeavePay, &rec.SiteAllowance, &rec.GrossPay,
			&rec.SSS, &rec.PhilHealth, &rec.PagIBIG, &rec.WithholdingTax, &rec.LateUndertimeDeduction,
			&rec.LoanDeductions, &loanDetail, &rec.TotalDeductions, &rec.NetPay,
			&rec.Status, &rec.ApprovedBy, &rec.ApprovedAt, &rec.PayslipRef, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		if len(loanDetail) > 0 {
			if err := json.Unmarshal(loanDetail, &rec.LoanDetail); err != nil {
				return nil, 0, fmt.Errorf("failed to decode loan detail: %w", err)
			}
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *payrollRepositoryImpl) Approve(ctx context.Context, id string, companyID string, approvedBy string, approvedAt time.Time, payslipRef string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET status = 'Approved', approved_by = $3, approved_at = $4, payslip_ref = $5, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = 'Pending'
		RETURNING ` + payrollColumns

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id, companyID, approvedBy, approvedAt, payslipRef))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id, companyID); getErr != nil {
				return payroll.PayrollRecord{}, getErr
			}
			return payroll.PayrollRecord{}, payroll.ErrAlreadyApproved
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to approve payroll record: %w", err)
	}
	return rec, nil
}

func (r *payrollRepositoryImpl) GetSummary(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (payroll.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id),
			COALESCE(SUM(gross_pay), 0),
			COALESCE(SUM(total_deductions), 0),
			COALESCE(SUM(net_pay), 0),
			COUNT(*) FILTER (WHERE status = 'Pending'),
			COUNT(*) FILTER (WHERE status = 'Approved')
		FROM payroll_records
		WHERE company_id = $1 AND period_start >= $2 AND period_end <= $3
	`

	summary := payroll.PayrollSummaryResponse{
		PeriodStart: periodStart.Format("2006-01-02"),
		PeriodEnd:   periodEnd.Format("2006-01-02"),
	}
	err := q.QueryRow(ctx, query, companyID, periodStart, periodEnd).Scan(
		&summary.TotalEmployees, &summary.TotalGrossPay, &summary.TotalDeductions,
		&summary.TotalNetPay, &summary.PendingCount, &summary.ApprovedCount,
	)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}
	return summary, nil
}

func (r *payrollRepositoryImpl) SumBasicEarnings(ctx context.Context, employeeID string, year int, companyID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(base_pay), 0)
		FROM payroll_records
		WHERE employee_id = $1 AND company_id = $2 AND status = 'Approved'
		  AND EXTRACT(YEAR FROM period_start) = $3
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, companyID, year).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum basic earnings: %w", err)
	}
	return total, nil
}
