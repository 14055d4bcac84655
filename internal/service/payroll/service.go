package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/dexter-morales/hrms-system-go/internal/domain/holiday"
	"github.com/dexter-morales/hrms-system-go/internal/domain/leave"
	"github.com/dexter-morales/hrms-system-go/internal/domain/loan"
	"github.com/dexter-morales/hrms-system-go/internal/domain/overtime"
	"github.com/dexter-morales/hrms-system-go/internal/domain/payroll"
	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/dexter-morales/hrms-system-go/internal/domain/site"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/clock"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/dexter-morales/hrms-system-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	db           *database.DB
	clock        clock.Clock
	logger       *slog.Logger
	graceMinutes int

	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	scheduleRepo   schedule.ScheduleRepository
	attendanceRepo attendance.AttendanceRepository
	overtimeRepo   overtime.OvertimeRepository
	leaveRepo      leave.LeaveRepository
	holidayRepo    holiday.HolidayRepository
	siteRepo       site.SiteRepository
	loanRepo       loan.LoanRepository
	payslips       payroll.PayslipIssuer
}

type ServiceDeps struct {
	DB           *database.DB
	Clock        clock.Clock
	Logger       *slog.Logger
	GraceMinutes int

	PayrollRepo    payroll.PayrollRepository
	EmployeeRepo   employee.EmployeeRepository
	ScheduleRepo   schedule.ScheduleRepository
	AttendanceRepo attendance.AttendanceRepository
	OvertimeRepo   overtime.OvertimeRepository
	LeaveRepo      leave.LeaveRepository
	HolidayRepo    holiday.HolidayRepository
	SiteRepo       site.SiteRepository
	LoanRepo       loan.LoanRepository
	Payslips       payroll.PayslipIssuer
}

func NewPayrollService(deps ServiceDeps) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             deps.DB,
		clock:          deps.Clock,
		logger:         deps.Logger,
		graceMinutes:   deps.GraceMinutes,
		payrollRepo:    deps.PayrollRepo,
		employeeRepo:   deps.EmployeeRepo,
		scheduleRepo:   deps.ScheduleRepo,
		attendanceRepo: deps.AttendanceRepo,
		overtimeRepo:   deps.OvertimeRepo,
		leaveRepo:      deps.LeaveRepo,
		holidayRepo:    deps.HolidayRepo,
		siteRepo:       deps.SiteRepo,
		loanRepo:       deps.LoanRepo,
		payslips:       deps.Payslips,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.GenerateResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.GenerateResult{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.GenerateResult{}, err
	}

	periodStart, _ := time.Parse("2006-01-02", req.StartDate)
	periodEnd, _ := time.Parse("2006-01-02", req.EndDate)
	sched := employee.PaySchedule(req.PaySchedule)
	cutoff := CutoffOf(sched, periodStart, periodEnd)

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return payroll.GenerateResult{}, fmt.Errorf("failed to get employees: %w", err)
	}

	wanted := make(map[string]bool, len(req.EmployeeIDs))
	for _, id := range req.EmployeeIDs {
		wanted[id] = true
	}

	var result payroll.GenerateResult
	for _, emp := range employees {
		if emp.PaySchedule != sched {
			continue
		}
		if len(wanted) > 0 && !wanted[emp.ID] {
			continue
		}

		rec, err := s.generateForEmployee(ctx, emp, companyID, periodStart, periodEnd, cutoff)
		switch {
		case err == nil:
			result.Generated++
			result.Records = append(result.Records, toRecordResponse(rec))
		case errors.Is(err, payroll.ErrAlreadyApproved), errors.Is(err, payroll.ErrNoBasicSalary):
			result.Skipped++
			s.logger.InfoContext(ctx, "payroll generation skipped employee",
				slog.String("employee_id", emp.ID),
				slog.String("reason", err.Error()),
			)
		default:
			result.Failed++
			s.logger.ErrorContext(ctx, "payroll generation failed for employee",
				slog.String("employee_id", emp.ID),
				slog.Any("error", err),
			)
		}
	}

	return result, nil
}

// generateForEmployee computes and upserts one Pending record. A panic in
// the computation is converted to an error so one bad employee cannot take
// down the whole run.
func (s *PayrollServiceImpl) generateForEmployee(
	ctx context.Context,
	emp employee.Employee,
	companyID string,
	periodStart, periodEnd time.Time,
	cutoff Cutoff,
) (rec payroll.PayrollRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("payroll computation panicked: %v", r)
		}
	}()

	if emp.BasicSalary.IsZero() {
		return payroll.PayrollRecord{}, payroll.ErrNoBasicSalary
	}

	sched, err := s.scheduleRepo.GetActiveSchedule(ctx, emp.ID, periodStart, companyID)
	if err != nil {
		if !errors.Is(err, schedule.ErrNoActiveSchedule) && !errors.Is(err, schedule.ErrMalformedSchedule) {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to resolve schedule: %w", err)
		}
		s.logger.WarnContext(ctx, "falling back to default schedule",
			slog.String("employee_id", emp.ID),
			slog.Any("error", err),
		)
		sched = schedule.DefaultSchedule()
	}

	attRows, err := s.attendanceRepo.GetRange(ctx, emp.ID, periodStart, periodEnd, companyID)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	leaves, err := s.leaveRepo.GetApprovedOverlapping(ctx, emp.ID, periodStart, periodEnd, companyID)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get leave requests: %w", err)
	}
	otRows, err := s.overtimeRepo.GetApprovedRange(ctx, emp.ID, periodStart, periodEnd, companyID)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get overtime: %w", err)
	}
	holidays, err := s.holidayRepo.GetRange(ctx, periodStart, periodEnd, companyID)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get holidays: %w", err)
	}
	loans, err := s.loanRepo.GetActiveByEmployee(ctx, emp.ID, companyID)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get loans: %w", err)
	}

	siteAllowance := decimal.Zero
	if emp.SiteID != nil {
		st, err := s.siteRepo.GetByID(ctx, *emp.SiteID, companyID)
		if err != nil && !errors.Is(err, site.ErrSiteNotFound) {
			return payroll.PayrollRecord{}, fmt.Errorf("failed to get site: %w", err)
		}
		if err == nil {
			siteAllowance = st.Allowance
		}
	}

	days := s.normalizeDays(sched, attRows)
	paidLeaveDays := countPaidLeaveDays(sched, leaves, periodStart, periodEnd)

	in := PeriodInput{
		Employee:      emp,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Days:          days,
		ScheduledDays: sched.WorkingDaysIn(periodStart, periodEnd),
		PaidLeaveDays: paidLeaveDays,
		Holidays:      holidays,
		Overtime:      otRows,
		RestDayOf:     sched.IsRestDay,
		LeaveCovers: func(date time.Time) bool {
			for _, lv := range leaves {
				if lv.IsWithPay && lv.CoversDate(date) {
					return true
				}
			}
			return false
		},
		SiteAllowance: siteAllowance,
		Policy:        PolicyFor(emp),
	}
	comp := Calculate(in)

	carry := DeductionSchedule(cutoff)
	var sss, philHealth, pagIBIG decimal.Decimal
	if carry.SSS {
		sss = SSSContribution(emp.BasicSalary)
	}
	if carry.PhilHealth {
		philHealth = PhilHealthContribution(emp.BasicSalary)
	}
	if carry.PagIBIG {
		pagIBIG = PagIBIGContribution(emp.BasicSalary)
	}

	var tax decimal.Decimal
	if emp.TaxRegistered {
		taxable := comp.GrossPay.Sub(sss).Sub(philHealth).Sub(pagIBIG)
		tax = WithholdingTax(taxable, emp.PaySchedule)
	}

	scheduled := ScheduleLoanDeductions(loans, cutoff, periodEnd)
	loanDetail := make(map[string]decimal.Decimal, len(scheduled))
	for _, d := range scheduled {
		loanDetail[d.LoanID] = d.Amount
	}
	loanTotal := TotalLoanDeduction(scheduled)

	totalDeductions := sss.Add(philHealth).Add(pagIBIG).Add(tax).
		Add(comp.LateUndertimeDeduction).Add(loanTotal).Round(2)

	rec = payroll.PayrollRecord{
		EmployeeID:  emp.ID,
		CompanyID:   companyID,
		SiteID:      emp.SiteID,
		PaySchedule: emp.PaySchedule,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,

		DaysWorked:     comp.DaysWorked,
		LateHours:      comp.LateHours,
		UndertimeHours: comp.UndertimeHours,
		OvertimeHours:  comp.OvertimeHours,
		PaidLeaveDays:  paidLeaveDays,

		BasePay:       comp.BasePay,
		WeekendPay:    comp.WeekendPay,
		HolidayPay:    comp.HolidayPay,
		NightDiffPay:  comp.NightDiffPay,
		OvertimePay:   comp.OvertimePay,
		LeavePay:      comp.LeavePay,
		SiteAllowance: comp.SiteAllowance,
		GrossPay:      comp.GrossPay,

		SSS:                    sss,
		PhilHealth:             philHealth,
		PagIBIG:                pagIBIG,
		WithholdingTax:         tax,
		LateUndertimeDeduction: comp.LateUndertimeDeduction,
		LoanDeductions:         loanTotal,
		LoanDetail:             loanDetail,
		TotalDeductions:        totalDeductions,

		NetPay: comp.GrossPay.Sub(totalDeductions).Round(2),

		Status: payroll.StatusPending,
	}

	saved, err := s.payrollRepo.UpsertPending(ctx, rec)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	return saved, nil
}

// normalizeDays runs the attendance normalizer over raw punch rows. Rows
// without a window for their weekday (rest days and days outside a flexible
// map) fall back to the default nine-to-five window.
func (s *PayrollServiceImpl) normalizeDays(sched schedule.Schedule, rows []attendance.Attendance) []DayRecord {
	days := make([]DayRecord, 0, len(rows))
	for _, row := range rows {
		if row.PunchIn == nil {
			continue
		}
		win, ok := sched.WindowFor(row.Date)
		if !ok {
			win = schedule.DefaultWindow
		}
		totals := NormalizeDay(win, row.Date, *row.PunchIn, row.PunchOut, row.BreakHours, s.graceMinutes)
		days = append(days, DayRecord{
			Date:      row.Date,
			Totals:    totals,
			PunchIn:   row.PunchIn,
			PunchOut:  row.PunchOut,
			IsRestDay: sched.IsRestDay(row.Date),
		})
	}
	return days
}

// countPaidLeaveDays counts scheduled working days inside the period covered
// by a fully approved with-pay leave request.
func countPaidLeaveDays(sched schedule.Schedule, leaves []leave.LeaveRequest, from, to time.Time) float64 {
	var days float64
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if sched.IsRestDay(d) {
			continue
		}
		for _, lv := range leaves {
			if lv.IsWithPay && lv.Status == leave.StatusApproved && lv.CoversDate(d) {
				days++
				break
			}
		}
	}
	return days
}

func (s *PayrollServiceImpl) Approve(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	var approved payroll.PayrollRecord
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		rec, err := s.payrollRepo.GetByID(txCtx, id, companyID)
		if err != nil {
			return err
		}
		if rec.Status == payroll.StatusApproved {
			return payroll.ErrAlreadyApproved
		}

		ref, err := s.payslips.Issue(txCtx, rec)
		if err != nil {
			return fmt.Errorf("failed to issue payslip: %w", err)
		}

		approved, err = s.payrollRepo.Approve(txCtx, id, companyID, userID, s.clock.Now(), ref)
		if err != nil {
			return err
		}

		// Loan ledger entries only materialize at approval, so a regenerated
		// Pending record never double-charges a loan.
		cutoff := CutoffOf(rec.PaySchedule, rec.PeriodStart, rec.PeriodEnd)
		dedDate := DeductionDate(cutoff, rec.PeriodEnd)
		for loanID, amount := range rec.LoanDetail {
			l, err := s.loanRepo.GetByID(txCtx, loanID, companyID)
			if err != nil {
				return fmt.Errorf("failed to load loan %s: %w", loanID, err)
			}
			markPaid := l.Remaining().LessThanOrEqual(amount)
			entry := loan.LoanDeductionEntry{
				LoanID:          loanID,
				PayrollRecordID: rec.ID,
				Amount:          amount,
				DeductionDate:   dedDate,
			}
			if _, err := s.loanRepo.ApplyDeduction(txCtx, entry, markPaid); err != nil {
				return fmt.Errorf("failed to apply loan deduction: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return toRecordResponse(approved), nil
}

func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return toRecordResponse(rec), nil
}

func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.List(ctx, companyID, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	resp := payroll.ListPayrollRecordResponse{
		Data:       make([]payroll.PayrollRecordResponse, 0, len(records)),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, rec := range records {
		resp.Data = append(resp.Data, toRecordResponse(rec))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) Summary(ctx context.Context, periodStart, periodEnd time.Time) (payroll.PayrollSummaryResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollSummaryResponse{}, err
	}
	if periodEnd.Before(periodStart) {
		return payroll.PayrollSummaryResponse{}, payroll.ErrInvalidPeriod
	}
	return s.payrollRepo.GetSummary(ctx, companyID, periodStart, periodEnd)
}

func (s *PayrollServiceImpl) ComputeThirteenthMonth(ctx context.Context, employeeID string, year int) (payroll.ThirteenthMonthResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ThirteenthMonthResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return payroll.ThirteenthMonthResponse{}, err
	}

	yearEnd := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	if emp.HireDate.After(yearEnd) {
		return payroll.ThirteenthMonthResponse{}, payroll.ErrNotEligible
	}

	earnings, err := s.payrollRepo.SumBasicEarnings(ctx, employeeID, year, companyID)
	if err != nil {
		return payroll.ThirteenthMonthResponse{}, err
	}

	amount := ThirteenthMonthPay(earnings)
	return payroll.ThirteenthMonthResponse{
		EmployeeID:    employeeID,
		Year:          year,
		BasicEarnings: earnings.Round(2),
		Amount:        amount,
		Eligible:      amount.GreaterThan(decimal.Zero),
	}, nil
}

func toRecordResponse(rec payroll.PayrollRecord) payroll.PayrollRecordResponse {
	resp := payroll.PayrollRecordResponse{
		ID:          rec.ID,
		EmployeeID:  rec.EmployeeID,
		PaySchedule: string(rec.PaySchedule),
		PeriodStart: rec.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   rec.PeriodEnd.Format("2006-01-02"),

		DaysWorked:     rec.DaysWorked,
		LateHours:      rec.LateHours,
		UndertimeHours: rec.UndertimeHours,
		OvertimeHours:  rec.OvertimeHours,
		PaidLeaveDays:  rec.PaidLeaveDays,

		BasePay:       rec.BasePay,
		WeekendPay:    rec.WeekendPay,
		HolidayPay:    rec.HolidayPay,
		NightDiffPay:  rec.NightDiffPay,
		OvertimePay:   rec.OvertimePay,
		LeavePay:      rec.LeavePay,
		SiteAllowance: rec.SiteAllowance,
		GrossPay:      rec.GrossPay,

		SSS:                    rec.SSS,
		PhilHealth:             rec.PhilHealth,
		PagIBIG:                rec.PagIBIG,
		WithholdingTax:         rec.WithholdingTax,
		LateUndertimeDeduction: rec.LateUndertimeDeduction,
		LoanDeductions:         rec.LoanDeductions,
		LoanDetail:             rec.LoanDetail,
		TotalDeductions:        rec.TotalDeductions,

		NetPay: rec.NetPay,
		Status: string(rec.Status),
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	if rec.EmployeeCode != nil {
		resp.EmployeeCode = *rec.EmployeeCode
	}
	if rec.ApprovedAt != nil {
		at := rec.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	resp.PayslipRef = rec.PayslipRef
	return resp
}
