package payroll

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
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
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCompanyID = "company-1"

func authedContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": testCompanyID,
		"user_id":    "user-1",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id, companyID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, companyID string, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id, companyID string) error { return nil }

type fakeScheduleRepo struct {
	schedule schedule.Schedule
	err      error
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s schedule.Schedule, raw string) (schedule.Schedule, error) {
	return s, nil
}

func (f *fakeScheduleRepo) GetActiveSchedule(ctx context.Context, employeeID string, date time.Time, companyID string) (schedule.Schedule, error) {
	if f.err != nil {
		return schedule.Schedule{}, f.err
	}
	return f.schedule, nil
}

func (f *fakeScheduleRepo) ListByEmployee(ctx context.Context, employeeID, companyID string) ([]schedule.Schedule, error) {
	return nil, nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id, companyID string) error { return nil }

type fakeAttendanceRepo struct {
	rows []attendance.Attendance
	err  error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id, companyID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetOpenPunch(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrNotPunchedIn
}

func (f *fakeAttendanceRepo) HasPunchedInOn(ctx context.Context, employeeID string, date time.Time, companyID string) (bool, error) {
	return false, nil
}

func (f *fakeAttendanceRepo) GetRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Attendance, error) {
	return f.rows, f.err
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter, companyID string) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListOpenOlderThan(ctx context.Context, cutoffDate time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

type fakeOvertimeRepo struct {
	rows []overtime.OvertimeRequest
}

func (f *fakeOvertimeRepo) Create(ctx context.Context, req overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	return req, nil
}

func (f *fakeOvertimeRepo) GetByID(ctx context.Context, id, companyID string) (overtime.OvertimeRequest, error) {
	return overtime.OvertimeRequest{}, overtime.ErrOvertimeNotFound
}

func (f *fakeOvertimeRepo) GetApprovedRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]overtime.OvertimeRequest, error) {
	return f.rows, nil
}

func (f *fakeOvertimeRepo) ListByCompany(ctx context.Context, companyID string, status *overtime.Status) ([]overtime.OvertimeRequest, error) {
	return nil, nil
}

func (f *fakeOvertimeRepo) SetStatus(ctx context.Context, id, companyID string, status overtime.Status, approvedHours *float64, approvedBy string, reason *string) error {
	return nil
}

type fakeLeaveRepo struct {
	rows []leave.LeaveRequest
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id, companyID string) (leave.LeaveRequest, error) {
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeLeaveRepo) GetApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.LeaveRequest, error) {
	return f.rows, nil
}

func (f *fakeLeaveRepo) ListByCompany(ctx context.Context, companyID string, status *leave.Status) ([]leave.LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) SetStatus(ctx context.Context, id, companyID string, status leave.Status, approverID string, reason *string) error {
	return nil
}

type fakeHolidayRepo struct {
	rows []holiday.Holiday
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	return h, nil
}

func (f *fakeHolidayRepo) GetRange(ctx context.Context, from, to time.Time, companyID string) ([]holiday.Holiday, error) {
	return f.rows, nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id, companyID string) error { return nil }

type fakeSiteRepo struct {
	sites map[string]site.Site
}

func (f *fakeSiteRepo) Create(ctx context.Context, s site.Site) (site.Site, error) { return s, nil }

func (f *fakeSiteRepo) GetByID(ctx context.Context, id, companyID string) (site.Site, error) {
	if s, ok := f.sites[id]; ok {
		return s, nil
	}
	return site.Site{}, site.ErrSiteNotFound
}

func (f *fakeSiteRepo) ListByCompany(ctx context.Context, companyID string) ([]site.Site, error) {
	return nil, nil
}

type fakeLoanRepo struct {
	loans []loan.Loan
}

func (f *fakeLoanRepo) Create(ctx context.Context, l loan.Loan) (loan.Loan, error) { return l, nil }

func (f *fakeLoanRepo) GetByID(ctx context.Context, id, companyID string) (loan.Loan, error) {
	for _, l := range f.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return loan.Loan{}, loan.ErrLoanNotFound
}

func (f *fakeLoanRepo) GetActiveByEmployee(ctx context.Context, employeeID, companyID string) ([]loan.Loan, error) {
	return f.loans, nil
}

func (f *fakeLoanRepo) ListByCompany(ctx context.Context, companyID string) ([]loan.Loan, error) {
	return nil, nil
}

func (f *fakeLoanRepo) SetStatus(ctx context.Context, id, companyID string, status loan.Status) error {
	return nil
}

func (f *fakeLoanRepo) ApplyDeduction(ctx context.Context, entry loan.LoanDeductionEntry, markPaid bool) (loan.LoanDeductionEntry, error) {
	return entry, nil
}

func (f *fakeLoanRepo) ListEntriesByLoan(ctx context.Context, loanID, companyID string) ([]loan.LoanDeductionEntry, error) {
	return nil, nil
}

func (f *fakeLoanRepo) SumEntriesByLoan(ctx context.Context, loanID string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakePayrollRepo struct {
	upserted    []payroll.PayrollRecord
	upsertErr   error
	earnings    decimal.Decimal
	lastFilter  payroll.PayrollFilter
	listRecords []payroll.PayrollRecord
}

func (f *fakePayrollRepo) UpsertPending(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	if f.upsertErr != nil {
		return payroll.PayrollRecord{}, f.upsertErr
	}
	record.ID = "rec-1"
	f.upserted = append(f.upserted, record)
	return record, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id, companyID string) (payroll.PayrollRecord, error) {
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) GetByEmployeePeriod(ctx context.Context, employeeID string, periodStart, periodEnd time.Time, companyID string) (payroll.PayrollRecord, error) {
	return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) List(ctx context.Context, companyID string, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	f.lastFilter = filter
	return f.listRecords, int64(len(f.listRecords)), nil
}

func (f *fakePayrollRepo) Approve(ctx context.Context, id, companyID, approvedBy string, approvedAt time.Time, payslipRef string) (payroll.PayrollRecord, error) {
	return payroll.PayrollRecord{}, payroll.ErrAlreadyApproved
}

func (f *fakePayrollRepo) GetSummary(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (payroll.PayrollSummaryResponse, error) {
	return payroll.PayrollSummaryResponse{}, nil
}

func (f *fakePayrollRepo) SumBasicEarnings(ctx context.Context, employeeID string, year int, companyID string) (decimal.Decimal, error) {
	return f.earnings, nil
}

type serviceFixture struct {
	service     payroll.PayrollService
	payrollRepo *fakePayrollRepo
	employees   *fakeEmployeeRepo
	schedules   *fakeScheduleRepo
	attendances *fakeAttendanceRepo
	overtimes   *fakeOvertimeRepo
	leaves      *fakeLeaveRepo
	holidays    *fakeHolidayRepo
	sites       *fakeSiteRepo
	loans       *fakeLoanRepo
}

func newFixture(employees ...employee.Employee) *serviceFixture {
	f := &serviceFixture{
		payrollRepo: &fakePayrollRepo{},
		employees:   &fakeEmployeeRepo{employees: employees},
		schedules:   &fakeScheduleRepo{schedule: schedule.DefaultSchedule()},
		attendances: &fakeAttendanceRepo{},
		overtimes:   &fakeOvertimeRepo{},
		leaves:      &fakeLeaveRepo{},
		holidays:    &fakeHolidayRepo{},
		sites:       &fakeSiteRepo{},
		loans:       &fakeLoanRepo{},
	}
	f.service = NewPayrollService(ServiceDeps{
		Clock:        clock.Fixed(time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)),
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		GraceMinutes: 15,

		PayrollRepo:    f.payrollRepo,
		EmployeeRepo:   f.employees,
		ScheduleRepo:   f.schedules,
		AttendanceRepo: f.attendances,
		OvertimeRepo:   f.overtimes,
		LeaveRepo:      f.leaves,
		HolidayRepo:    f.holidays,
		SiteRepo:       f.sites,
		LoanRepo:       f.loans,
		Payslips:       NewRefPayslipIssuer(),
	})
	return f
}

func testEmployee() employee.Employee {
	return employee.Employee{
		ID:            "emp-1",
		CompanyID:     testCompanyID,
		EmployeeCode:  "EMP-001",
		FullName:      "Juan Dela Cruz",
		TaxRegistered: true,
		Role:          employee.RoleStaff,
		PaySchedule:   employee.PayScheduleSemiMonthly,
		BasicSalary:   decimal.NewFromInt(26000),
		HireDate:      date(2023, 1, 16),
	}
}

// fullAttendance punches 09:00 to 17:00 on every weekday in [from, to].
func fullAttendance(empID string, from, to time.Time) []attendance.Attendance {
	var rows []attendance.Attendance
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		in := at(d, 9, 0)
		out := at(d, 17, 0)
		rows = append(rows, attendance.Attendance{
			EmployeeID: empID,
			Date:       d,
			PunchIn:    &in,
			PunchOut:   &out,
		})
	}
	return rows
}

func TestGenerateFirstHalfRecord(t *testing.T) {
	emp := testEmployee()
	f := newFixture(emp)
	f.attendances.rows = fullAttendance(emp.ID, date(2025, 6, 1), date(2025, 6, 15))

	result, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Generated)
	assert.Zero(t, result.Skipped)
	assert.Zero(t, result.Failed)
	require.Len(t, f.payrollRepo.upserted, 1)

	rec := f.payrollRepo.upserted[0]
	assert.Equal(t, payroll.StatusPending, rec.Status)
	assert.Equal(t, 10.0, rec.DaysWorked)
	assert.True(t, rec.BasePay.Equal(decimal.NewFromInt(13000)), "base %s", rec.BasePay)

	// First half carries SSS only; tax applies on gross less statutory.
	assert.True(t, rec.SSS.Equal(decimal.NewFromInt(1170)), "sss %s", rec.SSS)
	assert.True(t, rec.PhilHealth.IsZero())
	assert.True(t, rec.PagIBIG.IsZero())
	wantTax := WithholdingTax(rec.GrossPay.Sub(rec.SSS), employee.PayScheduleSemiMonthly)
	assert.True(t, rec.WithholdingTax.Equal(wantTax), "tax %s want %s", rec.WithholdingTax, wantTax)

	assert.True(t, rec.NetPay.Equal(rec.GrossPay.Sub(rec.TotalDeductions)),
		"net %s != gross %s - deductions %s", rec.NetPay, rec.GrossPay, rec.TotalDeductions)
}

func TestGenerateTwiceProducesIdenticalRecords(t *testing.T) {
	emp := testEmployee()
	f := newFixture(emp)
	f.attendances.rows = fullAttendance(emp.ID, date(2025, 6, 1), date(2025, 6, 15))

	req := payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	}

	_, err := f.service.Generate(authedContext(t), req)
	require.NoError(t, err)
	_, err = f.service.Generate(authedContext(t), req)
	require.NoError(t, err)

	require.Len(t, f.payrollRepo.upserted, 2)
	assert.Equal(t, f.payrollRepo.upserted[0], f.payrollRepo.upserted[1])
}

func TestGenerateSecondHalfStatutoryAndLoans(t *testing.T) {
	emp := testEmployee()
	f := newFixture(emp)
	f.attendances.rows = fullAttendance(emp.ID, date(2025, 6, 16), date(2025, 6, 30))
	f.loans.loans = []loan.Loan{{
		ID:                 "loan-1",
		EmployeeID:         emp.ID,
		Amount:             decimal.NewFromInt(12000),
		Terms:              6,
		DeductionFrequency: loan.FrequencyOnceAMonth,
		Status:             loan.StatusApproved,
	}}

	result, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-16",
		EndDate:     "2025-06-30",
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Generated)

	rec := f.payrollRepo.upserted[0]
	assert.True(t, rec.SSS.IsZero())
	assert.True(t, rec.PhilHealth.Equal(decimal.NewFromInt(650)), "philhealth %s", rec.PhilHealth)
	assert.True(t, rec.PagIBIG.Equal(decimal.NewFromInt(100)), "pagibig %s", rec.PagIBIG)

	// Once-a-month loans amortize on the second half.
	assert.True(t, rec.LoanDeductions.Equal(decimal.NewFromInt(2000)), "loans %s", rec.LoanDeductions)
	require.Contains(t, rec.LoanDetail, "loan-1")
	assert.True(t, rec.LoanDetail["loan-1"].Equal(decimal.NewFromInt(2000)))
}

func TestGenerateUnregisteredEmployeePaysNoTax(t *testing.T) {
	emp := testEmployee()
	emp.TaxRegistered = false
	f := newFixture(emp)
	f.attendances.rows = fullAttendance(emp.ID, date(2025, 6, 1), date(2025, 6, 15))

	_, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	})
	require.NoError(t, err)
	require.Len(t, f.payrollRepo.upserted, 1)
	assert.True(t, f.payrollRepo.upserted[0].WithholdingTax.IsZero())
}

func TestGenerateSkipsZeroSalary(t *testing.T) {
	emp := testEmployee()
	emp.BasicSalary = decimal.Zero
	f := newFixture(emp)

	result, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Generated)
	assert.Empty(t, f.payrollRepo.upserted)
}

func TestGenerateSkipsApprovedRecords(t *testing.T) {
	emp := testEmployee()
	f := newFixture(emp)
	f.payrollRepo.upsertErr = payroll.ErrAlreadyApproved

	result, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Zero(t, result.Failed)
}

func TestGenerateCountsFailuresWithoutAborting(t *testing.T) {
	broken := testEmployee()
	healthy := testEmployee()
	healthy.ID = "emp-2"
	f := newFixture(broken, healthy)
	f.attendances.err = errors.New("connection reset")

	result, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Failed)
	assert.Zero(t, result.Generated)
}

func TestGenerateFiltersByPaySchedule(t *testing.T) {
	semi := testEmployee()
	weekly := testEmployee()
	weekly.ID = "emp-2"
	weekly.PaySchedule = employee.PayScheduleWeekly
	f := newFixture(semi, weekly)
	f.attendances.rows = fullAttendance(semi.ID, date(2025, 6, 1), date(2025, 6, 15))

	result, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	require.Len(t, f.payrollRepo.upserted, 1)
	assert.Equal(t, semi.ID, f.payrollRepo.upserted[0].EmployeeID)
}

func TestGenerateFiltersByEmployeeIDs(t *testing.T) {
	first := testEmployee()
	second := testEmployee()
	second.ID = "emp-2"
	f := newFixture(first, second)
	f.attendances.rows = fullAttendance(second.ID, date(2025, 6, 1), date(2025, 6, 15))

	result, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
		EmployeeIDs: []string{"emp-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	require.Len(t, f.payrollRepo.upserted, 1)
	assert.Equal(t, "emp-2", f.payrollRepo.upserted[0].EmployeeID)
}

func TestGenerateRejectsInvalidRequest(t *testing.T) {
	f := newFixture(testEmployee())

	_, err := f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	})
	assert.Error(t, err)

	_, err = f.service.Generate(authedContext(t), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-15",
		EndDate:     "2025-06-01",
	})
	assert.Error(t, err)
}

func TestGenerateRequiresClaims(t *testing.T) {
	f := newFixture(testEmployee())

	_, err := f.service.Generate(context.Background(), payroll.GenerateRequest{
		PaySchedule: "semi-monthly",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
	})
	assert.Error(t, err)
}

func TestListClampsPagination(t *testing.T) {
	f := newFixture(testEmployee())

	_, err := f.service.List(authedContext(t), payroll.PayrollFilter{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, f.payrollRepo.lastFilter.Page)
	assert.Equal(t, 20, f.payrollRepo.lastFilter.Limit)
}

func TestSummaryRejectsInvertedPeriod(t *testing.T) {
	f := newFixture(testEmployee())

	_, err := f.service.Summary(authedContext(t), date(2025, 6, 30), date(2025, 6, 1))
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestComputeThirteenthMonth(t *testing.T) {
	emp := testEmployee()
	f := newFixture(emp)
	f.payrollRepo.earnings = decimal.NewFromInt(312000)

	resp, err := f.service.ComputeThirteenthMonth(authedContext(t), emp.ID, 2025)
	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(26000)), "got %s", resp.Amount)
	assert.True(t, resp.Eligible)
}

func TestComputeThirteenthMonthHiredAfterYear(t *testing.T) {
	emp := testEmployee()
	emp.HireDate = date(2026, 2, 1)
	f := newFixture(emp)

	_, err := f.service.ComputeThirteenthMonth(authedContext(t), emp.ID, 2025)
	assert.ErrorIs(t, err, payroll.ErrNotEligible)
}
