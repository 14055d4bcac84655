package payroll

import (
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/dexter-morales/hrms-system-go/internal/domain/holiday"
	"github.com/dexter-morales/hrms-system-go/internal/domain/overtime"
	"github.com/shopspring/decimal"
)

// workingDaysPerYear is the standard Philippine divisor for converting a
// monthly salary to a daily rate (261 working days).
var workingDaysPerYear = decimal.NewFromInt(261)

var hoursPerDay = decimal.NewFromInt(8)

// DailyRate converts a monthly salary to its equivalent daily rate.
func DailyRate(monthlySalary decimal.Decimal) decimal.Decimal {
	return monthlySalary.Mul(twelve).Div(workingDaysPerYear)
}

// HourlyRate is the daily rate over an eight hour day.
func HourlyRate(monthlySalary decimal.Decimal) decimal.Decimal {
	return DailyRate(monthlySalary).Div(hoursPerDay)
}

// DayRecord is one normalized attendance day feeding the calculator.
type DayRecord struct {
	Date      time.Time
	Totals    attendance.DayTotals
	PunchIn   *time.Time
	PunchOut  *time.Time
	IsRestDay bool
}

// Worked reports whether the day has any credited hours.
func (d DayRecord) Worked() bool {
	return d.Totals.HoursWorked > 0
}

// PeriodInput is everything the component calculator needs for one
// employee and pay period.
type PeriodInput struct {
	Employee      employee.Employee
	PeriodStart   time.Time
	PeriodEnd     time.Time
	Days          []DayRecord
	ScheduledDays int
	PaidLeaveDays float64
	Holidays      []holiday.Holiday
	Overtime      []overtime.OvertimeRequest
	RestDayOf     func(date time.Time) bool
	LeaveCovers   func(date time.Time) bool
	SiteAllowance decimal.Decimal
	Policy        PayPolicy
}

// Components is the itemized earnings side of a payroll record, before
// statutory and loan deductions.
type Components struct {
	DaysWorked     float64
	LateHours      float64
	UndertimeHours float64
	OvertimeHours  float64

	BasePay                 decimal.Decimal
	WeekendPay              decimal.Decimal
	HolidayPay              decimal.Decimal
	NightDiffPay            decimal.Decimal
	OvertimePay             decimal.Decimal
	LeavePay                decimal.Decimal
	SiteAllowance           decimal.Decimal
	LateUndertimeDeduction  decimal.Decimal
	GrossPay                decimal.Decimal
}

var (
	saturdayPremium = decimal.NewFromFloat(0.30)
	sundayPremium   = decimal.NewFromFloat(0.25)
	nightDiffRate   = decimal.NewFromFloat(0.10)

	regularHolidayPremium = decimal.NewFromInt(1)
	specialHolidayPremium = decimal.NewFromFloat(0.30)
)

// otMultiplier keys the overtime rate on the holiday type of the day and
// whether it is the employee's rest day.
func otMultiplier(holidayType holiday.Type, restDay bool) decimal.Decimal {
	switch {
	case holidayType == holiday.TypeRegular && restDay:
		return decimal.NewFromFloat(2.60)
	case holidayType == holiday.TypeRegular:
		return decimal.NewFromFloat(2.00)
	case holidayType != "" && restDay:
		return decimal.NewFromFloat(1.50)
	case holidayType != "":
		return decimal.NewFromFloat(1.30)
	case restDay:
		return decimal.NewFromFloat(1.30)
	default:
		return decimal.NewFromFloat(1.25)
	}
}

// weeklyBonusDays credits one extra paid day on a full five day week, and
// weeklyShortfallHours is the per-missing-day penalty in hourly rate units.
const (
	weeklyFullWeekDays  = 5
	weeklyBonusDays     = 1
	weeklyShortfallHours = 1
)

// Calculate computes all earnings components for one employee and period.
func Calculate(in PeriodInput) Components {
	daily := DailyRate(in.Employee.BasicSalary)
	hourly := HourlyRate(in.Employee.BasicSalary)

	var c Components
	for _, d := range in.Days {
		c.DaysWorked += boolToDay(d.Worked())
		c.LateHours += d.Totals.LateHours
		c.UndertimeHours += d.Totals.UndertimeHours
	}

	c.BasePay = basePay(in, daily, hourly)
	c.LeavePay = daily.Mul(decimal.NewFromFloat(in.PaidLeaveDays)).Round(2)
	c.SiteAllowance = in.SiteAllowance.Round(2)

	holidayByDate := make(map[string]holiday.Holiday, len(in.Holidays))
	for _, h := range in.Holidays {
		holidayByDate[dateKey(h.Date)] = h
	}

	if in.Policy.WeekendPremiumEligible {
		c.WeekendPay = weekendPay(in.Days, hourly)
	}
	if in.Policy.NightDiffEligible {
		c.NightDiffPay = nightDiffPay(in.Days, hourly)
	}
	if in.Policy.HolidayPremiumEligible && in.Employee.PaySchedule == employee.PayScheduleSemiMonthly {
		c.HolidayPay = holidayPay(in, daily)
	}
	if in.Policy.OvertimeEligible {
		c.OvertimeHours, c.OvertimePay = overtimePay(in, holidayByDate, hourly)
	}

	c.LateUndertimeDeduction = hourly.Mul(decimal.NewFromFloat(c.LateHours + c.UndertimeHours)).Round(2)

	c.GrossPay = c.BasePay.
		Add(c.WeekendPay).
		Add(c.HolidayPay).
		Add(c.NightDiffPay).
		Add(c.OvertimePay).
		Add(c.LeavePay).
		Add(c.SiteAllowance).
		Round(2)
	return c
}

// basePay is half the monthly salary less absences for semi-monthly
// employees. Weekly employees earn per day worked plus a bonus day, with an
// hourly penalty per missing day under a full week.
func basePay(in PeriodInput, daily, hourly decimal.Decimal) decimal.Decimal {
	worked := 0.0
	for _, d := range in.Days {
		worked += boolToDay(d.Worked())
	}

	if in.Employee.PaySchedule == employee.PayScheduleSemiMonthly {
		half := in.Employee.BasicSalary.Div(two)
		absent := float64(in.ScheduledDays) - worked
		if absent < 0 {
			absent = 0
		}
		return half.Sub(daily.Mul(decimal.NewFromFloat(absent))).Round(2)
	}

	credited := worked + in.PaidLeaveDays
	payDays := credited + weeklyBonusDays
	base := daily.Mul(decimal.NewFromFloat(payDays))
	if credited < weeklyFullWeekDays {
		missing := weeklyFullWeekDays - credited
		base = base.Sub(hourly.Mul(decimal.NewFromFloat(missing * weeklyShortfallHours)))
	}
	// Weekly leave pay is already folded into credited days.
	base = base.Sub(daily.Mul(decimal.NewFromFloat(in.PaidLeaveDays)))
	return base.Round(2)
}

func weekendPay(days []DayRecord, hourly decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range days {
		if !d.Worked() {
			continue
		}
		var premium decimal.Decimal
		switch d.Date.Weekday() {
		case time.Saturday:
			premium = saturdayPremium
		case time.Sunday:
			premium = sundayPremium
		default:
			continue
		}
		total = total.Add(hourly.Mul(decimal.NewFromFloat(d.Totals.HoursWorked)).Mul(premium))
	}
	return total.Round(2)
}

func nightDiffPay(days []DayRecord, hourly decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range days {
		if d.PunchIn == nil || d.PunchOut == nil {
			continue
		}
		nightHours := nightWindowOverlap(d.Date, *d.PunchIn, *d.PunchOut)
		if nightHours <= 0 {
			continue
		}
		total = total.Add(hourly.Mul(decimal.NewFromFloat(nightHours)).Mul(nightDiffRate))
	}
	return total.Round(2)
}

// holidayPay grants the daily rate on regular holidays and 30% of it on
// special ones, withheld when the employee skipped the last scheduled
// working day before the holiday without approved paid leave.
func holidayPay(in PeriodInput, daily decimal.Decimal) decimal.Decimal {
	workedOn := make(map[string]bool, len(in.Days))
	for _, d := range in.Days {
		if d.Worked() {
			workedOn[dateKey(d.Date)] = true
		}
	}

	total := decimal.Zero
	for _, h := range in.Holidays {
		if h.Date.Before(in.PeriodStart) || h.Date.After(in.PeriodEnd) {
			continue
		}
		if !eligibleForHoliday(in, workedOn, h.Date) {
			continue
		}
		premium := specialHolidayPremium
		if h.Type == holiday.TypeRegular {
			premium = regularHolidayPremium
		}
		total = total.Add(daily.Mul(premium))
	}
	return total.Round(2)
}

// eligibleForHoliday walks back to the previous non-rest day and requires
// either attendance or paid leave on it. Holidays at the period boundary
// with no prior day in range stay eligible.
func eligibleForHoliday(in PeriodInput, workedOn map[string]bool, holidayDate time.Time) bool {
	prev := holidayDate.AddDate(0, 0, -1)
	for !prev.Before(in.PeriodStart) {
		if in.RestDayOf == nil || !in.RestDayOf(prev) {
			return workedOn[dateKey(prev)] || in.paidLeaveCovers(prev)
		}
		prev = prev.AddDate(0, 0, -1)
	}
	return true
}

func (in PeriodInput) paidLeaveCovers(date time.Time) bool {
	if in.LeaveCovers == nil {
		return false
	}
	return in.LeaveCovers(date)
}

func overtimePay(in PeriodInput, holidays map[string]holiday.Holiday, hourly decimal.Decimal) (float64, decimal.Decimal) {
	var hours float64
	total := decimal.Zero
	for _, ot := range in.Overtime {
		if ot.Status != overtime.StatusApproved || ot.ApprovedHours == nil {
			continue
		}
		var htype holiday.Type
		if h, ok := holidays[dateKey(ot.Date)]; ok {
			htype = h.Type
		}
		restDay := in.RestDayOf != nil && in.RestDayOf(ot.Date)
		mult := otMultiplier(htype, restDay)
		hours += *ot.ApprovedHours
		total = total.Add(hourly.Mul(decimal.NewFromFloat(*ot.ApprovedHours)).Mul(mult))
	}
	return hours, total.Round(2)
}

func boolToDay(worked bool) float64 {
	if worked {
		return 1
	}
	return 0
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
