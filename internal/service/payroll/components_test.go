package payroll

import (
	"testing"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/dexter-morales/hrms-system-go/internal/domain/holiday"
	"github.com/dexter-morales/hrms-system-go/internal/domain/overtime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func semiEmployee(salary float64) employee.Employee {
	return employee.Employee{
		ID:          "emp-1",
		PaySchedule: employee.PayScheduleSemiMonthly,
		BasicSalary: decimal.NewFromFloat(salary),
		Role:        employee.RoleStaff,
	}
}

func weeklyEmployee(salary float64) employee.Employee {
	e := semiEmployee(salary)
	e.PaySchedule = employee.PayScheduleWeekly
	return e
}

func workedDay(day time.Time, hours float64) DayRecord {
	in := at(day, 8, 0)
	out := at(day, 17, 0)
	return DayRecord{
		Date:     day,
		Totals:   attendance.DayTotals{HoursWorked: hours},
		PunchIn:  &in,
		PunchOut: &out,
	}
}

func fullPolicy() PayPolicy {
	return PayPolicy{
		OvertimeEligible:       true,
		WeekendPremiumEligible: true,
		HolidayPremiumEligible: true,
		NightDiffEligible:      true,
	}
}

func TestDailyRate(t *testing.T) {
	// Monthly salary times 12, over 261 working days.
	daily := DailyRate(decimal.NewFromInt(26100))
	assert.True(t, daily.Equal(decimal.NewFromInt(1200)), "got %s", daily)

	hourly := HourlyRate(decimal.NewFromInt(26100))
	assert.True(t, hourly.Equal(decimal.NewFromInt(150)), "got %s", hourly)
}

func TestCalculateSemiMonthlyFullAttendance(t *testing.T) {
	emp := semiEmployee(26000)
	var days []DayRecord
	for d := date(2025, 6, 2); !d.After(date(2025, 6, 13)); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		days = append(days, workedDay(d, 8))
	}

	c := Calculate(PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 1),
		PeriodEnd:     date(2025, 6, 15),
		Days:          days,
		ScheduledDays: len(days),
		Policy:        fullPolicy(),
	})

	// No absences: exactly half the monthly salary.
	assert.True(t, c.BasePay.Equal(decimal.NewFromInt(13000)), "got %s", c.BasePay)
	assert.Equal(t, float64(len(days)), c.DaysWorked)
	assert.True(t, c.GrossPay.Equal(c.BasePay), "got %s", c.GrossPay)
}

func TestCalculateSemiMonthlyAbsenceDocksDailyRate(t *testing.T) {
	emp := semiEmployee(26000)
	days := []DayRecord{
		workedDay(date(2025, 6, 2), 8),
		workedDay(date(2025, 6, 3), 8),
	}

	c := Calculate(PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 1),
		PeriodEnd:     date(2025, 6, 15),
		Days:          days,
		ScheduledDays: 3,
		Policy:        fullPolicy(),
	})

	daily := DailyRate(emp.BasicSalary)
	want := decimal.NewFromInt(13000).Sub(daily).Round(2)
	assert.True(t, c.BasePay.Equal(want), "got %s want %s", c.BasePay, want)
}

func TestCalculateWeeklyBasePay(t *testing.T) {
	emp := weeklyEmployee(26100)
	daily := DailyRate(emp.BasicSalary)
	hourly := HourlyRate(emp.BasicSalary)

	t.Run("full week earns a bonus day", func(t *testing.T) {
		var days []DayRecord
		for d := date(2025, 6, 2); !d.After(date(2025, 6, 6)); d = d.AddDate(0, 0, 1) {
			days = append(days, workedDay(d, 8))
		}
		c := Calculate(PeriodInput{
			Employee:      emp,
			PeriodStart:   date(2025, 6, 2),
			PeriodEnd:     date(2025, 6, 6),
			Days:          days,
			ScheduledDays: 5,
			Policy:        fullPolicy(),
		})
		want := daily.Mul(decimal.NewFromInt(6)).Round(2)
		assert.True(t, c.BasePay.Equal(want), "got %s want %s", c.BasePay, want)
	})

	t.Run("short week pays per day with hourly shortfall", func(t *testing.T) {
		days := []DayRecord{
			workedDay(date(2025, 6, 2), 8),
			workedDay(date(2025, 6, 3), 8),
			workedDay(date(2025, 6, 4), 8),
			workedDay(date(2025, 6, 5), 8),
		}
		c := Calculate(PeriodInput{
			Employee:      emp,
			PeriodStart:   date(2025, 6, 2),
			PeriodEnd:     date(2025, 6, 6),
			Days:          days,
			ScheduledDays: 5,
			Policy:        fullPolicy(),
		})
		want := daily.Mul(decimal.NewFromInt(5)).Sub(hourly).Round(2)
		assert.True(t, c.BasePay.Equal(want), "got %s want %s", c.BasePay, want)
	})

	t.Run("paid leave counts toward the full week but is itemized separately", func(t *testing.T) {
		days := []DayRecord{
			workedDay(date(2025, 6, 2), 8),
			workedDay(date(2025, 6, 3), 8),
			workedDay(date(2025, 6, 4), 8),
			workedDay(date(2025, 6, 5), 8),
		}
		c := Calculate(PeriodInput{
			Employee:      emp,
			PeriodStart:   date(2025, 6, 2),
			PeriodEnd:     date(2025, 6, 6),
			Days:          days,
			ScheduledDays: 5,
			PaidLeaveDays: 1,
			Policy:        fullPolicy(),
		})
		// Base covers 4 worked + 1 bonus day; the leave day shows up as
		// LeavePay, not inside base, so the employee is whole overall.
		wantBase := daily.Mul(decimal.NewFromInt(5)).Round(2)
		wantLeave := daily.Round(2)
		assert.True(t, c.BasePay.Equal(wantBase), "got %s want %s", c.BasePay, wantBase)
		assert.True(t, c.LeavePay.Equal(wantLeave), "got %s want %s", c.LeavePay, wantLeave)
	})
}

func TestWeekendPay(t *testing.T) {
	emp := semiEmployee(26100)
	hourly := HourlyRate(emp.BasicSalary)
	days := []DayRecord{
		workedDay(date(2025, 6, 7), 8), // Saturday
		workedDay(date(2025, 6, 8), 4), // Sunday
		workedDay(date(2025, 6, 9), 8), // Monday
	}

	c := Calculate(PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 1),
		PeriodEnd:     date(2025, 6, 15),
		Days:          days,
		ScheduledDays: 3,
		Policy:        fullPolicy(),
	})

	want := hourly.Mul(decimal.NewFromInt(8)).Mul(decimal.NewFromFloat(0.30)).
		Add(hourly.Mul(decimal.NewFromInt(4)).Mul(decimal.NewFromFloat(0.25))).
		Round(2)
	assert.True(t, c.WeekendPay.Equal(want), "got %s want %s", c.WeekendPay, want)
}

func TestWeekendPayRequiresEligibility(t *testing.T) {
	emp := semiEmployee(26100)
	emp.Role = employee.RoleManager
	days := []DayRecord{workedDay(date(2025, 6, 7), 8)}

	c := Calculate(PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 1),
		PeriodEnd:     date(2025, 6, 15),
		Days:          days,
		ScheduledDays: 1,
		Policy:        PolicyFor(emp),
	})

	assert.True(t, c.WeekendPay.IsZero(), "got %s", c.WeekendPay)
	assert.True(t, c.OvertimePay.IsZero())
	assert.True(t, c.NightDiffPay.IsZero())
}

func TestManagerPolicySkipsHolidayPay(t *testing.T) {
	emp := semiEmployee(26100)
	emp.Role = employee.RoleManager

	policy := PolicyFor(emp)
	assert.False(t, policy.HolidayPremiumEligible)

	c := Calculate(PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 9),
		PeriodEnd:     date(2025, 6, 15),
		Days:          []DayRecord{workedDay(date(2025, 6, 11), 8)},
		ScheduledDays: 4,
		Holidays:      []holiday.Holiday{{Date: date(2025, 6, 12), Type: holiday.TypeRegular}},
		Policy:        policy,
	})

	assert.True(t, c.HolidayPay.IsZero(), "got %s", c.HolidayPay)
}

func TestHolidayPay(t *testing.T) {
	emp := semiEmployee(26100)
	daily := DailyRate(emp.BasicSalary)

	base := PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 9),
		PeriodEnd:     date(2025, 6, 15),
		ScheduledDays: 4,
		Policy:        fullPolicy(),
	}

	t.Run("regular holiday pays the daily rate", func(t *testing.T) {
		in := base
		in.Days = []DayRecord{workedDay(date(2025, 6, 11), 8)}
		in.Holidays = []holiday.Holiday{{Date: date(2025, 6, 12), Type: holiday.TypeRegular}}
		c := Calculate(in)
		want := daily.Round(2)
		assert.True(t, c.HolidayPay.Equal(want), "got %s want %s", c.HolidayPay, want)
	})

	t.Run("special holiday pays thirty percent", func(t *testing.T) {
		in := base
		in.Days = []DayRecord{workedDay(date(2025, 6, 11), 8)}
		in.Holidays = []holiday.Holiday{{Date: date(2025, 6, 12), Type: holiday.TypeSpecialNonWorking}}
		c := Calculate(in)
		want := daily.Mul(decimal.NewFromFloat(0.30)).Round(2)
		assert.True(t, c.HolidayPay.Equal(want), "got %s want %s", c.HolidayPay, want)
	})

	t.Run("withheld when the previous working day was skipped", func(t *testing.T) {
		in := base
		in.Days = []DayRecord{workedDay(date(2025, 6, 10), 8)}
		in.Holidays = []holiday.Holiday{{Date: date(2025, 6, 12), Type: holiday.TypeRegular}}
		c := Calculate(in)
		assert.True(t, c.HolidayPay.IsZero(), "got %s", c.HolidayPay)
	})

	t.Run("paid leave on the previous day keeps eligibility", func(t *testing.T) {
		in := base
		in.Holidays = []holiday.Holiday{{Date: date(2025, 6, 12), Type: holiday.TypeRegular}}
		in.LeaveCovers = func(d time.Time) bool { return d.Equal(date(2025, 6, 11)) }
		c := Calculate(in)
		want := daily.Round(2)
		assert.True(t, c.HolidayPay.Equal(want), "got %s want %s", c.HolidayPay, want)
	})

	t.Run("rest day before the holiday is skipped in the walk back", func(t *testing.T) {
		in := base
		in.Days = []DayRecord{workedDay(date(2025, 6, 13), 8)}
		in.Holidays = []holiday.Holiday{{Date: date(2025, 6, 15), Type: holiday.TypeRegular}}
		in.RestDayOf = func(d time.Time) bool { return d.Weekday() == time.Saturday }
		c := Calculate(in)
		// June 14 is a Saturday rest day, so eligibility hinges on Friday the
		// 13th, which was worked.
		want := daily.Round(2)
		assert.True(t, c.HolidayPay.Equal(want), "got %s want %s", c.HolidayPay, want)
	})

	t.Run("holiday at the period boundary stays eligible", func(t *testing.T) {
		in := base
		in.Holidays = []holiday.Holiday{{Date: date(2025, 6, 9), Type: holiday.TypeRegular}}
		c := Calculate(in)
		want := daily.Round(2)
		assert.True(t, c.HolidayPay.Equal(want), "got %s want %s", c.HolidayPay, want)
	})

	t.Run("weekly employees get no holiday component", func(t *testing.T) {
		in := base
		in.Employee = weeklyEmployee(26100)
		in.Days = []DayRecord{workedDay(date(2025, 6, 11), 8)}
		in.Holidays = []holiday.Holiday{{Date: date(2025, 6, 12), Type: holiday.TypeRegular}}
		c := Calculate(in)
		assert.True(t, c.HolidayPay.IsZero(), "got %s", c.HolidayPay)
	})
}

func TestOvertimeMultipliers(t *testing.T) {
	tests := []struct {
		name    string
		htype   holiday.Type
		restDay bool
		want    string
	}{
		{"plain working day", "", false, "1.25"},
		{"rest day", "", true, "1.3"},
		{"special holiday", holiday.TypeSpecialNonWorking, false, "1.3"},
		{"special working holiday", holiday.TypeSpecialWorking, false, "1.3"},
		{"special holiday on rest day", holiday.TypeSpecialNonWorking, true, "1.5"},
		{"regular holiday", holiday.TypeRegular, false, "2"},
		{"regular holiday on rest day", holiday.TypeRegular, true, "2.6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := otMultiplier(tt.htype, tt.restDay)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s want %s", got, tt.want)
		})
	}
}

func TestOvertimePayUsesApprovedHoursOnly(t *testing.T) {
	emp := semiEmployee(26100)
	hourly := HourlyRate(emp.BasicSalary)
	approved := 2.0
	requestedOnly := 3.0

	c := Calculate(PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 1),
		PeriodEnd:     date(2025, 6, 15),
		Days:          []DayRecord{workedDay(date(2025, 6, 10), 8)},
		ScheduledDays: 1,
		Overtime: []overtime.OvertimeRequest{
			{Date: date(2025, 6, 10), Status: overtime.StatusApproved, RequestedHours: 3, ApprovedHours: &approved},
			{Date: date(2025, 6, 11), Status: overtime.StatusPending, RequestedHours: requestedOnly},
		},
		Policy: fullPolicy(),
	})

	assert.Equal(t, 2.0, c.OvertimeHours)
	want := hourly.Mul(decimal.NewFromFloat(2)).Mul(decimal.NewFromFloat(1.25)).Round(2)
	assert.True(t, c.OvertimePay.Equal(want), "got %s want %s", c.OvertimePay, want)
}

func TestNightDiffPay(t *testing.T) {
	emp := semiEmployee(26100)
	hourly := HourlyRate(emp.BasicSalary)
	day := date(2025, 6, 10)
	in := at(day, 22, 0)
	out := at(day.AddDate(0, 0, 1), 6, 0)

	c := Calculate(PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 1),
		PeriodEnd:     date(2025, 6, 15),
		Days: []DayRecord{{
			Date:     day,
			Totals:   attendance.DayTotals{HoursWorked: 8},
			PunchIn:  &in,
			PunchOut: &out,
		}},
		ScheduledDays: 1,
		Policy:        fullPolicy(),
	})

	want := hourly.Mul(decimal.NewFromInt(8)).Mul(decimal.NewFromFloat(0.10)).Round(2)
	assert.True(t, c.NightDiffPay.Equal(want), "got %s want %s", c.NightDiffPay, want)
}

func TestGrossPayIsSumOfComponents(t *testing.T) {
	emp := semiEmployee(26000)
	approved := 2.0
	c := Calculate(PeriodInput{
		Employee:      emp,
		PeriodStart:   date(2025, 6, 1),
		PeriodEnd:     date(2025, 6, 15),
		Days: []DayRecord{
			workedDay(date(2025, 6, 7), 8), // Saturday
			workedDay(date(2025, 6, 9), 8),
		},
		ScheduledDays: 2,
		PaidLeaveDays: 1,
		Overtime: []overtime.OvertimeRequest{
			{Date: date(2025, 6, 9), Status: overtime.StatusApproved, ApprovedHours: &approved},
		},
		SiteAllowance: decimal.NewFromInt(500),
		Policy:        fullPolicy(),
	})

	sum := c.BasePay.
		Add(c.WeekendPay).
		Add(c.HolidayPay).
		Add(c.NightDiffPay).
		Add(c.OvertimePay).
		Add(c.LeavePay).
		Add(c.SiteAllowance)
	assert.True(t, c.GrossPay.Equal(sum.Round(2)), "gross %s != sum %s", c.GrossPay, sum)
}
