package payroll

import (
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/dexter-morales/hrms-system-go/internal/domain/loan"
)

// Cutoff identifies the sub-period of the month a pay period falls in:
// position 1 or 2 for semi-monthly, week-of-month 1..5 for weekly.
type Cutoff struct {
	Schedule employee.PaySchedule
	Position int
}

// CutoffOf classifies a pay period. Semi-monthly periods ending on or before
// the 15th are the first half; weekly periods are classified by the week of
// the month their end date falls in.
func CutoffOf(sched employee.PaySchedule, periodStart, periodEnd time.Time) Cutoff {
	c := Cutoff{Schedule: sched}
	switch sched {
	case employee.PayScheduleSemiMonthly:
		if periodEnd.Day() <= 15 {
			c.Position = 1
		} else {
			c.Position = 2
		}
	default:
		c.Position = (periodEnd.Day()-1)/7 + 1
		if c.Position > 5 {
			c.Position = 5
		}
	}
	return c
}

// StatutoryCarry says which statutory deductions this cutoff carries.
// Withholding tax is not part of the table: it applies on every cutoff.
type StatutoryCarry struct {
	SSS        bool
	PhilHealth bool
	PagIBIG    bool
}

// DeductionSchedule is the proration rule table. Semi-monthly: SSS on the
// first half, PhilHealth and Pag-IBIG on the second. Weekly: week 1 carries
// SSS, week 2 PhilHealth, week 3 Pag-IBIG, weeks 4 and 5 carry none.
func DeductionSchedule(c Cutoff) StatutoryCarry {
	if c.Schedule == employee.PayScheduleSemiMonthly {
		if c.Position == 1 {
			return StatutoryCarry{SSS: true}
		}
		return StatutoryCarry{PhilHealth: true, PagIBIG: true}
	}
	switch c.Position {
	case 1:
		return StatutoryCarry{SSS: true}
	case 2:
		return StatutoryCarry{PhilHealth: true}
	case 3:
		return StatutoryCarry{PagIBIG: true}
	default:
		return StatutoryCarry{}
	}
}

// LoanDue reports whether a loan with the given frequency fires on this
// cutoff. Once-a-month loans fire on the second half (or fourth week);
// twice-a-month loans fire on both halves (weeks 2 and 4).
func LoanDue(freq loan.Frequency, c Cutoff) bool {
	if c.Schedule == employee.PayScheduleSemiMonthly {
		if freq == loan.FrequencyTwiceAMonth {
			return true
		}
		return c.Position == 2
	}
	if freq == loan.FrequencyTwiceAMonth {
		return c.Position == 2 || c.Position == 4
	}
	return c.Position == 4
}

// DeductionDate snaps the loan deduction date to the 15th or month-end for
// semi-monthly cutoffs, and to the period end for weekly ones.
func DeductionDate(c Cutoff, periodEnd time.Time) time.Time {
	if c.Schedule != employee.PayScheduleSemiMonthly {
		return periodEnd
	}
	if c.Position == 1 {
		return time.Date(periodEnd.Year(), periodEnd.Month(), 15, 0, 0, 0, 0, periodEnd.Location())
	}
	firstOfNext := time.Date(periodEnd.Year(), periodEnd.Month(), 1, 0, 0, 0, 0, periodEnd.Location()).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
