package payroll

import (
	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// SSS monthly salary credit bands run from 5,000 to 35,000 in 500-peso
// steps. Earnings above 20,000 credit toward the mandatory provident fund
// at the same employee rate.
var (
	sssMinMSC     = decimal.NewFromInt(5000)
	sssMaxMSC     = decimal.NewFromInt(35000)
	sssStep       = decimal.NewFromInt(500)
	sssMPFFloor   = decimal.NewFromInt(20000)
	sssEmployeeEE = decimal.NewFromFloat(0.045)
)

// SSSContribution returns the employee share of the monthly SSS contribution
// for the given monthly salary, regular and provident portions combined.
func SSSContribution(monthlySalary decimal.Decimal) decimal.Decimal {
	msc := salaryCredit(monthlySalary)
	regular := decimal.Min(msc, sssMPFFloor).Mul(sssEmployeeEE)
	mpf := decimal.Max(decimal.Zero, msc.Sub(sssMPFFloor)).Mul(sssEmployeeEE)
	return regular.Add(mpf).Round(2)
}

// salaryCredit snaps a monthly salary onto its MSC band. A salary lands on
// band m when it is at least m-250, so the mapping is monotonic in salary.
func salaryCredit(salary decimal.Decimal) decimal.Decimal {
	if salary.LessThan(sssMinMSC.Add(sssStep.Div(two))) {
		return sssMinMSC
	}
	msc := sssMinMSC
	for band := sssMinMSC.Add(sssStep); band.LessThanOrEqual(sssMaxMSC); band = band.Add(sssStep) {
		if salary.GreaterThanOrEqual(band.Sub(sssStep.Div(two))) {
			msc = band
		}
	}
	return msc
}

// PhilHealth premium is 5% of the monthly salary clamped to the
// 10,000..100,000 window, split evenly between employer and employee.
var (
	philHealthRate  = decimal.NewFromFloat(0.05)
	philHealthFloor = decimal.NewFromInt(10000)
	philHealthCeil  = decimal.NewFromInt(100000)
)

// PhilHealthContribution returns the employee half of the monthly premium.
func PhilHealthContribution(monthlySalary decimal.Decimal) decimal.Decimal {
	base := monthlySalary
	if base.LessThan(philHealthFloor) {
		base = philHealthFloor
	}
	if base.GreaterThan(philHealthCeil) {
		base = philHealthCeil
	}
	return base.Mul(philHealthRate).Div(two).Round(2)
}

// Pag-IBIG: 1% employee share at or below 1,500 monthly, 2% above, on a
// fund salary capped at 5,000. The cap makes 100 pesos the ceiling.
var (
	pagIBIGLowRate   = decimal.NewFromFloat(0.01)
	pagIBIGHighRate  = decimal.NewFromFloat(0.02)
	pagIBIGLowCutoff = decimal.NewFromInt(1500)
	pagIBIGFundCap   = decimal.NewFromInt(5000)
)

// PagIBIGContribution returns the monthly employee Pag-IBIG share.
func PagIBIGContribution(monthlySalary decimal.Decimal) decimal.Decimal {
	rate := pagIBIGHighRate
	if monthlySalary.LessThanOrEqual(pagIBIGLowCutoff) {
		rate = pagIBIGLowRate
	}
	base := decimal.Min(monthlySalary, pagIBIGFundCap)
	return base.Mul(rate).Round(2)
}

// taxBracket is one row of a TRAIN-law withholding table. Tax on income x
// inside the bracket is Base + Rate * (x - Over).
type taxBracket struct {
	Over decimal.Decimal
	Base decimal.Decimal
	Rate decimal.Decimal
}

func bracket(over int64, base float64, rate float64) taxBracket {
	return taxBracket{
		Over: decimal.NewFromInt(over),
		Base: decimal.NewFromFloat(base),
		Rate: decimal.NewFromFloat(rate),
	}
}

// Revised withholding tables effective 2023, semi-monthly and weekly columns.
var (
	semiMonthlyTaxTable = []taxBracket{
		bracket(0, 0, 0),
		bracket(10417, 0, 0.15),
		bracket(16667, 937.50, 0.20),
		bracket(33333, 4270.70, 0.25),
		bracket(83333, 16770.70, 0.30),
		bracket(333333, 91770.70, 0.35),
	}
	weeklyTaxTable = []taxBracket{
		bracket(0, 0, 0),
		bracket(4808, 0, 0.15),
		bracket(7692, 432.60, 0.20),
		bracket(15385, 1971.20, 0.25),
		bracket(38462, 7741.45, 0.30),
		bracket(153846, 42356.85, 0.35),
	}
)

// WithholdingTax computes the per-cutoff withholding tax on taxable income,
// using the table matching the employee's pay schedule. The caller is
// responsible for zeroing tax for unregistered employees.
func WithholdingTax(taxable decimal.Decimal, sched employee.PaySchedule) decimal.Decimal {
	table := weeklyTaxTable
	if sched == employee.PayScheduleSemiMonthly {
		table = semiMonthlyTaxTable
	}
	if taxable.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	row := table[0]
	for _, b := range table {
		if taxable.GreaterThanOrEqual(b.Over) {
			row = b
		}
	}
	return row.Base.Add(taxable.Sub(row.Over).Mul(row.Rate)).Round(2)
}
