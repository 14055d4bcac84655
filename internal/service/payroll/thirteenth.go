package payroll

import "github.com/shopspring/decimal"

// ThirteenthMonthPay is one twelfth of the basic earnings accrued over the
// calendar year, per Presidential Decree 851.
func ThirteenthMonthPay(basicEarnings decimal.Decimal) decimal.Decimal {
	if basicEarnings.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return basicEarnings.Div(twelve).Round(2)
}
