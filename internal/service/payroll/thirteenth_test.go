package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestThirteenthMonthPay(t *testing.T) {
	// A full year at 26,000 basic accrues 312,000 and pays one month.
	got := ThirteenthMonthPay(decimal.NewFromInt(312000))
	assert.True(t, got.Equal(decimal.NewFromInt(26000)), "got %s", got)

	// Partial-year earnings still divide by twelve.
	got = ThirteenthMonthPay(decimal.NewFromInt(78000))
	assert.True(t, got.Equal(decimal.NewFromInt(6500)), "got %s", got)

	assert.True(t, ThirteenthMonthPay(decimal.Zero).IsZero())
	assert.True(t, ThirteenthMonthPay(decimal.NewFromInt(-100)).IsZero())
}
