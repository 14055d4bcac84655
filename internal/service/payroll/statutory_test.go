package payroll

import (
	"testing"

	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func peso(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestSSSContribution(t *testing.T) {
	tests := []struct {
		name   string
		salary float64
		want   string
	}{
		// 4.5% of the minimum MSC.
		{"below minimum band", 3000, "225"},
		{"exact minimum band", 5000, "225"},
		// 4,800 is within 250 of the 5,000 band.
		{"snaps up to nearest band", 4800, "225"},
		// 10,000 MSC at 4.5%.
		{"mid band", 10000, "450"},
		// One short of the 10,500 snap point, stays on 10,000.
		{"stays below next band", 10249, "450"},
		// 250 short of 10,500 snaps up.
		{"snaps at half step", 10250, "472.5"},
		// 20,000 regular cap, no MPF yet.
		{"mpf floor", 20000, "900"},
		// MSC 26,000: 900 regular + 270 MPF.
		{"mid-band salary", 26000, "1170"},
		// MSC caps at 35,000: 900 + 675.
		{"above maximum band", 80000, "1575"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SSSContribution(peso(tt.salary))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"salary %v: got %s want %s", tt.salary, got, tt.want)
		})
	}
}

// Contributions never decrease as salary increases.
func TestSSSContributionMonotonic(t *testing.T) {
	prev := decimal.Zero
	for salary := 1000; salary <= 60000; salary += 250 {
		got := SSSContribution(decimal.NewFromInt(int64(salary)))
		assert.True(t, got.GreaterThanOrEqual(prev),
			"contribution dropped at salary %d: %s < %s", salary, got, prev)
		prev = got
	}
}

func TestPhilHealthContribution(t *testing.T) {
	tests := []struct {
		name   string
		salary float64
		want   string
	}{
		{"below floor clamps to 10k", 8000, "250"},
		{"at floor", 10000, "250"},
		{"mid range", 26000, "650"},
		{"at ceiling", 100000, "2500"},
		{"above ceiling clamps", 150000, "2500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PhilHealthContribution(peso(tt.salary))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"salary %v: got %s want %s", tt.salary, got, tt.want)
		})
	}
}

func TestPagIBIGContribution(t *testing.T) {
	tests := []struct {
		name   string
		salary float64
		want   string
	}{
		{"low rate at 1% below cutoff", 1500, "15"},
		{"high rate just above cutoff", 1501, "30.02"},
		{"fund salary capped at 5k", 4000, "80"},
		{"cap reached", 5000, "100"},
		{"well above cap still 100", 26000, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PagIBIGContribution(peso(tt.salary))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"salary %v: got %s want %s", tt.salary, got, tt.want)
		})
	}
}

func TestWithholdingTax(t *testing.T) {
	tests := []struct {
		name    string
		taxable float64
		sched   employee.PaySchedule
		want    string
	}{
		{"zero taxable", 0, employee.PayScheduleSemiMonthly, "0"},
		{"negative taxable", -500, employee.PayScheduleSemiMonthly, "0"},
		{"semi first bracket exempt", 10000, employee.PayScheduleSemiMonthly, "0"},
		// 15% of (12000 - 10417).
		{"semi second bracket", 12000, employee.PayScheduleSemiMonthly, "237.45"},
		// 937.50 + 20% of (20000 - 16667).
		{"semi third bracket", 20000, employee.PayScheduleSemiMonthly, "1604.1"},
		// 4270.70 + 25% of (50000 - 33333).
		{"semi fourth bracket", 50000, employee.PayScheduleSemiMonthly, "8437.45"},
		{"weekly exempt", 4808, employee.PayScheduleWeekly, "0"},
		// 15% of (6000 - 4808).
		{"weekly second bracket", 6000, employee.PayScheduleWeekly, "178.8"},
		// 432.60 + 20% of (10000 - 7692).
		{"weekly third bracket", 10000, employee.PayScheduleWeekly, "894.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithholdingTax(peso(tt.taxable), tt.sched)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"taxable %v: got %s want %s", tt.taxable, got, tt.want)
		})
	}
}
