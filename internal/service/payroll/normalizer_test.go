package payroll

import (
	"testing"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

var nineToSix = schedule.Window{Start: 8 * 60, End: 17 * 60}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestNormalizeDayLateArrival(t *testing.T) {
	day := date(2025, 6, 2)
	in := at(day, 8, 20)
	out := at(day, 17, 0)

	totals := NormalizeDay(nineToSix, day, in, ptr(out), 1.0, 15)

	// 20 minutes past an 08:00 start with a 15 minute grace counts the whole
	// 20 minutes as late, not just the 5 beyond the grace.
	assert.InDelta(t, 0.33, totals.LateHours, 0.001)
	assert.InDelta(t, 7.67, totals.HoursWorked, 0.001)
	assert.Zero(t, totals.UndertimeHours)
}

func TestNormalizeDayWithinGrace(t *testing.T) {
	day := date(2025, 6, 2)
	in := at(day, 8, 14)
	out := at(day, 17, 0)

	totals := NormalizeDay(nineToSix, day, in, ptr(out), 1.0, 15)

	assert.Zero(t, totals.LateHours)
	assert.InDelta(t, 7.77, totals.HoursWorked, 0.001)
}

func TestNormalizeDayEarlyPunchInClamps(t *testing.T) {
	day := date(2025, 6, 2)
	in := at(day, 6, 30)
	out := at(day, 17, 0)

	totals := NormalizeDay(nineToSix, day, in, ptr(out), 0, 15)

	// Arriving at 06:30 must not credit hours before the 08:00 start.
	assert.Zero(t, totals.LateHours)
	assert.InDelta(t, 9.0, totals.HoursWorked, 0.001)
}

func TestNormalizeDayMissingPunchOut(t *testing.T) {
	day := date(2025, 6, 2)
	in := at(day, 8, 0)

	totals := NormalizeDay(nineToSix, day, in, nil, 0, 15)

	assert.Zero(t, totals.HoursWorked)
	assert.InDelta(t, 9.0, totals.UndertimeHours, 0.001)
}

func TestNormalizeDayInvertedPunchOut(t *testing.T) {
	day := date(2025, 6, 2)
	in := at(day, 9, 0)
	out := at(day, 8, 0)

	totals := NormalizeDay(nineToSix, day, in, ptr(out), 0, 15)

	assert.Zero(t, totals.HoursWorked)
	assert.InDelta(t, 9.0, totals.UndertimeHours, 0.001)
}

func TestNormalizeDayEarlyDeparture(t *testing.T) {
	day := date(2025, 6, 2)
	in := at(day, 8, 0)
	out := at(day, 15, 0)

	totals := NormalizeDay(nineToSix, day, in, ptr(out), 1.0, 15)

	assert.InDelta(t, 6.0, totals.HoursWorked, 0.001)
	assert.InDelta(t, 2.0, totals.UndertimeHours, 0.001)
}

func TestNormalizeDayCapsAtExpectedHours(t *testing.T) {
	day := date(2025, 6, 2)
	in := at(day, 8, 0)
	out := at(day, 21, 0)

	totals := NormalizeDay(nineToSix, day, in, ptr(out), 0, 15)

	// Staying past the window does not inflate worked hours; overtime is a
	// separate, approval-gated component.
	assert.InDelta(t, 9.0, totals.HoursWorked, 0.001)
	assert.Zero(t, totals.UndertimeHours)
}

func TestNormalizeDayNightShiftSpansMidnight(t *testing.T) {
	night := schedule.Window{Start: 22 * 60, End: 6 * 60}
	day := date(2025, 6, 2)
	in := at(day, 22, 0)
	out := at(day.AddDate(0, 0, 1), 6, 0)

	totals := NormalizeDay(night, day, in, ptr(out), 0, 15)

	assert.Zero(t, totals.LateHours)
	assert.InDelta(t, 8.0, totals.HoursWorked, 0.001)
	assert.Zero(t, totals.UndertimeHours)
}

func TestNightWindowOverlap(t *testing.T) {
	day := date(2025, 6, 2)

	tests := []struct {
		name string
		in   time.Time
		out  time.Time
		want float64
	}{
		{"day shift has no overlap", at(day, 8, 0), at(day, 17, 0), 0},
		{"evening overtime into the window", at(day, 18, 0), at(day, 23, 0), 1},
		{"full night shift", at(day, 22, 0), at(day.AddDate(0, 0, 1), 6, 0), 8},
		{"early morning tail from previous evening", at(day, 4, 0), at(day, 13, 0), 2},
		{"both windows touched", at(day, 5, 0), at(day, 23, 0), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, nightWindowOverlap(day, tt.in, tt.out), 0.001)
		})
	}
}

func TestRoundHours(t *testing.T) {
	assert.Equal(t, 0.33, roundHours(1.0/3.0))
	assert.Equal(t, 7.67, roundHours(7.666666))
	assert.Equal(t, 0.0, roundHours(0))
}
