package payroll

import (
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
)

// NormalizeDay turns raw punches for one day into worked, late and undertime
// hours against the scheduled window for that date.
//
// Early punch-ins clamp to the scheduled start, so arriving before the shift
// never inflates worked hours. A punch-in past the grace period counts the
// full distance from the scheduled start as late, not just the part beyond
// the grace. Windows whose end is not after their start span midnight and
// get their expected end pushed to the next day.
func NormalizeDay(win schedule.Window, date, punchIn time.Time, punchOut *time.Time, breakHours float64, graceMinutes int) attendance.DayTotals {
	expectedStart := win.Start.At(date)
	expectedEnd := win.End.At(date)
	if !expectedEnd.After(expectedStart) {
		expectedEnd = expectedEnd.AddDate(0, 0, 1)
	}
	expectedHours := expectedEnd.Sub(expectedStart).Hours()

	var t attendance.DayTotals
	grace := time.Duration(graceMinutes) * time.Minute
	if punchIn.After(expectedStart.Add(grace)) {
		t.LateHours = roundHours(punchIn.Sub(expectedStart).Hours())
	}

	effectiveIn := punchIn
	if effectiveIn.Before(expectedStart) {
		effectiveIn = expectedStart
	}

	if punchOut == nil || !punchOut.After(effectiveIn) {
		// A missing or inverted punch-out yields zero worked hours and the
		// whole expected window as undertime.
		t.UndertimeHours = roundHours(expectedHours)
		return t
	}

	worked := punchOut.Sub(effectiveIn).Hours() - breakHours
	if worked < 0 {
		worked = 0
	}
	if worked > expectedHours {
		worked = expectedHours
	}
	t.HoursWorked = roundHours(worked)

	if punchOut.Before(expectedEnd) {
		t.UndertimeHours = roundHours(expectedEnd.Sub(*punchOut).Hours())
	}
	return t
}

// nightWindowOverlap returns the hours of a punch span that fall inside the
// 22:00-06:00 night differential window, checking both the window starting
// the previous evening and the one starting this evening.
func nightWindowOverlap(date time.Time, in time.Time, out time.Time) float64 {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	morningEnd := dayStart.Add(6 * time.Hour)
	eveningStart := dayStart.Add(22 * time.Hour)
	nextMorningEnd := dayStart.Add(30 * time.Hour)

	total := overlapHours(in, out, dayStart, morningEnd)
	total += overlapHours(in, out, eveningStart, nextMorningEnd)
	return total
}

func overlapHours(aStart, aEnd, bStart, bEnd time.Time) float64 {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start).Hours()
}

func roundHours(h float64) float64 {
	return float64(int64(h*100+0.5)) / 100
}
