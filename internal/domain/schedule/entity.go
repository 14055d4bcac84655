package schedule

import (
	"encoding/json"
	"fmt"
	"time"
)

type ScheduleType string

const (
	ScheduleTypeFixed    ScheduleType = "fixed"
	ScheduleTypeFlexible ScheduleType = "flexible"
)

var ScheduleTypeValues = []string{
	string(ScheduleTypeFixed),
	string(ScheduleTypeFlexible),
}

// Window is a start/end pair of times-of-day ("HH:MM"). End may be earlier
// than Start for shifts that cross midnight.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

// TimeOfDay is minutes since midnight.
type TimeOfDay int

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// At anchors the time-of-day on a calendar date.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// ParseTimeOfDay parses "HH:MM" (seconds tolerated and dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		if t2, err2 := time.Parse("15:04:05", s); err2 == nil {
			t = t2
		} else {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// Schedule is an employee's working-time pattern, effective over a date range.
// Fixed schedules share one window across their working weekdays; flexible
// schedules carry a window per weekday.
type Schedule struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Type          ScheduleType
	FixedDays     map[time.Weekday]bool   // fixed only
	FixedWindow   Window                  // fixed only
	FlexibleDays  map[time.Weekday]Window // flexible only
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DefaultWindow is the documented fallback when no schedule (or a malformed
// one) applies: Monday through Friday, 09:00 to 17:00.
var DefaultWindow = Window{Start: 9 * 60, End: 17 * 60}

// DefaultSchedule returns the Mon-Fri 9-to-5 fallback pattern.
func DefaultSchedule() Schedule {
	return Schedule{
		Type: ScheduleTypeFixed,
		FixedDays: map[time.Weekday]bool{
			time.Monday: true, time.Tuesday: true, time.Wednesday: true,
			time.Thursday: true, time.Friday: true,
		},
		FixedWindow: DefaultWindow,
	}
}

// WindowFor resolves the expected working window on date. ok is false when the
// date is not a working day for this schedule.
func (s Schedule) WindowFor(date time.Time) (Window, bool) {
	switch s.Type {
	case ScheduleTypeFlexible:
		w, ok := s.FlexibleDays[date.Weekday()]
		return w, ok
	default:
		if s.FixedDays[date.Weekday()] {
			return s.FixedWindow, true
		}
		return Window{}, false
	}
}

// WorkingDaysIn counts scheduled working days in [from, to] inclusive.
func (s Schedule) WorkingDaysIn(from, to time.Time) int {
	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if _, ok := s.WindowFor(d); ok {
			count++
		}
	}
	return count
}

// IsRestDay reports whether date falls outside the schedule's working days.
func (s Schedule) IsRestDay(date time.Time) bool {
	_, ok := s.WindowFor(date)
	return !ok
}

var weekdayCodes = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWorkingDays decodes the stored working_days JSON into the typed
// schedule shape. Fixed schedules store an array of weekday codes; flexible
// schedules store a weekday -> [start, end] map. A parse failure is returned
// as an error so the store can log the raw value and fall back to the default
// schedule, rather than coercing silently.
func ParseWorkingDays(raw string, typ ScheduleType, start, end string) (Schedule, error) {
	s := Schedule{Type: typ}

	switch typ {
	case ScheduleTypeFixed:
		var codes []string
		if err := json.Unmarshal([]byte(raw), &codes); err != nil {
			return Schedule{}, fmt.Errorf("working_days is not a weekday array: %w", err)
		}
		days := make(map[time.Weekday]bool, len(codes))
		for _, code := range codes {
			wd, ok := weekdayCodes[normalizeCode(code)]
			if !ok {
				return Schedule{}, fmt.Errorf("unknown weekday code %q", code)
			}
			days[wd] = true
		}
		st, err := ParseTimeOfDay(start)
		if err != nil {
			return Schedule{}, err
		}
		en, err := ParseTimeOfDay(end)
		if err != nil {
			return Schedule{}, err
		}
		s.FixedDays = days
		s.FixedWindow = Window{Start: st, End: en}

	case ScheduleTypeFlexible:
		var m map[string][2]string
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return Schedule{}, fmt.Errorf("working_days is not a weekday map: %w", err)
		}
		days := make(map[time.Weekday]Window, len(m))
		for code, pair := range m {
			wd, ok := weekdayCodes[normalizeCode(code)]
			if !ok {
				return Schedule{}, fmt.Errorf("unknown weekday code %q", code)
			}
			st, err := ParseTimeOfDay(pair[0])
			if err != nil {
				return Schedule{}, err
			}
			en, err := ParseTimeOfDay(pair[1])
			if err != nil {
				return Schedule{}, err
			}
			days[wd] = Window{Start: st, End: en}
		}
		s.FlexibleDays = days

	default:
		return Schedule{}, fmt.Errorf("unknown schedule type %q", typ)
	}

	return s, nil
}

func normalizeCode(code string) string {
	b := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c == ' ' {
			continue
		}
		b = append(b, c)
	}
	return string(b)
}
