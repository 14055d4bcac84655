package schedule

import "errors"

var (
	ErrScheduleNotFound   = errors.New("schedule not found")
	ErrNoActiveSchedule   = errors.New("no active schedule for date")
	ErrMalformedSchedule  = errors.New("malformed schedule working days")
	ErrOverlappingRange   = errors.New("schedule effective range overlaps an existing schedule")
	ErrInvalidScheduleDef = errors.New("invalid schedule definition")
)
