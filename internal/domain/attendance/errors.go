package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyPunchedIn   = errors.New("already punched in today")
	ErrNotPunchedIn       = errors.New("no open punch-in found")
	ErrPunchOutBeforeIn   = errors.New("punch-out must be after punch-in")
)
