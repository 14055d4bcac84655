package overtime

import "errors"

var (
	ErrOvertimeNotFound         = errors.New("overtime request not found")
	ErrOvertimeAlreadyProcessed = errors.New("overtime request already processed")
	ErrApprovedExceedsRequested = errors.New("approved hours exceed requested hours")
)
