package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrManagerApprovalRequired      = errors.New("manager approval required before HR approval")
	ErrInvalidDateRange             = errors.New("end date must not precede start date")
)
