package loan

import "errors"

var (
	ErrLoanNotFound  = errors.New("loan not found")
	ErrLoanFullyPaid = errors.New("loan is already fully paid")
	ErrOverpayment   = errors.New("deduction would exceed remaining balance")
)
