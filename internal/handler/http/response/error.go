package response

import (
	"errors"
	"net/http"

	"github.com/dexter-morales/hrms-system-go/internal/domain/attendance"
	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/dexter-morales/hrms-system-go/internal/domain/holiday"
	"github.com/dexter-morales/hrms-system-go/internal/domain/leave"
	"github.com/dexter-morales/hrms-system-go/internal/domain/loan"
	"github.com/dexter-morales/hrms-system-go/internal/domain/overtime"
	"github.com/dexter-morales/hrms-system-go/internal/domain/payroll"
	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/dexter-morales/hrms-system-go/internal/domain/site"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrTINExists):
		Conflict(w, "TIN already registered")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrOverlappingRange):
		Conflict(w, "Schedule effective range overlaps an existing schedule")
	case errors.Is(err, schedule.ErrMalformedSchedule), errors.Is(err, schedule.ErrInvalidScheduleDef):
		BadRequest(w, "Invalid schedule definition", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyPunchedIn):
		Conflict(w, "Already punched in today")
	case errors.Is(err, attendance.ErrNotPunchedIn):
		BadRequest(w, "No open punch-in found", nil)
	case errors.Is(err, attendance.ErrPunchOutBeforeIn):
		BadRequest(w, "Punch-out must be after punch-in", nil)

	// Overtime domain errors
	case errors.Is(err, overtime.ErrOvertimeNotFound):
		NotFound(w, "Overtime request not found")
	case errors.Is(err, overtime.ErrOvertimeAlreadyProcessed):
		Conflict(w, "Overtime request already processed")
	case errors.Is(err, overtime.ErrApprovedExceedsRequested):
		BadRequest(w, "Approved hours exceed requested hours", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrManagerApprovalRequired):
		Conflict(w, "Manager approval required before HR approval")

	// Loan domain errors
	case errors.Is(err, loan.ErrLoanNotFound):
		NotFound(w, "Loan not found")
	case errors.Is(err, loan.ErrLoanFullyPaid):
		Conflict(w, "Loan is already fully paid")
	case errors.Is(err, loan.ErrOverpayment):
		Conflict(w, "Deduction would exceed the remaining loan balance")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrAlreadyApproved):
		Conflict(w, "Payroll record already approved")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrNotEligible):
		BadRequest(w, "Employee not eligible", nil)

	// Master data errors
	case errors.Is(err, holiday.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, holiday.ErrHolidayExists):
		Conflict(w, "Holiday already exists on this date")
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
