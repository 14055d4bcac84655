package payroll

import "github.com/dexter-morales/hrms-system-go/internal/domain/employee"

// PayPolicy captures which premium components an employee is entitled to.
// Managerial staff are paid on results rather than hours, so overtime,
// weekend, holiday, and night premiums do not apply to them.
type PayPolicy struct {
	OvertimeEligible       bool
	WeekendPremiumEligible bool
	HolidayPremiumEligible bool
	NightDiffEligible      bool
}

// PolicyFor derives the pay policy from the employee's role and employment
// type. Contractual and project-based hires keep hour-based premiums.
func PolicyFor(emp employee.Employee) PayPolicy {
	if emp.Role == employee.RoleManager {
		return PayPolicy{}
	}
	return PayPolicy{
		OvertimeEligible:       true,
		WeekendPremiumEligible: true,
		HolidayPremiumEligible: true,
		NightDiffEligible:      true,
	}
}
