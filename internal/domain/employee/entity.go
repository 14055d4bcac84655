package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	CompanyID        string
	SiteID           *string
	EmployeeCode     string
	FullName         string
	TIN              *string
	TaxRegistered    bool
	Role             Role
	PaySchedule      PaySchedule
	BasicSalary      decimal.Decimal // monthly basic salary
	EmploymentType   EmploymentType
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	ResignationDate  *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

type PaySchedule string

const (
	PayScheduleWeekly      PaySchedule = "weekly"
	PayScheduleSemiMonthly PaySchedule = "semi-monthly"
)

var PayScheduleValues = []string{
	string(PayScheduleWeekly),
	string(PayScheduleSemiMonthly),
}

type Role string

const (
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleStaff      Role = "staff"
	RoleHR         Role = "hr"
)

var RoleValues = []string{
	string(RoleManager),
	string(RoleSupervisor),
	string(RoleStaff),
	string(RoleHR),
}

type EmploymentType string

const (
	EmploymentTypeRegular      EmploymentType = "regular"
	EmploymentTypeProbationary EmploymentType = "probationary"
	EmploymentTypeContractual  EmploymentType = "contractual"
	EmploymentTypeProjectBased EmploymentType = "project-based"
)

var EmploymentTypeValues = []string{
	string(EmploymentTypeRegular),
	string(EmploymentTypeProbationary),
	string(EmploymentTypeContractual),
	string(EmploymentTypeProjectBased),
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)
