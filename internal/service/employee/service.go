package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

func getCompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)
	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		CompanyID:        companyID,
		SiteID:           req.SiteID,
		EmployeeCode:     req.EmployeeCode,
		FullName:         req.FullName,
		TIN:              req.TIN,
		TaxRegistered:    req.TaxRegistered,
		Role:             employee.Role(req.Role),
		PaySchedule:      employee.PaySchedule(req.PaySchedule),
		BasicSalary:      req.BasicSalary,
		EmploymentType:   employee.EmploymentType(req.EmploymentType),
		EmploymentStatus: employee.EmploymentStatusActive,
		HireDate:         hireDate,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListActive(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		resp = append(resp, toResponse(emp))
	}
	return resp, nil
}

func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, companyID, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.employeeRepo.Delete(ctx, id, companyID)
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		FullName:       emp.FullName,
		TIN:            emp.TIN,
		TaxRegistered:  emp.TaxRegistered,
		Role:           string(emp.Role),
		PaySchedule:    string(emp.PaySchedule),
		BasicSalary:    emp.BasicSalary,
		EmploymentType: string(emp.EmploymentType),
		Status:         string(emp.EmploymentStatus),
		SiteID:         emp.SiteID,
		HireDate:       emp.HireDate.Format("2006-01-02"),
	}
}
