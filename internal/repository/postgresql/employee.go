package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/dexter-morales/hrms-system-go/internal/domain/employee"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, company_id, site_id, employee_code, full_name, tin, tax_registered,
	role, pay_schedule, basic_salary, employment_type, employment_status,
	hire_date, resignation_date, created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.CompanyID, &emp.SiteID, &emp.EmployeeCode, &emp.FullName,
		&emp.TIN, &emp.TaxRegistered, &emp.Role, &emp.PaySchedule, &emp.BasicSalary,
		&emp.EmploymentType, &emp.EmploymentStatus, &emp.HireDate, &emp.ResignationDate,
		&emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	if emp.ID == "" {
		emp.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO employees (
			id, company_id, site_id, employee_code, full_name, tin, tax_registered,
			role, pay_schedule, basic_salary, employment_type, employment_status, hire_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.ID, emp.CompanyID, emp.SiteID, emp.EmployeeCode, emp.FullName,
		emp.TIN, emp.TaxRegistered, emp.Role, emp.PaySchedule, emp.BasicSalary,
		emp.EmploymentType, emp.EmploymentStatus, emp.HireDate,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND employment_status = $2 AND deleted_at IS NULL
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

func (e *employeeRepositoryImpl) Update(ctx context.Context, companyID string, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	sets := []string{"updated_at = NOW()"}
	args := []any{req.ID, companyID}
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if req.FullName != nil {
		add("full_name", *req.FullName)
	}
	if req.TIN != nil {
		add("tin", *req.TIN)
	}
	if req.TaxRegistered != nil {
		add("tax_registered", *req.TaxRegistered)
	}
	if req.Role != nil {
		add("role", *req.Role)
	}
	if req.PaySchedule != nil {
		add("pay_schedule", *req.PaySchedule)
	}
	if req.BasicSalary != nil {
		add("basic_salary", *req.BasicSalary)
	}
	if req.EmploymentType != nil {
		add("employment_type", *req.EmploymentType)
	}
	if req.SiteID != nil {
		add("site_id", *req.SiteID)
	}
	if req.Status != nil {
		add("employment_status", *req.Status)
	}

	query := fmt.Sprintf(`
		UPDATE employees
		SET %s
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING id
	`, strings.Join(sets, ", "))

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return nil
}

func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}
