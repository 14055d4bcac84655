package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/overtime"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type overtimeRepositoryImpl struct {
	db *database.DB
}

func NewOvertimeRepository(db *database.DB) overtime.OvertimeRepository {
	return &overtimeRepositoryImpl{db: db}
}

const overtimeColumns = `id, employee_id, company_id, date, requested_hours, approved_hours, status, approved_by, reason, created_at, updated_at`

func scanOvertime(row pgx.Row) (overtime.OvertimeRequest, error) {
	var ot overtime.OvertimeRequest
	err := row.Scan(
		&ot.ID, &ot.EmployeeID, &ot.CompanyID, &ot.Date, &ot.RequestedHours,
		&ot.ApprovedHours, &ot.Status, &ot.ApprovedBy, &ot.Reason, &ot.CreatedAt, &ot.UpdatedAt,
	)
	return ot, err
}

func (o *overtimeRepositoryImpl) Create(ctx context.Context, req overtime.OvertimeRequest) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, o.db)

	if req.ID == "" {
		req.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO overtime_requests (id, employee_id, company_id, date, requested_hours, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + overtimeColumns

	created, err := scanOvertime(q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.CompanyID, req.Date, req.RequestedHours, req.Status, req.Reason,
	))
	if err != nil {
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to create overtime request: %w", err)
	}
	return created, nil
}

func (o *overtimeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, o.db)

	query := `SELECT ` + overtimeColumns + ` FROM overtime_requests WHERE id = $1 AND company_id = $2`

	ot, err := scanOvertime(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return overtime.OvertimeRequest{}, overtime.ErrOvertimeNotFound
		}
		return overtime.OvertimeRequest{}, fmt.Errorf("failed to get overtime request: %w", err)
	}
	return ot, nil
}

func (o *overtimeRepositoryImpl) GetApprovedRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT ` + overtimeColumns + `
		FROM overtime_requests
		WHERE employee_id = $1 AND company_id = $2 AND status = $3 AND date BETWEEN $4 AND $5
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, overtime.StatusApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved overtime: %w", err)
	}
	defer rows.Close()

	var requests []overtime.OvertimeRequest
	for rows.Next() {
		ot, err := scanOvertime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, ot)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (o *overtimeRepositoryImpl) ListByCompany(ctx context.Context, companyID string, status *overtime.Status) ([]overtime.OvertimeRequest, error) {
	q := GetQuerier(ctx, o.db)

	query := `
		SELECT o.id, o.employee_id, o.company_id, o.date, o.requested_hours, o.approved_hours,
			o.status, o.approved_by, o.reason, o.created_at, o.updated_at, e.full_name
		FROM overtime_requests o
		JOIN employees e ON e.id = o.employee_id
		WHERE o.company_id = $1 AND ($2::text IS NULL OR o.status = $2)
		ORDER BY o.date DESC
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list overtime requests: %w", err)
	}
	defer rows.Close()

	var requests []overtime.OvertimeRequest
	for rows.Next() {
		var ot overtime.OvertimeRequest
		err := rows.Scan(
			&ot.ID, &ot.EmployeeID, &ot.CompanyID, &ot.Date, &ot.RequestedHours,
			&ot.ApprovedHours, &ot.Status, &ot.ApprovedBy, &ot.Reason,
			&ot.CreatedAt, &ot.UpdatedAt, &ot.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overtime request: %w", err)
		}
		requests = append(requests, ot)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (o *overtimeRepositoryImpl) SetStatus(ctx context.Context, id string, companyID string, status overtime.Status, approvedHours *float64, approvedBy string, reason *string) error {
	q := GetQuerier(ctx, o.db)

	// Only Pending requests transition; a second decision is a no-op row-wise
	// and surfaces as ErrOvertimeAlreadyProcessed.
	query := `
		UPDATE overtime_requests
		SET status = $3, approved_hours = $4, approved_by = $5, reason = COALESCE($6, reason), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND status = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, companyID, status, approvedHours, approvedBy, reason, overtime.StatusPending).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := o.GetByID(ctx, id, companyID); getErr != nil {
				return getErr
			}
			return overtime.ErrOvertimeAlreadyProcessed
		}
		return fmt.Errorf("failed to set overtime status: %w", err)
	}
	return nil
}
