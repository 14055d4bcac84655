package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/leave"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `id, employee_id, company_id, leave_type, start_date, end_date, days, is_with_pay,
	status, manager_approved_by, hr_approved_by, reason, created_at, updated_at`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var lv leave.LeaveRequest
	err := row.Scan(
		&lv.ID, &lv.EmployeeID, &lv.CompanyID, &lv.LeaveType, &lv.StartDate, &lv.EndDate,
		&lv.Days, &lv.IsWithPay, &lv.Status, &lv.ManagerApprovedBy, &lv.HRApprovedBy,
		&lv.Reason, &lv.CreatedAt, &lv.UpdatedAt,
	)
	return lv, err
}

func (l *leaveRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	if req.ID == "" {
		req.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO leave_requests (id, employee_id, company_id, leave_type, start_date, end_date, days, is_with_pay, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.CompanyID, req.LeaveType, req.StartDate, req.EndDate,
		req.Days, req.IsWithPay, req.Status, req.Reason,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (l *leaveRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id = $1 AND company_id = $2`

	lv, err := scanLeave(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lv, nil
}

func (l *leaveRepositoryImpl) GetApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	// start_date <= to AND end_date >= from covers requests starting inside,
	// ending inside, or spanning the whole period.
	query := `
		SELECT ` + leaveColumns + `
		FROM leave_requests
		WHERE employee_id = $1 AND company_id = $2 AND status = $3
		  AND start_date <= $4 AND end_date >= $5
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, leave.StatusApproved, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to get overlapping leave: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lv, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lv)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (l *leaveRepositoryImpl) ListByCompany(ctx context.Context, companyID string, status *leave.Status) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT l.id, l.employee_id, l.company_id, l.leave_type, l.start_date, l.end_date,
			l.days, l.is_with_pay, l.status, l.manager_approved_by, l.hr_approved_by,
			l.reason, l.created_at, l.updated_at, e.full_name
		FROM leave_requests l
		JOIN employees e ON e.id = l.employee_id
		WHERE l.company_id = $1 AND ($2::text IS NULL OR l.status = $2)
		ORDER BY l.start_date DESC
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var lv leave.LeaveRequest
		err := rows.Scan(
			&lv.ID, &lv.EmployeeID, &lv.CompanyID, &lv.LeaveType, &lv.StartDate, &lv.EndDate,
			&lv.Days, &lv.IsWithPay, &lv.Status, &lv.ManagerApprovedBy, &lv.HRApprovedBy,
			&lv.Reason, &lv.CreatedAt, &lv.UpdatedAt, &lv.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lv)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (l *leaveRepositoryImpl) SetStatus(ctx context.Context, id string, companyID string, status leave.Status, approverID string, reason *string) error {
	q := GetQuerier(ctx, l.db)

	var query string
	switch status {
	case leave.StatusManagerApproved:
		query = `
			UPDATE leave_requests
			SET status = $3, manager_approved_by = $4, updated_at = NOW()
			WHERE id = $1 AND company_id = $2 AND status = 'Pending'
			RETURNING id
		`
	case leave.StatusApproved:
		query = `
			UPDATE leave_requests
			SET status = $3, hr_approved_by = $4, updated_at = NOW()
			WHERE id = $1 AND company_id = $2 AND status = 'Manager Approved'
			RETURNING id
		`
	default:
		query = `
			UPDATE leave_requests
			SET status = $3, reason = COALESCE($4, reason), updated_at = NOW()
			WHERE id = $1 AND company_id = $2 AND status IN ('Pending', 'Manager Approved')
			RETURNING id
		`
	}

	var updatedID string
	var err error
	if status == leave.StatusManagerApproved || status == leave.StatusApproved {
		err = q.QueryRow(ctx, query, id, companyID, status, approverID).Scan(&updatedID)
	} else {
		err = q.QueryRow(ctx, query, id, companyID, status, reason).Scan(&updatedID)
	}
	if err != nil {
		if err == pgx.ErrNoRows {
			current, getErr := l.GetByID(ctx, id, companyID)
			if getErr != nil {
				return getErr
			}
			if status == leave.StatusApproved && current.Status == leave.StatusPending {
				return leave.ErrManagerApprovalRequired
			}
			return leave.ErrLeaveRequestAlreadyProcessed
		}
		return fmt.Errorf("failed to set leave status: %w", err)
	}
	return nil
}
