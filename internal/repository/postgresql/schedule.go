package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}

// scheduleRow is the raw persisted shape; working_days stays as stored JSON
// until ParseWorkingDays turns it into the typed variant.
type scheduleRow struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	Type          string
	WorkingDays   string
	StartTime     string
	EndTime       string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r scheduleRow) toDomain() (schedule.Schedule, error) {
	s, err := schedule.ParseWorkingDays(r.WorkingDays, schedule.ScheduleType(r.Type), r.StartTime, r.EndTime)
	if err != nil {
		return schedule.Schedule{}, err
	}
	s.ID = r.ID
	s.EmployeeID = r.EmployeeID
	s.CompanyID = r.CompanyID
	s.EffectiveFrom = r.EffectiveFrom
	s.EffectiveTo = r.EffectiveTo
	s.CreatedAt = r.CreatedAt
	s.UpdatedAt = r.UpdatedAt
	return s, nil
}

func (sr *scheduleRepositoryImpl) Create(ctx context.Context, s schedule.Schedule, rawWorkingDays string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, sr.db)

	// Reject ranges overlapping an existing schedule for the same employee.
	overlapQuery := `
		SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE employee_id = $1 AND company_id = $2
			  AND effective_from <= COALESCE($4::date, 'infinity'::date)
			  AND COALESCE(effective_to, 'infinity'::date) >= $3::date
		)
	`
	var overlaps bool
	err := q.QueryRow(ctx, overlapQuery, s.EmployeeID, s.CompanyID, s.EffectiveFrom, s.EffectiveTo).Scan(&overlaps)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to check schedule overlap: %w", err)
	}
	if overlaps {
		return schedule.Schedule{}, schedule.ErrOverlappingRange
	}

	if s.ID == "" {
		s.ID = uuid.Must(uuid.NewV7()).String()
	}

	var startTime, endTime string
	if s.Type == schedule.ScheduleTypeFixed {
		startTime = s.FixedWindow.Start.String()
		endTime = s.FixedWindow.End.String()
	}

	query := `
		INSERT INTO schedules (id, employee_id, company_id, type, working_days, start_time, end_time, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8, $9)
		RETURNING id, employee_id, company_id, type, working_days, start_time, end_time,
			effective_from, effective_to, created_at, updated_at
	`

	var row scheduleRow
	err = q.QueryRow(ctx, query,
		s.ID, s.EmployeeID, s.CompanyID, s.Type, rawWorkingDays, startTime, endTime, s.EffectiveFrom, s.EffectiveTo,
	).Scan(
		&row.ID, &row.EmployeeID, &row.CompanyID, &row.Type, &row.WorkingDays,
		&row.StartTime, &row.EndTime, &row.EffectiveFrom, &row.EffectiveTo,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to create schedule: %w", err)
	}
	return row.toDomain()
}

func (sr *scheduleRepositoryImpl) GetActiveSchedule(ctx context.Context, employeeID string, date time.Time, companyID string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, sr.db)

	query := `
		SELECT id, employee_id, company_id, type, working_days, start_time, end_time,
			effective_from, effective_to, created_at, updated_at
		FROM schedules
		WHERE employee_id = $1 AND company_id = $2
		  AND effective_from <= $3
		  AND (effective_to IS NULL OR effective_to >= $3)
		ORDER BY effective_from DESC
		LIMIT 1
	`

	var row scheduleRow
	err := q.QueryRow(ctx, query, employeeID, companyID, date).Scan(
		&row.ID, &row.EmployeeID, &row.CompanyID, &row.Type, &row.WorkingDays,
		&row.StartTime, &row.EndTime, &row.EffectiveFrom, &row.EffectiveTo,
		&row.CreatedAt, &row.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.Schedule{}, schedule.ErrNoActiveSchedule
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get active schedule: %w", err)
	}
	return row.toDomain()
}

func (sr *scheduleRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, sr.db)

	query := `
		SELECT id, employee_id, company_id, type, working_days, start_time, end_time,
			effective_from, effective_to, created_at, updated_at
		FROM schedules
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY effective_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		var row scheduleRow
		err := rows.Scan(
			&row.ID, &row.EmployeeID, &row.CompanyID, &row.Type, &row.WorkingDays,
			&row.StartTime, &row.EndTime, &row.EffectiveFrom, &row.EffectiveTo,
			&row.CreatedAt, &row.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		s, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (sr *scheduleRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, sr.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}
