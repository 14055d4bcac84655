package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/holiday"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/google/uuid"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (h *holidayRepositoryImpl) Create(ctx context.Context, hd holiday.Holiday) (holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	if hd.ID == "" {
		hd.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO holidays (id, company_id, name, date, type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_id, name, date, type, created_at, updated_at
	`

	var created holiday.Holiday
	err := q.QueryRow(ctx, query, hd.ID, hd.CompanyID, hd.Name, hd.Date, hd.Type).Scan(
		&created.ID, &created.CompanyID, &created.Name, &created.Date, &created.Type,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_holiday_company_date") {
			return holiday.Holiday{}, holiday.ErrHolidayExists
		}
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

func (h *holidayRepositoryImpl) GetRange(ctx context.Context, from, to time.Time, companyID string) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, company_id, name, date, type, created_at, updated_at
		FROM holidays
		WHERE company_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hd holiday.Holiday
		err := rows.Scan(&hd.ID, &hd.CompanyID, &hd.Name, &hd.Date, &hd.Type, &hd.CreatedAt, &hd.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hd)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}

func (h *holidayRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, h.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return holiday.ErrHolidayNotFound
	}
	return nil
}
