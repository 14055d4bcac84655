package postgresql

import (
	"context"
	"fmt"

	"github.com/dexter-morales/hrms-system-go/internal/domain/site"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type siteRepositoryImpl struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepositoryImpl{db: db}
}

func (s *siteRepositoryImpl) Create(ctx context.Context, st site.Site) (site.Site, error) {
	q := GetQuerier(ctx, s.db)

	if st.ID == "" {
		st.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO sites (id, company_id, name, allowance)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, name, allowance, created_at, updated_at
	`

	var created site.Site
	err := q.QueryRow(ctx, query, st.ID, st.CompanyID, st.Name, st.Allowance).Scan(
		&created.ID, &created.CompanyID, &created.Name, &created.Allowance,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return site.Site{}, fmt.Errorf("failed to create site: %w", err)
	}
	return created, nil
}

func (s *siteRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (site.Site, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name, allowance, created_at, updated_at
		FROM sites
		WHERE id = $1 AND company_id = $2
	`

	var st site.Site
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&st.ID, &st.CompanyID, &st.Name, &st.Allowance, &st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site: %w", err)
	}
	return st, nil
}

func (s *siteRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]site.Site, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, company_id, name, allowance, created_at, updated_at
		FROM sites
		WHERE company_id = $1
		ORDER BY name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []site.Site
	for rows.Next() {
		var st site.Site
		err := rows.Scan(&st.ID, &st.CompanyID, &st.Name, &st.Allowance, &st.CreatedAt, &st.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, st)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sites, nil
}
