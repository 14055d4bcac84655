package site

import "context"

type SiteRepository interface {
	Create(ctx context.Context, s Site) (Site, error)
	GetByID(ctx context.Context, id string, companyID string) (Site, error)
	ListByCompany(ctx context.Context, companyID string) ([]Site, error)
}
