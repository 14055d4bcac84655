package master

import (
	"context"
	"fmt"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/holiday"
	"github.com/dexter-morales/hrms-system-go/internal/domain/site"
	"github.com/go-chi/jwtauth/v5"
)

// MasterService groups company reference data: the holiday calendar and
// work sites with their allowances.
type MasterService interface {
	CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error)
	ListHolidays(ctx context.Context, from, to time.Time) ([]holiday.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error

	CreateSite(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error)
	ListSites(ctx context.Context) ([]site.SiteResponse, error)
}

type MasterServiceImpl struct {
	holidayRepo holiday.HolidayRepository
	siteRepo    site.SiteRepository
}

func NewMasterService(holidayRepo holiday.HolidayRepository, siteRepo site.SiteRepository) MasterService {
	return &MasterServiceImpl{holidayRepo: holidayRepo, siteRepo: siteRepo}
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

func (s *MasterServiceImpl) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.HolidayResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.HolidayResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return holiday.HolidayResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	created, err := s.holidayRepo.Create(ctx, holiday.Holiday{
		CompanyID: companyID,
		Name:      req.Name,
		Date:      date,
		Type:      holiday.Type(req.Type),
	})
	if err != nil {
		return holiday.HolidayResponse{}, err
	}
	return toHolidayResponse(created), nil
}

func (s *MasterServiceImpl) ListHolidays(ctx context.Context, from, to time.Time) ([]holiday.HolidayResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidayRepo.GetRange(ctx, from, to, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]holiday.HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, toHolidayResponse(h))
	}
	return resp, nil
}

func (s *MasterServiceImpl) DeleteHoliday(ctx context.Context, id string) error {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.holidayRepo.Delete(ctx, id, companyID)
}

func (s *MasterServiceImpl) CreateSite(ctx context.Context, req site.CreateSiteRequest) (site.SiteResponse, error) {
	if err := req.Validate(); err != nil {
		return site.SiteResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return site.SiteResponse{}, err
	}

	created, err := s.siteRepo.Create(ctx, site.Site{
		CompanyID: companyID,
		Name:      req.Name,
		Allowance: req.Allowance,
	})
	if err != nil {
		return site.SiteResponse{}, err
	}
	return toSiteResponse(created), nil
}

func (s *MasterServiceImpl) ListSites(ctx context.Context) ([]site.SiteResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	sites, err := s.siteRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]site.SiteResponse, 0, len(sites))
	for _, st := range sites {
		resp = append(resp, toSiteResponse(st))
	}
	return resp, nil
}

func toHolidayResponse(h holiday.Holiday) holiday.HolidayResponse {
	return holiday.HolidayResponse{
		ID:   h.ID,
		Name: h.Name,
		Date: h.Date.Format("2006-01-02"),
		Type: string(h.Type),
	}
}

func toSiteResponse(st site.Site) site.SiteResponse {
	return site.SiteResponse{
		ID:        st.ID,
		Name:      st.Name,
		Allowance: st.Allowance,
	}
}
