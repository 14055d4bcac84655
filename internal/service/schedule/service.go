package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/schedule"
	"github.com/go-chi/jwtauth/v5"
)

type ScheduleServiceImpl struct {
	scheduleRepo schedule.ScheduleRepository
}

func NewScheduleService(scheduleRepo schedule.ScheduleRepository) schedule.ScheduleService {
	return &ScheduleServiceImpl{scheduleRepo: scheduleRepo}
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

func (s *ScheduleServiceImpl) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	// Parse up front so a malformed definition is rejected instead of stored.
	parsed, err := schedule.ParseWorkingDays(string(req.WorkingDays), schedule.ScheduleType(req.Type), req.StartTime, req.EndTime)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	parsed.EmployeeID = req.EmployeeID
	parsed.CompanyID = companyID
	parsed.EffectiveFrom, _ = time.Parse("2006-01-02", req.EffectiveFrom)
	if req.EffectiveTo != nil {
		to, _ := time.Parse("2006-01-02", *req.EffectiveTo)
		parsed.EffectiveTo = &to
	}

	created, err := s.scheduleRepo.Create(ctx, parsed, string(req.WorkingDays))
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	return toResponse(created, req.WorkingDays), nil
}

func (s *ScheduleServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]schedule.ScheduleResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		resp = append(resp, toResponse(sc, nil))
	}
	return resp, nil
}

func (s *ScheduleServiceImpl) Delete(ctx context.Context, id string) error {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.scheduleRepo.Delete(ctx, id, companyID)
}

func toResponse(sc schedule.Schedule, rawWorkingDays []byte) schedule.ScheduleResponse {
	resp := schedule.ScheduleResponse{
		ID:            sc.ID,
		EmployeeID:    sc.EmployeeID,
		Type:          string(sc.Type),
		WorkingDays:   rawWorkingDays,
		EffectiveFrom: sc.EffectiveFrom.Format("2006-01-02"),
	}
	if sc.Type == schedule.ScheduleTypeFixed {
		start := sc.FixedWindow.Start.String()
		end := sc.FixedWindow.End.String()
		resp.StartTime = &start
		resp.EndTime = &end
	}
	if sc.EffectiveTo != nil {
		to := sc.EffectiveTo.Format("2006-01-02")
		resp.EffectiveTo = &to
	}
	return resp
}
