package overtime

import (
	"context"
	"fmt"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/overtime"
	"github.com/go-chi/jwtauth/v5"
)

type OvertimeServiceImpl struct {
	overtimeRepo overtime.OvertimeRepository
}

func NewOvertimeService(overtimeRepo overtime.OvertimeRepository) overtime.OvertimeService {
	return &OvertimeServiceImpl{overtimeRepo: overtimeRepo}
}

func getClaimsFromContext(ctx context.Context) (companyID, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, _ = claims["employee_id"].(string)

	return companyID, employeeID, nil
}

func (s *OvertimeServiceImpl) Request(ctx context.Context, req overtime.CreateOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	companyID, employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if req.EmployeeID == "" {
		req.EmployeeID = employeeID
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	created, err := s.overtimeRepo.Create(ctx, overtime.OvertimeRequest{
		EmployeeID:     req.EmployeeID,
		CompanyID:      companyID,
		Date:           date,
		RequestedHours: req.RequestedHours,
		Status:         overtime.StatusPending,
		Reason:         req.Reason,
	})
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return toResponse(created), nil
}

func (s *OvertimeServiceImpl) Approve(ctx context.Context, req overtime.ApproveOvertimeRequest) (overtime.OvertimeResponse, error) {
	if err := req.Validate(); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	companyID, approverID, err := getClaimsFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	current, err := s.overtimeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	if req.ApprovedHours > current.RequestedHours {
		return overtime.OvertimeResponse{}, overtime.ErrApprovedExceedsRequested
	}

	hours := req.ApprovedHours
	if err := s.overtimeRepo.SetStatus(ctx, req.ID, companyID, overtime.StatusApproved, &hours, approverID, nil); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	updated, err := s.overtimeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *OvertimeServiceImpl) Reject(ctx context.Context, req overtime.RejectOvertimeRequest) (overtime.OvertimeResponse, error) {
	companyID, approverID, err := getClaimsFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	reason := req.Reason
	if err := s.overtimeRepo.SetStatus(ctx, req.ID, companyID, overtime.StatusRejected, nil, approverID, &reason); err != nil {
		return overtime.OvertimeResponse{}, err
	}

	updated, err := s.overtimeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *OvertimeServiceImpl) Get(ctx context.Context, id string) (overtime.OvertimeResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}

	ot, err := s.overtimeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return overtime.OvertimeResponse{}, err
	}
	return toResponse(ot), nil
}

func (s *OvertimeServiceImpl) List(ctx context.Context, status *overtime.Status) ([]overtime.OvertimeResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.overtimeRepo.ListByCompany(ctx, companyID, status)
	if err != nil {
		return nil, err
	}

	resp := make([]overtime.OvertimeResponse, 0, len(requests))
	for _, ot := range requests {
		resp = append(resp, toResponse(ot))
	}
	return resp, nil
}

func toResponse(ot overtime.OvertimeRequest) overtime.OvertimeResponse {
	resp := overtime.OvertimeResponse{
		ID:             ot.ID,
		EmployeeID:     ot.EmployeeID,
		Date:           ot.Date.Format("2006-01-02"),
		RequestedHours: ot.RequestedHours,
		ApprovedHours:  ot.ApprovedHours,
		Status:         string(ot.Status),
		Reason:         ot.Reason,
	}
	if ot.EmployeeName != nil {
		resp.EmployeeName = *ot.EmployeeName
	}
	return resp
}
