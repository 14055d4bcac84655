package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/dexter-morales/hrms-system-go/internal/domain/leave"
	"github.com/go-chi/jwtauth/v5"
)

type LeaveServiceImpl struct {
	leaveRepo leave.LeaveRepository
}

func NewLeaveService(leaveRepo leave.LeaveRepository) leave.LeaveService {
	return &LeaveServiceImpl{leaveRepo: leaveRepo}
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

func (s *LeaveServiceImpl) Request(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	companyID, employeeID, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if req.EmployeeID == "" {
		req.EmployeeID = employeeID
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	days := int(end.Sub(start).Hours()/24) + 1

	created, err := s.leaveRepo.Create(ctx, leave.LeaveRequest{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID,
		LeaveType:  req.LeaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		IsWithPay:  req.IsWithPay,
		Status:     leave.StatusPending,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toResponse(created), nil
}

func (s *LeaveServiceImpl) ManagerApprove(ctx context.Context, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
	return s.transition(ctx, req.ID, leave.StatusManagerApproved, nil)
}

func (s *LeaveServiceImpl) HRApprove(ctx context.Context, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
	return s.transition(ctx, req.ID, leave.StatusApproved, nil)
}

func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	reason := req.Reason
	return s.transition(ctx, req.ID, leave.StatusRejected, &reason)
}

func (s *LeaveServiceImpl) transition(ctx context.Context, id string, status leave.Status, reason *string) (leave.LeaveResponse, error) {
	companyID, approverID, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := s.leaveRepo.SetStatus(ctx, id, companyID, status, approverID, reason); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.leaveRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	lv, err := s.leaveRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	return toResponse(lv), nil
}

func (s *LeaveServiceImpl) List(ctx context.Context, status *leave.Status) ([]leave.LeaveResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.leaveRepo.ListByCompany(ctx, companyID, status)
	if err != nil {
		return nil, err
	}

	resp := make([]leave.LeaveResponse, 0, len(requests))
	for _, lv := range requests {
		resp = append(resp, toResponse(lv))
	}
	return resp, nil
}

func toResponse(lv leave.LeaveRequest) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:         lv.ID,
		EmployeeID: lv.EmployeeID,
		LeaveType:  lv.LeaveType,
		StartDate:  lv.StartDate.Format("2006-01-02"),
		EndDate:    lv.EndDate.Format("2006-01-02"),
		Days:       lv.Days,
		IsWithPay:  lv.IsWithPay,
		Status:     string(lv.Status),
		Reason:     lv.Reason,
	}
	if lv.EmployeeName != nil {
		resp.EmployeeName = *lv.EmployeeName
	}
	return resp
}
