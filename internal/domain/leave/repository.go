package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)
	// GetApprovedOverlapping returns fully approved requests overlapping
	// [from, to]: starting within, ending within, or spanning across.
	GetApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]LeaveRequest, error)
	ListByCompany(ctx context.Context, companyID string, status *Status) ([]LeaveRequest, error)
	SetStatus(ctx context.Context, id string, companyID string, status Status, approverID string, reason *string) error
}

// LeaveService runs the two-step approval: manager first, then HR.
type LeaveService interface {
	Request(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	ManagerApprove(ctx context.Context, req ApproveLeaveRequest) (LeaveResponse, error)
	HRApprove(ctx context.Context, req ApproveLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveResponse, error)
	Get(ctx context.Context, id string) (LeaveResponse, error)
	List(ctx context.Context, status *Status) ([]LeaveResponse, error)
}
