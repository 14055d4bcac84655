package overtime

import (
	"context"
	"time"
)

type OvertimeRepository interface {
	Create(ctx context.Context, req OvertimeRequest) (OvertimeRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (OvertimeRequest, error)
	// GetApprovedRange returns Approved requests in [from, to], ordered by date.
	GetApprovedRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]OvertimeRequest, error)
	ListByCompany(ctx context.Context, companyID string, status *Status) ([]OvertimeRequest, error)
	SetStatus(ctx context.Context, id string, companyID string, status Status, approvedHours *float64, approvedBy string, reason *string) error
}

type OvertimeService interface {
	Request(ctx context.Context, req CreateOvertimeRequest) (OvertimeResponse, error)
	Approve(ctx context.Context, req ApproveOvertimeRequest) (OvertimeResponse, error)
	Reject(ctx context.Context, req RejectOvertimeRequest) (OvertimeResponse, error)
	Get(ctx context.Context, id string) (OvertimeResponse, error)
	List(ctx context.Context, status *Status) ([]OvertimeResponse, error)
}
