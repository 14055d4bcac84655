package loan

import (
	"context"
	"fmt"

	"github.com/dexter-morales/hrms-system-go/internal/domain/loan"
	"github.com/go-chi/jwtauth/v5"
)

type LoanServiceImpl struct {
	loanRepo loan.LoanRepository
}

func NewLoanService(loanRepo loan.LoanRepository) loan.LoanService {
	return &LoanServiceImpl{loanRepo: loanRepo}
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

func (s *LoanServiceImpl) Create(ctx context.Context, req loan.CreateLoanRequest) (loan.LoanResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.LoanResponse{}, err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return loan.LoanResponse{}, err
	}

	created, err := s.loanRepo.Create(ctx, loan.Loan{
		EmployeeID:         req.EmployeeID,
		CompanyID:          companyID,
		Amount:             req.Amount,
		Terms:              req.Terms,
		DeductionFrequency: loan.Frequency(req.DeductionFrequency),
		Status:             loan.StatusPending,
	})
	if err != nil {
		return loan.LoanResponse{}, err
	}
	return toResponse(created), nil
}

func (s *LoanServiceImpl) Approve(ctx context.Context, id string) (loan.LoanResponse, error) {
	return s.setStatus(ctx, id, loan.StatusApproved)
}

func (s *LoanServiceImpl) Reject(ctx context.Context, id string) (loan.LoanResponse, error) {
	return s.setStatus(ctx, id, loan.StatusRejected)
}

func (s *LoanServiceImpl) setStatus(ctx context.Context, id string, status loan.Status) (loan.LoanResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return loan.LoanResponse{}, err
	}

	if err := s.loanRepo.SetStatus(ctx, id, companyID, status); err != nil {
		return loan.LoanResponse{}, err
	}

	updated, err := s.loanRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return loan.LoanResponse{}, err
	}
	return toResponse(updated), nil
}

func (s *LoanServiceImpl) Get(ctx context.Context, id string) (loan.LoanResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return loan.LoanResponse{}, err
	}

	l, err := s.loanRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return loan.LoanResponse{}, err
	}
	return toResponse(l), nil
}

func (s *LoanServiceImpl) List(ctx context.Context) ([]loan.LoanResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]loan.LoanResponse, 0, len(loans))
	for _, l := range loans {
		resp = append(resp, toResponse(l))
	}
	return resp, nil
}

func (s *LoanServiceImpl) ListEntries(ctx context.Context, loanID string) ([]loan.LoanDeductionEntryResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.loanRepo.ListEntriesByLoan(ctx, loanID, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]loan.LoanDeductionEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, loan.LoanDeductionEntryResponse{
			ID:              e.ID,
			LoanID:          e.LoanID,
			PayrollRecordID: e.PayrollRecordID,
			Amount:          e.Amount,
			DeductionDate:   e.DeductionDate.Format("2006-01-02"),
		})
	}
	return resp, nil
}

func toResponse(l loan.Loan) loan.LoanResponse {
	return loan.LoanResponse{
		ID:                 l.ID,
		EmployeeID:         l.EmployeeID,
		Amount:             l.Amount,
		Terms:              l.Terms,
		DeductionFrequency: string(l.DeductionFrequency),
		Installment:        l.Installment(),
		TotalDeducted:      l.TotalDeducted,
		Remaining:          l.Remaining(),
		FullyPaid:          l.FullyPaid,
		Status:             string(l.Status),
	}
}
