package postgresql

import (
	"context"
	"fmt"

	"github.com/dexter-morales/hrms-system-go/internal/domain/loan"
	"github.com/dexter-morales/hrms-system-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type loanRepositoryImpl struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepositoryImpl{db: db}
}

const loanColumns = `id, employee_id, company_id, amount, terms, deduction_frequency, total_deducted, fully_paid, status, created_at, updated_at`

func scanLoan(row pgx.Row) (loan.Loan, error) {
	var l loan.Loan
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.CompanyID, &l.Amount, &l.Terms, &l.DeductionFrequency,
		&l.TotalDeducted, &l.FullyPaid, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

func (r *loanRepositoryImpl) Create(ctx context.Context, l loan.Loan) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	if l.ID == "" {
		l.ID = uuid.Must(uuid.NewV7()).String()
	}

	query := `
		INSERT INTO loans (id, employee_id, company_id, amount, terms, deduction_frequency, total_deducted, fully_paid, status)
		VALUES ($1, $2, $3, $4, $5, $6, 0, FALSE, $7)
		RETURNING ` + loanColumns

	created, err := scanLoan(q.QueryRow(ctx, query,
		l.ID, l.EmployeeID, l.CompanyID, l.Amount, l.Terms, l.DeductionFrequency, l.Status,
	))
	if err != nil {
		return loan.Loan{}, fmt.Errorf("failed to create loan: %w", err)
	}
	return created, nil
}

func (r *loanRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1 AND company_id = $2`

	l, err := scanLoan(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return loan.Loan{}, loan.ErrLoanNotFound
		}
		return loan.Loan{}, fmt.Errorf("failed to get loan: %w", err)
	}
	return l, nil
}

func (r *loanRepositoryImpl) GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE employee_id = $1 AND company_id = $2 AND status = $3 AND fully_paid = FALSE
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, loan.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to get active loans: %w", err)
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]loan.Loan, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + loanColumns + `
		FROM loans
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var loans []loan.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *loanRepositoryImpl) SetStatus(ctx context.Context, id string, companyID string, status loan.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE loans
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, companyID, status).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return loan.ErrLoanNotFound
		}
		return fmt.Errorf("failed to set loan status: %w", err)
	}
	return nil
}

func (r *loanRepositoryImpl) ApplyDeduction(ctx context.Context, entry loan.LoanDeductionEntry, markPaid bool) (loan.LoanDeductionEntry, error) {
	q := GetQuerier(ctx, r.db)

	if entry.ID == "" {
		entry.ID = uuid.Must(uuid.NewV7()).String()
	}

	// The balance guard lives in the UPDATE: a deduction that would push
	// total_deducted past the principal matches no row and rolls back.
	updateQuery := `
		UPDATE loans
		SET total_deducted = total_deducted + $2,
			fully_paid = fully_paid OR $3,
			updated_at = NOW()
		WHERE id = $1 AND fully_paid = FALSE AND total_deducted + $2 <= amount
		RETURNING id
	`

	var loanID string
	if err := q.QueryRow(ctx, updateQuery, entry.LoanID, entry.Amount, markPaid).Scan(&loanID); err != nil {
		if err == pgx.ErrNoRows {
			return loan.LoanDeductionEntry{}, loan.ErrOverpayment
		}
		return loan.LoanDeductionEntry{}, fmt.Errorf("failed to apply loan deduction: %w", err)
	}

	insertQuery := `
		INSERT INTO loan_deduction_entries (id, loan_id, payroll_record_id, amount, deduction_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, loan_id, payroll_record_id, amount, deduction_date, created_at
	`

	var created loan.LoanDeductionEntry
	err := q.QueryRow(ctx, insertQuery,
		entry.ID, entry.LoanID, entry.PayrollRecordID, entry.Amount, entry.DeductionDate,
	).Scan(
		&created.ID, &created.LoanID, &created.PayrollRecordID, &created.Amount,
		&created.DeductionDate, &created.CreatedAt,
	)
	if err != nil {
		return loan.LoanDeductionEntry{}, fmt.Errorf("failed to record loan deduction entry: %w", err)
	}
	return created, nil
}

func (r *loanRepositoryImpl) ListEntriesByLoan(ctx context.Context, loanID string, companyID string) ([]loan.LoanDeductionEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.loan_id, e.payroll_record_id, e.amount, e.deduction_date, e.created_at
		FROM loan_deduction_entries e
		JOIN loans l ON l.id = e.loan_id
		WHERE e.loan_id = $1 AND l.company_id = $2
		ORDER BY e.deduction_date
	`

	rows, err := q.Query(ctx, query, loanID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan deduction entries: %w", err)
	}
	defer rows.Close()

	var entries []loan.LoanDeductionEntry
	for rows.Next() {
		var e loan.LoanDeductionEntry
		err := rows.Scan(&e.ID, &e.LoanID, &e.PayrollRecordID, &e.Amount, &e.DeductionDate, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan deduction entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *loanRepositoryImpl) SumEntriesByLoan(ctx context.Context, loanID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM loan_deduction_entries WHERE loan_id = $1`
	if err := q.QueryRow(ctx, query, loanID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum loan deduction entries: %w", err)
	}
	return total, nil
}
