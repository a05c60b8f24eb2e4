package services

import (
	"context"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/coopec-dev/coopec_backend/internal/dto"
)

// CreditSvcFacade manages the credit lifecycle.
type CreditSvcFacade interface {
	// CreateCredit validates the borrowing account, computes the due date
	// and, in one unit, stores the credit and posts the disbursement
	// withdrawal from the section's collective account.
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest, creatorUserID string) (*domain.Credit, error)

	// GetCredit retrieves a credit by ID.
	GetCredit(ctx context.Context, creditID string) (*domain.Credit, error)

	// ListCreditsByAccount retrieves an account's credits.
	ListCreditsByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]domain.Credit, error)
}

// RepaymentSvcFacade allocates repayments and keeps credit status in step
// with the recomputed repayment sum.
type RepaymentSvcFacade interface {
	// CreateRepayment splits the amount across principal, member interest and
	// system interest, posts the three entries, recomputes repaidToDate and
	// re-evaluates the credit status, all in one unit.
	CreateRepayment(ctx context.Context, req dto.CreateRepaymentRequest, creatorUserID string) (*domain.RepaymentOutcome, error)

	// DeleteRepayment removes a repayment and its derived postings and
	// re-runs the same recomputation.
	DeleteRepayment(ctx context.Context, repaymentID string, requestingUserID string) (*domain.RepaymentOutcome, error)
}
