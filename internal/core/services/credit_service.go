package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"
	"github.com/coopec-dev/coopec_backend/internal/utils/sections"
	"github.com/shopspring/decimal"
)

const (
	defaultCreditPageSize = 50
	maxCreditPageSize     = 200
)

// creditService opens credits against a section's pooled funds and serves
// credit reads. Repayment handling lives in repaymentService.
type creditService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	creditRepo  portsrepo.CreditRepositoryWithTx
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// NewCreditService creates a new CreditService.
func NewCreditService(accountRepo portsrepo.AccountRepositoryFacade, creditRepo portsrepo.CreditRepositoryWithTx, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.CreditSvcFacade {
	return &creditService{
		accountRepo: accountRepo,
		creditRepo:  creditRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

// CreateCredit stores the credit and posts the disbursement withdrawal from
// the section's collective account in one unit. Funds lent to a member come
// out of the pool, so the pool's derived balance reflects them immediately.
func (s *creditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest, creatorUserID string) (*domain.Credit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: credit principal must be positive", apperrors.ErrValidation)
	}
	if req.InterestRatePct.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate cannot be negative", apperrors.ErrValidation)
	}
	if req.DurationMonths <= 0 {
		return nil, fmt.Errorf("%w: credit duration must be at least one month", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if account.Kind != domain.KindMember {
		return nil, fmt.Errorf("%w: credits are only granted to member accounts", apperrors.ErrValidation)
	}

	now := time.Now()
	startDate := now
	if req.StartDate != nil {
		startDate = *req.StartDate
	}

	collective, err := sections.CollectiveAccountNumber(account.Section, startDate.Year())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	audit := domain.AuditFields{
		CreatedAt:     now.UTC(),
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now.UTC(),
		LastUpdatedBy: creatorUserID,
	}

	credit := domain.Credit{
		CreditID:        uuid.NewString(),
		AccountNumber:   account.AccountNumber,
		Principal:       req.Principal,
		Currency:        currency,
		InterestRatePct: req.InterestRatePct,
		DurationMonths:  req.DurationMonths,
		StartDate:       startDate,
		DueDate:         domain.DueDateFor(startDate, req.DurationMonths),
		Status:          domain.CreditActive,
		RepaidToDate:    decimal.Zero,
		Description:     req.Description,
		AuditFields:     audit,
	}

	disbursement := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		AccountNumber: collective,
		OperationType: domain.Withdrawal,
		Currency:      currency,
		Amount:        req.Principal,
		Fee:           decimal.Zero,
		EntryDate:     startDate,
		Description:   fmt.Sprintf("credit disbursement to %s", account.AccountNumber),
		AuditFields:   audit,
	}

	tx, err := s.creditRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.creditRepo.Rollback(ctx, tx)

	if err := s.creditRepo.SaveCreditInTx(ctx, tx, credit); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.SaveEntriesInTx(ctx, tx, []domain.LedgerEntry{disbursement}); err != nil {
		return nil, err
	}
	if err := s.creditRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Credit opened",
		slog.String("credit_id", credit.CreditID),
		slog.String("account", credit.AccountNumber),
		slog.String("principal", credit.Principal.String()),
		slog.String("currency", string(currency)),
		slog.Time("due_date", credit.DueDate),
	)
	return &credit, nil
}

// GetCredit retrieves a credit by ID.
func (s *creditService) GetCredit(ctx context.Context, creditID string) (*domain.Credit, error) {
	if creditID == "" {
		return nil, fmt.Errorf("%w: credit id is required", apperrors.ErrValidation)
	}
	return s.creditRepo.FindCreditByID(ctx, creditID)
}

// ListCreditsByAccount retrieves an account's credits, newest first.
func (s *creditService) ListCreditsByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]domain.Credit, error) {
	if accountNumber == "" {
		return nil, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultCreditPageSize
	}
	if limit > maxCreditPageSize {
		limit = maxCreditPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.creditRepo.ListCreditsByAccount(ctx, accountNumber, limit, offset)
}
