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
	"github.com/shopspring/decimal"
)

// ledgerService records deposits and lists entries. Deposits are single
// appends; no policy applies to money coming in.
type ledgerService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryWithTx) portssvc.DepositSvcFacade {
	return &ledgerService{accountRepo: accountRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.DepositSvcFacade = (*ledgerService)(nil)

// CreateDeposit appends a deposit ledger entry for an account.
func (s *ledgerService) CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: deposit amount must be positive", apperrors.ErrValidation)
	}
	if _, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryDate := now
	if req.Date != nil {
		entryDate = *req.Date
	}

	entry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		AccountNumber: req.AccountNumber,
		OperationType: domain.Deposit,
		Currency:      currency,
		Amount:        req.Amount,
		Fee:           decimal.Zero,
		EntryDate:     entryDate,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		return nil, err
	}

	logger.Info("Deposit recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("account", entry.AccountNumber),
		slog.String("amount", entry.Amount.String()),
		slog.String("currency", string(entry.Currency)),
	)
	return &entry, nil
}

// ListEntries returns an account's ledger entries, newest first.
func (s *ledgerService) ListEntries(ctx context.Context, accountNumber string, currency domain.Currency, limit, offset int) ([]domain.LedgerEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListEntriesByAccount(ctx, accountNumber, currency, limit, offset)
}
