package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"
	"github.com/coopec-dev/coopec_backend/internal/utils/sections"
)

// accountService is the thin registry the ledger engine validates account
// existence against.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a member account in a known section.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if _, err := sections.SectionCode(req.Section); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountNumber: req.AccountNumber,
		Kind:          domain.KindMember,
		Section:       sections.Normalize(req.Section),
		HolderName:    req.HolderName,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccount retrieves an account by number.
func (s *accountService) GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByNumber(ctx, accountNumber)
}

// EnsureReservedAccounts creates the global revenue sink and each section's
// collective account for the given year if missing. Called once at startup;
// nothing else may invent reserved identifiers.
func (s *accountService) EnsureReservedAccounts(ctx context.Context, year int) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     "system",
		LastUpdatedAt: now,
		LastUpdatedBy: "system",
	}

	if err := s.accountRepo.EnsureAccount(ctx, domain.Account{
		AccountNumber: sections.GlobalRevenueAccount,
		Kind:          domain.KindRevenue,
		IsActive:      true,
		AuditFields:   audit,
	}); err != nil {
		return err
	}

	for _, section := range sections.KnownSections() {
		number, err := sections.CollectiveAccountNumber(section, year)
		if err != nil {
			return err
		}
		if err := s.accountRepo.EnsureAccount(ctx, domain.Account{
			AccountNumber: number,
			Kind:          domain.KindCollective,
			Section:       section,
			IsActive:      true,
			AuditFields:   audit,
		}); err != nil {
			return err
		}
		logger.Debug("Reserved account ensured", slog.String("account", number))
	}
	return nil
}
