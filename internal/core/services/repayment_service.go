package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/coopec-dev/coopec_backend/internal/middleware"
	"github.com/coopec-dev/coopec_backend/internal/utils/moneymath"
	"github.com/coopec-dev/coopec_backend/internal/utils/sections"
	"github.com/shopspring/decimal"
)

// repaymentService splits repayments into their principal and interest
// postings and keeps the owning credit's progress in step. Progress is
// always recomputed from the stored repayment rows inside the same
// transaction, so adding and deleting repayments go through one code path.
type repaymentService struct {
	accountRepo   portsrepo.AccountRepositoryFacade
	creditRepo    portsrepo.CreditRepositoryFacade
	repaymentRepo portsrepo.RepaymentRepositoryWithTx
	ledgerRepo    portsrepo.LedgerRepositoryFacade
}

// NewRepaymentService creates a new RepaymentService.
func NewRepaymentService(accountRepo portsrepo.AccountRepositoryFacade, creditRepo portsrepo.CreditRepositoryFacade, repaymentRepo portsrepo.RepaymentRepositoryWithTx, ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.RepaymentSvcFacade {
	return &repaymentService{
		accountRepo:   accountRepo,
		creditRepo:    creditRepo,
		repaymentRepo: repaymentRepo,
		ledgerRepo:    ledgerRepo,
	}
}

var _ portssvc.RepaymentSvcFacade = (*repaymentService)(nil)

// CreateRepayment posts the three derived entries, stores the repayment and
// recomputes the credit's progress, all inside one transaction holding a
// row lock on the credit.
func (s *repaymentService) CreateRepayment(ctx context.Context, req dto.CreateRepaymentRequest, creatorUserID string) (*domain.RepaymentOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: repayment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	opDate := now
	if req.Date != nil {
		opDate = *req.Date
	}

	tx, err := s.repaymentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repaymentRepo.Rollback(ctx, tx)

	credit, err := s.creditRepo.FindCreditForUpdate(ctx, tx, req.CreditID)
	if err != nil {
		return nil, err
	}
	if credit.Currency != currency {
		return nil, fmt.Errorf("%w: repayment currency %s does not match credit currency %s", apperrors.ErrValidation, currency, credit.Currency)
	}
	if credit.Status == domain.CreditRepaid {
		return nil, fmt.Errorf("%w: credit %s is already fully repaid", apperrors.ErrValidation, credit.CreditID)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, credit.AccountNumber)
	if err != nil {
		return nil, err
	}
	collective, err := sections.CollectiveAccountNumber(account.Section, opDate.Year())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	split, err := moneymath.SplitRepayment(req.Amount, credit.Principal, credit.InterestRatePct)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	audit := domain.AuditFields{
		CreatedAt:     now.UTC(),
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now.UTC(),
		LastUpdatedBy: creatorUserID,
	}

	repayment := domain.Repayment{
		RepaymentID:   uuid.NewString(),
		CreditID:      credit.CreditID,
		Amount:        req.Amount,
		Currency:      currency,
		RepaymentDate: opDate,
		Description:   req.Description,
		AuditFields:   audit,
	}

	// Zero portions post nothing; a payment on a zero-rate credit carries no
	// interest entries at all.
	type posting struct {
		account string
		amount  decimal.Decimal
		desc    string
	}
	postings := []posting{
		{collective, split.PrincipalPortion, fmt.Sprintf("principal recovery, credit %s", credit.CreditID)},
		{sections.GlobalRevenueAccount, split.InterestSystem, fmt.Sprintf("interest revenue, credit %s", credit.CreditID)},
		{credit.AccountNumber, split.InterestMember, fmt.Sprintf("member interest share, credit %s", credit.CreditID)},
	}
	var entries []domain.LedgerEntry
	for _, p := range postings {
		if !p.amount.IsPositive() {
			continue
		}
		entries = append(entries, domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			AccountNumber: p.account,
			OperationType: domain.Deposit,
			Currency:      currency,
			Amount:        p.amount,
			Fee:           decimal.Zero,
			RepaymentID:   repayment.RepaymentID,
			EntryDate:     opDate,
			Description:   p.desc,
			AuditFields:   audit,
		})
	}

	if err := s.repaymentRepo.SaveRepaymentInTx(ctx, tx, repayment); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.SaveEntriesInTx(ctx, tx, entries); err != nil {
		return nil, err
	}

	outcome, err := s.refreshProgress(ctx, tx, credit, &repayment, creatorUserID, now)
	if err != nil {
		return nil, err
	}
	if err := s.repaymentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Repayment recorded",
		slog.String("repayment_id", repayment.RepaymentID),
		slog.String("credit_id", credit.CreditID),
		slog.String("amount", req.Amount.String()),
		slog.String("principal_portion", split.PrincipalPortion.String()),
		slog.String("interest_system", split.InterestSystem.String()),
		slog.String("interest_member", split.InterestMember.String()),
		slog.String("status", string(outcome.Status)),
	)
	return outcome, nil
}

// DeleteRepayment removes a repayment, its derived postings and re-runs the
// progress recomputation. A credit marked REPAID drops back to ACTIVE when
// the remaining sum no longer covers the expected total.
func (s *repaymentService) DeleteRepayment(ctx context.Context, repaymentID string, requestingUserID string) (*domain.RepaymentOutcome, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if repaymentID == "" {
		return nil, fmt.Errorf("%w: repayment id is required", apperrors.ErrValidation)
	}
	repayment, err := s.repaymentRepo.FindRepaymentByID(ctx, repaymentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	tx, err := s.repaymentRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repaymentRepo.Rollback(ctx, tx)

	credit, err := s.creditRepo.FindCreditForUpdate(ctx, tx, repayment.CreditID)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.DeleteEntriesByRepaymentIDInTx(ctx, tx, repaymentID); err != nil {
		return nil, err
	}
	if err := s.repaymentRepo.DeleteRepaymentInTx(ctx, tx, repaymentID); err != nil {
		return nil, err
	}

	outcome, err := s.refreshProgress(ctx, tx, credit, nil, requestingUserID, now)
	if err != nil {
		return nil, err
	}
	if err := s.repaymentRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Repayment deleted",
		slog.String("repayment_id", repaymentID),
		slog.String("credit_id", credit.CreditID),
		slog.String("repaid_to_date", outcome.RepaidToDate.String()),
		slog.String("status", string(outcome.Status)),
	)
	return outcome, nil
}

// refreshProgress recomputes repaidToDate from the stored repayment rows and
// writes it with the re-evaluated status.
func (s *repaymentService) refreshProgress(ctx context.Context, tx pgx.Tx, credit *domain.Credit, repayment *domain.Repayment, userID string, at time.Time) (*domain.RepaymentOutcome, error) {
	repaid, err := s.repaymentRepo.SumRepaymentsByCreditInTx(ctx, tx, credit.CreditID)
	if err != nil {
		return nil, err
	}
	status := credit.StatusForRepaid(repaid)
	if err := s.creditRepo.UpdateCreditProgressInTx(ctx, tx, credit.CreditID, repaid, status, userID, at.UTC()); err != nil {
		return nil, err
	}

	remaining := credit.ExpectedTotal().Sub(repaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return &domain.RepaymentOutcome{
		Repayment:    repayment,
		RepaidToDate: repaid,
		Remaining:    remaining,
		Status:       status,
	}, nil
}
