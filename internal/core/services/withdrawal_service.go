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
	"github.com/coopec-dev/coopec_backend/internal/utils/moneymath"
	"github.com/coopec-dev/coopec_backend/internal/utils/sections"
	"github.com/shopspring/decimal"
)

// withdrawalService validates withdrawal requests against the policy
// snapshot and commits the resulting writes as one unit. Validation and
// commit run inside the same transaction, behind a row lock on the account,
// so two concurrent requests cannot both pass against a stale balance.
type withdrawalService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	policySvc   portssvc.PolicySvcFacade
	now         func() time.Time
}

// WithdrawalServiceOption customizes a withdrawalService.
type WithdrawalServiceOption func(*withdrawalService)

// WithClock overrides the time source, for tests of the hours window.
func WithClock(now func() time.Time) WithdrawalServiceOption {
	return func(s *withdrawalService) { s.now = now }
}

// NewWithdrawalService creates a new WithdrawalService.
func NewWithdrawalService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryWithTx, policySvc portssvc.PolicySvcFacade, opts ...WithdrawalServiceOption) portssvc.WithdrawalSvcFacade {
	s := &withdrawalService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
		policySvc:   policySvc,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.WithdrawalSvcFacade = (*withdrawalService)(nil)

// validateWithdrawal applies the policy checks in their fixed order; the
// first failing check wins. Side-effect free.
func validateWithdrawal(policy *domain.PolicyConfig, currency domain.Currency, amount, balanceBefore, todayTotal decimal.Decimal, at time.Time) *apperrors.PolicyViolation {
	if !policy.AllowedHours.Contains(at.Hour()) {
		return apperrors.NewPolicyViolation(apperrors.RuleAllowedHours, decimal.NewFromInt(int64(policy.AllowedHours.End)))
	}
	if minW := policy.MinWithdrawal[currency]; amount.LessThan(minW) {
		return apperrors.NewPolicyViolation(apperrors.RuleMinWithdrawal, minW)
	}
	if maxW := policy.MaxWithdrawal[currency]; amount.GreaterThan(maxW) {
		return apperrors.NewPolicyViolation(apperrors.RuleMaxWithdrawal, maxW)
	}
	if floor := policy.MinBalance[currency]; balanceBefore.Sub(amount).LessThan(floor) {
		return apperrors.NewPolicyViolation(apperrors.RuleMinBalance, floor)
	}
	if ceiling := policy.DailyCeiling[currency]; todayTotal.Add(amount).GreaterThan(ceiling) {
		return apperrors.NewPolicyViolation(apperrors.RuleDailyCeiling, ceiling)
	}
	return nil
}

// CreateWithdrawal runs the policy check and, if it passes, commits the
// member withdrawal entry, the fee revenue postings and the denormalized
// audit record atomically.
func (s *withdrawalService) CreateWithdrawal(ctx context.Context, req dto.CreateWithdrawalRequest, creatorUserID string) (*domain.WithdrawalRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	currency, err := domain.ParseCurrency(req.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if account.Kind != domain.KindMember {
		return nil, fmt.Errorf("%w: withdrawals are only taken from member accounts", apperrors.ErrValidation)
	}

	policy, err := s.policySvc.GetPolicy(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	opDate := now
	if req.Date != nil {
		opDate = *req.Date
	}

	collective, err := sections.CollectiveAccountNumber(account.Section, opDate.Year())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	// Serialize against concurrent writes on this account before reading
	// the balance the checks run on.
	if _, err := s.accountRepo.FindAccountForUpdate(ctx, tx, account.AccountNumber); err != nil {
		return nil, err
	}

	deposits, err := s.ledgerRepo.SumAmountInTx(ctx, tx, account.AccountNumber, domain.Deposit, currency)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.ledgerRepo.SumAmountInTx(ctx, tx, account.AccountNumber, domain.Withdrawal, currency)
	if err != nil {
		return nil, err
	}
	fees, err := s.ledgerRepo.SumFeesInTx(ctx, tx, account.AccountNumber, currency)
	if err != nil {
		return nil, err
	}
	balanceBefore := deposits.Sub(withdrawals).Sub(fees)

	todayTotal, err := s.ledgerRepo.SumWithdrawalsOnInTx(ctx, tx, account.AccountNumber, currency, opDate)
	if err != nil {
		return nil, err
	}

	if violation := validateWithdrawal(policy, currency, req.Amount, balanceBefore, todayTotal, now); violation != nil {
		logger.Warn("Withdrawal refused",
			slog.String("account", account.AccountNumber),
			slog.String("rule", violation.Rule),
			slog.String("limit", violation.Limit.String()),
		)
		return nil, violation
	}

	fee, err := moneymath.Fee(req.Amount, policy.FeeTiers[currency])
	if err != nil {
		return nil, fmt.Errorf("fee tiers for %s: %w", currency, apperrors.ErrIntegrity)
	}

	nowUTC := now.UTC()
	audit := domain.AuditFields{
		CreatedAt:     nowUTC,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: nowUTC,
		LastUpdatedBy: creatorUserID,
	}

	memberEntry := domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		AccountNumber: account.AccountNumber,
		OperationType: domain.Withdrawal,
		Currency:      currency,
		Amount:        req.Amount,
		Fee:           fee,
		EntryDate:     opDate,
		Description:   req.Description,
		AuditFields:   audit,
	}
	entries := []domain.LedgerEntry{memberEntry}

	// The fee is revenue, split between the section's collective account
	// and the global sink; the odd cent goes to the global account.
	if fee.IsPositive() {
		feeSection := fee.Div(decimal.NewFromInt(2)).RoundDown(2)
		feeGlobal := fee.Sub(feeSection)
		if feeSection.IsPositive() {
			entries = append(entries, domain.LedgerEntry{
				EntryID:       uuid.NewString(),
				AccountNumber: collective,
				OperationType: domain.Deposit,
				Currency:      currency,
				Amount:        feeSection,
				Fee:           decimal.Zero,
				EntryDate:     opDate,
				Description:   fmt.Sprintf("withdrawal fee share, member %s", account.AccountNumber),
				AuditFields:   audit,
			})
		}
		entries = append(entries, domain.LedgerEntry{
			EntryID:       uuid.NewString(),
			AccountNumber: sections.GlobalRevenueAccount,
			OperationType: domain.Deposit,
			Currency:      currency,
			Amount:        feeGlobal,
			Fee:           decimal.Zero,
			EntryDate:     opDate,
			Description:   fmt.Sprintf("withdrawal fee share, member %s", account.AccountNumber),
			AuditFields:   audit,
		})
	}

	record := domain.WithdrawalRecord{
		WithdrawalID:   uuid.NewString(),
		EntryID:        memberEntry.EntryID,
		AccountNumber:  account.AccountNumber,
		Currency:       currency,
		Amount:         req.Amount,
		Fee:            fee,
		BalanceBefore:  balanceBefore,
		BalanceAfter:   balanceBefore.Sub(req.Amount).Sub(fee),
		WithdrawalDate: opDate,
		Description:    req.Description,
		AuditFields:    audit,
	}

	if err := s.ledgerRepo.SaveEntriesInTx(ctx, tx, entries); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.SaveWithdrawalInTx(ctx, tx, record); err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Withdrawal committed",
		slog.String("withdrawal_id", record.WithdrawalID),
		slog.String("account", record.AccountNumber),
		slog.String("amount", record.Amount.String()),
		slog.String("fee", record.Fee.String()),
		slog.String("currency", string(currency)),
	)
	return &record, nil
}
