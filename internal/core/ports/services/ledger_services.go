package services

import (
	"context"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/coopec-dev/coopec_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// DepositSvcFacade records member deposits.
type DepositSvcFacade interface {
	// CreateDeposit appends a deposit ledger entry for an account.
	CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// ListEntries returns an account's ledger entries, newest first.
	ListEntries(ctx context.Context, accountNumber string, currency domain.Currency, limit, offset int) ([]domain.LedgerEntry, error)
}

// WithdrawalSvcFacade validates and commits member withdrawals.
type WithdrawalSvcFacade interface {
	// CreateWithdrawal runs the full policy check and, if it passes, commits
	// the withdrawal entry, the fee revenue postings and the audit record as
	// one unit. Policy failures surface as *apperrors.PolicyViolation.
	CreateWithdrawal(ctx context.Context, req dto.CreateWithdrawalRequest, creatorUserID string) (*domain.WithdrawalRecord, error)
}

// BalanceSvcFacade derives balances from ledger sums; nothing is ever read
// from a materialized balance.
type BalanceSvcFacade interface {
	// GetAccountBalance returns deposits - withdrawals - fees for an account
	// and currency.
	GetAccountBalance(ctx context.Context, accountNumber string, currency domain.Currency) (decimal.Decimal, error)

	// GetTotals returns institution-wide per-currency totals.
	GetTotals(ctx context.Context) (map[domain.Currency]domain.CurrencyTotals, error)
}
