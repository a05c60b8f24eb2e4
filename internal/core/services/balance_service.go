package services

import (
	"context"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// balanceService derives every balance figure from the ledger sum
// primitives. Nothing here reads a stored total; recomputation over full
// history is the price paid for the impossibility of balance drift.
type balanceService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	creditRepo  portsrepo.CreditRepositoryWithTx
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(accountRepo portsrepo.AccountRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryWithTx, creditRepo portsrepo.CreditRepositoryWithTx) portssvc.BalanceSvcFacade {
	return &balanceService{accountRepo: accountRepo, ledgerRepo: ledgerRepo, creditRepo: creditRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetAccountBalance returns deposits - withdrawals - fees for an account.
func (s *balanceService) GetAccountBalance(ctx context.Context, accountNumber string, currency domain.Currency) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByNumber(ctx, accountNumber); err != nil {
		return decimal.Zero, err
	}

	deposits, err := s.ledgerRepo.SumAmount(ctx, accountNumber, domain.Deposit, currency)
	if err != nil {
		return decimal.Zero, err
	}
	withdrawals, err := s.ledgerRepo.SumAmount(ctx, accountNumber, domain.Withdrawal, currency)
	if err != nil {
		return decimal.Zero, err
	}
	fees, err := s.ledgerRepo.SumFees(ctx, accountNumber, currency)
	if err != nil {
		return decimal.Zero, err
	}
	return deposits.Sub(withdrawals).Sub(fees), nil
}

// GetTotals returns institution-wide per-currency totals, each aggregated
// independently from the raw ledger and credit rows.
func (s *balanceService) GetTotals(ctx context.Context) (map[domain.Currency]domain.CurrencyTotals, error) {
	totals := make(map[domain.Currency]domain.CurrencyTotals, len(domain.Currencies()))
	for _, currency := range domain.Currencies() {
		deposits, err := s.ledgerRepo.SumAllAmounts(ctx, domain.Deposit, currency)
		if err != nil {
			return nil, err
		}
		withdrawals, err := s.ledgerRepo.SumAllAmounts(ctx, domain.Withdrawal, currency)
		if err != nil {
			return nil, err
		}
		fees, err := s.ledgerRepo.SumAllFees(ctx, currency)
		if err != nil {
			return nil, err
		}
		outstanding, err := s.creditRepo.SumOutstanding(ctx, currency)
		if err != nil {
			return nil, err
		}
		totals[currency] = domain.CurrencyTotals{
			Deposits:           deposits,
			Withdrawals:        withdrawals,
			Fees:               fees,
			CreditsOutstanding: outstanding,
		}
	}
	return totals, nil
}
