package repositories

import (
	"context"
	"time"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CreditReader defines read operations for credit data
type CreditReader interface {
	// FindCreditByID retrieves a specific credit by its identifier.
	FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)

	// FindCreditForUpdate retrieves a credit inside tx with a row lock, so
	// concurrent repayments against the same credit serialize.
	FindCreditForUpdate(ctx context.Context, tx pgx.Tx, creditID string) (*domain.Credit, error)

	// ListCreditsByAccount retrieves an account's credits, newest first.
	ListCreditsByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]domain.Credit, error)

	// SumOutstanding returns principal minus repaid over ACTIVE credits in
	// the given currency.
	SumOutstanding(ctx context.Context, currency domain.Currency) (decimal.Decimal, error)
}

// CreditWriter defines write operations for credit data
type CreditWriter interface {
	// SaveCreditInTx persists a new credit inside tx, in the same unit as
	// its collective-account disbursement entry.
	SaveCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error

	// UpdateCreditProgressInTx overwrites repaidToDate and status inside tx.
	UpdateCreditProgressInTx(ctx context.Context, tx pgx.Tx, creditID string, repaidToDate decimal.Decimal, status domain.CreditStatus, updatedBy string, updatedAt time.Time) error
}

// CreditRepositoryFacade combines all credit-related repository interfaces
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
}

// CreditRepositoryWithTx extends CreditRepositoryFacade with transaction capabilities
type CreditRepositoryWithTx interface {
	CreditRepositoryFacade
	TransactionManager
}
