package repositories

import (
	"context"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// RepaymentReader defines read operations for repayment data
type RepaymentReader interface {
	// FindRepaymentByID retrieves a specific repayment by its identifier.
	FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.Repayment, error)

	// ListRepaymentsByCredit retrieves a credit's repayments, oldest first.
	ListRepaymentsByCredit(ctx context.Context, creditID string) ([]domain.Repayment, error)

	// SumRepaymentsByCreditInTx returns the full repayment sum for a credit
	// inside tx. repaidToDate is always this sum, never an increment.
	SumRepaymentsByCreditInTx(ctx context.Context, tx pgx.Tx, creditID string) (decimal.Decimal, error)
}

// RepaymentWriter defines write operations for repayment data
type RepaymentWriter interface {
	// SaveRepaymentInTx persists a repayment inside tx.
	SaveRepaymentInTx(ctx context.Context, tx pgx.Tx, repayment domain.Repayment) error

	// DeleteRepaymentInTx removes a repayment row inside tx.
	DeleteRepaymentInTx(ctx context.Context, tx pgx.Tx, repaymentID string) error
}

// RepaymentRepositoryFacade combines all repayment-related repository interfaces
type RepaymentRepositoryFacade interface {
	RepaymentReader
	RepaymentWriter
}

// RepaymentRepositoryWithTx extends RepaymentRepositoryFacade with transaction capabilities
type RepaymentRepositoryWithTx interface {
	RepaymentRepositoryFacade
	TransactionManager
}
