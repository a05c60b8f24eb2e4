package repositories

import (
	"context"
	"time"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerReader defines the aggregation primitives every balance-derived
// figure in the system is composed from. No stored running total exists.
type LedgerReader interface {
	// SumAmount returns the grouped sum of entry amounts for an account,
	// operation type and currency.
	SumAmount(ctx context.Context, accountNumber string, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error)

	// SumAmountInTx is SumAmount evaluated inside tx, so validation and
	// commit observe the same snapshot.
	SumAmountInTx(ctx context.Context, tx pgx.Tx, accountNumber string, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error)

	// SumAllAmounts returns the sum of entry amounts across every account,
	// for one operation type and currency.
	SumAllAmounts(ctx context.Context, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error)

	// SumAllFees returns the fees charged across every account.
	SumAllFees(ctx context.Context, currency domain.Currency) (decimal.Decimal, error)

	// SumFees returns the sum of fees charged on an account's withdrawals.
	SumFees(ctx context.Context, accountNumber string, currency domain.Currency) (decimal.Decimal, error)

	// SumFeesInTx is SumFees evaluated inside tx.
	SumFeesInTx(ctx context.Context, tx pgx.Tx, accountNumber string, currency domain.Currency) (decimal.Decimal, error)

	// SumWithdrawalsOnInTx sums the withdrawal amounts an account made on the
	// given calendar day, for the daily-ceiling check.
	SumWithdrawalsOnInTx(ctx context.Context, tx pgx.Tx, accountNumber string, currency domain.Currency, day time.Time) (decimal.Decimal, error)

	// ListEntriesByAccount retrieves a paginated slice of an account's ledger
	// entries, most recent first.
	ListEntriesByAccount(ctx context.Context, accountNumber string, currency domain.Currency, limit, offset int) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines append operations; entries are immutable once
// written, except for removal by repayment link in the correction flow.
type LedgerWriter interface {
	// SaveEntry appends a single entry outside any enclosing unit.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// SaveEntriesInTx appends a group of entries inside tx.
	SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error

	// DeleteEntriesByRepaymentIDInTx removes the postings derived from a
	// repayment, as part of the repayment-deletion unit.
	DeleteEntriesByRepaymentIDInTx(ctx context.Context, tx pgx.Tx, repaymentID string) error
}

// WithdrawalRecordWriter persists the denormalized withdrawal audit rows.
type WithdrawalRecordWriter interface {
	// SaveWithdrawalInTx writes the audit row co-committed with its entry.
	SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, record domain.WithdrawalRecord) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	WithdrawalRecordWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
