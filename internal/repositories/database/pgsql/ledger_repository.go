package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	"github.com/coopec-dev/coopec_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries and
// withdrawal audit records.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// queryRower is satisfied by both *pgxpool.Pool and pgx.Tx, so the sum
// primitives run identically inside and outside a unit of work.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func toModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		AccountNumber: d.AccountNumber,
		OperationType: string(d.OperationType),
		Currency:      string(d.Currency),
		Amount:        d.Amount,
		Fee:           d.Fee,
		RepaymentID:   d.RepaymentID,
		EntryDate:     d.EntryDate,
		Description:   d.Description,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

const ledgerEntryInsert = `
	INSERT INTO ledger_entries (entry_id, account_number, operation_type, currency, amount, fee, repayment_id, entry_date, description, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12, $13);
`

func ledgerEntryArgs(m models.LedgerEntry) []any {
	return []any{
		m.EntryID, m.AccountNumber, m.OperationType, m.Currency, m.Amount, m.Fee,
		m.RepaymentID, m.EntryDate, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// SaveEntry appends a single ledger entry outside any enclosing unit.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := toModelLedgerEntry(entry)
	if _, err := r.Pool.Exec(ctx, ledgerEntryInsert, ledgerEntryArgs(m)...); err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// SaveEntriesInTx appends a group of ledger entries inside tx using a batch.
func (r *PgxLedgerRepository) SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(ledgerEntryInsert, ledgerEntryArgs(toModelLedgerEntry(entry))...)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert ledger entry batch: %w", err)
		}
	}
	return nil
}

// DeleteEntriesByRepaymentIDInTx removes the postings derived from one
// repayment. This is the only path that ever deletes ledger entries.
func (r *PgxLedgerRepository) DeleteEntriesByRepaymentIDInTx(ctx context.Context, tx pgx.Tx, repaymentID string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ledger_entries WHERE repayment_id = $1;`, repaymentID); err != nil {
		return fmt.Errorf("failed to delete ledger entries for repayment %s: %w", repaymentID, err)
	}
	return nil
}

func sumAmount(ctx context.Context, q queryRower, accountNumber string, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE account_number = $1 AND operation_type = $2 AND currency = $3;
	`
	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, accountNumber, string(opType), string(currency)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum %s amounts for account %s: %w", opType, accountNumber, err)
	}
	return sum, nil
}

// SumAmount returns the grouped sum of entry amounts for an account,
// operation type and currency. Every balance figure in the system is
// composed from this primitive.
func (r *PgxLedgerRepository) SumAmount(ctx context.Context, accountNumber string, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error) {
	return sumAmount(ctx, r.Pool, accountNumber, opType, currency)
}

// SumAmountInTx is SumAmount evaluated inside tx.
func (r *PgxLedgerRepository) SumAmountInTx(ctx context.Context, tx pgx.Tx, accountNumber string, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error) {
	return sumAmount(ctx, tx, accountNumber, opType, currency)
}

// SumAllAmounts returns the grouped sum of entry amounts across every
// account, for one operation type and currency.
func (r *PgxLedgerRepository) SumAllAmounts(ctx context.Context, opType domain.OperationType, currency domain.Currency) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE operation_type = $1 AND currency = $2;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, string(opType), string(currency)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum all %s amounts: %w", opType, err)
	}
	return sum, nil
}

// SumAllFees returns the fees charged across every account.
func (r *PgxLedgerRepository) SumAllFees(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(fee), 0)
		FROM ledger_entries
		WHERE operation_type = $1 AND currency = $2;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, string(domain.Withdrawal), string(currency)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum all fees: %w", err)
	}
	return sum, nil
}

func sumFees(ctx context.Context, q queryRower, accountNumber string, currency domain.Currency) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(fee), 0)
		FROM ledger_entries
		WHERE account_number = $1 AND operation_type = $2 AND currency = $3;
	`
	var sum decimal.Decimal
	if err := q.QueryRow(ctx, query, accountNumber, string(domain.Withdrawal), string(currency)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum fees for account %s: %w", accountNumber, err)
	}
	return sum, nil
}

// SumFees returns the fees charged on an account's withdrawals.
func (r *PgxLedgerRepository) SumFees(ctx context.Context, accountNumber string, currency domain.Currency) (decimal.Decimal, error) {
	return sumFees(ctx, r.Pool, accountNumber, currency)
}

// SumFeesInTx is SumFees evaluated inside tx.
func (r *PgxLedgerRepository) SumFeesInTx(ctx context.Context, tx pgx.Tx, accountNumber string, currency domain.Currency) (decimal.Decimal, error) {
	return sumFees(ctx, tx, accountNumber, currency)
}

// SumWithdrawalsOnInTx sums the withdrawals an account made on the given
// calendar day, for the daily-ceiling check.
func (r *PgxLedgerRepository) SumWithdrawalsOnInTx(ctx context.Context, tx pgx.Tx, accountNumber string, currency domain.Currency, day time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE account_number = $1 AND operation_type = $2 AND currency = $3
		  AND entry_date >= $4 AND entry_date < $5;
	`
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	var sum decimal.Decimal
	err := tx.QueryRow(ctx, query, accountNumber, string(domain.Withdrawal), string(currency), dayStart, dayEnd).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum daily withdrawals for account %s: %w", accountNumber, err)
	}
	return sum, nil
}

// ListEntriesByAccount retrieves a page of an account's entries, newest first.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountNumber string, currency domain.Currency, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, account_number, operation_type, currency, amount, fee, COALESCE(repayment_id, ''), entry_date, description, created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_entries
		WHERE account_number = $1 AND currency = $2
		ORDER BY entry_date DESC, created_at DESC
		LIMIT $3 OFFSET $4;
	`
	rows, err := r.Pool.Query(ctx, query, accountNumber, string(currency), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for account %s: %w", accountNumber, err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID, &m.AccountNumber, &m.OperationType, &m.Currency, &m.Amount, &m.Fee,
			&m.RepaymentID, &m.EntryDate, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, domain.LedgerEntry{
			EntryID:       m.EntryID,
			AccountNumber: m.AccountNumber,
			OperationType: domain.OperationType(m.OperationType),
			Currency:      domain.Currency(m.Currency),
			Amount:        m.Amount,
			Fee:           m.Fee,
			RepaymentID:   m.RepaymentID,
			EntryDate:     m.EntryDate,
			Description:   m.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading ledger entries for account %s: %w", accountNumber, err)
	}
	return entries, nil
}

// SaveWithdrawalInTx writes the denormalized withdrawal audit row inside tx.
func (r *PgxLedgerRepository) SaveWithdrawalInTx(ctx context.Context, tx pgx.Tx, record domain.WithdrawalRecord) error {
	query := `
		INSERT INTO withdrawals (withdrawal_id, entry_id, account_number, currency, amount, fee, balance_before, balance_after, withdrawal_date, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		record.WithdrawalID, record.EntryID, record.AccountNumber, string(record.Currency),
		record.Amount, record.Fee, record.BalanceBefore, record.BalanceAfter,
		record.WithdrawalDate, record.Description,
		record.CreatedAt, record.CreatedBy, record.LastUpdatedAt, record.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert withdrawal record %s: %w", record.WithdrawalID, err)
	}
	return nil
}
