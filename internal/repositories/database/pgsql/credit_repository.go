package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	"github.com/coopec-dev/coopec_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCreditRepository struct {
	BaseRepository
}

// newPgxCreditRepository creates a new repository for credit data.
func newPgxCreditRepository(pool *pgxpool.Pool) portsrepo.CreditRepositoryWithTx {
	return &PgxCreditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditRepositoryWithTx = (*PgxCreditRepository)(nil)

func toDomainCredit(m models.Credit) domain.Credit {
	return domain.Credit{
		CreditID:        m.CreditID,
		AccountNumber:   m.AccountNumber,
		Principal:       m.Principal,
		Currency:        domain.Currency(m.Currency),
		InterestRatePct: m.InterestRatePct,
		DurationMonths:  m.DurationMonths,
		StartDate:       m.StartDate,
		DueDate:         m.DueDate,
		Status:          domain.CreditStatus(m.Status),
		RepaidToDate:    m.RepaidToDate,
		Description:     m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const creditColumns = `credit_id, account_number, principal, currency, interest_rate_pct, duration_months, start_date, due_date, status, repaid_to_date, description, created_at, created_by, last_updated_at, last_updated_by`

func scanCredit(row pgx.Row) (*domain.Credit, error) {
	var m models.Credit
	err := row.Scan(
		&m.CreditID, &m.AccountNumber, &m.Principal, &m.Currency, &m.InterestRatePct,
		&m.DurationMonths, &m.StartDate, &m.DueDate, &m.Status, &m.RepaidToDate, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan credit: %w", err)
	}
	c := toDomainCredit(m)
	return &c, nil
}

// SaveCreditInTx persists a new credit inside tx.
func (r *PgxCreditRepository) SaveCreditInTx(ctx context.Context, tx pgx.Tx, credit domain.Credit) error {
	query := `
		INSERT INTO credits (` + creditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		credit.CreditID, credit.AccountNumber, credit.Principal, string(credit.Currency),
		credit.InterestRatePct, credit.DurationMonths, credit.StartDate, credit.DueDate,
		string(credit.Status), credit.RepaidToDate, credit.Description,
		credit.CreatedAt, credit.CreatedBy, credit.LastUpdatedAt, credit.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert credit %s: %w", credit.CreditID, err)
	}
	return nil
}

// FindCreditByID retrieves a credit by its identifier.
func (r *PgxCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE credit_id = $1;`
	return scanCredit(r.Pool.QueryRow(ctx, query, creditID))
}

// FindCreditForUpdate retrieves a credit inside tx with a row lock.
func (r *PgxCreditRepository) FindCreditForUpdate(ctx context.Context, tx pgx.Tx, creditID string) (*domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE credit_id = $1 FOR UPDATE;`
	return scanCredit(tx.QueryRow(ctx, query, creditID))
}

// ListCreditsByAccount retrieves an account's credits, newest first.
func (r *PgxCreditRepository) ListCreditsByAccount(ctx context.Context, accountNumber string, limit, offset int) ([]domain.Credit, error) {
	query := `
		SELECT ` + creditColumns + `
		FROM credits
		WHERE account_number = $1
		ORDER BY start_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountNumber, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits for account %s: %w", accountNumber, err)
	}
	defer rows.Close()

	var credits []domain.Credit
	for rows.Next() {
		var m models.Credit
		err := rows.Scan(
			&m.CreditID, &m.AccountNumber, &m.Principal, &m.Currency, &m.InterestRatePct,
			&m.DurationMonths, &m.StartDate, &m.DueDate, &m.Status, &m.RepaidToDate, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credit: %w", err)
		}
		credits = append(credits, toDomainCredit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading credits for account %s: %w", accountNumber, err)
	}
	return credits, nil
}

// SumOutstanding returns principal minus repaid over ACTIVE credits in the
// given currency.
func (r *PgxCreditRepository) SumOutstanding(ctx context.Context, currency domain.Currency) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(principal - LEAST(repaid_to_date, principal)), 0)
		FROM credits
		WHERE currency = $1 AND status = $2;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, string(currency), string(domain.CreditActive)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outstanding credits for %s: %w", currency, err)
	}
	return sum, nil
}

// UpdateCreditProgressInTx overwrites repaidToDate and status inside tx.
func (r *PgxCreditRepository) UpdateCreditProgressInTx(ctx context.Context, tx pgx.Tx, creditID string, repaidToDate decimal.Decimal, status domain.CreditStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE credits
		SET repaid_to_date = $2, status = $3, last_updated_by = $4, last_updated_at = $5
		WHERE credit_id = $1;
	`
	tag, err := tx.Exec(ctx, query, creditID, repaidToDate, string(status), updatedBy, updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update credit %s progress: %w", creditID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("credit %s vanished during update: %w", creditID, apperrors.ErrIntegrity)
	}
	return nil
}
