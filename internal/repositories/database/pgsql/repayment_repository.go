package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	"github.com/coopec-dev/coopec_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxRepaymentRepository struct {
	BaseRepository
}

// newPgxRepaymentRepository creates a new repository for repayment data.
func newPgxRepaymentRepository(pool *pgxpool.Pool) portsrepo.RepaymentRepositoryWithTx {
	return &PgxRepaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RepaymentRepositoryWithTx = (*PgxRepaymentRepository)(nil)

func toDomainRepayment(m models.Repayment) domain.Repayment {
	return domain.Repayment{
		RepaymentID:   m.RepaymentID,
		CreditID:      m.CreditID,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		RepaymentDate: m.RepaymentDate,
		Description:   m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const repaymentColumns = `repayment_id, credit_id, amount, currency, repayment_date, description, created_at, created_by, last_updated_at, last_updated_by`

// SaveRepaymentInTx persists a repayment inside tx.
func (r *PgxRepaymentRepository) SaveRepaymentInTx(ctx context.Context, tx pgx.Tx, repayment domain.Repayment) error {
	query := `
		INSERT INTO repayments (` + repaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		repayment.RepaymentID, repayment.CreditID, repayment.Amount, string(repayment.Currency),
		repayment.RepaymentDate, repayment.Description,
		repayment.CreatedAt, repayment.CreatedBy, repayment.LastUpdatedAt, repayment.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert repayment %s: %w", repayment.RepaymentID, err)
	}
	return nil
}

// FindRepaymentByID retrieves a repayment by its identifier.
func (r *PgxRepaymentRepository) FindRepaymentByID(ctx context.Context, repaymentID string) (*domain.Repayment, error) {
	query := `SELECT ` + repaymentColumns + ` FROM repayments WHERE repayment_id = $1;`
	var m models.Repayment
	err := r.Pool.QueryRow(ctx, query, repaymentID).Scan(
		&m.RepaymentID, &m.CreditID, &m.Amount, &m.Currency, &m.RepaymentDate, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan repayment %s: %w", repaymentID, err)
	}
	rp := toDomainRepayment(m)
	return &rp, nil
}

// ListRepaymentsByCredit retrieves a credit's repayments, oldest first.
func (r *PgxRepaymentRepository) ListRepaymentsByCredit(ctx context.Context, creditID string) ([]domain.Repayment, error) {
	query := `
		SELECT ` + repaymentColumns + `
		FROM repayments
		WHERE credit_id = $1
		ORDER BY repayment_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, creditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list repayments for credit %s: %w", creditID, err)
	}
	defer rows.Close()

	var repayments []domain.Repayment
	for rows.Next() {
		var m models.Repayment
		err := rows.Scan(
			&m.RepaymentID, &m.CreditID, &m.Amount, &m.Currency, &m.RepaymentDate, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan repayment: %w", err)
		}
		repayments = append(repayments, toDomainRepayment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading repayments for credit %s: %w", creditID, err)
	}
	return repayments, nil
}

// SumRepaymentsByCreditInTx returns the full repayment sum for a credit
// inside tx.
func (r *PgxRepaymentRepository) SumRepaymentsByCreditInTx(ctx context.Context, tx pgx.Tx, creditID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM repayments WHERE credit_id = $1;`, creditID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum repayments for credit %s: %w", creditID, err)
	}
	return sum, nil
}

// DeleteRepaymentInTx removes a repayment row inside tx.
func (r *PgxRepaymentRepository) DeleteRepaymentInTx(ctx context.Context, tx pgx.Tx, repaymentID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM repayments WHERE repayment_id = $1;`, repaymentID)
	if err != nil {
		return fmt.Errorf("failed to delete repayment %s: %w", repaymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repayment %s: %w", repaymentID, apperrors.ErrNotFound)
	}
	return nil
}
