package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPolicyRepository struct {
	pool *pgxpool.Pool
}

// newPgxPolicyRepository creates a new repository for policy parameters.
func newPgxPolicyRepository(pool *pgxpool.Pool) portsrepo.PolicyRepositoryFacade {
	return &PgxPolicyRepository{pool: pool}
}

var _ portsrepo.PolicyRepositoryFacade = (*PgxPolicyRepository)(nil)

// GetPolicyValues returns every stored policy parameter.
func (r *PgxPolicyRepository) GetPolicyValues(ctx context.Context) ([]portsrepo.PolicyValue, error) {
	rows, err := r.pool.Query(ctx, `SELECT name, value, version FROM policy_parameters ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query policy parameters: %w", err)
	}
	defer rows.Close()

	var values []portsrepo.PolicyValue
	for rows.Next() {
		var v portsrepo.PolicyValue
		var raw []byte
		if err := rows.Scan(&v.Name, &raw, &v.Version); err != nil {
			return nil, fmt.Errorf("failed to scan policy parameter: %w", err)
		}
		v.Value = json.RawMessage(raw)
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading policy parameters: %w", err)
	}
	return values, nil
}

// SeedPolicyValue inserts a parameter with version 1 if not yet stored.
func (r *PgxPolicyRepository) SeedPolicyValue(ctx context.Context, name string, value json.RawMessage) error {
	query := `
		INSERT INTO policy_parameters (name, value, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (name) DO NOTHING;
	`
	if _, err := r.pool.Exec(ctx, query, name, []byte(value)); err != nil {
		return fmt.Errorf("failed to seed policy parameter %s: %w", name, err)
	}
	return nil
}

// UpdatePolicyValue overwrites a parameter and bumps its version. A name
// that was never seeded fails with ErrNotFound; updates never create rows.
func (r *PgxPolicyRepository) UpdatePolicyValue(ctx context.Context, name string, value json.RawMessage) error {
	query := `
		UPDATE policy_parameters
		SET value = $2, version = version + 1, last_updated_at = NOW()
		WHERE name = $1;
	`
	tag, err := r.pool.Exec(ctx, query, name, []byte(value))
	if err != nil {
		return fmt.Errorf("failed to update policy parameter %s: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("policy parameter %s: %w", name, apperrors.ErrNotFound)
	}
	return nil
}
