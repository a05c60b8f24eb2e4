package pgsql

import (
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		CreditRepo:    newPgxCreditRepository(dbPool),
		RepaymentRepo: newPgxRepaymentRepository(dbPool),
		PolicyRepo:    newPgxPolicyRepository(dbPool),
	}
}
