package repositories

import (
	"context"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByNumber retrieves a specific account by its number.
	FindAccountByNumber(ctx context.Context, accountNumber string) (*domain.Account, error)

	// FindAccountForUpdate retrieves an account inside tx with a row lock,
	// serializing concurrent writes against the same account.
	FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// EnsureAccount inserts the account if its number is not yet known.
	// Used by the startup bootstrap for reserved accounts.
	EnsureAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
