package services

import (
	"context"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/coopec-dev/coopec_backend/internal/dto"
)

// AccountSvcFacade is the thin account registry the ledger engine validates
// against. Member management itself lives elsewhere.
type AccountSvcFacade interface {
	// CreateAccount registers a member account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccount retrieves an account by number.
	GetAccount(ctx context.Context, accountNumber string) (*domain.Account, error)

	// EnsureReservedAccounts creates the global revenue account and every
	// section's collective account for the given year if missing. Run at
	// startup so reserved identifiers are validated, not assumed.
	EnsureReservedAccounts(ctx context.Context, year int) error
}

// PolicySvcFacade owns the versioned withdrawal policy.
type PolicySvcFacade interface {
	// Bootstrap seeds the documented defaults for any parameter not yet
	// stored. This is the only implicit write; reads never initialize.
	Bootstrap(ctx context.Context) error

	// GetPolicy assembles the current policy snapshot.
	GetPolicy(ctx context.Context) (*domain.PolicyConfig, error)

	// UpdateValue overwrites one named parameter, last-writer-wins, and
	// returns the resulting snapshot. Unknown names fail with ErrNotFound.
	UpdateValue(ctx context.Context, name string, rawValue []byte) (*domain.PolicyConfig, error)
}
