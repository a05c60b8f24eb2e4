package repositories

import (
	"context"
	"encoding/json"
)

// PolicyValue is one versioned policy parameter row.
type PolicyValue struct {
	Name    string
	Value   json.RawMessage
	Version int64
}

// PolicyReader defines read operations for policy parameters
type PolicyReader interface {
	// GetPolicyValues returns every stored policy parameter.
	GetPolicyValues(ctx context.Context) ([]PolicyValue, error)
}

// PolicyWriter defines write operations for policy parameters
type PolicyWriter interface {
	// SeedPolicyValue inserts a parameter with version 1 if the name is not
	// yet stored. Used only by the explicit bootstrap step.
	SeedPolicyValue(ctx context.Context, name string, value json.RawMessage) error

	// UpdatePolicyValue overwrites a parameter and bumps its version,
	// last-writer-wins. Returns ErrNotFound if the name was never seeded.
	UpdatePolicyValue(ctx context.Context, name string, value json.RawMessage) error
}

// PolicyRepositoryFacade combines all policy-related repository interfaces
type PolicyRepositoryFacade interface {
	PolicyReader
	PolicyWriter
}
