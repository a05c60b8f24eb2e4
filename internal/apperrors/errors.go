package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrIntegrity indicates an inconsistent persisted state (e.g. a repayment
// referencing a vanished credit). The enclosing transaction is aborted.
var ErrIntegrity = errors.New("integrity error")

// Rule names reported by PolicyViolation. These appear verbatim in API
// responses, so they are stable identifiers rather than prose.
const (
	RuleAllowedHours  = "allowed_hours"
	RuleMinWithdrawal = "min_withdrawal"
	RuleMaxWithdrawal = "max_withdrawal"
	RuleMinBalance    = "min_balance"
	RuleDailyCeiling  = "daily_ceiling"
)

// PolicyViolation is returned when a withdrawal request fails a configured
// business rule. It carries the violated rule and the limit that applied so
// callers see the exact refusal reason, never a downgraded message.
type PolicyViolation struct {
	Rule  string
	Limit decimal.Decimal
}

func (e *PolicyViolation) Error() string {
	return fmt.Sprintf("policy violation: %s (limit %s)", e.Rule, e.Limit.String())
}

// NewPolicyViolation builds a PolicyViolation for the given rule and limit.
func NewPolicyViolation(rule string, limit decimal.Decimal) *PolicyViolation {
	return &PolicyViolation{Rule: rule, Limit: limit}
}
