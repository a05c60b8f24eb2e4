package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus is the lifecycle state of a credit.
type CreditStatus string

const (
	CreditActive CreditStatus = "ACTIVE"
	CreditRepaid CreditStatus = "REPAID"
	// CreditLate exists as a recorded state but nothing transitions a credit
	// into it automatically; delinquency marking is a manual operation.
	CreditLate CreditStatus = "LATE"
)

// Credit models the cooperative lending its own pooled funds to a member.
// RepaidToDate is recomputed from the full sum of repayments on every
// repayment add or delete, never incremented, so it cannot drift.
type Credit struct {
	CreditID        string          `json:"creditID"` // Primary key (UUID)
	AccountNumber   string          `json:"accountNumber"`
	Principal       decimal.Decimal `json:"principal"`
	Currency        Currency        `json:"currency"`
	InterestRatePct decimal.Decimal `json:"interestRatePct"`
	DurationMonths  int             `json:"durationMonths"`
	StartDate       time.Time       `json:"startDate"`
	DueDate         time.Time       `json:"dueDate"` // Computed once at creation
	Status          CreditStatus    `json:"status"`
	RepaidToDate    decimal.Decimal `json:"repaidToDate"`
	Description     string          `json:"description"`
	AuditFields
}

// ExpectedTotal is the amount that fully settles the credit:
// principal * (1 + rate/100).
func (c Credit) ExpectedTotal() decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return c.Principal.Mul(hundred.Add(c.InterestRatePct)).Div(hundred)
}

// StatusForRepaid evaluates the lifecycle state for a given repayment sum.
// The transition is reversible: deleting a repayment that drops the sum
// below the expected total moves the credit back to ACTIVE.
func (c Credit) StatusForRepaid(repaid decimal.Decimal) CreditStatus {
	if repaid.GreaterThanOrEqual(c.ExpectedTotal()) {
		return CreditRepaid
	}
	return CreditActive
}

// DueDateFor computes the due date with calendar-month arithmetic.
func DueDateFor(startDate time.Time, durationMonths int) time.Time {
	return startDate.AddDate(0, durationMonths, 0)
}

// Repayment records one payment against a credit. Its three derived ledger
// postings are linked back to it by RepaymentID so a deletion can remove
// them in the same unit.
type Repayment struct {
	RepaymentID   string          `json:"repaymentID"` // Primary key (UUID)
	CreditID      string          `json:"creditID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	RepaymentDate time.Time       `json:"repaymentDate"`
	Description   string          `json:"description"`
	AuditFields
}
