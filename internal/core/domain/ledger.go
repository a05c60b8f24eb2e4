package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationType indicates the direction of a ledger entry.
type OperationType string

const (
	Deposit    OperationType = "DEPOSIT"
	Withdrawal OperationType = "WITHDRAWAL"
)

// LedgerEntry is an immutable record of a single monetary movement on one
// account in one currency. A balance is always the grouped sum
// deposits - withdrawals - fees over these entries; no running total is
// stored anywhere. Entries are only ever removed by the repayment-deletion
// correction flow, via their RepaymentID link.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"` // Primary key (UUID)
	AccountNumber string          `json:"accountNumber"`
	OperationType OperationType   `json:"operationType"`
	Currency      Currency        `json:"currency"`
	Amount        decimal.Decimal `json:"amount"` // Strictly positive
	Fee           decimal.Decimal `json:"fee"`    // Zero except on member withdrawals
	RepaymentID   string          `json:"repaymentID,omitempty"`
	EntryDate     time.Time       `json:"entryDate"`
	Description   string          `json:"description"`
	AuditFields
}

// WithdrawalRecord is the denormalized audit row co-written with a member
// withdrawal entry. The fee is always recomputed server-side, never taken
// from the client.
type WithdrawalRecord struct {
	WithdrawalID   string          `json:"withdrawalID"` // Primary key (UUID)
	EntryID        string          `json:"entryID"`      // The ledger entry this mirrors
	AccountNumber  string          `json:"accountNumber"`
	Currency       Currency        `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	Fee            decimal.Decimal `json:"fee"`
	BalanceBefore  decimal.Decimal `json:"balanceBefore"`
	BalanceAfter   decimal.Decimal `json:"balanceAfter"`
	WithdrawalDate time.Time       `json:"withdrawalDate"`
	Description    string          `json:"description"`
	AuditFields
}
