package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the database row shape for ledger_entries.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	AccountNumber string          `db:"account_number"`
	OperationType string          `db:"operation_type"`
	Currency      string          `db:"currency"`
	Amount        decimal.Decimal `db:"amount"`
	Fee           decimal.Decimal `db:"fee"`
	RepaymentID   string          `db:"repayment_id"` // Empty means NULL
	EntryDate     time.Time       `db:"entry_date"`
	Description   string          `db:"description"`
	AuditFields
}

// WithdrawalRecord is the database row shape for withdrawals.
type WithdrawalRecord struct {
	WithdrawalID   string          `db:"withdrawal_id"`
	EntryID        string          `db:"entry_id"`
	AccountNumber  string          `db:"account_number"`
	Currency       string          `db:"currency"`
	Amount         decimal.Decimal `db:"amount"`
	Fee            decimal.Decimal `db:"fee"`
	BalanceBefore  decimal.Decimal `db:"balance_before"`
	BalanceAfter   decimal.Decimal `db:"balance_after"`
	WithdrawalDate time.Time       `db:"withdrawal_date"`
	Description    string          `db:"description"`
	AuditFields
}
