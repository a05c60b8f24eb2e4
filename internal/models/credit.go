package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Credit is the database row shape for credits.
type Credit struct {
	CreditID        string          `db:"credit_id"`
	AccountNumber   string          `db:"account_number"`
	Principal       decimal.Decimal `db:"principal"`
	Currency        string          `db:"currency"`
	InterestRatePct decimal.Decimal `db:"interest_rate_pct"`
	DurationMonths  int             `db:"duration_months"`
	StartDate       time.Time       `db:"start_date"`
	DueDate         time.Time       `db:"due_date"`
	Status          string          `db:"status"`
	RepaidToDate    decimal.Decimal `db:"repaid_to_date"`
	Description     string          `db:"description"`
	AuditFields
}

// Repayment is the database row shape for repayments.
type Repayment struct {
	RepaymentID   string          `db:"repayment_id"`
	CreditID      string          `db:"credit_id"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency"`
	RepaymentDate time.Time       `db:"repayment_date"`
	Description   string          `db:"description"`
	AuditFields
}
