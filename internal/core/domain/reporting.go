package domain

import "github.com/shopspring/decimal"

// CurrencyTotals aggregates institution-wide figures for one currency, each
// derived independently from raw ledger entries and credit rows.
type CurrencyTotals struct {
	Deposits           decimal.Decimal `json:"deposits"`
	Withdrawals        decimal.Decimal `json:"withdrawals"`
	Fees               decimal.Decimal `json:"fees"`
	CreditsOutstanding decimal.Decimal `json:"creditsOutstanding"`
}

// RepaymentOutcome reports the state of a credit after a repayment was added
// or removed.
type RepaymentOutcome struct {
	Repayment    *Repayment      `json:"repayment,omitempty"`
	RepaidToDate decimal.Decimal `json:"repaidToDate"`
	Remaining    decimal.Decimal `json:"remaining"`
	Status       CreditStatus    `json:"status"`
}
