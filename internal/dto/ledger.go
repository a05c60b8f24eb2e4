package dto

import (
	"time"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDepositRequest defines the data needed to record a deposit.
type CreateDepositRequest struct {
	AccountNumber string          `json:"account" binding:"required"`
	Currency      string          `json:"currency" binding:"required,oneof=FC USD"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          *time.Time      `json:"date"` // Defaults to now
	Description   string          `json:"description"`
}

// CreateWithdrawalRequest defines the data needed to request a withdrawal.
// The fee is never part of the request; it is recomputed server-side.
type CreateWithdrawalRequest struct {
	AccountNumber string          `json:"account" binding:"required"`
	Currency      string          `json:"currency" binding:"required,oneof=FC USD"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Date          *time.Time      `json:"date"` // Defaults to now
	Description   string          `json:"description"`
}

// WithdrawalResponse defines the data returned for a committed withdrawal.
type WithdrawalResponse struct {
	Reference     string          `json:"reference"`
	AccountNumber string          `json:"account"`
	Currency      domain.Currency `json:"currency"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
}

// ToWithdrawalResponse converts a domain.WithdrawalRecord to its DTO.
func ToWithdrawalResponse(w *domain.WithdrawalRecord) WithdrawalResponse {
	return WithdrawalResponse{
		Reference:     w.WithdrawalID,
		AccountNumber: w.AccountNumber,
		Currency:      w.Currency,
		Amount:        w.Amount,
		Fee:           w.Fee,
		BalanceBefore: w.BalanceBefore,
		BalanceAfter:  w.BalanceAfter,
	}
}

// LedgerEntryResponse defines the data returned for a single ledger entry.
type LedgerEntryResponse struct {
	EntryID       string               `json:"entryID"`
	AccountNumber string               `json:"account"`
	OperationType domain.OperationType `json:"operationType"`
	Currency      domain.Currency      `json:"currency"`
	Amount        decimal.Decimal      `json:"amount"`
	Fee           decimal.Decimal      `json:"fee"`
	EntryDate     time.Time            `json:"entryDate"`
	Description   string               `json:"description"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		AccountNumber: e.AccountNumber,
		OperationType: e.OperationType,
		Currency:      e.Currency,
		Amount:        e.Amount,
		Fee:           e.Fee,
		EntryDate:     e.EntryDate,
		Description:   e.Description,
	}
}

// ToLedgerEntryResponses converts domain entries to DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ToLedgerEntryResponse(e)
	}
	return out
}

// BalanceResponse is the derived balance for one account and currency.
type BalanceResponse struct {
	AccountNumber string          `json:"account"`
	Currency      domain.Currency `json:"currency"`
	Balance       decimal.Decimal `json:"balance"`
}

// TotalsResponse is the institution-wide per-currency aggregate view.
type TotalsResponse struct {
	PerCurrency map[domain.Currency]domain.CurrencyTotals `json:"perCurrency"`
}
