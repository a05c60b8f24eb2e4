package dto

import (
	"time"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditRequest defines the data needed to open a credit.
type CreateCreditRequest struct {
	AccountNumber   string          `json:"account" binding:"required"`
	Principal       decimal.Decimal `json:"principal" binding:"required"`
	Currency        string          `json:"currency" binding:"required,oneof=FC USD"`
	InterestRatePct decimal.Decimal `json:"ratePct"`
	DurationMonths  int             `json:"durationMonths" binding:"required,gt=0"`
	StartDate       *time.Time      `json:"startDate"` // Defaults to now
	Description     string          `json:"description"`
}

// CreditResponse defines the data returned for a credit.
type CreditResponse struct {
	CreditID        string              `json:"creditID"`
	AccountNumber   string              `json:"account"`
	Principal       decimal.Decimal     `json:"principal"`
	Currency        domain.Currency     `json:"currency"`
	InterestRatePct decimal.Decimal     `json:"ratePct"`
	DurationMonths  int                 `json:"durationMonths"`
	StartDate       time.Time           `json:"startDate"`
	DueDate         time.Time           `json:"dueDate"`
	Status          domain.CreditStatus `json:"status"`
	RepaidToDate    decimal.Decimal     `json:"repaidToDate"`
	Description     string              `json:"description"`
}

// ToCreditResponse converts a domain.Credit to CreditResponse DTO.
func ToCreditResponse(c *domain.Credit) CreditResponse {
	return CreditResponse{
		CreditID:        c.CreditID,
		AccountNumber:   c.AccountNumber,
		Principal:       c.Principal,
		Currency:        c.Currency,
		InterestRatePct: c.InterestRatePct,
		DurationMonths:  c.DurationMonths,
		StartDate:       c.StartDate,
		DueDate:         c.DueDate,
		Status:          c.Status,
		RepaidToDate:    c.RepaidToDate,
		Description:     c.Description,
	}
}

// CreateRepaymentRequest defines the data needed to record a repayment.
type CreateRepaymentRequest struct {
	CreditID    string          `json:"creditId" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"required,oneof=FC USD"`
	Date        *time.Time      `json:"date"` // Defaults to now
	Description string          `json:"description"`
}

// RepaymentOutcomeResponse reports the credit state after a repayment change.
type RepaymentOutcomeResponse struct {
	RepaymentID  string              `json:"repaymentId,omitempty"`
	RepaidToDate decimal.Decimal     `json:"repaidToDate"`
	Remaining    decimal.Decimal     `json:"remaining"`
	Status       domain.CreditStatus `json:"status"`
}

// ToRepaymentOutcomeResponse converts a domain.RepaymentOutcome to its DTO.
func ToRepaymentOutcomeResponse(o *domain.RepaymentOutcome) RepaymentOutcomeResponse {
	resp := RepaymentOutcomeResponse{
		RepaidToDate: o.RepaidToDate,
		Remaining:    o.Remaining,
		Status:       o.Status,
	}
	if o.Repayment != nil {
		resp.RepaymentID = o.Repayment.RepaymentID
	}
	return resp
}
