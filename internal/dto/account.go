package dto

import (
	"time"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to register a member account.
type CreateAccountRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
	Section       string `json:"section" binding:"required"`
	HolderName    string `json:"holderName" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountNumber string             `json:"accountNumber"`
	Kind          domain.AccountKind `json:"kind"`
	Section       string             `json:"section"`
	HolderName    string             `json:"holderName"`
	IsActive      bool               `json:"isActive"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountNumber: acc.AccountNumber,
		Kind:          acc.Kind,
		Section:       acc.Section,
		HolderName:    acc.HolderName,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
	}
}
