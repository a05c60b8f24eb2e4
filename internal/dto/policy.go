package dto

import (
	"encoding/json"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
)

// UpdatePolicyValueRequest carries the new raw value for one policy
// parameter. The value's shape depends on the parameter: a number for
// limits, {"start","end"} for allowedHours, a tier list for feeTiers.
type UpdatePolicyValueRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}

// PolicyResponse is the assembled policy snapshot.
type PolicyResponse struct {
	Version       int64                                `json:"version"`
	MinWithdrawal map[domain.Currency]string           `json:"minWithdrawal"`
	MaxWithdrawal map[domain.Currency]string           `json:"maxWithdrawal"`
	DailyCeiling  map[domain.Currency]string           `json:"dailyCeiling"`
	MinBalance    map[domain.Currency]string           `json:"minBalance"`
	AllowedHours  domain.HoursWindow                   `json:"allowedHours"`
	FeeTiers      map[domain.Currency][]domain.FeeTier `json:"feeTiers"`
}

// ToPolicyResponse converts a domain.PolicyConfig to PolicyResponse DTO.
func ToPolicyResponse(p *domain.PolicyConfig) PolicyResponse {
	resp := PolicyResponse{
		Version:       p.Version,
		MinWithdrawal: map[domain.Currency]string{},
		MaxWithdrawal: map[domain.Currency]string{},
		DailyCeiling:  map[domain.Currency]string{},
		MinBalance:    map[domain.Currency]string{},
		AllowedHours:  p.AllowedHours,
		FeeTiers:      p.FeeTiers,
	}
	for cur, v := range p.MinWithdrawal {
		resp.MinWithdrawal[cur] = v.String()
	}
	for cur, v := range p.MaxWithdrawal {
		resp.MaxWithdrawal[cur] = v.String()
	}
	for cur, v := range p.DailyCeiling {
		resp.DailyCeiling[cur] = v.String()
	}
	for cur, v := range p.MinBalance {
		resp.MinBalance[cur] = v.String()
	}
	return resp
}
