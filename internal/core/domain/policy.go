package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy parameter names as persisted and as accepted by the update API.
const (
	ParamMinWithdrawalFC  = "minWithdrawalFC"
	ParamMinWithdrawalUSD = "minWithdrawalUSD"
	ParamMaxWithdrawalFC  = "maxWithdrawalFC"
	ParamMaxWithdrawalUSD = "maxWithdrawalUSD"
	ParamDailyCeilingFC   = "dailyCeilingFC"
	ParamDailyCeilingUSD  = "dailyCeilingUSD"
	ParamMinBalanceFC     = "minBalanceFC"
	ParamMinBalanceUSD    = "minBalanceUSD"
	ParamAllowedHours     = "allowedHours"
	ParamFeeTiersFC       = "feeTiersFC"
	ParamFeeTiersUSD      = "feeTiersUSD"
)

// FeeTier is one non-progressive fee bracket. A nil Max marks the final,
// unbounded tier. The whole transaction amount is charged at the rate of the
// single bracket it falls into.
type FeeTier struct {
	Max  *decimal.Decimal `json:"max"`  // Inclusive upper bound, nil = unbounded
	Rate decimal.Decimal  `json:"rate"` // Percentage, e.g. 2.5
}

// HoursWindow is the daily window during which withdrawals are allowed,
// inclusive start hour, exclusive end hour, local time.
type HoursWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether the given hour of day falls inside the window.
func (w HoursWindow) Contains(hour int) bool {
	return hour >= w.Start && hour < w.End
}

// PolicyConfig is an immutable snapshot of the withdrawal policy. Validating
// components receive the snapshot explicitly; nothing reads mutable global
// state mid-operation.
type PolicyConfig struct {
	Version       int64                        `json:"version"`
	MinWithdrawal map[Currency]decimal.Decimal `json:"minWithdrawal"`
	MaxWithdrawal map[Currency]decimal.Decimal `json:"maxWithdrawal"`
	DailyCeiling  map[Currency]decimal.Decimal `json:"dailyCeiling"`
	MinBalance    map[Currency]decimal.Decimal `json:"minBalance"`
	AllowedHours  HoursWindow                  `json:"allowedHours"`
	FeeTiers      map[Currency][]FeeTier       `json:"feeTiers"`
}

// Validate checks internal consistency of a policy snapshot: every currency
// has limits and at least one fee tier, tiers are ordered with the unbounded
// tier last.
func (p PolicyConfig) Validate() error {
	if p.AllowedHours.Start < 0 || p.AllowedHours.End > 24 || p.AllowedHours.Start >= p.AllowedHours.End {
		return fmt.Errorf("allowed hours window [%d, %d) is invalid", p.AllowedHours.Start, p.AllowedHours.End)
	}
	for _, cur := range Currencies() {
		for name, m := range map[string]map[Currency]decimal.Decimal{
			"minWithdrawal": p.MinWithdrawal,
			"maxWithdrawal": p.MaxWithdrawal,
			"dailyCeiling":  p.DailyCeiling,
			"minBalance":    p.MinBalance,
		} {
			if _, ok := m[cur]; !ok {
				return fmt.Errorf("policy parameter %s missing for currency %s", name, cur)
			}
		}
		tiers, ok := p.FeeTiers[cur]
		if !ok || len(tiers) == 0 {
			return fmt.Errorf("no fee tiers configured for currency %s", cur)
		}
		for i, tier := range tiers {
			if tier.Max == nil && i != len(tiers)-1 {
				return fmt.Errorf("unbounded fee tier must be last for currency %s", cur)
			}
			if i > 0 && tier.Max != nil && tiers[i-1].Max != nil && !tier.Max.GreaterThan(*tiers[i-1].Max) {
				return fmt.Errorf("fee tiers out of order for currency %s", cur)
			}
		}
	}
	return nil
}
