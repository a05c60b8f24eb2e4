package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coopec-dev/coopec_backend/internal/apperrors"
	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	portsrepo "github.com/coopec-dev/coopec_backend/internal/core/ports/repositories"
	portssvc "github.com/coopec-dev/coopec_backend/internal/core/ports/services"
	"github.com/coopec-dev/coopec_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// policyService owns the versioned withdrawal policy. Reads assemble a
// snapshot; they never create parameters. Seeding happens only in Bootstrap.
type policyService struct {
	policyRepo portsrepo.PolicyRepositoryFacade
}

// NewPolicyService creates a new PolicyService.
func NewPolicyService(policyRepo portsrepo.PolicyRepositoryFacade) portssvc.PolicySvcFacade {
	return &policyService{policyRepo: policyRepo}
}

var _ portssvc.PolicySvcFacade = (*policyService)(nil)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// defaultPolicy is the documented default configuration, seeded at bootstrap.
func defaultPolicy() domain.PolicyConfig {
	return domain.PolicyConfig{
		Version: 1,
		MinWithdrawal: map[domain.Currency]decimal.Decimal{
			domain.CurrencyFC:  dec("1000"),
			domain.CurrencyUSD: dec("5"),
		},
		MaxWithdrawal: map[domain.Currency]decimal.Decimal{
			domain.CurrencyFC:  dec("5000000"),
			domain.CurrencyUSD: dec("2000"),
		},
		DailyCeiling: map[domain.Currency]decimal.Decimal{
			domain.CurrencyFC:  dec("10000000"),
			domain.CurrencyUSD: dec("5000"),
		},
		MinBalance: map[domain.Currency]decimal.Decimal{
			domain.CurrencyFC:  dec("5000"),
			domain.CurrencyUSD: dec("5"),
		},
		AllowedHours: domain.HoursWindow{Start: 8, End: 22},
		FeeTiers: map[domain.Currency][]domain.FeeTier{
			domain.CurrencyFC: {
				{Max: decPtr("110865"), Rate: dec("3")},
				{Max: decPtr("443460"), Rate: dec("2.5")},
				{Max: nil, Rate: dec("2")},
			},
			domain.CurrencyUSD: {
				{Max: decPtr("50"), Rate: dec("3")},
				{Max: decPtr("200"), Rate: dec("2.5")},
				{Max: nil, Rate: dec("2")},
			},
		},
	}
}

// parameterEncoders maps each recognized parameter name to its encoding from
// a default snapshot, and doubles as the registry of valid names.
var currencyByLimitParam = map[string]domain.Currency{
	domain.ParamMinWithdrawalFC:  domain.CurrencyFC,
	domain.ParamMinWithdrawalUSD: domain.CurrencyUSD,
	domain.ParamMaxWithdrawalFC:  domain.CurrencyFC,
	domain.ParamMaxWithdrawalUSD: domain.CurrencyUSD,
	domain.ParamDailyCeilingFC:   domain.CurrencyFC,
	domain.ParamDailyCeilingUSD:  domain.CurrencyUSD,
	domain.ParamMinBalanceFC:     domain.CurrencyFC,
	domain.ParamMinBalanceUSD:    domain.CurrencyUSD,
}

func encodeDefaults() (map[string]json.RawMessage, error) {
	p := defaultPolicy()
	out := make(map[string]json.RawMessage)

	put := func(name string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode default for %s: %w", name, err)
		}
		out[name] = raw
		return nil
	}

	pairs := map[string]decimal.Decimal{
		domain.ParamMinWithdrawalFC:  p.MinWithdrawal[domain.CurrencyFC],
		domain.ParamMinWithdrawalUSD: p.MinWithdrawal[domain.CurrencyUSD],
		domain.ParamMaxWithdrawalFC:  p.MaxWithdrawal[domain.CurrencyFC],
		domain.ParamMaxWithdrawalUSD: p.MaxWithdrawal[domain.CurrencyUSD],
		domain.ParamDailyCeilingFC:   p.DailyCeiling[domain.CurrencyFC],
		domain.ParamDailyCeilingUSD:  p.DailyCeiling[domain.CurrencyUSD],
		domain.ParamMinBalanceFC:     p.MinBalance[domain.CurrencyFC],
		domain.ParamMinBalanceUSD:    p.MinBalance[domain.CurrencyUSD],
	}
	for name, v := range pairs {
		if err := put(name, v); err != nil {
			return nil, err
		}
	}
	if err := put(domain.ParamAllowedHours, p.AllowedHours); err != nil {
		return nil, err
	}
	if err := put(domain.ParamFeeTiersFC, p.FeeTiers[domain.CurrencyFC]); err != nil {
		return nil, err
	}
	if err := put(domain.ParamFeeTiersUSD, p.FeeTiers[domain.CurrencyUSD]); err != nil {
		return nil, err
	}
	return out, nil
}

// Bootstrap seeds the documented defaults for any parameter not yet stored.
func (s *policyService) Bootstrap(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	defaults, err := encodeDefaults()
	if err != nil {
		return err
	}
	for name, raw := range defaults {
		if err := s.policyRepo.SeedPolicyValue(ctx, name, raw); err != nil {
			return err
		}
	}
	logger.Info("Withdrawal policy defaults seeded")
	return nil
}

// GetPolicy assembles the current policy snapshot from stored parameters.
// An incomplete store means Bootstrap never ran, which is an integrity
// problem, not a cue to silently write defaults.
func (s *policyService) GetPolicy(ctx context.Context) (*domain.PolicyConfig, error) {
	values, err := s.policyRepo.GetPolicyValues(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]portsrepo.PolicyValue, len(values))
	cfg := domain.PolicyConfig{
		MinWithdrawal: map[domain.Currency]decimal.Decimal{},
		MaxWithdrawal: map[domain.Currency]decimal.Decimal{},
		DailyCeiling:  map[domain.Currency]decimal.Decimal{},
		MinBalance:    map[domain.Currency]decimal.Decimal{},
		FeeTiers:      map[domain.Currency][]domain.FeeTier{},
	}
	for _, v := range values {
		byName[v.Name] = v
		if v.Version > cfg.Version {
			cfg.Version = v.Version
		}
	}

	decode := func(name string, target any) error {
		v, ok := byName[name]
		if !ok {
			return fmt.Errorf("policy parameter %s not seeded: %w", name, apperrors.ErrIntegrity)
		}
		if err := json.Unmarshal(v.Value, target); err != nil {
			return fmt.Errorf("policy parameter %s is malformed: %w", name, apperrors.ErrIntegrity)
		}
		return nil
	}

	limitTargets := map[string]map[domain.Currency]decimal.Decimal{
		domain.ParamMinWithdrawalFC:  cfg.MinWithdrawal,
		domain.ParamMinWithdrawalUSD: cfg.MinWithdrawal,
		domain.ParamMaxWithdrawalFC:  cfg.MaxWithdrawal,
		domain.ParamMaxWithdrawalUSD: cfg.MaxWithdrawal,
		domain.ParamDailyCeilingFC:   cfg.DailyCeiling,
		domain.ParamDailyCeilingUSD:  cfg.DailyCeiling,
		domain.ParamMinBalanceFC:     cfg.MinBalance,
		domain.ParamMinBalanceUSD:    cfg.MinBalance,
	}
	for name, target := range limitTargets {
		var d decimal.Decimal
		if err := decode(name, &d); err != nil {
			return nil, err
		}
		target[currencyByLimitParam[name]] = d
	}

	if err := decode(domain.ParamAllowedHours, &cfg.AllowedHours); err != nil {
		return nil, err
	}
	var tiersFC, tiersUSD []domain.FeeTier
	if err := decode(domain.ParamFeeTiersFC, &tiersFC); err != nil {
		return nil, err
	}
	if err := decode(domain.ParamFeeTiersUSD, &tiersUSD); err != nil {
		return nil, err
	}
	cfg.FeeTiers[domain.CurrencyFC] = tiersFC
	cfg.FeeTiers[domain.CurrencyUSD] = tiersUSD

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrIntegrity)
	}
	return &cfg, nil
}

// validateValueShape checks that the raw value parses to the shape the named
// parameter requires, before anything touches the store.
func validateValueShape(name string, raw []byte) error {
	if _, ok := currencyByLimitParam[name]; ok {
		var d decimal.Decimal
		if err := json.Unmarshal(raw, &d); err != nil {
			return fmt.Errorf("%w: %s expects a decimal value", apperrors.ErrValidation, name)
		}
		if d.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", apperrors.ErrValidation, name)
		}
		return nil
	}
	switch name {
	case domain.ParamAllowedHours:
		var w domain.HoursWindow
		if err := json.Unmarshal(raw, &w); err != nil {
			return fmt.Errorf("%w: %s expects {start, end}", apperrors.ErrValidation, name)
		}
		if w.Start < 0 || w.End > 24 || w.Start >= w.End {
			return fmt.Errorf("%w: hours window [%d, %d) is invalid", apperrors.ErrValidation, w.Start, w.End)
		}
	case domain.ParamFeeTiersFC, domain.ParamFeeTiersUSD:
		var tiers []domain.FeeTier
		if err := json.Unmarshal(raw, &tiers); err != nil {
			return fmt.Errorf("%w: %s expects a tier list", apperrors.ErrValidation, name)
		}
		if len(tiers) == 0 {
			return fmt.Errorf("%w: %s must keep at least one tier", apperrors.ErrValidation, name)
		}
		for i, tier := range tiers {
			if tier.Rate.IsNegative() {
				return fmt.Errorf("%w: tier rate must not be negative", apperrors.ErrValidation)
			}
			if tier.Max == nil && i != len(tiers)-1 {
				return fmt.Errorf("%w: unbounded tier must be last", apperrors.ErrValidation)
			}
		}
	default:
		return fmt.Errorf("policy parameter %s: %w", name, apperrors.ErrNotFound)
	}
	return nil
}

// UpdateValue overwrites one named parameter, last-writer-wins, and returns
// the resulting snapshot.
func (s *policyService) UpdateValue(ctx context.Context, name string, rawValue []byte) (*domain.PolicyConfig, error) {
	if err := validateValueShape(name, rawValue); err != nil {
		return nil, err
	}
	if err := s.policyRepo.UpdatePolicyValue(ctx, name, json.RawMessage(rawValue)); err != nil {
		return nil, err
	}
	return s.GetPolicy(ctx)
}
