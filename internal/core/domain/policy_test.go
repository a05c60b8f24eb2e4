package domain_test

import (
	"testing"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHoursWindowContains(t *testing.T) {
	w := domain.HoursWindow{Start: 8, End: 22}

	assert.False(t, w.Contains(7))
	assert.True(t, w.Contains(8))
	assert.True(t, w.Contains(21))
	assert.False(t, w.Contains(22))
	assert.False(t, w.Contains(23))
}

func validPolicy() domain.PolicyConfig {
	ptr := func(s string) *decimal.Decimal {
		v := d(s)
		return &v
	}
	limits := func(fc, usd string) map[domain.Currency]decimal.Decimal {
		return map[domain.Currency]decimal.Decimal{
			domain.CurrencyFC:  d(fc),
			domain.CurrencyUSD: d(usd),
		}
	}
	return domain.PolicyConfig{
		Version:       1,
		MinWithdrawal: limits("1000", "5"),
		MaxWithdrawal: limits("5000000", "2000"),
		DailyCeiling:  limits("10000000", "5000"),
		MinBalance:    limits("5000", "5"),
		AllowedHours:  domain.HoursWindow{Start: 8, End: 22},
		FeeTiers: map[domain.Currency][]domain.FeeTier{
			domain.CurrencyFC:  {{Max: ptr("110865"), Rate: d("3")}, {Max: nil, Rate: d("2")}},
			domain.CurrencyUSD: {{Max: ptr("50"), Rate: d("3")}, {Max: nil, Rate: d("2")}},
		},
	}
}

func TestPolicyConfigValidate(t *testing.T) {
	assert.NoError(t, validPolicy().Validate())
}

func TestPolicyConfigValidate_MissingLimit(t *testing.T) {
	p := validPolicy()
	delete(p.MinBalance, domain.CurrencyUSD)
	assert.Error(t, p.Validate())
}

func TestPolicyConfigValidate_NoTiers(t *testing.T) {
	p := validPolicy()
	p.FeeTiers[domain.CurrencyFC] = nil
	assert.Error(t, p.Validate())
}

func TestPolicyConfigValidate_UnboundedTierNotLast(t *testing.T) {
	p := validPolicy()
	ptr := func(s string) *decimal.Decimal {
		v := d(s)
		return &v
	}
	p.FeeTiers[domain.CurrencyFC] = []domain.FeeTier{
		{Max: nil, Rate: d("2")},
		{Max: ptr("100"), Rate: d("3")},
	}
	assert.Error(t, p.Validate())
}

func TestPolicyConfigValidate_TiersOutOfOrder(t *testing.T) {
	p := validPolicy()
	ptr := func(s string) *decimal.Decimal {
		v := d(s)
		return &v
	}
	p.FeeTiers[domain.CurrencyFC] = []domain.FeeTier{
		{Max: ptr("500"), Rate: d("3")},
		{Max: ptr("100"), Rate: d("2.5")},
		{Max: nil, Rate: d("2")},
	}
	assert.Error(t, p.Validate())
}

func TestPolicyConfigValidate_BadHoursWindow(t *testing.T) {
	p := validPolicy()
	p.AllowedHours = domain.HoursWindow{Start: 22, End: 8}
	assert.Error(t, p.Validate())
}
