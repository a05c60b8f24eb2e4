// Package moneymath holds the pure monetary calculations shared by services:
// fee tier selection and repayment allocation. Everything here is
// deterministic for a given policy snapshot and input amount.
package moneymath

import (
	"fmt"

	"github.com/coopec-dev/coopec_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Interest on repayments is split 10:5 between the institution and the
// member, out of the rate's implicit 15 parts.
var (
	interestParts       = decimal.NewFromInt(15)
	systemInterestParts = decimal.NewFromInt(10)
	memberInterestParts = decimal.NewFromInt(5)
)

// Fee selects the applicable tier for the amount and returns the flat
// (non-progressive) fee: the rate of the first tier whose Max >= amount,
// applied to the whole amount. Amounts above every finite threshold take the
// final tier's rate. Rounded to 2 decimal places, half away from zero.
func Fee(amount decimal.Decimal, tiers []domain.FeeTier) (decimal.Decimal, error) {
	if len(tiers) == 0 {
		return decimal.Zero, fmt.Errorf("no fee tiers configured")
	}
	rate := tiers[len(tiers)-1].Rate
	for _, tier := range tiers {
		if tier.Max == nil || amount.LessThanOrEqual(*tier.Max) {
			rate = tier.Rate
			break
		}
	}
	return amount.Mul(rate).Div(hundred).Round(2), nil
}

// RepaymentSplit is the allocation of one repayment across its three
// beneficiaries. The three portions always sum exactly to the repayment
// amount: the two interest shares are rounded and the principal portion
// absorbs the remainder.
type RepaymentSplit struct {
	PrincipalPortion decimal.Decimal // Recovered by the collective account
	InterestMember   decimal.Decimal // The originating member's interest share
	InterestSystem   decimal.Decimal // The institution's interest share
}

// SplitRepayment allocates amount across principal recovery and the two
// interest shares. With expectedTotal = principal*(1+rate/100), the interest
// attributable to this payment is (amount/expectedTotal)*principal*rate/100,
// divided 10:5 institution:member.
func SplitRepayment(amount, principal, ratePct decimal.Decimal) (RepaymentSplit, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return RepaymentSplit{}, fmt.Errorf("repayment amount must be positive, got %s", amount)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return RepaymentSplit{}, fmt.Errorf("principal must be positive, got %s", principal)
	}
	if ratePct.IsNegative() {
		return RepaymentSplit{}, fmt.Errorf("interest rate must not be negative, got %s", ratePct)
	}

	expectedTotal := principal.Mul(hundred.Add(ratePct)).Div(hundred)
	proportion := amount.Div(expectedTotal)
	interest := proportion.Mul(principal).Mul(ratePct).Div(hundred)

	interestSystem := interest.Mul(systemInterestParts).Div(interestParts).Round(2)
	interestMember := interest.Mul(memberInterestParts).Div(interestParts).Round(2)
	principalPortion := amount.Sub(interestSystem).Sub(interestMember)

	if principalPortion.IsNegative() {
		return RepaymentSplit{}, fmt.Errorf("repayment %s too small to cover its interest share", amount)
	}

	return RepaymentSplit{
		PrincipalPortion: principalPortion,
		InterestMember:   interestMember,
		InterestSystem:   interestSystem,
	}, nil
}
