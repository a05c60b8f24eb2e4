package domain

import "fmt"

// Currency is the closed set of currencies the cooperative keeps books in.
// Balances are tracked per currency and never converted at write time.
type Currency string

const (
	CurrencyFC  Currency = "FC"  // Congolese franc, primary
	CurrencyUSD Currency = "USD" // US dollar, secondary
)

// Currencies returns every supported currency.
func Currencies() []Currency {
	return []Currency{CurrencyFC, CurrencyUSD}
}

// ParseCurrency validates a raw currency code against the closed set.
func ParseCurrency(code string) (Currency, error) {
	switch Currency(code) {
	case CurrencyFC:
		return CurrencyFC, nil
	case CurrencyUSD:
		return CurrencyUSD, nil
	default:
		return "", fmt.Errorf("unsupported currency %q", code)
	}
}
