// Package sections resolves a cooperative section to its collective account
// number. The mapping is a pure function of (section, year); the resulting
// number is used as a join key across the ledger, so it must be stable.
package sections

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// GlobalRevenueAccount is the reserved identifier of the institutional
// revenue sink. It is validated at startup, not scattered as literals.
const GlobalRevenueAccount = "COOP-REVENUE-GLOBAL"

// sectionCodes maps a normalized section token to its single-letter code.
// Keys are accent-stripped and lowercased; the letter itself is also
// accepted as an alias.
var sectionCodes = map[string]string{
	"generale":    "G",
	"femmes":      "F",
	"jeunes":      "J",
	"agricole":    "A",
	"commercants": "C",
	"enseignants": "E",
}

// KnownSections returns the canonical section tokens, for bootstrap.
func KnownSections() []string {
	out := make([]string, 0, len(sectionCodes))
	for s := range sectionCodes {
		out = append(out, s)
	}
	return out
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a section name and strips accents, so "Générale",
// "GENERALE" and "generale" all resolve identically.
func Normalize(section string) string {
	folded, _, err := transform.String(stripAccents, strings.TrimSpace(section))
	if err != nil {
		folded = strings.TrimSpace(section)
	}
	return strings.ToLower(folded)
}

// SectionCode resolves a (possibly aliased or accented) section name to its
// single-letter code.
func SectionCode(section string) (string, error) {
	token := Normalize(section)
	if code, ok := sectionCodes[token]; ok {
		return code, nil
	}
	// Accept the bare letter code as an alias.
	if len(token) == 1 {
		upper := strings.ToUpper(token)
		for _, code := range sectionCodes {
			if code == upper {
				return code, nil
			}
		}
	}
	return "", fmt.Errorf("unknown section %q", section)
}

// CollectiveAccountNumber derives the collective account identifier for a
// section and year: COOP-<letter>-<year>-0000. Deterministic and
// collision-free across distinct sections within the same year.
func CollectiveAccountNumber(section string, year int) (string, error) {
	code, err := SectionCode(section)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("COOP-%s-%d-0000", code, year), nil
}
