package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName turns a participant name into a bank ID: upper case, "&"
// spelled out as AND, diacritics folded, dashes and whitespace runs turned
// into underscores and anything outside [A-Z0-9_] dropped.
//
//	NormalizeName("Nordea (Plusgirot)")      // NORDEA_PLUSGIROT
//	NormalizeName("Lån & Spar Bank Sverige") // LAN_AND_SPAR_BANK_SVERIGE
func NormalizeName(name string) string {
	s := strings.ToUpper(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "&", "AND")

	// Transformers carry state, so each call builds its own chain.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	s = strings.ReplaceAll(s, "-", "_")
	s = strings.Join(strings.Fields(s), "_")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
