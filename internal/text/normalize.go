// Package text provides locale-insensitive normalization used on both sides
// of every comparison in the service: queries, indexed keywords and catalog
// labels all pass through Normalize before matching.
package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases s and removes combining diacritical marks:
// "ônibus" becomes "onibus", "Açaí" becomes "acai". It is pure, deterministic
// and idempotent. If the transform fails on malformed input the lower-cased
// string is returned unchanged rather than an error; matching then degrades
// to accent-sensitive, which is the safest available behavior.
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	out, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		return lowered
	}
	return out
}
