// Package slug derives URL-friendly identifiers from human titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonAlnum matches a run of anything that is not a lowercase letter or digit.
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Derive converts a title into a slug: accents stripped, lowercased, every
// non-alphanumeric run collapsed to a single hyphen, leading/trailing hyphens
// trimmed. The function is idempotent: Derive(Derive(s)) == Derive(s).
func Derive(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)
	out = nonAlnum.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// IsValid reports whether s is already in canonical slug form.
func IsValid(s string) bool {
	return s != "" && Derive(s) == s
}
