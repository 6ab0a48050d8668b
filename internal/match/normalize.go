// Package match implements the table evaluation engine: text normalization,
// HTML table grid parsing, row-signature matching, greedy coverage selection,
// and quality scoring of candidate chunks against gold tables.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// foldRune lowercases and maps typographic dash/quote variants to their
// ASCII equivalents. No locale awareness beyond these code points.
func foldRune(r rune) rune {
	switch r {
	case '–', '—': // en dash, em dash
		return '-'
	case '‘', '’': // curly single quotes
		return '\''
	case '“', '”': // curly double quotes
		return '"'
	}
	return unicode.ToLower(r)
}

var foldTransformer = transform.Chain(runes.Map(foldRune))

// Normalize canonicalizes a cell or row text into a comparison key:
// lowercase, typographic punctuation folded to ASCII, whitespace runs
// collapsed to single spaces, and everything outside lowercase letters,
// digits, space, hyphen, slash, and quotes stripped. Idempotent.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = strings.ToLower(s)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '/', r == '\'', r == '"':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeTokens returns the whitespace-separated tokens of the normalized
// form of s, used for token-overlap similarity.
func NormalizeTokens(s string) []string {
	return strings.Fields(Normalize(s))
}
