// Package textutil provides text normalization helpers for building
// locale-insensitive search patterns. Stored data is never normalized.
package textutil

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics maps accented characters to their closest unaccented base
// character, leaving everything else unchanged.
func StripDiacritics(s string) string {
	// Transformers carry state, so the chain is built per call.
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(stripper, s)
	if err != nil {
		return s
	}
	return out
}
