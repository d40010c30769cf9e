// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package names canonicalizes raw author-name strings and matches them
// against the canonical researcher roster.
// See docs/ARCHITECTURE.md § Name Matching.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents removes combining marks after NFD decomposition ("É" -> "E").
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// hyphenSpacing collapses spaced hyphens so "Jean - Paul" and "Jean-Paul"
// normalize identically.
var hyphenSpacing = regexp.MustCompile(`\s*-\s*`)

// Normalize canonicalizes a raw name for comparison: diacritics stripped,
// case-folded, hyphen spacing and internal whitespace collapsed, ends
// trimmed. Idempotent; returns "" for empty or whitespace-only input.
func Normalize(raw string) string {
	s, _, err := transform.String(stripAccents, raw)
	if err != nil {
		s = raw
	}
	s = strings.ToLower(s)
	s = hyphenSpacing.ReplaceAllString(s, "-")
	return strings.Join(strings.Fields(s), " ")
}
