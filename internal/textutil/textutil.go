// Package textutil holds the text cleanup helpers shared by the aggregator
// and the classifiers.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CleanText strips markup tags, collapses whitespace runs and truncates the
// result to max runes, appending "..." when something was cut off.
func CleanText(s string, max int) string {
	s = stripTags(s)
	s = strings.Join(strings.Fields(s), " ")
	return truncate(s, max)
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeForMatch lowercases, trims and removes diacritical marks so that
// keyword matching is accent-insensitive ("Élection" matches "election").
func NormalizeForMatch(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		return s
	}
	return folded
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
