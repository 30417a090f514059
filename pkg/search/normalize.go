// Package search implements the diacritic-insensitive matching used by the
// record filters.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes s, strips combining marks and folds it to lower case,
// so "São Paulo" and "sao paulo" normalize to the same string.
//
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Contains reports whether the normalized form of text contains the
// normalized form of query. An empty query matches everything.
func Contains(text, query string) bool {
	q := Normalize(query)
	if q == "" {
		return true
	}
	return strings.Contains(Normalize(text), q)
}

// Matcher caches the normalized query so filtering a list does not renormalize
// it for every candidate.
type Matcher struct {
	query string
}

// NewMatcher builds a matcher for query.
func NewMatcher(query string) Matcher {
	return Matcher{query: Normalize(query)}
}

// Empty reports whether the matcher accepts everything.
func (m Matcher) Empty() bool {
	return m.query == ""
}

// Match reports whether text contains the query.
func (m Matcher) Match(text string) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(Normalize(text), m.query)
}
