// Package match holds the normalized search query and the paragraph matcher.
package match

import (
	"errors"
	"strings"
)

// ErrInvalidQuery is returned for an empty or whitespace-only term.
var ErrInvalidQuery = errors.New("search term must not be empty")

// Query is a normalized search term. The zero value is not valid; use NewQuery.
type Query struct {
	raw  string
	term string
}

// NewQuery trims and lower-cases term once for reuse across a whole search.
func NewQuery(term string) (Query, error) {
	norm := Normalize(term)
	if norm == "" {
		return Query{}, ErrInvalidQuery
	}
	return Query{raw: term, term: norm}, nil
}

// Normalize trims surrounding whitespace and applies simple lower-casing.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Term returns the normalized term.
func (q Query) Term() string { return q.term }

// Raw returns the term as the caller supplied it.
func (q Query) Raw() string { return q.raw }

// Matches reports whether paragraph contains the normalized term,
// ignoring case.
func Matches(paragraph, term string) bool {
	if term == "" {
		return false
	}
	return strings.Contains(strings.ToLower(paragraph), term)
}

// CountOccurrences counts non-overlapping case-insensitive hits of term in
// paragraph, scanning left to right.
func CountOccurrences(paragraph, term string) int {
	if term == "" {
		return 0
	}
	return strings.Count(strings.ToLower(paragraph), term)
}

// Matches reports whether paragraph contains q's term.
func (q Query) Matches(paragraph string) bool { return Matches(paragraph, q.term) }

// Count counts q's term in paragraph.
func (q Query) Count(paragraph string) int { return CountOccurrences(paragraph, q.term) }
