// Package restructure prunes pipe-delimited sections of a matched paragraph
// that do not mention the search term.
package restructure

import (
	"strings"
)

const separator = "|"

// Section records the decision made for one pipe-delimited section.
type Section struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Kept   bool   `json:"kept"`
	Reason string `json:"reason"`
}

// Trace describes how a paragraph was restructured.
type Trace struct {
	Triggered bool      `json:"triggered"`
	Sections  []Section `json:"sections,omitempty"`
}

// Reasons reported in a Trace.
const (
	ReasonBase    = "base section"
	ReasonMatch   = "contains term"
	ReasonNoMatch = "term not found"
)

// Triggered reports whether paragraph has enough pipes (two or more) to be
// restructured.
func Triggered(paragraph string) bool {
	return strings.Count(paragraph, separator) >= 2
}

// Restructure returns the final text for a matched paragraph.
// term must already be normalized.
func Restructure(paragraph, term string) string {
	out, _ := RestructureTrace(paragraph, term)
	return out
}

// RestructureTrace is Restructure plus a record of every kept and dropped
// section. Paragraphs with fewer than two pipes are returned unchanged.
func RestructureTrace(paragraph, term string) (string, Trace) {
	if !Triggered(paragraph) {
		return paragraph, Trace{}
	}

	parts := strings.Split(paragraph, separator)
	trace := Trace{Triggered: true, Sections: make([]Section, 0, len(parts))}
	kept := make([]string, 0, len(parts))

	for i, part := range parts {
		section := strings.TrimSpace(part)
		s := Section{Index: i, Text: section}
		switch {
		case i == 0:
			s.Kept, s.Reason = true, ReasonBase
		case strings.Contains(strings.ToLower(section), term):
			s.Kept, s.Reason = true, ReasonMatch
		default:
			s.Reason = ReasonNoMatch
		}
		if s.Kept {
			kept = append(kept, section)
		}
		trace.Sections = append(trace.Sections, s)
	}

	return strings.Join(kept, " "), trace
}
