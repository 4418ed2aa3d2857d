// Package segment turns raw document text into an ordered list of paragraphs.
//
// Four candidate splits are always computed and one is chosen by a fixed
// heuristic. The thresholds are kept exactly as they are so paragraph
// numbering stays stable between releases.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Method names a candidate split.
type Method string

const (
	MethodDouble Method = "double_newline"
	MethodSingle Method = "single_newline"
	MethodTriple Method = "triple_newline"
	MethodMulti  Method = "multi_newline"
)

const (
	minParagraphs  = 3  // below this the double split is considered too coarse
	maxParagraphs  = 50 // above this a candidate is suspected of over-splitting
	shortParagraph = 20 // characters
)

var multiBreak = regexp.MustCompile(`\n{2,}`)

// Candidate summarizes one split for diagnostics.
type Candidate struct {
	Method    Method  `json:"method"`
	Count     int     `json:"count"`
	AvgLength float64 `json:"avg_length"`
}

// Diagnostics describes how a text was segmented. Nothing downstream reads it.
type Diagnostics struct {
	Method               Method      `json:"method"`
	ConvertedLineEndings bool        `json:"converted_line_endings"`
	Fallback             bool        `json:"fallback"`
	Candidates           []Candidate `json:"candidates"`
}

// Segment splits raw into paragraphs in source order.
// Blank input yields no paragraphs.
func Segment(raw string) ([]string, Diagnostics) {
	text, converted := NormalizeLineEndings(raw)

	splits := map[Method][]string{
		MethodDouble: nonBlank(strings.Split(text, "\n\n")),
		MethodSingle: nonBlank(strings.Split(text, "\n")),
		MethodTriple: nonBlank(strings.Split(text, "\n\n\n")),
		MethodMulti:  nonBlank(multiBreak.Split(text, -1)),
	}

	diag := Diagnostics{ConvertedLineEndings: converted}
	for _, m := range []Method{MethodDouble, MethodSingle, MethodTriple, MethodMulti} {
		diag.Candidates = append(diag.Candidates, summarize(m, splits[m]))
	}

	chosen := MethodDouble
	if len(splits[MethodDouble]) < minParagraphs && len(splits[MethodSingle]) > len(splits[MethodDouble]) {
		chosen = MethodSingle
	}
	if len(splits[chosen]) > maxParagraphs && hasShort(splits[chosen]) {
		diag.Fallback = chosen != MethodDouble
		chosen = MethodDouble
	}

	diag.Method = chosen
	return splits[chosen], diag
}

// NormalizeLineEndings rewrites \r\n and lone \r to \n and reports whether
// anything changed.
func NormalizeLineEndings(s string) (string, bool) {
	if !strings.ContainsRune(s, '\r') {
		return s, false
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s, true
}

func nonBlank(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasShort(paras []string) bool {
	for _, p := range paras {
		if utf8.RuneCountInString(p) < shortParagraph {
			return true
		}
	}
	return false
}

func summarize(m Method, paras []string) Candidate {
	c := Candidate{Method: m, Count: len(paras)}
	if len(paras) == 0 {
		return c
	}
	total := 0
	for _, p := range paras {
		total += utf8.RuneCountInString(p)
	}
	c.AvgLength = float64(total) / float64(len(paras))
	return c
}
