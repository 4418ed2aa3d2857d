// Package markup tokenizes the small subset of inline markdown that search
// results preserve: headings, strong, emphasis and code spans.
package markup

import "strings"

// Kind is the style of a Run.
type Kind int

const (
	Plain Kind = iota
	Strong
	Emphasis
	Code
	Heading
)

func (k Kind) String() string {
	switch k {
	case Strong:
		return "strong"
	case Emphasis:
		return "emphasis"
	case Code:
		return "code"
	case Heading:
		return "heading"
	default:
		return "plain"
	}
}

// MarshalText lets Kind appear by name in JSON.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Run is a contiguous span of text in a single style. Level is set (1-6)
// only for headings.
type Run struct {
	Kind    Kind   `json:"kind"`
	Level   int    `json:"level,omitempty"`
	Content string `json:"content"`
}

// Text concatenates run contents, i.e. the fragment without its markers.
func Text(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Content)
	}
	return b.String()
}
