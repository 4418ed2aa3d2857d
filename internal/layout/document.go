// Package layout renders tokenized search results into the two output
// models: a flow of structural blocks and a paginated, word-wrapped layout.
package layout

import (
	"fmt"
	"strconv"

	"github.com/dgallion1/parafind/internal/markup"
)

// BlockKind identifies a structural block.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockBreak
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockBreak:
		return "break"
	default:
		return "paragraph"
	}
}

// MarshalText lets BlockKind appear by name in JSON.
func (k BlockKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Block is one unit of the structured output. Paragraph blocks carry a
// running ordinal Label; break blocks carry nothing.
type Block struct {
	Kind       BlockKind    `json:"kind"`
	DocumentID string       `json:"document_id,omitempty"`
	Label      string       `json:"label,omitempty"`
	Runs       []markup.Run `json:"runs,omitempty"`
}

// Stats are the aggregate numbers printed in every output header.
type Stats struct {
	DocumentsSearched    int `json:"documents_searched"`
	DocumentCount        int `json:"document_count"`
	TotalParagraphs      int `json:"total_paragraphs"`
	TotalFoundParagraphs int `json:"total_found_paragraphs"`
	TotalOccurrences     int `json:"total_occurrences"`
}

// FormattedDocument is the model consumed by the structured-document sink.
type FormattedDocument struct {
	Title  string  `json:"title"`
	Stats  Stats   `json:"stats"`
	Blocks []Block `json:"blocks"`
}

// Group is the finalized paragraph text found in one source document.
type Group struct {
	DocumentID string
	Paragraphs []string
}

// BuildDocument tokenizes every paragraph and lays the groups out in order:
// a heading per document, one labelled block per paragraph, and a break
// between groups but not after the last one.
func BuildDocument(title string, stats Stats, groups []Group) FormattedDocument {
	doc := FormattedDocument{Title: title, Stats: stats}
	ordinal := 0
	for gi, g := range groups {
		doc.Blocks = append(doc.Blocks, Block{
			Kind:       BlockHeading,
			DocumentID: g.DocumentID,
			Runs:       []markup.Run{{Kind: markup.Heading, Level: 2, Content: g.DocumentID}},
		})
		for _, p := range g.Paragraphs {
			ordinal++
			doc.Blocks = append(doc.Blocks, Block{
				Kind:       BlockParagraph,
				DocumentID: g.DocumentID,
				Label:      strconv.Itoa(ordinal) + ".",
				Runs:       markup.Tokenize(p),
			})
		}
		if gi < len(groups)-1 {
			doc.Blocks = append(doc.Blocks, Block{Kind: BlockBreak})
		}
	}
	return doc
}

// SummaryLines renders the statistics header as plain lines.
func (d FormattedDocument) SummaryLines() []string {
	return []string{
		fmt.Sprintf("Documents with matches: %d of %d", d.Stats.DocumentCount, d.Stats.DocumentsSearched),
		fmt.Sprintf("Paragraphs found: %d of %d", d.Stats.TotalFoundParagraphs, d.Stats.TotalParagraphs),
		fmt.Sprintf("Total occurrences: %d", d.Stats.TotalOccurrences),
	}
}
