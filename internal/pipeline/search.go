// Package pipeline runs a search over a document set: segmentation, term
// matching, section restructuring and assembly of the formatted model.
//
// A search owns every structure it builds; independent searches may run
// concurrently without coordination.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/parafind/internal/layout"
	"github.com/dgallion1/parafind/internal/match"
	"github.com/dgallion1/parafind/internal/restructure"
	"github.com/dgallion1/parafind/internal/segment"
)

var (
	// ErrNoDocuments is returned when no document identifiers were given.
	ErrNoDocuments = errors.New("no documents selected")
	// ErrDocumentUnavailable marks an identifier with no content. It is
	// recorded in diagnostics and never aborts a search.
	ErrDocumentUnavailable = errors.New("document unavailable")
)

// Source resolves document identifiers to raw text.
type Source interface {
	Lookup(id string) (string, bool)
}

// Options tune a single search.
type Options struct {
	// Trace records per-paragraph restructuring decisions in diagnostics.
	Trace  bool
	Logger *slog.Logger
}

// Paragraph is a matched paragraph after restructuring. Index is its
// position in the document's segmentation.
type Paragraph struct {
	Index       int    `json:"index"`
	Text        string `json:"text"`
	Occurrences int    `json:"occurrences"`
}

// MatchResult is the outcome for one document. Occurrences counts hits in
// the original paragraphs, so it is never less than len(FoundParagraphs).
type MatchResult struct {
	DocumentID      string      `json:"document_id"`
	FoundParagraphs []Paragraph `json:"found_paragraphs"`
	TotalParagraphs int         `json:"total_paragraphs"`
	Occurrences     int         `json:"occurrences"`
}

// ParagraphTrace is the restructuring record for one matched paragraph.
type ParagraphTrace struct {
	Index int `json:"index"`
	restructure.Trace
}

// DocumentDiagnostics is plain observability data for one document.
type DocumentDiagnostics struct {
	DocumentID   string               `json:"document_id"`
	Error        string               `json:"error,omitempty"`
	Segmentation *segment.Diagnostics `json:"segmentation,omitempty"`
	Restructured []ParagraphTrace     `json:"restructured,omitempty"`
}

// Session is the complete, self-contained result of one search.
type Session struct {
	Term           string                `json:"term"`
	NormalizedTerm string                `json:"normalized_term"`
	DocumentIDs    []string              `json:"document_ids"`
	Results        []MatchResult         `json:"results"`
	Diagnostics    []DocumentDiagnostics `json:"diagnostics"`
	Stats          layout.Stats          `json:"stats"`
	Duration       time.Duration         `json:"duration_ns"`
}

// Search runs term against the documents named by ids, in the given order.
// Duplicate ids are searched once. An invalid term or an empty id list
// fails before any document is read.
func Search(src Source, term string, ids []string, opts Options) (*Session, error) {
	start := time.Now()
	q, err := match.NewQuery(term)
	if err != nil {
		return nil, err
	}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, ErrNoDocuments
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	sess := &Session{
		Term:           term,
		NormalizedTerm: q.Term(),
		DocumentIDs:    ids,
	}

	for _, id := range ids {
		text, ok := src.Lookup(id)
		if !ok {
			err := fmt.Errorf("%w: %s", ErrDocumentUnavailable, id)
			log.Warn("skipping document", "doc_id", id, "error", err)
			sess.Diagnostics = append(sess.Diagnostics, DocumentDiagnostics{DocumentID: id, Error: err.Error()})
			continue
		}

		res, diag := Analyze(id, text, q, opts.Trace)
		sess.Results = append(sess.Results, res)
		sess.Diagnostics = append(sess.Diagnostics, diag)
		accumulate(&sess.Stats, res)

		log.Debug("analyzed document",
			"doc_id", id,
			"method", diag.Segmentation.Method,
			"paragraphs", res.TotalParagraphs,
			"found", len(res.FoundParagraphs),
			"occurrences", res.Occurrences,
		)
	}

	sess.Duration = time.Since(start)
	return sess, nil
}

// Analyze searches a single document's text.
func Analyze(id, text string, q match.Query, trace bool) (MatchResult, DocumentDiagnostics) {
	paras, segDiag := segment.Segment(text)
	res := MatchResult{DocumentID: id, TotalParagraphs: len(paras), FoundParagraphs: []Paragraph{}}
	diag := DocumentDiagnostics{DocumentID: id, Segmentation: &segDiag}

	for i, p := range paras {
		n := q.Count(p)
		if n == 0 {
			continue
		}
		final, tr := restructure.RestructureTrace(p, q.Term())
		res.FoundParagraphs = append(res.FoundParagraphs, Paragraph{Index: i, Text: final, Occurrences: n})
		res.Occurrences += n
		if trace && tr.Triggered {
			diag.Restructured = append(diag.Restructured, ParagraphTrace{Index: i, Trace: tr})
		}
	}
	return res, diag
}

func accumulate(st *layout.Stats, res MatchResult) {
	st.DocumentsSearched++
	st.TotalParagraphs += res.TotalParagraphs
	st.TotalFoundParagraphs += len(res.FoundParagraphs)
	st.TotalOccurrences += res.Occurrences
	if len(res.FoundParagraphs) > 0 {
		st.DocumentCount++
	}
}

// Found returns the results that have at least one matched paragraph.
func (s *Session) Found() []MatchResult {
	var out []MatchResult
	for _, r := range s.Results {
		if len(r.FoundParagraphs) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Unavailable lists the identifiers that could not be searched.
func (s *Session) Unavailable() []string {
	var out []string
	for _, d := range s.Diagnostics {
		if d.Error != "" {
			out = append(out, d.DocumentID)
		}
	}
	return out
}

// Title is the heading used by every output artifact.
func (s *Session) Title() string {
	return fmt.Sprintf("Search results for %q", s.Term)
}

// Formatted builds the structured model from the documents with matches.
func (s *Session) Formatted() layout.FormattedDocument {
	found := s.Found()
	groups := make([]layout.Group, 0, len(found))
	for _, r := range found {
		g := layout.Group{DocumentID: r.DocumentID}
		for _, p := range r.FoundParagraphs {
			g.Paragraphs = append(g.Paragraphs, p.Text)
		}
		groups = append(groups, g)
	}
	return layout.BuildDocument(s.Title(), s.Stats, groups)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
