package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/parafind/internal/exports"
	"github.com/dgallion1/parafind/internal/layout"
	"github.com/dgallion1/parafind/internal/match"
	"github.com/dgallion1/parafind/internal/pipeline"
	"github.com/dgallion1/parafind/internal/sink"
)

type searchRequest struct {
	Term        string   `json:"term"`
	DocumentIDs []string `json:"document_ids"`
	Formats     []string `json:"formats"`
	Diagnostics bool     `json:"diagnostics"`
}

type exportLink struct {
	exports.Export
	URL string `json:"url"`
}

type searchResponse struct {
	Term        string                         `json:"term"`
	Stats       layout.Stats                   `json:"stats"`
	Results     []pipeline.MatchResult         `json:"results"`
	Unavailable []string                       `json:"unavailable,omitempty"`
	Exports     []exportLink                   `json:"exports"`
	Diagnostics []pipeline.DocumentDiagnostics `json:"diagnostics,omitempty"`
	DurationMs  float64                        `json:"duration_ms"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	formats, err := sink.ParseFormats(req.Formats)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, ok := s.search(w, req.Term, req.DocumentIDs, req.Diagnostics)
	if !ok {
		return
	}

	resp := searchResponse{
		Term:        sess.Term,
		Stats:       sess.Stats,
		Results:     sess.Results,
		Unavailable: sess.Unavailable(),
		Exports:     []exportLink{},
		DurationMs:  float64(sess.Duration) / float64(time.Millisecond),
	}
	if req.Diagnostics {
		resp.Diagnostics = sess.Diagnostics
	}

	// Nothing is exported for an empty result set.
	if sess.Stats.TotalFoundParagraphs > 0 {
		doc := sess.Formatted()
		now := s.now()
		for _, f := range formats {
			var buf bytes.Buffer
			if err := s.renderer.Render(&buf, f, doc); err != nil {
				s.log.Error("render failed", "format", f, "error", err)
				jsonError(w, "render "+string(f)+": "+err.Error(), http.StatusInternalServerError)
				return
			}
			e := s.exports.Add(sink.Filename(s.cfg.ExportPrefix, f, now), f.ContentType(), buf.Bytes())
			resp.Exports = append(resp.Exports, exportLink{Export: e, URL: "/api/exports/" + e.ID})
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSearchPreview renders the results of a search as an HTML page.
// Query parameters: term, and ids as a comma-separated list (empty = all).
func (s *Server) handleSearchPreview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var ids []string
	if raw := q.Get("ids"); raw != "" {
		ids = strings.Split(raw, ",")
	}
	sess, ok := s.search(w, q.Get("term"), ids, false)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := sink.WriteHTML(&buf, sess.Formatted()); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", sink.FormatHTML.ContentType())
	w.Write(buf.Bytes())
}

// search runs the pipeline and writes the error response itself when the
// request cannot be served.
func (s *Server) search(w http.ResponseWriter, term string, ids []string, trace bool) (*pipeline.Session, bool) {
	if len(ids) == 0 {
		ids = s.docs.IDs()
	}
	sess, err := pipeline.Search(s.docs, term, ids, pipeline.Options{Trace: trace, Logger: s.log})
	switch {
	case errors.Is(err, match.ErrInvalidQuery):
		jsonError(w, "search term must not be empty", http.StatusBadRequest)
		return nil, false
	case errors.Is(err, pipeline.ErrNoDocuments):
		jsonError(w, "no documents to search", http.StatusBadRequest)
		return nil, false
	case err != nil:
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}

	s.latency.Observe(sess)
	s.log.Info("search completed",
		"term", sess.NormalizedTerm,
		"documents", sess.Stats.DocumentsSearched,
		"found", sess.Stats.TotalFoundParagraphs,
		"occurrences", sess.Stats.TotalOccurrences,
		"unavailable", len(sess.Unavailable()),
	)
	return sess, true
}
