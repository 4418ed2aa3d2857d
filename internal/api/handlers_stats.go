package api

import (
	"net/http"
)

func (s *Server) handleSearchStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"documents": s.docs.Len(),
		"exports":   s.exports.Len(),
		"stats":     s.latency.Snapshot(),
	})
}
