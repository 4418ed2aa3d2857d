package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleDownloadExport(w http.ResponseWriter, r *http.Request) {
	e, ok := s.exports.Get(chi.URLParam(r, "exportID"))
	if !ok {
		jsonError(w, "export not found or expired", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", e.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", e.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(e.Data)))
	w.Write(e.Data)
}

func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"exports": s.exports.List()})
}
