package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/parafind/internal/config"
	"github.com/dgallion1/parafind/internal/document"
	"github.com/dgallion1/parafind/internal/exports"
	"github.com/dgallion1/parafind/internal/pipeline"
	"github.com/dgallion1/parafind/internal/sink"
)

// Server is the HTTP API server for parafind.
type Server struct {
	router   chi.Router
	docs     *document.Store
	exports  *exports.Store
	renderer *sink.Renderer
	latency  *pipeline.LatencyStats
	log      *slog.Logger
	cfg      config.Config
	now      func() time.Time
}

// NewServer creates and configures the HTTP server.
func NewServer(docs *document.Store, ex *exports.Store, renderer *sink.Renderer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		docs:     docs,
		exports:  ex,
		renderer: renderer,
		latency:  pipeline.NewLatencyStats(cfg.StatsWindow),
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/documents", s.handleUpload)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}/segments", s.handleDocumentSegments)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Post("/api/search", s.handleSearch)
		r.Get("/api/search/preview", s.handleSearchPreview)

		r.Get("/api/exports", s.handleListExports)
		r.Get("/api/exports/{exportID}", s.handleDownloadExport)

		r.Get("/api/stats/search", s.handleSearchStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
