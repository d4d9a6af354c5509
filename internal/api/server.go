// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api serves outline extraction and the outline index over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/pdf-outline/internal/index"
	"github.com/pdiddy/pdf-outline/internal/outline"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

const defaultMaxUploadBytes = 50 << 20

// Server is the HTTP API server for pdf-outline.
type Server struct {
	router    chi.Router
	extractor *outline.Extractor
	store     *index.Store
	log       *slog.Logger
	cfg       types.ServerConfig
}

// NewServer creates and configures the HTTP server. store may be nil, in
// which case uploads are not indexed and the document endpoints answer
// 503.
func NewServer(ext *outline.Extractor, store *index.Store, log *slog.Logger, cfg types.ServerConfig) *Server {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	s := &Server{
		extractor: ext,
		store:     store,
		log:       log,
		cfg:       cfg,
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

	r.Get("/health", s.handleHealth)

	r.Post("/api/outline", s.handleOutline)

	r.Group(func(r chi.Router) {
		r.Use(s.requireIndex)

		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
		r.Get("/api/search", s.handleSearch)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) requireIndex(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.store == nil {
			jsonError(w, "index not configured", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
