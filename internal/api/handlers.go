// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/pdf-outline/internal/index"
	"github.com/pdiddy/pdf-outline/internal/outline"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

// handleOutline extracts the outline of the PDF sent as the request body.
// The filename query parameter names the document so that per-document
// rules apply.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	filename := sanitizeFilename(r.URL.Query().Get("filename"))
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		jsonError(w, "filename must end in .pdf", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if len(data) == 0 {
		jsonError(w, "request body is empty", http.StatusBadRequest)
		return
	}

	dir, err := os.MkdirTemp("", "pdf-outline-*")
	if err != nil {
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		jsonError(w, "failed to stage upload", http.StatusInternalServerError)
		return
	}

	res, err := s.extractor.Extract(path)
	if err != nil {
		s.log.Warn("extraction failed", "doc", filename, "error", err)
		jsonError(w, "extracting outline: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if s.store != nil && r.URL.Query().Get("index") != "false" {
		if err := s.store.Save(r.Context(), outline.DocumentID(path), filename, res); err != nil {
			jsonError(w, "indexing outline: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []index.DocumentSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.Get(r.Context(), chi.URLParam(r, "docID"))
	if err != nil {
		indexError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	if err := s.store.Delete(r.Context(), docID); err != nil {
		indexError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"doc_id": docID, "deleted": true})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := index.SearchOptions{
		Query: q.Get("q"),
		DocID: q.Get("doc"),
	}
	if v := q.Get("level"); v != "" {
		level, err := types.ParseHeadingLevel(v)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		opts.Level = level
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.MaxResults = n
		}
	}
	if opts.IsEmpty() {
		jsonError(w, "at least one of q, level or doc is required", http.StatusBadRequest)
		return
	}

	hits, err := s.store.Search(r.Context(), opts)
	if err != nil {
		jsonError(w, "search failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if hits == nil {
		hits = []index.Hit{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"hits": hits})
}

func indexError(w http.ResponseWriter, err error) {
	if errors.Is(err, index.ErrNotIndexed) {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	jsonError(w, err.Error(), http.StatusInternalServerError)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "upload.pdf"
	}
	return name
}
