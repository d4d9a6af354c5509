// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext reads the metadata title and per-page text blocks of a
// PDF. Backends implement Source: the in-process reader built on
// ledongthuc/pdf, and poppler's pdftotext/pdfinfo run as subprocesses.
package pdftext

import (
	"fmt"
	"log/slog"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

// Source reads a PDF into a types.Document. The file handle is opened
// and closed within Read.
type Source interface {
	// Name returns the backend name ("native" or "pdftotext").
	Name() string

	// Read returns the metadata title and the text blocks of every page.
	// Pages without extractable text are present with no blocks so that
	// page indices stay aligned with the PDF.
	Read(path string) (*types.Document, error)
}

// New returns the Source selected by cfg. With the native backend and
// FallbackPdftotext set, documents the native reader cannot parse are
// retried with pdftotext when it is installed.
func New(cfg types.ExtractionConfig, log *slog.Logger) (Source, error) {
	switch cfg.Backend {
	case types.BackendNative, "":
		native := &NativeSource{}
		if !cfg.FallbackPdftotext {
			return native, nil
		}
		poppler := NewPopplerSource()
		if !poppler.Available() {
			log.Debug("pdftotext not found, fallback disabled")
			return native, nil
		}
		return &FallbackSource{Primary: native, Secondary: poppler, Log: log}, nil
	case types.BackendPdftotext:
		poppler := NewPopplerSource()
		if !poppler.Available() {
			return nil, fmt.Errorf("pdftotext backend selected but %s is not on PATH", binPdftotext)
		}
		return poppler, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q: use native or pdftotext", cfg.Backend)
	}
}

// FallbackSource tries Primary and, if it fails, Secondary.
type FallbackSource struct {
	Primary   Source
	Secondary Source
	Log       *slog.Logger
}

func (f *FallbackSource) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

func (f *FallbackSource) Read(path string) (*types.Document, error) {
	doc, err := f.Primary.Read(path)
	if err == nil {
		return doc, nil
	}
	f.Log.Warn("primary backend failed, retrying",
		"backend", f.Primary.Name(),
		"fallback", f.Secondary.Name(),
		"path", path,
		"error", err,
	)
	doc, err2 := f.Secondary.Read(path)
	if err2 != nil {
		return nil, fmt.Errorf("%s: %w; %s: %v", f.Primary.Name(), err, f.Secondary.Name(), err2)
	}
	return doc, nil
}
