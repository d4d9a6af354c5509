// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline builds the title and heading outline of a PDF and
// writes it out. The extractor reads the document through a
// pdftext.Source, classifies every normalized text block and finally
// applies the per-document overrides of the rules table.
package outline

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdf-outline/internal/classify"
	"github.com/pdiddy/pdf-outline/internal/normalize"
	"github.com/pdiddy/pdf-outline/internal/pdftext"
	"github.com/pdiddy/pdf-outline/internal/rules"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

// ErrDocumentNotFound is returned when the input PDF does not exist.
var ErrDocumentNotFound = errors.New("document not found")

// Extractor produces OutlineResults. It is safe for concurrent use as
// long as its Source is.
type Extractor struct {
	source     pdftext.Source
	rules      *rules.Rules
	classifier *classify.Classifier
	log        *slog.Logger
}

// NewExtractor returns an Extractor reading PDFs through src and
// classifying blocks with the tables in r.
func NewExtractor(src pdftext.Source, r *rules.Rules, log *slog.Logger) *Extractor {
	return &Extractor{
		source:     src,
		rules:      r,
		classifier: classify.New(r),
		log:        log,
	}
}

// DocumentID returns the identifier rules are keyed by: the base name of
// the path.
func DocumentID(path string) string {
	return filepath.Base(path)
}

// Extract builds the outline of the PDF at path. It returns an error
// wrapping ErrDocumentNotFound when path does not exist. Documents whose
// override replaces both title and outline are not read at all.
func (e *Extractor) Extract(path string) (*types.OutlineResult, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
		}
		return nil, fmt.Errorf("checking %s: %w", path, err)
	}

	docID := DocumentID(path)
	if o, ok := e.rules.Override(docID); ok && o.Title != nil && o.Outline != nil {
		e.log.Info("outline taken from override", "doc", docID)
		return applyOverride(&types.OutlineResult{}, o), nil
	}

	doc, err := e.source.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res := e.Build(docID, doc)
	e.log.Info("outline extracted",
		"doc", docID,
		"backend", e.source.Name(),
		"pages", doc.NumPages(),
		"headings", len(res.Outline),
	)
	return res, nil
}

// Build assembles the OutlineResult of an already-read document.
func (e *Extractor) Build(docID string, doc *types.Document) *types.OutlineResult {
	res := &types.OutlineResult{
		Title:   e.title(docID, doc),
		Outline: []types.HeadingEntry{},
	}

	base := e.rules.PageBase(docID)
	for i, page := range doc.Pages {
		for _, block := range page {
			text := normalize.Text(block)
			if text == "" {
				continue
			}
			level, ok := e.classifier.Classify(text, docID)
			if !ok {
				continue
			}
			e.log.Debug("heading", "doc", docID, "level", level, "page", i+base, "text", text)
			res.Outline = append(res.Outline, types.HeadingEntry{
				Level: level,
				Text:  text,
				Page:  i + base,
			})
		}
	}

	if o, ok := e.rules.Override(docID); ok {
		res = applyOverride(res, o)
	}
	return res
}

// title picks the first non-empty block of the first page, replaced by
// the metadata title when that is present, not written by an authoring
// tool, and the document is not excluded.
func (e *Extractor) title(docID string, doc *types.Document) string {
	var title string
	if doc.NumPages() > 0 {
		for _, block := range doc.Pages[0] {
			if t := normalize.Text(block); t != "" {
				title = t
				break
			}
		}
	}

	if e.rules.IsExcluded(docID) || strings.TrimSpace(doc.Title) == "" {
		return title
	}
	meta := normalize.Text(doc.Title)
	if e.rules.IsGeneratorTitle(meta) {
		return title
	}
	return meta
}

func applyOverride(res *types.OutlineResult, o rules.DocumentOverride) *types.OutlineResult {
	out := *res
	if o.Title != nil {
		out.Title = *o.Title
	}
	if o.Outline != nil {
		out.Outline = append([]types.HeadingEntry{}, *o.Outline...)
	}
	if out.Outline == nil {
		out.Outline = []types.HeadingEntry{}
	}
	return &out
}
