// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules loads the configuration tables that drive heading
// classification and the per-document overrides. A table is read once at
// startup, either from the built-in default.yaml or from a user file, and
// is read-only afterwards.
package rules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

//go:embed default.yaml
var defaultYAML []byte

// HeadingRules holds the phrase tables used by the classifier. All
// phrases are compared against lower-cased normalized text.
type HeadingRules struct {
	// ExcludedDocuments lists document identifiers that never yield headings.
	ExcludedDocuments []string `yaml:"excluded_documents"`

	// Known is the set of phrases that make a block a heading candidate.
	Known []string `yaml:"known"`

	// H1Prefixes marks candidates starting with one of these as H1.
	H1Prefixes []string `yaml:"h1_prefixes"`

	H1 []string `yaml:"h1"`
	H3 []string `yaml:"h3"`
	H4 []string `yaml:"h4"`
}

// MetadataRules controls when the document information title is trusted.
type MetadataRules struct {
	// GeneratorPrefixes are title prefixes written by authoring tools
	// (e.g. "Microsoft Word - draft.docx"); such titles are ignored.
	GeneratorPrefixes []string `yaml:"generator_prefixes"`
}

// DocumentOverride replaces parts of the extracted result for one
// document. Nil fields leave the extracted value in place.
type DocumentOverride struct {
	// Title replaces the extracted title; an empty string clears it.
	Title *string `yaml:"title,omitempty"`

	// Outline replaces the extracted outline entirely.
	Outline *[]types.HeadingEntry `yaml:"outline,omitempty"`

	// PageBase is added to the 0-based page index (0 or 1).
	PageBase int `yaml:"page_base,omitempty"`
}

// Rules is a complete rules table.
type Rules struct {
	Headings  HeadingRules                `yaml:"headings"`
	Metadata  MetadataRules               `yaml:"metadata"`
	Documents map[string]DocumentOverride `yaml:"documents"`

	excluded map[string]bool
}

// Default returns the built-in rules table.
func Default() (*Rules, error) {
	r, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("parsing built-in rules: %w", err)
	}
	return r, nil
}

// Load reads a rules table from path. An empty path returns the
// built-in table.
func Load(path string) (*Rules, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes and validates a YAML rules table.
func Parse(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.excluded = make(map[string]bool, len(r.Headings.ExcludedDocuments))
	for _, id := range r.Headings.ExcludedDocuments {
		r.excluded[id] = true
	}
	return &r, nil
}

// Validate checks page bases and override outline levels.
func (r *Rules) Validate() error {
	for id, o := range r.Documents {
		if o.PageBase != 0 && o.PageBase != 1 {
			return fmt.Errorf("document %s: page_base must be 0 or 1, got %d", id, o.PageBase)
		}
		if o.Outline == nil {
			continue
		}
		for i, e := range *o.Outline {
			if e.Level.Depth() == 0 {
				return fmt.Errorf("document %s: outline entry %d: unknown level %q", id, i, e.Level)
			}
		}
	}
	return nil
}

// IsExcluded reports whether docID never yields headings. Excluded
// documents also ignore their metadata title.
func (r *Rules) IsExcluded(docID string) bool {
	return r.excluded[docID]
}

// Override returns the override entry for docID, if any.
func (r *Rules) Override(docID string) (DocumentOverride, bool) {
	o, ok := r.Documents[docID]
	return o, ok
}

// PageBase returns the page numbering base for docID.
func (r *Rules) PageBase(docID string) int {
	return r.Documents[docID].PageBase
}

// IsGeneratorTitle reports whether title starts with an authoring-tool
// prefix.
func (r *Rules) IsGeneratorTitle(title string) bool {
	for _, p := range r.Metadata.GeneratorPrefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	return false
}

// Marshal encodes the table as YAML.
func (r *Rules) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
