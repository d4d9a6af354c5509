// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for pdf-outline: the
// outline record produced for one document, the raw text a PDF backend
// hands to the extractor, and the typed configuration of each stage.
package types

import "fmt"

// HeadingLevel is the outline depth of a heading, H1 being the highest.
type HeadingLevel string

const (
	LevelH1 HeadingLevel = "H1"
	LevelH2 HeadingLevel = "H2"
	LevelH3 HeadingLevel = "H3"
	LevelH4 HeadingLevel = "H4"
)

// Depth returns 1 for H1 through 4 for H4, and 0 for an unknown level.
func (l HeadingLevel) Depth() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	case LevelH4:
		return 4
	}
	return 0
}

// ParseHeadingLevel converts "H1".."H4" into a HeadingLevel.
func ParseHeadingLevel(s string) (HeadingLevel, error) {
	l := HeadingLevel(s)
	if l.Depth() == 0 {
		return "", fmt.Errorf("unknown heading level %q: want H1, H2, H3 or H4", s)
	}
	return l, nil
}

// HeadingEntry is one detected heading with its location.
type HeadingEntry struct {
	// Level is the outline depth.
	Level HeadingLevel `json:"level" yaml:"level"`

	// Text is the normalized heading text.
	Text string `json:"text" yaml:"text"`

	// Page is the page the heading was found on. Numbering is 0-based
	// unless a document override says otherwise.
	Page int `json:"page" yaml:"page"`
}

// OutlineResult is the title and ordered heading list of one document.
// Outline is in reading order and is never nil once built by the
// extractor, so it serializes as an empty list rather than null.
type OutlineResult struct {
	Title   string         `json:"title" yaml:"title"`
	Outline []HeadingEntry `json:"outline" yaml:"outline"`
}

// Document is the raw text of a PDF as read by a text backend.
type Document struct {
	// Title is the document information dictionary title, or empty.
	Title string

	// Pages holds the text blocks of each page in reading order.
	Pages [][]string
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return len(d.Pages)
}
