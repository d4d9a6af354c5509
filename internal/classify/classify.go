// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns heading levels to normalized text blocks.
package classify

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pdf-outline/internal/normalize"
	"github.com/pdiddy/pdf-outline/internal/rules"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

// numbered patterns are tried in this order and the first match wins.
var numbered = []struct {
	re    *regexp.Regexp
	level types.HeadingLevel
}{
	{regexp.MustCompile(`^\p{Nd}+\.\s`), types.LevelH1},
	{regexp.MustCompile(`^\p{Nd}+\.\p{Nd}+\s`), types.LevelH2},
	{regexp.MustCompile(`^\p{Nd}+\.\p{Nd}+\.\p{Nd}+\s`), types.LevelH3},
}

type phraseSet map[string]bool

func newPhraseSet(phrases []string) phraseSet {
	s := make(phraseSet, len(phrases))
	for _, p := range phrases {
		s[strings.ToLower(p)] = true
	}
	return s
}

// Classifier maps a block of text in a document to an optional heading
// level. It is safe for concurrent use.
type Classifier struct {
	rules      *rules.Rules
	known      phraseSet
	h1         phraseSet
	h3         phraseSet
	h4         phraseSet
	h1Prefixes []string
}

// New builds a Classifier from a rules table.
func New(r *rules.Rules) *Classifier {
	prefixes := make([]string, len(r.Headings.H1Prefixes))
	for i, p := range r.Headings.H1Prefixes {
		prefixes[i] = strings.ToLower(p)
	}
	return &Classifier{
		rules:      r,
		known:      newPhraseSet(r.Headings.Known),
		h1:         newPhraseSet(r.Headings.H1),
		h3:         newPhraseSet(r.Headings.H3),
		h4:         newPhraseSet(r.Headings.H4),
		h1Prefixes: prefixes,
	}
}

// Classify returns the heading level of text within document docID, or
// false when the text is not a heading. Text is normalized first, so raw
// block text may be passed.
func (c *Classifier) Classify(text, docID string) (types.HeadingLevel, bool) {
	text = normalize.Text(text)
	if text == "" {
		return "", false
	}
	if c.rules.IsExcluded(docID) {
		return "", false
	}

	for _, n := range numbered {
		if n.re.MatchString(text) {
			return n.level, true
		}
	}

	lower := strings.ToLower(text)
	if !normalize.IsUpper(text) && !c.known[lower] {
		return "", false
	}

	switch {
	case c.hasH1Prefix(lower) || c.h1[lower]:
		return types.LevelH1, true
	case c.h3[lower]:
		return types.LevelH3, true
	case c.h4[lower]:
		return types.LevelH4, true
	}
	return "", false
}

func (c *Classifier) hasH1Prefix(lower string) bool {
	for _, p := range c.h1Prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
