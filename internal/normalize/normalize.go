// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize canonicalizes text runs extracted from a PDF before
// they are matched against heading rules.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// kept reports whether r survives normalization: word characters
// (letters, numbers, underscore), whitespace, and . : -
func kept(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSpace(r):
		return true
	case r == '_', r == '.', r == ':', r == '-':
		return true
	}
	return false
}

var dropped = runes.Predicate(func(r rune) bool { return !kept(r) })

// Text trims s, applies NFKD compatibility decomposition, drops every
// character outside the kept set and collapses whitespace runs to a
// single space. Combining marks split off by NFKD are dropped, so "é"
// becomes "e".
//
// Whitespace is collapsed after the character filter, so
// Text(Text(s)) == Text(s). A dropped symbol between two spaces therefore
// leaves one space, not two: "a • b" becomes "a b".
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	t := transform.Chain(norm.NFKD, runes.Remove(dropped))
	out, _, _ := transform.String(t, s)

	return strings.Join(strings.Fields(out), " ")
}

// IsUpper reports whether s has at least one cased character and no
// lower-case or title-case ones. Digits and punctuation do not count
// either way, so "2. SCOPE" is upper-case and "2." is not.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}
