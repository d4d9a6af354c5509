// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

// SearchOptions holds heading search parameters.
type SearchOptions struct {
	// Query matches heading text as a case-insensitive substring.
	Query string

	// Level filters by heading level.
	Level types.HeadingLevel

	// DocID filters by document.
	DocID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the search has no terms or filters.
func (o SearchOptions) IsEmpty() bool {
	return o.Query == "" && o.Level == "" && o.DocID == ""
}

// Hit is a heading matched by Search together with its document.
type Hit struct {
	types.HeadingEntry `yaml:",inline"`
	DocID              string `json:"doc_id" yaml:"doc_id"`
	DocTitle           string `json:"doc_title" yaml:"doc_title"`
}

// Search returns headings matching opts, ordered by document and
// reading order.
func (s *Store) Search(ctx context.Context, opts SearchOptions) ([]Hit, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT h.level, h.text, h.page, h.doc_id, d.title
		FROM headings h
		JOIN documents d ON d.id = h.doc_id
		WHERE 1=1`)

	if opts.Query != "" {
		qb.WriteString(` AND h.text LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Query)+"%")
	}
	if opts.Level != "" {
		qb.WriteString(` AND h.level = ?`)
		args = append(args, string(opts.Level))
	}
	if opts.DocID != "" {
		qb.WriteString(` AND h.doc_id = ?`)
		args = append(args, opts.DocID)
	}

	qb.WriteString(` ORDER BY h.doc_id, h.seq LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying headings: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var (
			h     Hit
			level string
		)
		if err := rows.Scan(&level, &h.Text, &h.Page, &h.DocID, &h.DocTitle); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		h.Level = types.HeadingLevel(level)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
