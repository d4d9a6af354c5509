// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render prints outlines and index listings for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/pdf-outline/internal/index"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

var (
	titleBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Bold(true).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	pageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	levelStyles = map[types.HeadingLevel]lipgloss.Style{
		types.LevelH1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		types.LevelH2: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		types.LevelH3: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		types.LevelH4: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
)

const indentWidth = 2

// Outline writes res as a tree indented by heading level.
func Outline(w io.Writer, docID string, res *types.OutlineResult) {
	title := res.Title
	if title == "" {
		title = dimStyle.Render("(untitled)")
	}
	fmt.Fprintln(w, titleBoxStyle.Render(title))
	fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("%s  %d headings", docID, len(res.Outline))))

	if len(res.Outline) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no headings found"))
		return
	}

	for _, h := range res.Outline {
		fmt.Fprintln(w, headingLine(h))
	}
}

func headingLine(h types.HeadingEntry) string {
	depth := h.Level.Depth()
	if depth < 1 {
		depth = 1
	}
	style, ok := levelStyles[h.Level]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", (depth-1)*indentWidth),
		dimStyle.Render(string(h.Level)),
		style.Render(h.Text),
		pageStyle.Render(fmt.Sprintf("p.%d", h.Page)),
	)
}

// Documents writes one line per indexed document.
func Documents(w io.Writer, docs []index.DocumentSummary) {
	if len(docs) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no documents indexed"))
		return
	}
	for _, d := range docs {
		fmt.Fprintf(w, "%s  %s  %s\n",
			levelStyles[types.LevelH1].Render(d.ID),
			d.Title,
			dimStyle.Render(fmt.Sprintf("%d headings, %s", d.Headings, d.IndexedAt.Format("2006-01-02 15:04"))),
		)
	}
}

// Hits writes search results grouped under their document.
func Hits(w io.Writer, hits []index.Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(w, dimStyle.Render("no matching headings"))
		return
	}
	var current string
	for _, h := range hits {
		if h.DocID != current {
			current = h.DocID
			fmt.Fprintf(w, "%s %s\n", levelStyles[types.LevelH1].Render(h.DocID), dimStyle.Render(h.DocTitle))
		}
		fmt.Fprintln(w, "  "+headingLine(h.HeadingEntry))
	}
}
