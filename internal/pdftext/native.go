// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"fmt"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

const (
	// blockGapRatio splits a block where the gap to the next row exceeds
	// this multiple of the page's median row gap.
	blockGapRatio = 1.5

	// fontGapRatio splits a block where the gap exceeds this multiple of
	// the larger font size of the two rows, whatever the median.
	fontGapRatio = 2.0
)

// NativeSource reads PDFs in-process with ledongthuc/pdf. Text rows are
// grouped into blocks by vertical spacing.
type NativeSource struct{}

func (s *NativeSource) Name() string { return string(types.BackendNative) }

func (s *NativeSource) Read(path string) (doc *types.Document, err error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	// The library panics on some malformed objects.
	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("reading PDF %s: %v", path, rec)
		}
	}()

	doc = &types.Document{Title: infoTitle(r)}
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		doc.Pages = append(doc.Pages, pageBlocks(r.Page(i)))
	}
	return doc, nil
}

// infoTitle returns the /Title entry of the document information
// dictionary, or "" when absent.
func infoTitle(r *pdflib.Reader) string {
	info := r.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return info.Key("Title").Text()
}

func pageBlocks(p pdflib.Page) []string {
	if p.V.IsNull() {
		return nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil
	}

	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		var (
			b    strings.Builder
			size float64
		)
		for _, t := range row.Content {
			b.WriteString(t.S)
			size = max(size, t.FontSize)
		}
		lines = append(lines, Line{Y: float64(row.Position), Size: size, Text: b.String()})
	}
	return GroupLines(lines)
}

// Line is one row of text at vertical position Y (larger is higher).
// Size is the largest font size on the row, or 0 when unknown.
type Line struct {
	Y    float64
	Size float64
	Text string
}

// GroupLines merges rows into blocks in top-to-bottom order. A new block
// starts when the gap to the previous row is larger than blockGapRatio
// times the median gap on the page, or larger than fontGapRatio times the
// font size of either row. Blank rows are dropped. Lines within a block
// are joined with newlines.
func GroupLines(lines []Line) []string {
	kept := make([]Line, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l.Text) != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Y > kept[j].Y })

	gaps := make([]float64, 0, len(kept)-1)
	for i := 1; i < len(kept); i++ {
		gaps = append(gaps, kept[i-1].Y-kept[i].Y)
	}
	limit := median(gaps) * blockGapRatio

	var blocks []string
	var cur []string
	for i, l := range kept {
		if i > 0 && splits(gaps[i-1], limit, max(kept[i-1].Size, l.Size)) {
			blocks = append(blocks, strings.Join(cur, "\n"))
			cur = nil
		}
		cur = append(cur, l.Text)
	}
	return append(blocks, strings.Join(cur, "\n"))
}

// splits reports whether a gap ends a block. With two rows on a page the
// gap is its own median, so the font size is the only usable bound.
func splits(gap, medianLimit, size float64) bool {
	if gap > medianLimit {
		return true
	}
	return size > 0 && gap > size*fontGapRatio
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
