// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-outline/internal/pdftest"
	"github.com/pdiddy/pdf-outline/internal/pdftext"
	"github.com/pdiddy/pdf-outline/internal/rules"
	"github.com/pdiddy/pdf-outline/pkg/types"
)

// fakeSource implements pdftext.Source for testing. It returns a canned
// document or error and counts calls.
type fakeSource struct {
	doc   *types.Document
	err   error
	calls int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Read(path string) (*types.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

func newExtractor(t *testing.T, src pdftext.Source) *Extractor {
	t.Helper()
	r, err := rules.Default()
	require.NoError(t, err)
	return NewExtractor(src, r, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// touch creates an empty file named name in a temp dir and returns its path.
func touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))
	return path
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		in   *types.Document
		want *types.OutlineResult
	}{
		{
			name: "title from first block and no headings",
			doc:  "alpha.pdf",
			in: &types.Document{Pages: [][]string{
				{"Overview of Project Alpha", "Some body text."},
			}},
			want: &types.OutlineResult{Title: "Overview of Project Alpha", Outline: []types.HeadingEntry{}},
		},
		{
			name: "numbered heading on third page is 0-based",
			doc:  "generic.pdf",
			in: &types.Document{Pages: [][]string{
				{"Cover"},
				{"Body text"},
				{"1. Introduction", "more text"},
			}},
			want: &types.OutlineResult{
				Title:   "Cover",
				Outline: []types.HeadingEntry{{Level: types.LevelH1, Text: "1. Introduction", Page: 2}},
			},
		},
		{
			name: "1-based document",
			doc:  "file02.pdf",
			in: &types.Document{Pages: [][]string{
				{"Foundation Level Extensions"},
				{"Revision History", "2.1 Intended Audience"},
			}},
			want: &types.OutlineResult{
				Title: "Foundation Level Extensions",
				Outline: []types.HeadingEntry{
					{Level: types.LevelH1, Text: "Revision History", Page: 2},
					{Level: types.LevelH2, Text: "2.1 Intended Audience", Page: 2},
				},
			},
		},
		{
			name: "metadata title preferred",
			doc:  "report.pdf",
			in: &types.Document{
				Title: "  Annual  Report 2025 ",
				Pages: [][]string{{"Cover page"}},
			},
			want: &types.OutlineResult{Title: "Annual Report 2025", Outline: []types.HeadingEntry{}},
		},
		{
			name: "generator metadata title ignored",
			doc:  "report.pdf",
			in: &types.Document{
				Title: "Microsoft Word - report.docx",
				Pages: [][]string{{"Cover page"}},
			},
			want: &types.OutlineResult{Title: "Cover page", Outline: []types.HeadingEntry{}},
		},
		{
			name: "blank metadata title ignored",
			doc:  "report.pdf",
			in: &types.Document{
				Title: "   ",
				Pages: [][]string{{"", "  ", "Cover page"}},
			},
			want: &types.OutlineResult{Title: "Cover page", Outline: []types.HeadingEntry{}},
		},
		{
			name: "excluded document ignores metadata and headings",
			doc:  "file01.pdf",
			in: &types.Document{
				Title: "Form",
				Pages: [][]string{{"1. Name of the Government Servant", "SUMMARY"}},
			},
			want: &types.OutlineResult{Title: "Application form for grant of LTC advance", Outline: []types.HeadingEntry{}},
		},
		{
			name: "title override keeps extracted outline",
			doc:  "file04.pdf",
			in: &types.Document{Pages: [][]string{
				{"Parsippany Troy Hills", "PATHWAY OPTIONS"},
			}},
			want: &types.OutlineResult{
				Title:   "Parsippany -Troy Hills STEM Pathways",
				Outline: []types.HeadingEntry{{Level: types.LevelH1, Text: "PATHWAY OPTIONS", Page: 0}},
			},
		},
		{
			name: "no pages",
			doc:  "empty.pdf",
			in:   &types.Document{},
			want: &types.OutlineResult{Title: "", Outline: []types.HeadingEntry{}},
		},
		{
			name: "headings in reading order across pages",
			doc:  "plan.pdf",
			in: &types.Document{Pages: [][]string{
				{"Ontario’s Digital Library", "Summary", "Timeline:"},
				{"APPENDIX A: ODL ENVISIONED PHASES & FUNDING", "Appendix A: not upper and not listed", "For each Ontario citizen it could mean"},
			}},
			want: &types.OutlineResult{
				Title: "Ontarios Digital Library",
				Outline: []types.HeadingEntry{
					{Level: types.LevelH1, Text: "Ontarios Digital Library", Page: 0},
					{Level: types.LevelH1, Text: "Summary", Page: 0},
					{Level: types.LevelH1, Text: "APPENDIX A: ODL ENVISIONED PHASES FUNDING", Page: 1},
					{Level: types.LevelH4, Text: "For each Ontario citizen it could mean", Page: 1},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newExtractor(t, &fakeSource{})
			assert.Equal(t, tt.want, e.Build(tt.doc, tt.in))
		})
	}
}

func TestExtract(t *testing.T) {
	t.Run("reads through the source", func(t *testing.T) {
		src := &fakeSource{doc: &types.Document{Pages: [][]string{{"Title", "1. Scope"}}}}
		path := touch(t, "guide.pdf")

		res, err := newExtractor(t, src).Extract(path)
		require.NoError(t, err)
		assert.Equal(t, "Title", res.Title)
		assert.Equal(t, []types.HeadingEntry{{Level: types.LevelH1, Text: "1. Scope", Page: 0}}, res.Outline)
		assert.Equal(t, 1, src.calls)
	})

	t.Run("missing document", func(t *testing.T) {
		src := &fakeSource{}
		_, err := newExtractor(t, src).Extract(filepath.Join(t.TempDir(), "nope.pdf"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDocumentNotFound))
		assert.Equal(t, 0, src.calls)
	})

	t.Run("full override skips reading", func(t *testing.T) {
		src := &fakeSource{err: errors.New("must not be called")}
		path := touch(t, "file05.pdf")

		res, err := newExtractor(t, src).Extract(path)
		require.NoError(t, err)
		assert.Equal(t, &types.OutlineResult{
			Title:   "",
			Outline: []types.HeadingEntry{{Level: types.LevelH1, Text: "HOPE To SEE You THERE", Page: 0}},
		}, res)
		assert.Equal(t, 0, src.calls)
	})

	t.Run("source failure", func(t *testing.T) {
		src := &fakeSource{err: errors.New("malformed xref")}
		path := touch(t, "broken.pdf")

		_, err := newExtractor(t, src).Extract(path)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrDocumentNotFound))
		assert.Contains(t, err.Error(), "malformed xref")
	})
}

func TestExtractNativePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alpha.pdf")
	body := func(y float64) []pdftest.Line {
		var ls []pdftest.Line
		for i := 0; i < 5; i++ {
			ls = append(ls, pdftest.Line{Y: y - float64(14*i), Text: "Body text of the section."})
		}
		return ls
	}
	page3 := append([]pdftest.Line{{Y: 740, Text: "1. Introduction"}}, body(700)...)
	require.NoError(t, pdftest.Write(path, pdftest.Doc{
		Pages: [][]pdftest.Line{
			append([]pdftest.Line{{Y: 740, Text: "Overview of Project Alpha"}}, body(700)...),
			body(740),
			page3,
		},
	}))

	res, err := newExtractor(t, &pdftext.NativeSource{}).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Overview of Project Alpha", res.Title)
	assert.Equal(t, []types.HeadingEntry{{Level: types.LevelH1, Text: "1. Introduction", Page: 2}}, res.Outline)
}

func TestExtractNativePDFSparsePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alpha.pdf")
	require.NoError(t, pdftest.Write(path, pdftest.Doc{
		Pages: [][]pdftest.Line{
			{{Y: 740, Text: "Overview of Project Alpha"}, {Y: 60, Text: "Page 1"}},
			{{Y: 740, Text: "Project background."}},
			{{Y: 740, Text: "1. Introduction"}, {Y: 700, Text: "This section introduces the project."}},
		},
	}))

	res, err := newExtractor(t, &pdftext.NativeSource{}).Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "Overview of Project Alpha", res.Title)
	assert.Equal(t, []types.HeadingEntry{{Level: types.LevelH1, Text: "1. Introduction", Page: 2}}, res.Outline)
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	assets := filepath.Join(dir, "static")
	require.NoError(t, os.MkdirAll(assets, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "file03.pdf"), []byte("x"), 0o644))
	local := filepath.Join(dir, "here.pdf")
	require.NoError(t, os.WriteFile(local, []byte("x"), 0o644))

	assert.Equal(t, local, ResolvePath(local, assets))
	assert.Equal(t, filepath.Join(assets, "file03.pdf"), ResolvePath(filepath.Join(dir, "in", "file03.pdf"), assets))

	missing := filepath.Join(dir, "none.pdf")
	assert.Equal(t, missing, ResolvePath(missing, assets))
	assert.Equal(t, missing, ResolvePath(missing, ""))
}

func TestWrite(t *testing.T) {
	t.Run("json with nested directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "nested", "alpha.json")
		res := &types.OutlineResult{
			Title:   "Café & Co <draft>",
			Outline: []types.HeadingEntry{{Level: types.LevelH1, Text: "1. Introduction", Page: 2}},
		}
		require.NoError(t, Write(path, res, types.OutputJSON))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		want := "{\n" +
			"    \"title\": \"Café & Co <draft>\",\n" +
			"    \"outline\": [\n" +
			"        {\n" +
			"            \"level\": \"H1\",\n" +
			"            \"text\": \"1. Introduction\",\n" +
			"            \"page\": 2\n" +
			"        }\n" +
			"    ]\n" +
			"}\n"
		assert.Equal(t, want, string(data))
	})

	t.Run("nil outline is an empty list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		require.NoError(t, Write(path, &types.OutlineResult{Title: "Overview of Project Alpha"}, types.OutputJSON))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, map[string]any{"title": "Overview of Project Alpha", "outline": []any{}}, got)
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "alpha.yaml")
		res := &types.OutlineResult{
			Title:   "Alpha",
			Outline: []types.HeadingEntry{{Level: types.LevelH2, Text: "2.1 Scope", Page: 0}},
		}
		require.NoError(t, Write(path, res, types.OutputYAML))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "title: Alpha")
		assert.Contains(t, string(data), "level: H2")
	})
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path, explicit string
		want           types.OutputFormat
		wantErr        bool
	}{
		{path: "out.json", want: types.OutputJSON},
		{path: "out.YAML", want: types.OutputYAML},
		{path: "out.yml", want: types.OutputYAML},
		{path: "out", want: types.OutputJSON},
		{path: "out.json", explicit: "yaml", want: types.OutputYAML},
		{path: "out.json", explicit: "xml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := FormatFor(tt.path, tt.explicit)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
