// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-outline/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.IndexConfig{Dir: filepath.Join(t.TempDir(), "index")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	store.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return store
}

func planOutline() *types.OutlineResult {
	return &types.OutlineResult{
		Title: "Ontarios Digital Library",
		Outline: []types.HeadingEntry{
			{Level: types.LevelH1, Text: "Summary", Page: 1},
			{Level: types.LevelH2, Text: "2.1 Timeline", Page: 3},
			{Level: types.LevelH3, Text: "Milestones", Page: 3},
			{Level: types.LevelH4, Text: "For each Ontario student it could mean", Page: 5},
		},
	}
}

func guideOutline() *types.OutlineResult {
	return &types.OutlineResult{
		Title: "Foundation Level Extensions",
		Outline: []types.HeadingEntry{
			{Level: types.LevelH1, Text: "Revision History", Page: 2},
			{Level: types.LevelH1, Text: "1. Introduction to the Foundation Level", Page: 5},
			{Level: types.LevelH2, Text: "2.1 Intended Audience_100%", Page: 6},
		},
	}
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	require.NoError(t, store.Save(ctx, "plan.pdf", "static/plan.pdf", planOutline()))

	got, err := store.Get(ctx, "plan.pdf")
	require.NoError(t, err)
	assert.Equal(t, planOutline(), got)
}

func TestSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	require.NoError(t, store.Save(ctx, "plan.pdf", "a/plan.pdf", planOutline()))
	updated := &types.OutlineResult{
		Title:   "Ontarios Digital Library v2",
		Outline: []types.HeadingEntry{{Level: types.LevelH1, Text: "Background", Page: 0}},
	}
	require.NoError(t, store.Save(ctx, "plan.pdf", "b/plan.pdf", updated))

	got, err := store.Get(ctx, "plan.pdf")
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b/plan.pdf", docs[0].Path)
	assert.Equal(t, 1, docs[0].Headings)
}

func TestGetEmptyOutline(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	require.NoError(t, store.Save(ctx, "form.pdf", "form.pdf", &types.OutlineResult{Title: "Form"}))

	got, err := store.Get(ctx, "form.pdf")
	require.NoError(t, err)
	assert.Equal(t, "Form", got.Title)
	assert.NotNil(t, got.Outline)
	assert.Empty(t, got.Outline)
}

func TestGetNotIndexed(t *testing.T) {
	store := testStore(t)
	_, err := store.Get(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotIndexed))
}

func TestList(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	docs, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	require.NoError(t, store.Save(ctx, "guide.pdf", "guide.pdf", guideOutline()))
	require.NoError(t, store.Save(ctx, "plan.pdf", "plan.pdf", planOutline()))
	require.NoError(t, store.Save(ctx, "form.pdf", "form.pdf", &types.OutlineResult{Title: "Form"}))

	docs, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "form.pdf", docs[0].ID)
	assert.Equal(t, 0, docs[0].Headings)
	assert.Equal(t, "guide.pdf", docs[1].ID)
	assert.Equal(t, "Foundation Level Extensions", docs[1].Title)
	assert.Equal(t, 3, docs[1].Headings)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), docs[1].IndexedAt)
	assert.Equal(t, "plan.pdf", docs[2].ID)
	assert.Equal(t, 4, docs[2].Headings)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.Save(ctx, "plan.pdf", "plan.pdf", planOutline()))

	require.NoError(t, store.Delete(ctx, "plan.pdf"))

	_, err := store.Get(ctx, "plan.pdf")
	assert.True(t, errors.Is(err, ErrNotIndexed))

	hits, err := store.Search(ctx, SearchOptions{Query: "Summary"})
	require.NoError(t, err)
	assert.Empty(t, hits, "headings should be removed with the document")

	err = store.Delete(ctx, "plan.pdf")
	assert.True(t, errors.Is(err, ErrNotIndexed))
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.Save(ctx, "plan.pdf", "plan.pdf", planOutline()))
	require.NoError(t, store.Save(ctx, "guide.pdf", "guide.pdf", guideOutline()))

	tests := []struct {
		name  string
		opts  SearchOptions
		texts []string
	}{
		{
			name:  "substring is case-insensitive",
			opts:  SearchOptions{Query: "introduction"},
			texts: []string{"1. Introduction to the Foundation Level"},
		},
		{
			name:  "level filter",
			opts:  SearchOptions{Level: types.LevelH1},
			texts: []string{"Revision History", "1. Introduction to the Foundation Level", "Summary"},
		},
		{
			name:  "document filter keeps reading order",
			opts:  SearchOptions{DocID: "plan.pdf"},
			texts: []string{"Summary", "2.1 Timeline", "Milestones", "For each Ontario student it could mean"},
		},
		{
			name:  "query and level",
			opts:  SearchOptions{Query: "time", Level: types.LevelH2},
			texts: []string{"2.1 Timeline"},
		},
		{
			name:  "like wildcards are literal",
			opts:  SearchOptions{Query: "_100%"},
			texts: []string{"2.1 Intended Audience_100%"},
		},
		{
			name:  "limit",
			opts:  SearchOptions{Level: types.LevelH1, MaxResults: 1},
			texts: []string{"Revision History"},
		},
		{
			name: "no match",
			opts: SearchOptions{Query: "glossary"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := store.Search(ctx, tt.opts)
			require.NoError(t, err)

			var texts []string
			for _, h := range hits {
				texts = append(texts, h.Text)
			}
			assert.Equal(t, tt.texts, texts)
		})
	}
}

func TestSearchHitCarriesDocument(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.Save(ctx, "plan.pdf", "plan.pdf", planOutline()))

	hits, err := store.Search(ctx, SearchOptions{Query: "Milestones"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, Hit{
		HeadingEntry: types.HeadingEntry{Level: types.LevelH3, Text: "Milestones", Page: 3},
		DocID:        "plan.pdf",
		DocTitle:     "Ontarios Digital Library",
	}, hits[0])
}

func TestSearchOptionsIsEmpty(t *testing.T) {
	assert.True(t, SearchOptions{}.IsEmpty())
	assert.True(t, SearchOptions{MaxResults: 5}.IsEmpty())
	assert.False(t, SearchOptions{Level: types.LevelH2}.IsEmpty())
}
