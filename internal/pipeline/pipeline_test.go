// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbnet/copydesk/internal/catalog"
	"github.com/bbnet/copydesk/internal/editor"
	"github.com/bbnet/copydesk/internal/history"
	"github.com/bbnet/copydesk/internal/related"
	"github.com/bbnet/copydesk/pkg/types"
)

const testIndex = `<script>
const posts = [
    // New posts
];
</script>
`

// stubEditor returns a canned result or error per draft.
type stubEditor struct {
	err error
}

func (s stubEditor) Edit(_ context.Context, draft types.Draft) (types.ProcessingResult, error) {
	if s.err != nil {
		return types.ProcessingResult{}, s.err
	}
	return types.ProcessingResult{
		EditedContent:    "<p>edited " + draft.ID + "</p>",
		CopyEditsMade:    "- tightened",
		Headlines:        []string{"h1", "h2", "h3", "h4", "h5"},
		Tags:             "tag",
		FocusKeyphrase:   "key",
		MetaHeadlines:    []string{"m1", "m2", "m3", "m4", "m5"},
		MetaDescriptions: []string{"d1", "d2", "d3", "d4", "d5"},
	}, nil
}

type stubFinder struct {
	links []types.RelatedLink
	err   error
	calls int
}

func (s *stubFinder) Find(_ context.Context, _, _ string) ([]types.RelatedLink, error) {
	s.calls++
	return s.links, s.err
}

func newCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(testIndex), 0o644))
	return &catalog.Store{Path: path}
}

func testBatch() *types.DraftBatch {
	return &types.DraftBatch{
		Drafts: []types.Draft{
			{ID: "11", Title: "First Draft", Author: "A", Content: "<p>first body</p>"},
			{ID: "12", Title: "Empty Draft", Author: "B", Content: "   "},
			{ID: "13", Title: "Third Draft", Author: "C", Content: "<p>third body</p>"},
		},
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	outDir := t.TempDir()
	cat := newCatalog(t)
	var out bytes.Buffer

	ws, err := Resolve(testBatch(), "all", &out)
	require.NoError(t, err)

	p := &Pipeline{
		Editor:  editor.DryRunBackend{},
		Related: related.DryRunFinder{},
		Catalog: cat,
		OutDir:  outDir,
		DryRun:  true,
		Mode:    "fresh",
	}
	summary := p.Run(context.Background(), ws, &out)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.SkippedNoContent)
	assert.Equal(t, []string{"post-first-draft.html", "post-third-draft.html"}, summary.Created)

	got := out.String()
	assert.Contains(t, got, "[dry run] would create: post-first-draft.html")
	assert.Contains(t, got, "[dry run] would create: post-third-draft.html")
	assert.Contains(t, got, "[dry run] would add to catalog index")
	assert.Contains(t, got, "Summary: 2 processed, 1 skipped (no content)")

	// No artifact files, no catalog mutation.
	files, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, files)

	index, err := os.ReadFile(cat.Path)
	require.NoError(t, err)
	assert.Equal(t, testIndex, string(index))
}

func TestRunWritesArtifactAndRegisters(t *testing.T) {
	outDir := t.TempDir()
	cat := newCatalog(t)
	finder := &stubFinder{links: []types.RelatedLink{
		{Title: "Older", URL: "https://boingboing.net/older.html"},
	}}
	var out bytes.Buffer

	ws, err := Resolve(testBatch(), "1", &out)
	require.NoError(t, err)

	p := &Pipeline{
		Editor:  stubEditor{},
		Related: finder,
		Catalog: cat,
		OutDir:  outDir,
		Mode:    "fresh",
	}
	summary := p.Run(context.Background(), ws, &out)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 0, summary.Skipped())
	assert.Equal(t, 1, finder.calls)

	doc, err := os.ReadFile(filepath.Join(outDir, "post-first-draft.html"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<p>edited 11</p>")
	assert.Contains(t, string(doc), "https://boingboing.net/older.html")

	index, err := os.ReadFile(cat.Path)
	require.NoError(t, err)
	assert.Contains(t, string(index), "{ file: 'post-first-draft.html', title: 'First Draft' },")

	// No leftover temp files.
	files, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, files, 1)

	got := out.String()
	assert.Contains(t, got, "Processing #1: First Draft")
	assert.Contains(t, got, "Author: A | Words: 2")
	assert.Contains(t, got, "Created: post-first-draft.html")
	assert.Contains(t, got, "Summary: 1 processed, 0 skipped")
}

func TestRunEditorFailureSkipsDraftAndContinues(t *testing.T) {
	outDir := t.TempDir()
	cat := newCatalog(t)
	var out bytes.Buffer

	batch := &types.DraftBatch{
		Drafts: []types.Draft{
			{ID: "21", Title: "Doomed", Author: "A", Content: "<p>x</p>"},
		},
	}
	ws, err := Resolve(batch, "all", &out)
	require.NoError(t, err)

	p := &Pipeline{
		Editor:  stubEditor{err: errors.New("service unavailable")},
		Related: &stubFinder{},
		Catalog: cat,
		OutDir:  outDir,
	}
	summary := p.Run(context.Background(), ws, &out)

	assert.Equal(t, 0, summary.Processed)
	assert.Equal(t, 1, summary.SkippedFailed)
	assert.Contains(t, out.String(), "warning: draft #1: transformation failed: service unavailable. Skipping.")
	assert.Contains(t, out.String(), "Summary: 0 processed, 1 skipped (failed)")
}

func TestRunRelatedLookupFailureIsAdvisory(t *testing.T) {
	outDir := t.TempDir()
	cat := newCatalog(t)
	var out bytes.Buffer

	ws, err := Resolve(testBatch(), "1", &out)
	require.NoError(t, err)

	p := &Pipeline{
		Editor:  stubEditor{},
		Related: &stubFinder{err: errors.New("lookup timed out")},
		Catalog: cat,
		OutDir:  outDir,
	}
	summary := p.Run(context.Background(), ws, &out)

	assert.Equal(t, 1, summary.Processed)
	assert.Contains(t, out.String(), "warning: related-content lookup failed: lookup timed out")

	doc, err := os.ReadFile(filepath.Join(outDir, "post-first-draft.html"))
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "Previously:")
}

func TestRunSkipsLookupWhenBodyHasCrossReferences(t *testing.T) {
	outDir := t.TempDir()
	cat := newCatalog(t)
	finder := &stubFinder{links: []types.RelatedLink{
		{Title: "X", URL: "https://boingboing.net/x.html"},
	}}
	var out bytes.Buffer

	crossRefEditor := stubEditorWithBody{body: `<p>body</p><div class="previously"></div>`}
	ws, err := Resolve(testBatch(), "1", &out)
	require.NoError(t, err)

	p := &Pipeline{
		Editor:  crossRefEditor,
		Related: finder,
		Catalog: cat,
		OutDir:  outDir,
	}
	p.Run(context.Background(), ws, &out)

	assert.Equal(t, 0, finder.calls, "no lookup when the body already cross-references")
}

type stubEditorWithBody struct {
	body string
}

func (s stubEditorWithBody) Edit(_ context.Context, _ types.Draft) (types.ProcessingResult, error) {
	return types.ProcessingResult{EditedContent: s.body}, nil
}

func TestRunNotesDuplicateRegistration(t *testing.T) {
	outDir := t.TempDir()
	cat := newCatalog(t)
	var out bytes.Buffer

	p := &Pipeline{
		Editor:  stubEditor{},
		Related: &stubFinder{},
		Catalog: cat,
		OutDir:  outDir,
	}

	ws, err := Resolve(testBatch(), "1", &out)
	require.NoError(t, err)
	p.Run(context.Background(), ws, &out)

	out.Reset()
	ws, err = Resolve(testBatch(), "1", &out)
	require.NoError(t, err)
	p.Run(context.Background(), ws, &out)

	assert.Contains(t, out.String(), "note: post-first-draft.html is already in the catalog index")

	index, err := os.ReadFile(cat.Path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(index), "post-first-draft.html"))
}

func TestRunJournalsOutcomesAndNotesReruns(t *testing.T) {
	outDir := t.TempDir()
	cat := newCatalog(t)
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer store.Close()

	p := &Pipeline{
		Editor:  stubEditor{},
		Related: &stubFinder{},
		Catalog: cat,
		History: store,
		OutDir:  outDir,
		Mode:    "cached",
	}

	var out bytes.Buffer
	ws, err := Resolve(testBatch(), "1", &out)
	require.NoError(t, err)
	p.Run(context.Background(), ws, &out)
	assert.NotContains(t, out.String(), "processed 1 time(s) before")

	out.Reset()
	ws, err = Resolve(testBatch(), "1", &out)
	require.NoError(t, err)
	p.Run(context.Background(), ws, &out)
	assert.Contains(t, out.String(), `note: "first-draft" was processed 1 time(s) before`)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, history.StatusProcessed, entries[0].Status)
	assert.Equal(t, "first-draft", entries[0].Slug)
	assert.Equal(t, "cached", entries[0].Mode)

	n, err := store.BySlug("first-draft")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSummaryString(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    string
	}{
		{"nothing skipped", Summary{Processed: 3}, "3 processed, 0 skipped"},
		{"no content", Summary{Processed: 2, SkippedNoContent: 1}, "2 processed, 1 skipped (no content)"},
		{
			"all skip kinds",
			Summary{Processed: 1, SkippedNoContent: 2, SkippedOutOfRange: 3, SkippedFailed: 4},
			"1 processed, 2 skipped (no content), 3 skipped (out of range), 4 skipped (failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.String())
			assert.Equal(t, tt.summary.SkippedNoContent+tt.summary.SkippedOutOfRange+tt.summary.SkippedFailed, tt.summary.Skipped())
		})
	}
}
