// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives the draft processing run: selection, copy
// editing, related-content lookup, rendering, and catalog registration.
// Processing is strictly sequential; a per-draft failure skips that draft
// and the run continues.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bbnet/copydesk/internal/catalog"
	"github.com/bbnet/copydesk/internal/editor"
	"github.com/bbnet/copydesk/internal/history"
	"github.com/bbnet/copydesk/internal/related"
	"github.com/bbnet/copydesk/internal/render"
	"github.com/bbnet/copydesk/internal/sanitize"
	"github.com/bbnet/copydesk/pkg/types"
)

// Pipeline holds the collaborators for one processing run.
type Pipeline struct {
	Editor  editor.Backend
	Related related.Finder
	Catalog *catalog.Store
	History *history.Store // optional; nil disables the journal
	OutDir  string
	DryRun  bool
	Mode    string // "fresh" or "cached", recorded in the journal
}

// Summary holds the outcome counts for a run.
type Summary struct {
	Processed         int
	SkippedNoContent  int
	SkippedOutOfRange int
	SkippedFailed     int
	Created           []string
}

// Skipped returns the total number of skipped drafts.
func (s Summary) Skipped() int {
	return s.SkippedNoContent + s.SkippedOutOfRange + s.SkippedFailed
}

// String formats the summary line, e.g. "2 processed, 1 skipped (no content)".
func (s Summary) String() string {
	var parts []string
	if s.SkippedNoContent > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped (no content)", s.SkippedNoContent))
	}
	if s.SkippedOutOfRange > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped (out of range)", s.SkippedOutOfRange))
	}
	if s.SkippedFailed > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped (failed)", s.SkippedFailed))
	}
	if len(parts) == 0 {
		parts = append(parts, "0 skipped")
	}
	return fmt.Sprintf("%d processed, %s", s.Processed, strings.Join(parts, ", "))
}

// Run processes every item in the work set in selection order and prints a
// final summary to w.
func (p *Pipeline) Run(ctx context.Context, ws WorkSet, w io.Writer) Summary {
	summary := Summary{
		SkippedNoContent:  ws.SkippedNoContent,
		SkippedOutOfRange: ws.SkippedOutOfRange,
	}

	for _, item := range ws.Items {
		filename, err := p.processOne(ctx, item, w)
		if err != nil {
			fmt.Fprintf(w, "warning: draft #%d: %v. Skipping.\n", item.Position, err)
			summary.SkippedFailed++
			p.journal(item.Draft, "", history.StatusSkipped, err.Error(), w)
			continue
		}
		summary.Processed++
		summary.Created = append(summary.Created, filename)
	}

	fmt.Fprintf(w, "\nSummary: %s\n", summary)
	return summary
}

// processOne runs a single draft through transformation, rendering, and
// registration. It returns the artifact filename.
func (p *Pipeline) processOne(ctx context.Context, item WorkItem, w io.Writer) (string, error) {
	draft := item.Draft
	title := sanitize.Strip(draft.Title)

	fmt.Fprintf(w, "\nProcessing #%d: %s\n", item.Position, title)
	fmt.Fprintf(w, "  Author: %s | Words: %d\n", draft.Author, sanitize.WordCount(draft.Content))

	result, err := p.Editor.Edit(ctx, draft)
	if err != nil {
		return "", fmt.Errorf("transformation failed: %w", err)
	}

	// Only synthesize a related-content block when the edited body does not
	// already carry one. Lookup failures are advisory.
	if !sanitize.HasCrossReferences(result.EditedContent) {
		links, ferr := p.Related.Find(ctx, draft.Title, draft.Content)
		if ferr != nil {
			fmt.Fprintf(w, "  warning: related-content lookup failed: %v\n", ferr)
		} else {
			result.Previously = links
		}
	}

	filename := render.Filename(draft.Title)

	if p.DryRun {
		fmt.Fprintf(w, "  [dry run] would create: %s\n", filename)
		fmt.Fprintf(w, "  [dry run] would add to catalog index\n")
		return filename, nil
	}

	if p.History != nil {
		slug := strings.TrimSuffix(strings.TrimPrefix(filename, "post-"), ".html")
		if n, herr := p.History.BySlug(slug); herr == nil && n > 0 {
			fmt.Fprintf(w, "  note: %q was processed %d time(s) before\n", slug, n)
		}
	}

	doc, err := render.Render(draft, result)
	if err != nil {
		return "", err
	}

	if err := p.writeArtifact(filename, doc); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "  Created: %s\n", filename)

	if exists, eerr := p.Catalog.Exists(filename); eerr == nil && exists {
		fmt.Fprintf(w, "  note: %s is already in the catalog index; a duplicate entry will be added\n", filename)
	}
	if err := p.Catalog.Register(types.CatalogEntry{Path: filename, Title: title}, w); err != nil {
		return "", fmt.Errorf("updating catalog index: %w", err)
	}

	p.journal(draft, filename, history.StatusProcessed, "", w)
	return filename, nil
}

// writeArtifact writes the rendered document via temp file and rename.
func (p *Pipeline) writeArtifact(filename, doc string) error {
	outDir := p.OutDir
	if outDir == "" {
		outDir = "."
	}
	destPath := filepath.Join(outDir, filename)

	tmpFile, err := os.CreateTemp(outDir, ".copydesk-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(doc)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing artifact: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// journal records an outcome row; journal failures are warnings only.
func (p *Pipeline) journal(draft types.Draft, filename, status, detail string, w io.Writer) {
	if p.History == nil || p.DryRun {
		return
	}
	err := p.History.Record(history.Entry{
		DraftID: draft.ID,
		Title:   sanitize.Strip(draft.Title),
		Slug:    strings.TrimSuffix(strings.TrimPrefix(filename, "post-"), ".html"),
		Status:  status,
		Detail:  detail,
		Mode:    p.Mode,
	})
	if err != nil {
		fmt.Fprintf(w, "  warning: could not record history: %v\n", err)
	}
}
