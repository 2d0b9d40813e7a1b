// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbnet/copydesk/internal/catalog"
	"github.com/bbnet/copydesk/internal/editor"
	"github.com/bbnet/copydesk/internal/history"
	"github.com/bbnet/copydesk/internal/pipeline"
	"github.com/bbnet/copydesk/internal/related"
)

var processCmd = &cobra.Command{
	Use:   "process <selector>",
	Short: "Copy edit, render, and catalog selected drafts",
	Long: `Process runs selected drafts through the full pipeline: copy editing
and metadata generation, related-content lookup, artifact rendering, and
catalog index registration.

The selector is "all" or a comma-separated list of queue positions from
"copydesk pending" (e.g. "1,3,5"). Drafts with no content are skipped even
when selected. With --dry-run the pipeline uses deterministic placeholder
data, makes no network calls, and writes nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().Bool("cached", false, "load the last cached batch instead of fetching")
	processCmd.Flags().Bool("dry-run", false, "preview without network calls or file writes")
	processCmd.Flags().String("out-dir", "", "directory for rendered artifacts (default \".\")")
	processCmd.Flags().String("index", "", "catalog index document (default \"index.html\")")
	processCmd.Flags().String("model", "", "transformation service model identifier")

	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	cached, _ := cmd.Flags().GetBool("cached")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	cfg := effectiveConfig()
	if v, _ := cmd.Flags().GetString("out-dir"); v != "" {
		cfg.Render.OutDir = v
	}
	if v, _ := cmd.Flags().GetString("index"); v != "" {
		cfg.Catalog.IndexPath = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		cfg.Editor.Model = v
		cfg.Related.Model = v
	}

	batch, err := fetchBatch(cmd, cached)
	if err != nil {
		return err
	}
	if batch.Len() == 0 {
		fmt.Println("No pending drafts found.")
		return nil
	}

	ws, err := pipeline.Resolve(batch, args[0], os.Stdout)
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Catalog: &catalog.Store{Path: cfg.Catalog.IndexPath},
		OutDir:  cfg.Render.OutDir,
		DryRun:  dryRun,
		Mode:    modeName(cached),
	}

	if dryRun {
		fmt.Println("[DRY RUN] No network calls or file writes will be made.")
		p.Editor = editor.DryRunBackend{}
		p.Related = related.DryRunFinder{Origin: cfg.Related.Origin}
	} else {
		// The transformation credential is a fatal precondition, checked
		// once before any draft is touched.
		if cfg.Editor.APIKey == "" {
			return errors.New("missing transformation service credential: set anthropic-api-key")
		}
		client := &http.Client{Timeout: cfg.Source.Timeout}
		p.Editor = &editor.ClaudeBackend{Config: cfg.Editor, Client: client}
		p.Related = &related.ClaudeFinder{Config: cfg.Related, Client: client}

		store, herr := history.Open(cfg.History.DBPath)
		if herr != nil {
			fmt.Fprintf(os.Stderr, "warning: history journal unavailable: %v\n", herr)
		} else {
			p.History = store
			defer store.Close()
		}
	}

	p.Run(cmd.Context(), ws, os.Stdout)
	return nil
}

func modeName(cached bool) string {
	if cached {
		return "cached"
	}
	return "fresh"
}
