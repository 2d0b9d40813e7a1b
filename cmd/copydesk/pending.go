// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bbnet/copydesk/internal/sanitize"
	"github.com/bbnet/copydesk/internal/source"
	"github.com/bbnet/copydesk/pkg/types"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List the pending draft queue",
	Long: `Pending fetches the queue of drafts awaiting review and prints a
numbered listing. Fresh fetches persist a JSON snapshot; --cached reads the
last snapshot without touching the network.`,
	RunE: runPending,
}

func init() {
	pendingCmd.Flags().Bool("cached", false, "load the last cached batch instead of fetching")

	rootCmd.AddCommand(pendingCmd)
}

func runPending(cmd *cobra.Command, args []string) error {
	cached, _ := cmd.Flags().GetBool("cached")

	batch, err := fetchBatch(cmd, cached)
	if err != nil {
		return err
	}

	listBatch(batch, os.Stdout)
	if batch.Len() > 0 {
		fmt.Println("\nTo process drafts, run:")
		fmt.Println("  copydesk process 1,3,5      # process specific drafts")
		fmt.Println("  copydesk process all        # process every draft")
		fmt.Println("  copydesk process all --dry-run   # preview without creating files")
	}
	return nil
}

// fetchBatch builds a connector from the effective config and fetches in
// the requested mode.
func fetchBatch(cmd *cobra.Command, cached bool) (*types.DraftBatch, error) {
	cfg := effectiveConfig()

	mode := source.ModeFresh
	if cached {
		mode = source.ModeCached
	} else {
		fmt.Fprintln(os.Stderr, "Fetching pending drafts...")
	}

	client := &http.Client{Timeout: cfg.Source.Timeout}
	conn := source.NewConnector(cfg.Source, client, nil)

	batch, err := conn.Fetch(cmd.Context(), mode, os.Stderr)
	if err != nil {
		return nil, err
	}
	if batch.FromCache {
		fmt.Fprintf(os.Stderr, "Loaded cached batch from %s (fetched %s)\n",
			cfg.Source.CachePath, batch.FetchedAt.Format("2006-01-02 15:04"))
	}
	return batch, nil
}

// listBatch prints the numbered queue the way operators select from it.
func listBatch(batch *types.DraftBatch, w io.Writer) {
	if batch.Len() == 0 {
		fmt.Fprintln(w, "No pending drafts found.")
		return
	}

	fmt.Fprintln(w, "\nPENDING DRAFTS")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	for i, d := range batch.Drafts {
		title := sanitize.Strip(d.Title)
		if title == "" {
			title = "Untitled"
		}
		if len(title) > 55 {
			title = title[:55]
		}
		fmt.Fprintf(w, "%2d. %s\n", i+1, title)
		fmt.Fprintf(w, "    Author: %s | Words: %d\n\n", d.Author, sanitize.WordCount(d.Content))
	}

	fmt.Fprintf(w, "Total: %d pending drafts\n", batch.Len())
	fmt.Fprintln(w, strings.Repeat("-", 60))
}
