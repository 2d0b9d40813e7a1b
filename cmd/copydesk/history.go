// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bbnet/copydesk/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent pipeline outcomes",
	Long: `History lists the most recent journal rows: which drafts were
processed or skipped, into which artifact, and when. The journal is an
audit trail only; it never changes what the pipeline does.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of rows to show")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	cfg := effectiveConfig()

	store, err := history.Open(cfg.History.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}

	fmt.Printf("%-19s  %-9s  %-6s  %-40s  %s\n", "When", "Status", "Mode", "Title", "Slug")
	fmt.Println(strings.Repeat("-", 100))
	for _, e := range entries {
		title := e.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Printf("%-19s  %-9s  %-6s  %-40s  %s\n",
			e.ProcessedAt.Format("2006-01-02 15:04:05"), e.Status, e.Mode, title, e.Slug)
	}
	return nil
}
