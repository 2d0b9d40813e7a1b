// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bbnet/copydesk/internal/sanitize"
	"github.com/bbnet/copydesk/pkg/types"
)

// SelectorAll selects every draft in the batch.
const SelectorAll = "all"

// WorkItem pairs a draft with its 1-based position in the batch, so status
// output matches the numbering the operator saw in the listing.
type WorkItem struct {
	Position int
	Draft    types.Draft
}

// WorkSet is the subset of a batch that is selected and eligible for
// processing, plus counts of what selection dropped.
type WorkSet struct {
	Items             []WorkItem
	SkippedOutOfRange int
	SkippedNoContent  int
}

// Resolve maps a selector onto the batch. The selector is either "all" or a
// comma-separated list of 1-based indices. A non-numeric token aborts the
// run before any draft is touched. Out-of-range indices and empty-content
// drafts are dropped with a warning, never fatally — even when explicitly
// selected.
func Resolve(batch *types.DraftBatch, selector string, w io.Writer) (WorkSet, error) {
	var indices []int
	if strings.EqualFold(strings.TrimSpace(selector), SelectorAll) {
		for i := 1; i <= batch.Len(); i++ {
			indices = append(indices, i)
		}
	} else {
		for _, token := range strings.Split(selector, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(token))
			if err != nil {
				return WorkSet{}, fmt.Errorf("invalid selection %q: use comma-separated numbers or %q", token, SelectorAll)
			}
			indices = append(indices, n)
		}
	}

	var ws WorkSet
	for _, n := range indices {
		if n < 1 || n > batch.Len() {
			fmt.Fprintf(w, "warning: draft #%d out of range, skipping\n", n)
			ws.SkippedOutOfRange++
			continue
		}
		draft := batch.Drafts[n-1]
		if strings.TrimSpace(draft.Content) == "" {
			fmt.Fprintf(w, "warning: draft #%d %q has no content, skipping\n", n, sanitize.Strip(draft.Title))
			ws.SkippedNoContent++
			continue
		}
		ws.Items = append(ws.Items, WorkItem{Position: n, Draft: draft})
	}
	return ws, nil
}
