// Package editor sends a draft through the external copy-editing and
// metadata-generation service and parses the structured result.
package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bbnet/copydesk/internal/sanitize"
	"github.com/bbnet/copydesk/pkg/types"
)

// Backend abstracts the transformation service so tests can supply a mock
// and dry runs can bypass the network entirely.
type Backend interface {
	Edit(ctx context.Context, draft types.Draft) (types.ProcessingResult, error)
}

// ParseResult extracts the first JSON object substring from a raw service
// reply and unmarshals it. The service is prompted to answer with bare
// JSON, but replies wrapped in prose or code fences are common enough
// that the parser scans for the object instead of trusting the framing.
func ParseResult(reply string) (types.ProcessingResult, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return types.ProcessingResult{}, fmt.Errorf("no JSON object found in service reply")
	}

	var result types.ProcessingResult
	if err := json.Unmarshal([]byte(reply[start:end+1]), &result); err != nil {
		return types.ProcessingResult{}, fmt.Errorf("parsing service reply: %w", err)
	}
	return result, nil
}

// DryRunBackend produces a deterministic placeholder result derived only
// from the draft itself. It performs no network calls.
type DryRunBackend struct{}

// Edit returns the placeholder result for a dry run.
func (DryRunBackend) Edit(_ context.Context, draft types.Draft) (types.ProcessingResult, error) {
	title := sanitize.Strip(draft.Title)

	numbered := func(prefix string) []string {
		out := make([]string, 5)
		for i := range out {
			out[i] = fmt.Sprintf("%s %d: %s", prefix, i+1, title)
		}
		return out
	}

	keyphrase := strings.Fields(strings.ToLower(title))
	if len(keyphrase) > 4 {
		keyphrase = keyphrase[:4]
	}

	return types.ProcessingResult{
		EditedContent:    draft.Content,
		CopyEditsMade:    "Dry run - no edits made",
		Headlines:        numbered("Headline"),
		MetaHeadlines:    numbered("Meta headline"),
		MetaDescriptions: numbered("Meta description"),
		Tags:             "tag1, tag2, tag3",
		FocusKeyphrase:   strings.Join(keyphrase, " "),
	}, nil
}
