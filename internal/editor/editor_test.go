// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbnet/copydesk/pkg/types"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    types.ProcessingResult
		wantErr string
	}{
		{
			name:  "bare JSON object",
			reply: `{"edited_content":"<p>body</p>","copy_edits_made":"- fixed typo","headlines":["a","b"],"tags":"news","focus_keyphrase":"key phrase","meta_headlines":["m"],"meta_descriptions":["d"]}`,
			want: types.ProcessingResult{
				EditedContent:    "<p>body</p>",
				CopyEditsMade:    "- fixed typo",
				Headlines:        []string{"a", "b"},
				Tags:             "news",
				FocusKeyphrase:   "key phrase",
				MetaHeadlines:    []string{"m"},
				MetaDescriptions: []string{"d"},
			},
		},
		{
			name:  "JSON wrapped in prose",
			reply: "Here is the edited post:\n\n{\"edited_content\":\"x\",\"tags\":\"t\"}\n\nLet me know if you need anything else.",
			want: types.ProcessingResult{
				EditedContent: "x",
				Tags:          "t",
			},
		},
		{
			name:  "JSON inside a code fence",
			reply: "```json\n{\"edited_content\":\"fenced\"}\n```",
			want: types.ProcessingResult{
				EditedContent: "fenced",
			},
		},
		{
			name:  "nested braces in content",
			reply: `{"edited_content":"uses {curly} braces","copy_edits_made":"none"}`,
			want: types.ProcessingResult{
				EditedContent: "uses {curly} braces",
				CopyEditsMade: "none",
			},
		},
		{
			name:    "no JSON object at all",
			reply:   "Sorry, I cannot edit this post.",
			wantErr: "no JSON object found",
		},
		{
			name:    "empty reply",
			reply:   "",
			wantErr: "no JSON object found",
		},
		{
			name:    "malformed JSON",
			reply:   `{"edited_content": unterminated`,
			wantErr: "parsing service reply",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResult(tt.reply)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDryRunBackend(t *testing.T) {
	draft := types.Draft{
		ID:      "7",
		Title:   "<em>Big &amp; Bold News Hits The Wire</em>",
		Author:  "Jo Writer",
		Content: "<p>unchanged body</p>",
	}

	got, err := DryRunBackend{}.Edit(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, draft.Content, got.EditedContent, "dry run must not touch the body")
	assert.Equal(t, "Dry run - no edits made", got.CopyEditsMade)
	assert.Equal(t, "tag1, tag2, tag3", got.Tags)
	// Keyphrase is at most the first four words of the stripped title.
	assert.Equal(t, "big & bold news", got.FocusKeyphrase)

	require.Len(t, got.Headlines, 5)
	require.Len(t, got.MetaHeadlines, 5)
	require.Len(t, got.MetaDescriptions, 5)
	assert.Equal(t, "Headline 1: Big & Bold News Hits The Wire", got.Headlines[0])
	assert.Equal(t, "Meta headline 3: Big & Bold News Hits The Wire", got.MetaHeadlines[2])
	assert.Equal(t, "Meta description 5: Big & Bold News Hits The Wire", got.MetaDescriptions[4])

	again, err := DryRunBackend{}.Edit(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, got, again, "dry run output must be deterministic")
}

func TestDryRunBackendShortTitle(t *testing.T) {
	got, err := DryRunBackend{}.Edit(context.Background(), types.Draft{Title: "Two Words", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "two words", got.FocusKeyphrase)
}
