// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package editor

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"text/template"

	"github.com/bbnet/copydesk/internal/claude"
	"github.com/bbnet/copydesk/pkg/types"
)

// editPromptTmpl is the copy-editing prompt sent to the service for each
// draft. The length limits for headlines and descriptions live here, in
// the contract with the service; nothing enforces them locally.
var editPromptTmpl = template.Must(template.New("edit").Parse(`Copy edit this contributor post. Preserve the author's voice while fixing errors and tightening prose.

TITLE: {{.Title}}
AUTHOR: {{.Author}}

CONTENT:
{{.Content}}

---

Rules:
- Fix objective errors (spelling, grammar, factual typos) and tighten prose.
- Preserve all structural block comments, hyperlinks, images, and embeds exactly as written.
- Never alter stated opinions and never inject your own commentary.
- Rewrite any youtube.com/shorts/VIDEO links to the canonical youtube.com/watch?v=VIDEO form.

Please provide:

1. EDITED_CONTENT: The copy-edited post
2. COPY_EDITS_MADE: Brief list of changes (e.g., "- Fixed typo: 'teh' -> 'the'")
3. HEADLINES: 5 headline options (70 chars max each, sentence case)
4. TAGS: 3-5 category tags, comma-separated, broadest to most specific
5. FOCUS_KEYPHRASE: SEO focus keyphrase (3-5 words)
6. META_HEADLINES: 5 meta headline options (60 chars max each)
7. META_DESCRIPTIONS: 5 meta description options (120 chars max each)

Output as a single JSON object with these exact keys: edited_content, copy_edits_made, headlines (array), tags, focus_keyphrase, meta_headlines (array), meta_descriptions (array). Do not include any text outside the JSON object.`))

// ClaudeBackend copy edits drafts through the Claude Messages API.
type ClaudeBackend struct {
	Config types.EditorConfig
	Client *http.Client
}

// Edit renders the copy-editing prompt for one draft, sends it, and parses
// the JSON object embedded in the reply.
func (c *ClaudeBackend) Edit(ctx context.Context, draft types.Draft) (types.ProcessingResult, error) {
	var buf bytes.Buffer
	if err := editPromptTmpl.Execute(&buf, draft); err != nil {
		return types.ProcessingResult{}, fmt.Errorf("rendering prompt: %w", err)
	}

	cl := &claude.Client{Config: c.Config.AIConfig, HTTPClient: c.Client}
	reply, err := cl.Complete(ctx, buf.String(), c.Config.MaxTokens)
	if err != nil {
		return types.ProcessingResult{}, err
	}
	return ParseResult(reply)
}
