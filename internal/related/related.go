// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package related looks up published articles related to a draft for its
// "Previously" block. The lookup is best-effort: no credential means no
// links, never an error.
package related

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	"github.com/bbnet/copydesk/internal/claude"
	"github.com/bbnet/copydesk/internal/sanitize"
	"github.com/bbnet/copydesk/pkg/types"
)

const defaultMaxLinks = 3

// Finder returns related-article links for a draft.
type Finder interface {
	Find(ctx context.Context, title, content string) ([]types.RelatedLink, error)
}

// searchPromptTmpl asks the service for candidate articles on the
// publisher's own site. Replies outside the origin are discarded locally;
// the prompt is a hint, the filter is the guarantee.
var searchPromptTmpl = template.Must(template.New("related").Parse(`Suggest up to 3 article titles and realistic URLs from {{.Origin}} that might relate to this post: "{{.Title}}"

Return a JSON array: [{"title": "Article title", "url": "{{.Origin}}/YYYY/MM/DD/slug.html"}]
Only return the JSON, no explanation.`))

// ClaudeFinder queries the Claude Messages API for related articles.
type ClaudeFinder struct {
	Config types.RelatedConfig
	Client *http.Client
}

// Find suggests related links for the draft. A missing credential yields an
// empty result with no error; this sub-feature is optional.
func (f *ClaudeFinder) Find(ctx context.Context, title, _ string) ([]types.RelatedLink, error) {
	if f.Config.APIKey == "" {
		return nil, nil
	}

	var buf bytes.Buffer
	err := searchPromptTmpl.Execute(&buf, struct{ Origin, Title string }{
		Origin: f.origin(),
		Title:  sanitize.Strip(title),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering prompt: %w", err)
	}

	cl := &claude.Client{Config: f.Config.AIConfig, HTTPClient: f.Client}
	reply, err := cl.Complete(ctx, buf.String(), 1024)
	if err != nil {
		return nil, err
	}

	links, err := ParseLinks(reply)
	if err != nil {
		return nil, err
	}
	return Filter(links, f.origin(), f.maxLinks()), nil
}

func (f *ClaudeFinder) origin() string {
	if f.Config.Origin != "" {
		return f.Config.Origin
	}
	return "https://boingboing.net"
}

func (f *ClaudeFinder) maxLinks() int {
	if f.Config.MaxLinks > 0 {
		return f.Config.MaxLinks
	}
	return defaultMaxLinks
}

// ParseLinks extracts the first JSON array substring from a raw reply.
func ParseLinks(reply string) ([]types.RelatedLink, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array found in service reply")
	}

	var links []types.RelatedLink
	if err := json.Unmarshal([]byte(reply[start:end+1]), &links); err != nil {
		return nil, fmt.Errorf("parsing related links: %w", err)
	}
	return links, nil
}

// Filter discards candidates outside the publisher's origin and truncates
// to max. Filtering happens before truncation so off-origin noise cannot
// crowd out valid links.
func Filter(links []types.RelatedLink, origin string, max int) []types.RelatedLink {
	var kept []types.RelatedLink
	for _, l := range links {
		if strings.HasPrefix(l.URL, origin) {
			kept = append(kept, l)
		}
	}
	if max > 0 && len(kept) > max {
		kept = kept[:max]
	}
	return kept
}

// DryRunFinder returns a fixed deterministic placeholder set.
type DryRunFinder struct {
	Origin string
}

// Find returns three placeholder links on the configured origin.
func (f DryRunFinder) Find(_ context.Context, _, _ string) ([]types.RelatedLink, error) {
	origin := f.Origin
	if origin == "" {
		origin = "https://boingboing.net"
	}
	links := make([]types.RelatedLink, defaultMaxLinks)
	for i := range links {
		links[i] = types.RelatedLink{
			Title: fmt.Sprintf("Placeholder related article %d", i+1),
			URL:   fmt.Sprintf("%s/placeholder-%d.html", origin, i+1),
		}
	}
	return links, nil
}
