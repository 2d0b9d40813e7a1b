// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize reduces raw HTML bodies to plain text for display and
// word counts, and detects existing cross-reference blocks.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tagPattern matches any markup tag for the textual fallback path.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// crossRefMarkers is the fixed vocabulary that signals an existing
// related-content block. Matching is a case-insensitive substring test,
// not a structural parse.
var crossRefMarkers = []string{
	"previously:",
	"see also:",
	`class="previously"`,
	`id="previously"`,
}

// Strip removes all markup tags, decodes HTML entities, and trims
// surrounding whitespace.
func Strip(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		// The parser is lenient; this path is for truly unreadable input.
		return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(raw, "")))
	}
	return strings.TrimSpace(doc.Text())
}

// WordCount counts whitespace-separated words in the stripped text.
func WordCount(raw string) int {
	return len(strings.Fields(Strip(raw)))
}

// HasCrossReferences reports whether the body already carries a
// related-content block, so the renderer must not synthesize another.
func HasCrossReferences(raw string) bool {
	lower := strings.ToLower(raw)
	for _, marker := range crossRefMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
