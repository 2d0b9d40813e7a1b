// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render assembles the self-contained publishable document for one
// processed draft.
package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"text/template"

	"github.com/bbnet/copydesk/internal/sanitize"
	"github.com/bbnet/copydesk/pkg/types"
)

// The document template. text/template rather than html/template: the
// edited body is raw HTML that must pass through byte-for-byte, so every
// other field is escaped explicitly during data prep.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Post Preview</title>
    <link rel="stylesheet" href="post-style.css">
</head>
<body>

<div class="headline-row">
    <h1 id="headline">{{.Title}}</h1>
    <button class="copy-btn" onclick="copyText('headline')">copy</button>
</div>

<article id="postBody">
{{.Body}}
{{- if .Previously}}

<div class="previously" id="previously">
<strong>Previously:</strong>
<ul>
{{- range .Previously}}
<li><a href="{{.URL}}">{{.Title}}</a></li>
{{- end}}
</ul>
</div>
{{- end}}
</article>

<div class="post-actions">
    <button class="copy-btn" onclick="copyPostOnly()">Copy post</button>
    <button class="copy-btn" onclick="copyPreviouslyOnly()">Copy previously</button>
</div>

<hr>

<div class="metadata">

<div class="section-header">
    <h3>Source</h3>
    <button class="copy-btn" onclick="copyText('sourceUrl')">copy</button>
</div>
<p class="source-url" id="sourceUrl">{{.SourceURL}}</p>

<h3>Headlines (70 characters max)</h3>
{{- range .Headlines}}
<div class="item-row"><span>{{.}}</span><button class="copy-btn" onclick="copyThis(this)">copy</button></div>
{{- end}}

<div class="section-header" style="margin-top: 1.5em;">
    <h3>Category Tags</h3>
    <button class="copy-btn" onclick="copyText('tags')">copy</button>
</div>
<p id="tags">{{.Tags}}</p>

<div class="section-header" style="margin-top: 1.5em;">
    <h3>Focus Keyphrase</h3>
    <button class="copy-btn" onclick="copyText('focusKeyphrase')">copy</button>
</div>
<p id="focusKeyphrase">{{.FocusKeyphrase}}</p>

<h3>Meta Headlines (60 characters max)</h3>
{{- range .MetaHeadlines}}
<div class="item-row"><span>{{.}}</span><button class="copy-btn" onclick="copyThis(this)">copy</button></div>
{{- end}}

<h3>Meta Descriptions (120 characters max)</h3>
{{- range .MetaDescriptions}}
<div class="item-row"><span>{{.}}</span><button class="copy-btn" onclick="copyThis(this)">copy</button></div>
{{- end}}

<div class="section-header" style="margin-top: 1.5em;">
    <h3>Author</h3>
</div>
<p>{{.Author}}</p>

<div class="section-header" style="margin-top: 1.5em;">
    <h3>Copy Edits Made</h3>
</div>
<p style="color: #666; font-size: 14px;">
{{.CopyEdits}}
</p>

</div>

<script src="post-script.js"></script>

</body>
</html>
`))

// page is the fully escaped template input.
type page struct {
	Title            string
	Body             string
	Previously       []types.RelatedLink
	SourceURL        string
	Headlines        []string
	Tags             string
	FocusKeyphrase   string
	MetaHeadlines    []string
	MetaDescriptions []string
	Author           string
	CopyEdits        string
}

// Filename derives the artifact filename for a draft title.
func Filename(title string) string {
	return fmt.Sprintf("post-%s.html", Slug(sanitize.Strip(title)))
}

// Render produces the publishable document for one draft. It is a pure
// function of its inputs: identical (draft, result) pairs yield
// byte-identical output. The related-content block is rendered only when
// links exist and the edited body carries no cross-reference block of its
// own; never both.
func Render(draft types.Draft, result types.ProcessingResult) (string, error) {
	var previously []types.RelatedLink
	if len(result.Previously) > 0 && !sanitize.HasCrossReferences(result.EditedContent) {
		for _, l := range result.Previously {
			previously = append(previously, types.RelatedLink{
				Title: html.EscapeString(l.Title),
				URL:   html.EscapeString(l.URL),
			})
		}
	}

	p := page{
		Title:            html.EscapeString(sanitize.Strip(draft.Title)),
		Body:             result.EditedContent,
		Previously:       previously,
		SourceURL:        html.EscapeString(draft.EditURL),
		Headlines:        escapeAll(result.Headlines),
		Tags:             html.EscapeString(result.Tags),
		FocusKeyphrase:   html.EscapeString(result.FocusKeyphrase),
		MetaHeadlines:    escapeAll(result.MetaHeadlines),
		MetaDescriptions: escapeAll(result.MetaDescriptions),
		Author:           html.EscapeString(draft.Author),
		CopyEdits:        strings.ReplaceAll(html.EscapeString(result.CopyEditsMade), "\n", "<br>\n"),
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return buf.String(), nil
}

func escapeAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = html.EscapeString(v)
	}
	return out
}
