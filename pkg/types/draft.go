// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared record types and per-stage configuration
// for the copydesk pipeline.
package types

import "time"

// Draft is one pending content item fetched from the source system. It is
// immutable after the connector builds it; Content may legitimately be empty.
type Draft struct {
	// ID is the source system's identifier, stable across fetches.
	ID string `json:"id" yaml:"id"`

	// Title is the raw title and may carry HTML entities.
	Title string `json:"title" yaml:"title"`

	// Author is the display name; "Unknown" when unresolved.
	Author string `json:"author" yaml:"author"`

	// Content is the raw HTML body. Empty content is a valid state.
	Content string `json:"content" yaml:"content"`

	// EditURL is an optional deep link back to the source system.
	EditURL string `json:"editUrl,omitempty" yaml:"edit_url,omitempty"`
}

// DraftBatch is an ordered snapshot of drafts with provenance.
type DraftBatch struct {
	Drafts    []Draft
	FromCache bool
	FetchedAt time.Time
}

// Len returns the number of drafts in the batch.
func (b *DraftBatch) Len() int { return len(b.Drafts) }

// RelatedLink is one related-article reference for a "Previously" block.
type RelatedLink struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// ProcessingResult is the structured output of transforming one draft:
// the copy-edited body plus the SEO metadata the editorial workflow needs.
// The JSON keys are the contract with the transformation service.
type ProcessingResult struct {
	EditedContent    string        `json:"edited_content"`
	CopyEditsMade    string        `json:"copy_edits_made"`
	Headlines        []string      `json:"headlines"`
	Tags             string        `json:"tags"`
	FocusKeyphrase   string        `json:"focus_keyphrase"`
	MetaHeadlines    []string      `json:"meta_headlines"`
	MetaDescriptions []string      `json:"meta_descriptions"`
	Previously       []RelatedLink `json:"previously_links,omitempty"`
}

// CatalogEntry is one published-artifact record in the catalog index.
type CatalogEntry struct {
	Path  string `json:"path" yaml:"path"`
	Title string `json:"title" yaml:"title"`
}
