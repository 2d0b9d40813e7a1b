// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maintains the persisted index of published artifacts: a
// human-editable document embedding an ordered JS array of {file, title}
// records between recognizable anchor comments.
//
// Registration is append-only and unconditional. Exists lets callers probe
// for a duplicate before registering, but nothing consults it implicitly;
// re-registering the same artifact produces a second entry. That duplicate
// behavior is deliberate until the workflow around the index changes.
package catalog

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/bbnet/copydesk/pkg/types"
)

// anchors are the recognized insertion markers, in preference order. The
// new entry goes immediately after the first one present in the document.
var anchors = []string{
	"// New posts",
	"// Contributor posts (copy edited)",
}

// listDeclaration is the fallback insertion point when no anchor is found.
const listDeclaration = "const posts = ["

// entryPattern matches one embedded record line. Titles escape only the
// single-quote delimiter.
var entryPattern = regexp.MustCompile(`\{\s*file:\s*'((?:\\'|[^'])*)',\s*title:\s*'((?:\\'|[^'])*)'\s*\}`)

// Store mutates the catalog index document by textual insertion at a single
// point, leaving every other byte untouched. The document is opened,
// mutated, and closed per operation; concurrent pipeline invocations must
// be serialized by the operator.
type Store struct {
	Path string
}

// Entries parses the embedded record list in document order. A missing
// document is an empty catalog, not an error.
func (s *Store) Entries() ([]types.CatalogEntry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading catalog index: %w", err)
	}

	var entries []types.CatalogEntry
	for _, m := range entryPattern.FindAllStringSubmatch(string(data), -1) {
		entries = append(entries, types.CatalogEntry{
			Path:  unescapeTitle(m[1]),
			Title: unescapeTitle(m[2]),
		})
	}
	return entries, nil
}

// Exists reports whether an entry for the artifact path is already present.
func (s *Store) Exists(path string) (bool, error) {
	entries, err := s.Entries()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Path == path {
			return true, nil
		}
	}
	return false, nil
}

// Register inserts a new entry line after the first recognized anchor, or
// just inside the opening bracket of the list declaration when no anchor is
// found. A missing document is a warning and a no-op. The insert is
// unconditional; see the package comment on duplicates.
func (s *Store) Register(entry types.CatalogEntry, w io.Writer) error {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(w, "warning: %s not found, skipping catalog update\n", s.Path)
			return nil
		}
		return fmt.Errorf("reading catalog index: %w", err)
	}
	content := string(data)

	line := fmt.Sprintf("{ file: '%s', title: '%s' },", entry.Path, escapeTitle(entry.Title))

	for _, anchor := range anchors {
		idx := strings.Index(content, anchor)
		if idx < 0 {
			continue
		}
		pos := idx + len(anchor)
		if nl := strings.IndexByte(content[pos:], '\n'); nl >= 0 {
			pos += nl + 1
		} else {
			content += "\n"
			pos = len(content)
		}
		content = content[:pos] + "    " + line + "\n" + content[pos:]
		return s.write(content)
	}

	idx := strings.Index(content, listDeclaration)
	if idx < 0 {
		return fmt.Errorf("no insertion point found in %s", s.Path)
	}
	pos := idx + len(listDeclaration)
	content = content[:pos] + "\n    " + line + content[pos:]
	return s.write(content)
}

func (s *Store) write(content string) error {
	if err := os.WriteFile(s.Path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing catalog index: %w", err)
	}
	return nil
}

// escapeTitle escapes the single-quote delimiter only; no other escaping is
// performed by the embedding syntax.
func escapeTitle(title string) string {
	return strings.ReplaceAll(title, "'", `\'`)
}

func unescapeTitle(title string) string {
	return strings.ReplaceAll(title, `\'`, "'")
}
