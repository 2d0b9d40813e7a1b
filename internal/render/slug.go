// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"regexp"
	"strings"
)

// slugMaxLen caps the storage key derived from a title.
const slugMaxLen = 50

var (
	nonWordPattern   = regexp.MustCompile(`[^\w\s-]`)
	separatorPattern = regexp.MustCompile(`[-\s]+`)
)

// Slug normalizes a title into a filesystem-safe storage key: lowercase,
// non-word characters removed, whitespace and hyphen runs collapsed to a
// single hyphen, trimmed, capped at 50 characters. Deterministic; two
// titles reducing to the same slug overwrite the same artifact.
func Slug(title string) string {
	s := strings.ToLower(title)
	s = nonWordPattern.ReplaceAllString(s, "")
	s = separatorPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return s
}
