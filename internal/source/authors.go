// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import "context"

// AuthorCache memoizes author-name lookups for one connector instance.
// It is injected rather than process-global so tests and concurrent tools
// can hold isolated caches.
type AuthorCache struct {
	names map[int]string
	fetch func(ctx context.Context, id int) (string, error)
}

// NewAuthorCache builds a cache over the given lookup function.
func NewAuthorCache(fetch func(ctx context.Context, id int) (string, error)) *AuthorCache {
	return &AuthorCache{
		names: make(map[int]string),
		fetch: fetch,
	}
}

// Get returns the display name for id, or "Unknown" when the lookup fails.
// Failed lookups are cached too: one bad author ID should not cost a
// network round trip per draft.
func (c *AuthorCache) Get(ctx context.Context, id int) string {
	if name, ok := c.names[id]; ok {
		return name
	}

	name, err := c.fetch(ctx, id)
	if err != nil || name == "" {
		name = "Unknown"
	}
	c.names[id] = name
	return name
}
