// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source fetches the pending-draft queue from the content-management
// system and caches it as a JSON snapshot.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bbnet/copydesk/pkg/types"
)

// Mode selects where a batch comes from.
type Mode int

const (
	// ModeFresh authenticates against the source API and fetches the live queue.
	ModeFresh Mode = iota
	// ModeCached loads the last persisted snapshot without touching the network.
	ModeCached
)

func (m Mode) String() string {
	if m == ModeCached {
		return "cached"
	}
	return "fresh"
}

// Transport error taxonomy. All are terminal for the current invocation;
// the connector never retries.
var (
	// ErrMissingCredentials is a configuration failure: fresh mode needs the
	// username/app-password pair before any work begins.
	ErrMissingCredentials = errors.New("missing source credentials: set wordpress-username and wordpress-app-password")

	// ErrAuthFailed means the source API rejected the credential pair (HTTP 401).
	ErrAuthFailed = errors.New("authentication failed: check the username and app password")

	// ErrAccessDenied means a network-level block, e.g. an IP that is not
	// allow-listed (HTTP 403).
	ErrAccessDenied = errors.New("access denied by the source API")

	// ErrTimeout means the batch fetch exceeded the request timeout.
	ErrTimeout = errors.New("source API request timed out")

	// ErrNoCache means cached mode found no snapshot to load.
	ErrNoCache = errors.New("no cached draft batch found: run a fresh fetch first")
)

// Connector fetches pending drafts and resolves author names through an
// injected AuthorCache.
type Connector struct {
	cfg     types.SourceConfig
	client  *http.Client
	authors *AuthorCache
	now     func() time.Time
}

// NewConnector builds a connector. A nil authors cache gets a default one
// backed by the source API's user lookup.
func NewConnector(cfg types.SourceConfig, client *http.Client, authors *AuthorCache) *Connector {
	if cfg.PerPage <= 0 {
		cfg.PerPage = 50
	}
	if cfg.CachePath == "" {
		cfg.CachePath = "pending-cache.json"
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	c := &Connector{cfg: cfg, client: client, now: time.Now}
	if authors == nil {
		authors = NewAuthorCache(c.fetchAuthorName)
	}
	c.authors = authors
	return c
}

// Fetch produces a DraftBatch from the selected mode. Fresh mode persists
// the batch to the cache path as a best-effort side effect; a cache-write
// failure is a warning, not a fetch failure. An empty queue is a valid
// empty batch.
func (c *Connector) Fetch(ctx context.Context, mode Mode, w io.Writer) (*types.DraftBatch, error) {
	if mode == ModeCached {
		return c.loadCache()
	}

	batch, err := c.fetchFresh(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.writeCache(batch); err != nil {
		fmt.Fprintf(w, "warning: could not write draft cache: %v\n", err)
	}
	return batch, nil
}
