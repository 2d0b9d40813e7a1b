// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bbnet/copydesk/pkg/types"
)

// writeCache persists the batch as a JSON array of drafts. The write goes
// through a temp file and rename so a crash never leaves a torn snapshot.
func (c *Connector) writeCache(batch *types.DraftBatch) error {
	data, err := json.MarshalIndent(batch.Drafts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling draft cache: %w", err)
	}

	dir := filepath.Dir(c.cfg.CachePath)
	tmpFile, err := os.CreateTemp(dir, ".pending-cache-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, c.cfg.CachePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// loadCache reads the last persisted snapshot. The snapshot's existence
// says nothing about freshness; FetchedAt carries the file's mod time so
// the caller can display how stale it is.
func (c *Connector) loadCache() (*types.DraftBatch, error) {
	data, err := os.ReadFile(c.cfg.CachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w (looked for %s)", ErrNoCache, c.cfg.CachePath)
		}
		return nil, fmt.Errorf("reading draft cache: %w", err)
	}

	var drafts []types.Draft
	if err := json.Unmarshal(data, &drafts); err != nil {
		return nil, fmt.Errorf("parsing draft cache %s: %w", c.cfg.CachePath, err)
	}

	fetchedAt := time.Time{}
	if info, err := os.Stat(c.cfg.CachePath); err == nil {
		fetchedAt = info.ModTime()
	}

	return &types.DraftBatch{Drafts: drafts, FromCache: true, FetchedAt: fetchedAt}, nil
}
