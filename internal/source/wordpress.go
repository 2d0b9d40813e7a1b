// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bbnet/copydesk/pkg/types"
)

// WordPress REST shapes. Depending on the request context the API returns
// raw, rendered, or both; normalization into types.Draft happens here at
// the boundary so downstream stages never see the upstream variance.
type wpText struct {
	Raw      string `json:"raw"`
	Rendered string `json:"rendered"`
}

// value prefers the unrendered editorial text.
func (t wpText) value() string {
	if t.Raw != "" {
		return t.Raw
	}
	return t.Rendered
}

type wpPost struct {
	ID      int64  `json:"id"`
	Title   wpText `json:"title"`
	Content wpText `json:"content"`
	Author  int    `json:"author"`
	Link    string `json:"link"`
}

type wpUser struct {
	Name string `json:"name"`
}

// fetchFresh issues a single bounded-size request for drafts in pending
// review state and maps the response into canonical Draft records.
func (c *Connector) fetchFresh(ctx context.Context) (*types.DraftBatch, error) {
	if c.cfg.Username == "" || c.cfg.AppPassword == "" {
		return nil, ErrMissingCredentials
	}

	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/posts", c.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	q := url.Values{}
	q.Set("status", "pending")
	q.Set("per_page", strconv.Itoa(c.cfg.PerPage))
	q.Set("context", "edit")
	req.URL.RawQuery = q.Encode()
	req.SetBasicAuth(c.cfg.Username, c.cfg.AppPassword)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("fetching pending drafts: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, ErrAuthFailed
	case http.StatusForbidden:
		return nil, ErrAccessDenied
	default:
		return nil, fmt.Errorf("source API returned HTTP %d", resp.StatusCode)
	}

	var posts []wpPost
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, fmt.Errorf("parsing source response: %w", err)
	}

	batch := &types.DraftBatch{FetchedAt: c.now()}
	for _, p := range posts {
		batch.Drafts = append(batch.Drafts, types.Draft{
			ID:      strconv.FormatInt(p.ID, 10),
			Title:   p.Title.value(),
			Author:  c.authors.Get(ctx, p.Author),
			Content: p.Content.value(),
			EditURL: fmt.Sprintf("%s/wp-admin/post.php?post=%d&action=edit", c.cfg.BaseURL, p.ID),
		})
	}
	return batch, nil
}

// fetchAuthorName resolves an author ID to a display name via the users
// endpoint. Any failure maps to the "Unknown" fallback in the cache.
func (c *Connector) fetchAuthorName(ctx context.Context, id int) (string, error) {
	endpoint := fmt.Sprintf("%s/wp-json/wp/v2/users/%d", c.cfg.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.AppPassword)
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("user lookup returned HTTP %d", resp.StatusCode)
	}

	var u wpUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return "", err
	}
	return u.Name, nil
}

// isTimeout reports whether err is a deadline or timeout failure.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr interface{ Timeout() bool }
	return errors.As(err, &nerr) && nerr.Timeout()
}
