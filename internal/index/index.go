// Package index loads the package popularity list the picker ranks against.
//
// The list is fetched once per process from the remote index and held
// immutable for the session. A successful fetch refreshes the local SQLite
// cache; a failed fetch degrades to the cache, and only when both are empty
// do package-selection commands see an explicit unavailable error.
package index

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/blackwell-systems/uvpick/internal/search"
	"github.com/blackwell-systems/uvpick/internal/store"
)

// DefaultURL serves the top PyPI packages by 30-day download count.
const DefaultURL = "https://hugovk.github.io/top-pypi-packages/top-pypi-packages-30-days.min.json"

// ErrUnavailable means neither the remote index nor the local cache could
// produce a package list. All dependent commands consume this uniformly.
var ErrUnavailable = errors.New("package index unavailable")

// document is the remote index shape: a top-level rows array of
// project/download_count objects. A missing download_count is zero.
type document struct {
	Rows []struct {
		Project       string `json:"project"`
		DownloadCount int64  `json:"download_count"`
	} `json:"rows"`
}

// Client fetches the index and mediates the cache.
type Client struct {
	URL   string
	HTTP  *http.Client
	Cache *store.Store // optional; nil disables caching
}

// NewClient returns a Client for the given URL, with DefaultURL as fallback.
func NewClient(url string, cache *store.Store) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		URL:   url,
		HTTP:  &http.Client{Timeout: 30 * time.Second},
		Cache: cache,
	}
}

// Load returns the package list, preferring a fresh fetch and falling back
// to the cache. Cache writes are best effort: a failed refresh never fails
// the load.
func (c *Client) Load(ctx context.Context) ([]search.Record, error) {
	records, fetchErr := c.fetch(ctx)
	if fetchErr == nil {
		if c.Cache != nil {
			_ = c.Cache.ReplaceIndex(records, time.Now())
		}
		return records, nil
	}

	if c.Cache != nil {
		if cached, err := c.Cache.ListIndex(); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, fetchErr)
}

func (c *Client) fetch(ctx context.Context) ([]search.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build index request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index fetch returned %s", resp.Status)
	}

	var doc document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}

	records := make([]search.Record, len(doc.Rows))
	for i, row := range doc.Rows {
		records[i] = search.Record{Project: row.Project, DownloadCount: row.DownloadCount}
	}
	return records, nil
}
