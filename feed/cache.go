package feed

import (
	"context"
	"sync"
	"time"

	"github.com/nordiskauto/bilvisning/types"
)

// CachedSource memoizes the first successful load of another source until
// ClearCache is called. Failures are never cached. It exists for long-lived
// processes such as the MCP server; interactive sessions load exactly once.
type CachedSource struct {
	source types.ListingSource

	mu       sync.Mutex
	feed     types.Feed
	loadedAt time.Time
	ok       bool
}

// Compile-time interface check
var _ types.ListingSource = (*CachedSource)(nil)

// NewCachedSource wraps source.
func NewCachedSource(source types.ListingSource) *CachedSource {
	return &CachedSource{source: source}
}

// Load returns the cached feed, loading it on first use.
func (c *CachedSource) Load(ctx context.Context) (types.Feed, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ok {
		return c.feed, nil
	}
	feed, err := c.source.Load(ctx)
	if err != nil {
		return types.Feed{}, err
	}
	c.feed, c.loadedAt, c.ok = feed, time.Now(), true
	return feed, nil
}

// LoadedAt reports when the cached feed was loaded, or the zero time.
func (c *CachedSource) LoadedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadedAt
}

// ClearCache drops the cached feed.
func (c *CachedSource) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feed, c.loadedAt, c.ok = types.Feed{}, time.Time{}, false
}
