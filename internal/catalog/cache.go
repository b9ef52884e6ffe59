// Package catalog caches the remote Ollama model catalog and derives the
// store categories and search results from it.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"ollamagui/pkg/types"
)

const (
	DefaultTTL          = time.Hour
	DefaultFetchTimeout = 10 * time.Second

	flightKey = "catalog"
)

// Options tunes a Cache. Zero values select defaults.
type Options struct {
	TTL          time.Duration
	FetchTimeout time.Duration
	Logger       *zerolog.Logger
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Cache holds the sorted catalog for TTL. Refreshes are coalesced so that
// concurrent callers on an expired cache share one fetch.
type Cache struct {
	src     Source
	ttl     time.Duration
	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger

	mu        sync.Mutex
	entries   []types.ModelDescriptor
	fetchedAt time.Time
	gen       uint64

	flight singleflight.Group
}

func NewCache(src Source, opts Options) *Cache {
	c := &Cache{
		src:     src,
		ttl:     opts.TTL,
		timeout: opts.FetchTimeout,
		now:     opts.Now,
		log:     zerolog.Nop(),
	}
	if c.ttl <= 0 {
		c.ttl = DefaultTTL
	}
	if c.timeout <= 0 {
		c.timeout = DefaultFetchTimeout
	}
	if c.now == nil {
		c.now = time.Now
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	return c
}

// Models returns the full catalog sorted by pull count, descending. On fetch
// failure it returns an empty list and the error; the cache is left as is.
func (c *Cache) Models(ctx context.Context) ([]types.ModelDescriptor, error) {
	if entries, ok := c.cached(); ok {
		cacheHits.Inc()
		return entries, nil
	}
	v, err, shared := c.flight.Do(flightKey, func() (any, error) {
		if entries, ok := c.cached(); ok {
			return entries, nil
		}
		return c.refresh(ctx)
	})
	if err != nil {
		return []types.ModelDescriptor{}, err
	}
	entries, ok := v.([]types.ModelDescriptor)
	if !ok {
		return []types.ModelDescriptor{}, fmt.Errorf("catalog: unexpected flight result %T", v)
	}
	if shared {
		entries = clone(entries)
	}
	return entries, nil
}

// Categorized returns the store buckets of the current catalog.
func (c *Cache) Categorized(ctx context.Context) (types.Categories, error) {
	entries, err := c.Models(ctx)
	if err != nil {
		return emptyCategories(), err
	}
	return Categorize(entries), nil
}

// Search returns up to MaxSearchResults entries matching term and the total
// number of matches.
func (c *Cache) Search(ctx context.Context, term string) ([]types.ModelDescriptor, int, error) {
	if term == "" {
		return []types.ModelDescriptor{}, 0, ErrEmptyQuery
	}
	entries, err := c.Models(ctx)
	if err != nil {
		return []types.ModelDescriptor{}, 0, err
	}
	matches := Filter(entries, term)
	return truncate(matches, MaxSearchResults), len(matches), nil
}

// Invalidate discards the cached catalog. A fetch already in flight still
// answers its callers but does not repopulate the cache.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = nil
	c.fetchedAt = time.Time{}
	c.gen++
	c.mu.Unlock()
	c.flight.Forget(flightKey)
	c.log.Debug().Msg("catalog cache invalidated")
}

// FetchedAt returns when the cache was last filled, zero when empty.
func (c *Cache) FetchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchedAt
}

func (c *Cache) cached() ([]types.ModelDescriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchedAt.IsZero() || c.now().Sub(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return clone(c.entries), true
}

func (c *Cache) refresh(ctx context.Context) ([]types.ModelDescriptor, error) {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	// Shared by every waiter, so one caller going away must not cancel it.
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()
	start := c.now()
	entries, err := c.src.Fetch(fctx)
	if err != nil {
		fetchTotal.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Msg("catalog fetch failed")
		return nil, fmt.Errorf("catalog fetch: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].PullCount > entries[j].PullCount })
	fetchTotal.WithLabelValues("ok").Inc()

	if len(entries) == 0 {
		// an empty catalog is retried on the next call instead of cached
		c.log.Warn().Msg("catalog fetch returned no models")
		return []types.ModelDescriptor{}, nil
	}

	c.mu.Lock()
	if c.gen == gen {
		c.entries = clone(entries)
		c.fetchedAt = c.now()
	}
	c.mu.Unlock()
	c.log.Info().Int("models", len(entries)).Dur("dur", c.now().Sub(start)).Msg("catalog refreshed")
	return entries, nil
}

func clone(in []types.ModelDescriptor) []types.ModelDescriptor {
	out := make([]types.ModelDescriptor, len(in))
	copy(out, in)
	return out
}
