// Package query implements the client-side collection cache: a
// key-addressed store of fetched collections with a staleness window,
// background refresh, request de-duplication, and entity-kind
// invalidation.
package query

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultStaleAfter is the staleness window: cached entries older than this
// are still served, but trigger a background refresh on read.
const DefaultStaleAfter = 5 * time.Minute

// Kind identifies one invalidation segment: all cache entries for one
// entity type, regardless of filter parameters.
type Kind string

const (
	KindCafes     Kind = "cafes"
	KindEmployees Kind = "employees"
)

// Key addresses one cached collection: an entity kind plus the filter
// parameters the collection was fetched with.
type Key struct {
	Kind   Kind
	Filter string
}

func (k Key) String() string {
	return string(k.Kind) + "?" + k.Filter
}

// FetchFunc loads a collection from the remote service.
type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value     any
	fetchedAt time.Time

	// stale is set by Invalidate. A stale entry is never served; the next
	// read refetches synchronously.
	stale bool
}

// Cache is the process-wide query cache. It is mutated only through Read
// and Invalidate; mutation coordinators call Invalidate after successful
// writes and never touch entries directly.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry

	// generations counts Invalidate calls per kind. A fetch records the
	// generation it started under; if Invalidate lands while the fetch is
	// in flight, the stored result is already outdated and is marked stale
	// on arrival.
	generations map[Kind]uint64

	group      singleflight.Group
	staleAfter time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithStaleAfter overrides the staleness window.
func WithStaleAfter(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.staleAfter = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		c.logger = logger
	}
}

// NewCache creates an empty cache with the default staleness window.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		entries:     make(map[Key]*entry),
		generations: make(map[Kind]uint64),
		staleAfter:  DefaultStaleAfter,
		logger:      slog.Default(),
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Read returns the collection for key. A fresh cached entry is returned
// immediately; an entry past the staleness window is still returned but
// additionally triggers a background refresh. A missing or invalidated
// entry is fetched synchronously. Concurrent reads for the same key share
// one in-flight fetch.
func (c *Cache) Read(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !e.stale {
		value := e.value
		aged := c.now().Sub(e.fetchedAt) > c.staleAfter
		c.mu.Unlock()

		cacheHits.WithLabelValues(string(key.Kind)).Inc()
		if aged {
			go c.refresh(key, fetch)
		}
		return value, nil
	}
	c.mu.Unlock()

	cacheMisses.WithLabelValues(string(key.Kind)).Inc()
	return c.fetch(ctx, key, fetch)
}

// Invalidate marks every entry of the given kind stale, regardless of
// filter parameters. Stale entries keep their value but the next Read for
// any of them refetches instead of serving it. In-flight fetches for the
// kind are detached from future readers and their results arrive already
// stale, so an invalidation is never lost to a racing fetch.
func (c *Cache) Invalidate(kind Kind) {
	c.mu.Lock()
	c.generations[kind]++
	marked := 0
	var forget []string
	for key, e := range c.entries {
		if key.Kind == kind {
			e.stale = true
			marked++
			forget = append(forget, key.String())
		}
	}
	c.mu.Unlock()

	// A Read issued after this point must not join a fetch that started
	// before it.
	for _, flightKey := range forget {
		c.group.Forget(flightKey)
	}

	cacheInvalidations.WithLabelValues(string(kind)).Inc()
	c.logger.Debug("Invalidated cache segment", "kind", kind, "entries", marked)
}

// fetch performs the synchronous fetch path, de-duplicated per key. On
// failure the previous entry, if any, is left untouched and remains
// servable; the error goes only to the callers of this read.
func (c *Cache) fetch(ctx context.Context, key Key, fetch FetchFunc) (any, error) {
	value, err, _ := c.group.Do(key.String(), func() (any, error) {
		gen := c.generation(key.Kind)

		// The fetch outcome is shared between every caller waiting on this
		// key; one caller's cancellation must not fail the others.
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.store(key, v, gen)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// refresh re-fetches an aged entry in the background. Failures are logged
// and the previous value stays servable; the reader that triggered the
// refresh already has its result.
func (c *Cache) refresh(key Key, fetch FetchFunc) {
	cacheRefreshes.WithLabelValues(string(key.Kind)).Inc()

	_, err, _ := c.group.Do(key.String(), func() (any, error) {
		gen := c.generation(key.Kind)

		v, err := fetch(context.Background())
		if err != nil {
			return nil, err
		}
		c.store(key, v, gen)
		return v, nil
	})
	if err != nil {
		c.logger.Warn("Background refresh failed", "key", key.String(), "error", err)
	}
}

func (c *Cache) generation(kind Kind) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[kind]
}

// store records a fetch result. gen is the kind's generation when the
// fetch started; if Invalidate has run since, the result predates the
// mutation and lands stale so the next read refetches.
func (c *Cache) store(key Key, value any, gen uint64) {
	c.mu.Lock()
	c.entries[key] = &entry{
		value:     value,
		fetchedAt: c.now(),
		stale:     c.generations[key.Kind] != gen,
	}
	c.mu.Unlock()
}
