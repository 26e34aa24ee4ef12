package lang

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/segmentio/fasthash/fnv1a"

	"github.com/ardnew/jexpr/filter"
	"github.com/ardnew/jexpr/lang/ast"
)

// Cache holds parsed expression trees keyed by their source text and the
// options that affect parsing. Trees are immutable once built, so a cached
// tree may be evaluated by many goroutines at once.
//
// The zero value is not usable; call NewCache.
type Cache struct {
	entries sync.Map // cacheKey -> *cacheEntry
	hits    atomic.Uint64
	misses  atomic.Uint64
}

type cacheKey struct {
	filters  *filter.Registry
	hash     uint64
	maxDepth int
}

// cacheEntry parses its source exactly once.
type cacheEntry struct {
	once   sync.Once
	source string
	expr   ast.Expr
	err    error
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// Parse returns the tree for s, parsing it on first use. Failed parses are
// cached as well.
func (c *Cache) Parse(ctx context.Context, s string, opts ...Option) (ast.Expr, error) {
	o := makeOptions(opts...)

	key := cacheKey{
		filters:  o.filters,
		hash:     fnv1a.AddUint64(fnv1a.HashString64(s), uint64(o.maxDepth)),
		maxDepth: o.maxDepth,
	}

	fresh := &cacheEntry{source: s}

	v, hit := c.entries.LoadOrStore(key, fresh)

	e, _ := v.(*cacheEntry)
	if e == nil || e.source != s {
		// Hash collision with a different source.
		o.logger.DebugContext(ctx, "cache collision",
			slog.String("hash", strconv.FormatUint(key.hash, 16)))

		return ParseString(ctx, s, opts...)
	}

	if hit {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}

	o.logger.TraceContext(ctx, "cache lookup",
		slog.String("hash", strconv.FormatUint(key.hash, 16)),
		slog.Bool("cache_hit", hit))

	e.once.Do(func() {
		e.expr, e.err = ParseString(ctx, s, opts...)
	})

	return e.expr, e.err
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	n := 0

	c.entries.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// Stats returns the number of lookups that found and did not find an
// entry.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Reset removes all entries and zeroes the counters.
func (c *Cache) Reset() {
	c.entries.Clear()
	c.hits.Store(0)
	c.misses.Store(0)
}
