package lang

import (
	"github.com/ardnew/jexpr/filter"
	"github.com/ardnew/jexpr/log"
)

// DefaultMaxDepth is the default limit on expression nesting.
const DefaultMaxDepth = 256

// Option configures parsing.
type Option func(*options)

type options struct {
	logger   log.Logger
	filters  *filter.Registry
	cache    *Cache
	maxDepth int
}

func makeOptions(opts ...Option) options {
	o := options{
		logger:   log.Default(),
		filters:  filter.Default(),
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithLogger sets the logger that traces grammar productions.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMaxDepth limits how deeply expressions may nest. Values below one
// restore the default.
func WithMaxDepth(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxDepth
		}

		o.maxDepth = n
	}
}

// WithFilters sets the registry that resolves filter names.
func WithFilters(r *filter.Registry) Option {
	return func(o *options) {
		if r != nil {
			o.filters = r
		}
	}
}

// WithCache makes Render reuse trees parsed from identical sources.
func WithCache(c *Cache) Option {
	return func(o *options) { o.cache = c }
}
