package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"finboard/internal/cache"
	"finboard/internal/clock"
	"finboard/internal/log"
	"finboard/internal/storage"
)

const (
	defaultCacheSize     = 256
	defaultLookupTimeout = 250 * time.Millisecond
)

// Source is the persistent category store behind a ReadThrough.
type Source interface {
	GetCategory(ctx context.Context, name string) (storage.Category, error)
}

// ReadThroughOptions configures a ReadThrough. Zero values pick defaults.
type ReadThroughOptions struct {
	TTL       time.Duration
	CacheSize int
	Timeout   time.Duration
	// Fallback answers when the source has no entry or fails.
	Fallback Lookup
	Clock    clock.Clock
	Logger   *log.Logger
}

// ReadThrough serves styles from an LRU cache, loading misses from a Source.
type ReadThrough struct {
	source   Source
	cache    *cache.LRUCache[Style]
	timeout  time.Duration
	fallback Lookup
	logger   *log.Logger
}

// NewReadThrough wraps source with a TTL-bounded LRU cache.
func NewReadThrough(source Source, opts ReadThroughOptions) *ReadThrough {
	if opts.TTL <= 0 {
		opts.TTL = 5 * time.Minute
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultLookupTimeout
	}
	if opts.Fallback == nil {
		opts.Fallback = NewMemory(nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	return &ReadThrough{
		source:   source,
		cache:    cache.NewLRUCache[Style](opts.CacheSize, opts.TTL, opts.Clock),
		timeout:  opts.Timeout,
		fallback: opts.Fallback,
		logger:   opts.Logger.WithComponent(log.ComponentCatalog),
	}
}

// Style implements Lookup. Source failures are logged and answered by the
// fallback without being cached, so a later lookup retries the source.
func (r *ReadThrough) Style(name string) Style {
	name = strings.TrimSpace(name)
	if s, ok := r.cache.Get(name); ok {
		return s
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	c, err := r.source.GetCategory(ctx, name)
	switch {
	case err == nil:
		s := Style{Name: c.Name, Icon: c.Icon, Color: c.Color}
		if s.Icon == "" {
			s.Icon = DefaultIcon
		}
		if s.Color == "" {
			s.Color = DefaultColor
		}
		r.cache.Set(name, s)
		return s
	case errors.Is(err, storage.ErrCategoryNotFound):
		s := r.fallback.Style(name)
		r.cache.Set(name, s)
		return s
	default:
		r.logger.Warn("Category lookup failed, using fallback",
			log.FieldCategory, name,
			log.FieldError, err.Error())
		return r.fallback.Style(name)
	}
}

// Invalidate drops a cached entry, typically after the category is edited.
func (r *ReadThrough) Invalidate(name string) {
	r.cache.Delete(strings.TrimSpace(name))
}
