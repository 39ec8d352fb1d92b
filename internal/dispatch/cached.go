package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkbridge/internal/domain"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
)

// TagCache stores aggregated tag listings. Keys are opaque to the cache.
type TagCache interface {
	GetTags(ctx context.Context, key string) ([]domain.Tag, bool, error)
	SetTags(ctx context.Context, key string, tags []domain.Tag, ttl time.Duration) error
	InvalidateTags(ctx context.Context) error
}

// Cached serves SearchTags from a cache in front of another dispatcher.
// A successful AddLink invalidates the cache since it may create tags.
// Cache failures are logged and never fail the request.
//
// Every AddLink bumps a generation; a listing read from the backend is only
// stored if no AddLink completed in the meantime.
type Cached struct {
	next   Dispatcher
	cache  TagCache
	ttl    time.Duration
	logger logger.Logger

	mu  sync.RWMutex
	gen uint64
}

// NewCached wraps next.
func NewCached(next Dispatcher, cache TagCache, ttl time.Duration, log logger.Logger) *Cached {
	return &Cached{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

func (c *Cached) Kind() string { return Kind(c.next) + "+cache" }

func (c *Cached) SearchLinks(ctx context.Context, f domain.LinkFilters) ([]domain.Bookmark, error) {
	return c.next.SearchLinks(ctx, f)
}

func (c *Cached) SearchTags(ctx context.Context, f domain.TagFilters) ([]domain.Tag, error) {
	key := tagFiltersKey(f)

	tags, ok, err := c.cache.GetTags(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("tag cache read failed, querying backend",
			logger.String("key", key),
			logger.Error(err))
	case ok:
		c.logger.Debug("tag cache hit", logger.String("key", key), logger.Int("count", len(tags)))
		return tags, nil
	}

	gen := c.generation()
	tags, err = c.next.SearchTags(ctx, f)
	if err != nil {
		return nil, err
	}

	stored, err := c.store(ctx, gen, key, tags)
	switch {
	case err != nil:
		c.logger.Warn("tag cache write failed",
			logger.String("key", key),
			logger.Error(err))
	case !stored:
		c.logger.Debug("tag listing outdated by a new link, not cached", logger.String("key", key))
	}
	return tags, nil
}

// RefreshTags recomputes the listing for f from the backend and stores it,
// whatever is cached. It returns the number of tags stored.
// A listing outdated by a concurrent AddLink is dropped and counts as zero.
func (c *Cached) RefreshTags(ctx context.Context, f domain.TagFilters) (int, error) {
	gen := c.generation()
	tags, err := c.next.SearchTags(ctx, f)
	if err != nil {
		return 0, err
	}
	stored, err := c.store(ctx, gen, tagFiltersKey(f), tags)
	if err != nil {
		return 0, fmt.Errorf("failed to store tags: %w", err)
	}
	if !stored {
		return 0, nil
	}
	return len(tags), nil
}

func (c *Cached) AddLink(ctx context.Context, in domain.LinkInput) (domain.Bookmark, error) {
	b, err := c.next.AddLink(ctx, in)
	if err != nil {
		return b, err
	}

	c.mu.Lock()
	c.gen++
	err = c.cache.InvalidateTags(ctx)
	c.mu.Unlock()
	if err != nil {
		c.logger.Warn("tag cache invalidation failed", logger.Error(err))
	}
	return b, nil
}

func (c *Cached) generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// store writes tags under key unless the generation moved past gen.
func (c *Cached) store(ctx context.Context, gen uint64, key string, tags []domain.Tag) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.gen != gen {
		return false, nil
	}
	return true, c.cache.SetTags(ctx, key, tags, c.ttl)
}

func tagFiltersKey(f domain.TagFilters) string {
	if f.All {
		return fmt.Sprintf("o%d:all:v%s", f.Offset, f.Visibility)
	}
	return fmt.Sprintf("o%d:l%d:v%s", f.Offset, f.Limit, f.Visibility)
}
