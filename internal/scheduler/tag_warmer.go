package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linkbridge/internal/domain"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
)

// TagRefresher recomputes a tag listing from the backend and stores it,
// bypassing any cached copy.
type TagRefresher interface {
	RefreshTags(ctx context.Context, f domain.TagFilters) (int, error)
}

// TagWarmer keeps the full tag listing (the one Shaarli clients fetch for
// autocompletion) warm in the cache.
type TagWarmer struct {
	refresher TagRefresher
	logger    logger.Logger
	interval  time.Duration
	stopCh    chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

// NewTagWarmer creates a warmer refreshing every interval.
func NewTagWarmer(refresher TagRefresher, log logger.Logger, interval time.Duration) *TagWarmer {
	return &TagWarmer{
		refresher: refresher,
		logger:    log,
		interval:  interval,
		stopCh:    make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start warms once, then periodically until Stop or ctx is done.
// A failed warm-up is logged: the cache fills on the next request anyway.
func (tw *TagWarmer) Start(ctx context.Context) error {
	if tw.interval <= 0 {
		close(tw.done)
		return fmt.Errorf("tag warmer interval must be > 0, got %v", tw.interval)
	}

	tw.warm(ctx)

	ticker := time.NewTicker(tw.interval)
	go func() {
		defer close(tw.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tw.warm(ctx)
			case <-tw.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the warmer and waits for the running refresh, if any.
func (tw *TagWarmer) Stop() {
	tw.stopOnce.Do(func() { close(tw.stopCh) })
	<-tw.done
}

// warm refreshes the default tag listing
func (tw *TagWarmer) warm(ctx context.Context) {
	start := time.Now()
	count, err := tw.refresher.RefreshTags(ctx, domain.TagFilters{All: true})
	if err != nil {
		tw.logger.Warn("failed to warm tag cache", logger.Error(err))
		return
	}
	tw.logger.Debug("tag cache warmed",
		logger.Int("count", count),
		logger.Duration("duration", time.Since(start)))
}
