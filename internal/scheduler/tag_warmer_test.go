package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linkbridge/internal/domain"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
)

type countingRefresher struct {
	mu      sync.Mutex
	calls   int
	filters []domain.TagFilters
	err     error
}

func (c *countingRefresher) RefreshTags(_ context.Context, f domain.TagFilters) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.filters = append(c.filters, f)
	return 3, c.err
}

func (c *countingRefresher) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestTagWarmer_WarmsOnStartAndPeriodically(t *testing.T) {
	refresher := &countingRefresher{}
	tw := NewTagWarmer(refresher, logger.NewNop(), 10*time.Millisecond)

	if err := tw.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := refresher.count(); got < 1 {
		t.Fatalf("expected an immediate warm-up, got %d calls", got)
	}

	deadline := time.Now().Add(2 * time.Second)
	for refresher.count() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	tw.Stop()

	if got := refresher.count(); got < 3 {
		t.Errorf("expected periodic warm-ups, got %d calls", got)
	}
	if !refresher.filters[0].All {
		t.Errorf("warm-up should request every tag, got %+v", refresher.filters[0])
	}

	// no refresh after Stop
	stopped := refresher.count()
	time.Sleep(30 * time.Millisecond)
	if got := refresher.count(); got != stopped {
		t.Errorf("refresh after Stop: %d -> %d", stopped, got)
	}
}

func TestTagWarmer_FailureIsNotFatal(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("backend down")}
	tw := NewTagWarmer(refresher, logger.NewNop(), time.Hour)

	if err := tw.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	tw.Stop()
	tw.Stop() // idempotent

	if got := refresher.count(); got != 1 {
		t.Errorf("expected 1 call, got %d", got)
	}
}

func TestTagWarmer_StopsWithContext(t *testing.T) {
	refresher := &countingRefresher{}
	tw := NewTagWarmer(refresher, logger.NewNop(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	if err := tw.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	select {
	case <-tw.done:
	case <-time.After(time.Second):
		t.Fatal("warmer did not stop with its context")
	}
}

func TestTagWarmer_InvalidInterval(t *testing.T) {
	tw := NewTagWarmer(&countingRefresher{}, logger.NewNop(), 0)
	if err := tw.Start(context.Background()); err == nil {
		t.Error("Start() should reject a zero interval")
	}
}
