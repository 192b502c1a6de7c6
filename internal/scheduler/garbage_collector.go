package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/scape/internal/index"
	"github.com/MrSnakeDoc/scape/internal/logger"
	redisstore "github.com/MrSnakeDoc/scape/internal/store/redis"
)

const (
	// DefaultGCThreshold is the duration after which disabled bookmarks are deleted
	DefaultGCThreshold = 30 * 24 * time.Hour // 30 days
)

// GarbageCollector purges bookmarks that left the export long ago
type GarbageCollector struct {
	store     *redisstore.Store
	index     *index.MemoryIndex
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	now       func() time.Time
	stopCh    chan struct{}
	stopOnce  sync.Once
}

// NewGarbageCollector creates a new garbage collector. store may be nil.
func NewGarbageCollector(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     store,
		index:     idx,
		logger:    log.With(logger.String("component", "gc")),
		interval:  interval,
		threshold: threshold,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	gc.Collect(ctx)

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gc.Collect(ctx)
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	gc.stopOnce.Do(func() { close(gc.stopCh) })
}

// Collect removes bookmarks disabled for longer than the threshold and
// returns how many were deleted.
func (gc *GarbageCollector) Collect(ctx context.Context) int {
	now := gc.now()
	deleted := 0

	for _, bookmark := range gc.index.GetAllBookmarks() {
		if !bookmark.Disabled || bookmark.UpdatedAt.IsZero() {
			continue
		}

		disabledFor := now.Sub(bookmark.UpdatedAt)
		if disabledFor < gc.threshold {
			continue
		}

		gc.index.DeleteBookmark(bookmark.ID)

		if gc.store != nil {
			if err := gc.store.DeleteBookmark(ctx, bookmark.ID); err != nil {
				gc.logger.Warn("failed to delete bookmark from redis",
					logger.String("bookmark_id", bookmark.ID),
					logger.Error(err))
			}
		}

		gc.logger.Info("garbage collected disabled bookmark",
			logger.String("bookmark_id", bookmark.ID),
			logger.String("title", bookmark.Title),
			logger.Duration("disabled_for", disabledFor))

		deleted++
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed", logger.Int("bookmarks_deleted", deleted))
	} else {
		gc.logger.Debug("no bookmarks to garbage collect")
	}

	return deleted
}
