package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/scape/internal/index"
	"github.com/MrSnakeDoc/scape/internal/logger"
	redisstore "github.com/MrSnakeDoc/scape/internal/store/redis"
)

// RedisSyncer restores the index from Redis on startup, so the service can
// answer before (or without) a successful parse of the export.
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync loads bookmarks, usage counts and the tree snapshot into the index.
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	rs.logger.Info("syncing bookmarks from redis to memory")

	bookmarks, err := rs.store.GetAllBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore bookmarks: %w", err)
	}

	stats, err := rs.store.GetUsageStats(ctx)
	if err != nil {
		rs.logger.Warn("failed to restore usage counters", logger.Error(err))
	}
	for _, bm := range bookmarks {
		if n, ok := stats[bm.ID]; ok && n > bm.Counter {
			bm.Counter = n
		}
	}

	if len(bookmarks) == 0 {
		rs.logger.Info("no bookmarks found in redis")
	} else {
		rs.index.UpdateBookmarks(bookmarks)
	}

	doc, err := rs.store.GetTree(ctx)
	switch {
	case errors.Is(err, redisstore.ErrTreeNotFound):
		rs.logger.Info("no bookmark tree found in redis")
	case err != nil:
		return fmt.Errorf("failed to restore bookmark tree: %w", err)
	default:
		rs.index.SetDocument(doc)
	}

	rs.logger.Info("synced bookmarks from redis",
		logger.Int("count", len(bookmarks)),
		logger.Bool("tree", doc != nil))

	return nil
}
