package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/scape/internal/domain"
	"github.com/MrSnakeDoc/scape/internal/index"
	"github.com/MrSnakeDoc/scape/internal/logger"
	"github.com/MrSnakeDoc/scape/internal/sources/export"
	redisstore "github.com/MrSnakeDoc/scape/internal/store/redis"
)

// ReloadStatus describes the outcome of the last reload attempt.
type ReloadStatus struct {
	LastAttempt time.Time `json:"last_attempt"`
	LastSuccess time.Time `json:"last_success"`
	LastError   string    `json:"last_error,omitempty"`
	Bookmarks   int       `json:"bookmarks"`
	Disabled    int       `json:"disabled"`
}

// BookmarkReloader keeps the index in step with the bookmark export
type BookmarkReloader struct {
	loader        *export.Loader
	mapper        *export.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}

	mu     sync.Mutex
	status ReloadStatus
}

// NewBookmarkReloader creates a new bookmark reloader. store may be nil.
func NewBookmarkReloader(
	bookmarkFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BookmarkReloader {
	return &BookmarkReloader{
		loader:        export.NewLoader(bookmarkFile),
		mapper:        export.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log.With(logger.String("component", "reloader")),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the export once, then reloads on every tick and trigger.
// A failed first load is only fatal when nothing was restored from Redis.
func (br *BookmarkReloader) Start(ctx context.Context) error {
	if err := br.Reload(ctx); err != nil {
		if br.index.Document() == nil {
			return fmt.Errorf("initial bookmark reload failed: %w", err)
		}
		br.logger.Warn("initial bookmark reload failed, serving restored bookmarks",
			logger.Error(err))
	}

	ticker := time.NewTicker(br.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				br.reloadLogged(ctx)
			case <-br.manualTrigger:
				br.logger.Info("manual bookmark reload triggered")
				br.reloadLogged(ctx)
			case <-br.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (br *BookmarkReloader) reloadLogged(ctx context.Context) {
	if err := br.Reload(ctx); err != nil {
		br.logger.Error("failed to reload bookmarks", logger.Error(err))
	}
}

// Stop stops the reloader
func (br *BookmarkReloader) Stop() {
	br.stopOnce.Do(func() { close(br.stopCh) })
}

// Status returns the outcome of the last reload.
func (br *BookmarkReloader) Status() ReloadStatus {
	br.mu.Lock()
	defer br.mu.Unlock()
	return br.status
}

// Reload parses the export and replaces the index contents. Bookmarks that
// left the export stay in the index as disabled until garbage collected.
func (br *BookmarkReloader) Reload(ctx context.Context) error {
	started := time.Now()
	br.logger.Info("reloading bookmark export", logger.String("path", br.loader.Path()))

	bookmarks, disabled, err := br.reload(ctx)

	br.mu.Lock()
	br.status.LastAttempt = started
	if err != nil {
		br.status.LastError = err.Error()
	} else {
		br.status.LastError = ""
		br.status.LastSuccess = started
		br.status.Bookmarks = bookmarks
		br.status.Disabled = disabled
	}
	br.mu.Unlock()

	return err
}

func (br *BookmarkReloader) reload(ctx context.Context) (int, int, error) {
	doc, err := br.loader.Load()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to load bookmarks: %w", err)
	}

	newBookmarks, err := br.mapper.MapBookmarks(doc)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to map bookmarks: %w", err)
	}

	br.logger.Info("loaded bookmark export",
		logger.String("title", doc.Title),
		logger.Int("count", len(newBookmarks)))

	merged, disabled := mergeBookmarks(br.index.GetAllBookmarks(), newBookmarks, time.Now())
	if len(disabled) > 0 {
		br.logger.Info("marking removed bookmarks as disabled",
			logger.Int("count", len(disabled)))
	}

	br.index.UpdateBookmarks(merged)
	br.index.SetDocument(doc)

	// Redis mirrors the index; the index stays authoritative on failure
	if br.store != nil {
		if err := br.store.SaveBookmarksMany(ctx, merged); err != nil {
			br.logger.Warn("failed to save bookmarks to redis", logger.Error(err))
		}
		if err := br.store.SaveTree(ctx, doc); err != nil {
			br.logger.Warn("failed to save bookmark tree to redis", logger.Error(err))
		}
		if err := br.store.FlushCache(ctx); err != nil {
			br.logger.Warn("failed to flush resolution cache", logger.Error(err))
		}
	}

	return len(newBookmarks), len(disabled), nil
}

// mergeBookmarks carries usage counters over to the fresh entries and keeps
// previously loaded export bookmarks missing from fresh as disabled. A
// bookmark keeps the time it was first disabled so garbage collection can
// age it.
func mergeBookmarks(existing, fresh []*domain.Bookmark, now time.Time) (merged, disabled []*domain.Bookmark) {
	byID := make(map[string]*domain.Bookmark, len(existing))
	for _, bm := range existing {
		byID[bm.ID] = bm
	}

	merged = make([]*domain.Bookmark, 0, len(fresh))
	seen := make(map[string]bool, len(fresh))
	for _, bm := range fresh {
		if old, ok := byID[bm.ID]; ok {
			bm.Counter = old.Counter
			if !old.CreatedAt.IsZero() && old.CreatedAt.Before(bm.CreatedAt) {
				bm.CreatedAt = old.CreatedAt
			}
		}
		seen[bm.ID] = true
		merged = append(merged, bm)
	}

	for _, old := range existing {
		if seen[old.ID] || !old.HasSource(domain.SourceNetscape) {
			continue
		}
		if !old.Disabled {
			old.Disabled = true
			old.UpdatedAt = now
		}
		disabled = append(disabled, old)
		merged = append(merged, old)
	}

	return merged, disabled
}
