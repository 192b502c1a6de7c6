package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/MrSnakeDoc/scape/internal/domain"
	"github.com/MrSnakeDoc/scape/internal/index"
	"github.com/MrSnakeDoc/scape/internal/logger"
)

func TestGarbageCollector_Collect(t *testing.T) {
	log := logger.New("error", false)
	memIndex := index.NewMemoryIndex()
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	bookmarks := []*domain.Bookmark{
		{
			ID:        "active",
			Title:     "Active",
			Sources:   []string{domain.SourceNetscape},
			Disabled:  false,
			UpdatedAt: now.Add(-90 * 24 * time.Hour), // Old but still in the export
		},
		{
			ID:        "recently-disabled",
			Title:     "Recently disabled",
			Sources:   []string{domain.SourceNetscape},
			Disabled:  true,
			UpdatedAt: now.Add(-10 * 24 * time.Hour), // Disabled 10 days ago
		},
		{
			ID:        "old-disabled",
			Title:     "Old disabled",
			Sources:   []string{domain.SourceNetscape},
			Disabled:  true,
			UpdatedAt: now.Add(-35 * 24 * time.Hour), // Disabled 35 days ago
		},
		{
			ID:       "disabled-no-timestamp",
			Title:    "No timestamp",
			Sources:  []string{domain.SourceNetscape},
			Disabled: true,
		},
	}

	memIndex.UpdateBookmarks(bookmarks)
	if err := store.SaveBookmarksMany(ctx, bookmarks); err != nil {
		t.Fatalf("SaveBookmarksMany failed: %v", err)
	}

	gc := NewGarbageCollector(store, memIndex, log, 24*time.Hour, 30*24*time.Hour)

	if deleted := gc.Collect(ctx); deleted != 1 {
		t.Errorf("Collect() deleted %d bookmarks, want 1", deleted)
	}

	if n := memIndex.BookmarkCount(); n != 3 {
		t.Errorf("Expected 3 bookmarks after GC, got %d", n)
	}

	for _, id := range []string{"active", "recently-disabled", "disabled-no-timestamp"} {
		if _, ok := memIndex.GetBookmark(id); !ok {
			t.Errorf("Bookmark %s was incorrectly removed", id)
		}
	}

	if _, ok := memIndex.GetBookmark("old-disabled"); ok {
		t.Error("Old disabled bookmark was not removed")
	}

	if _, err := store.GetBookmark(ctx, "old-disabled"); err == nil {
		t.Error("Old disabled bookmark was not removed from redis")
	}
}

func TestGarbageCollector_DefaultThreshold(t *testing.T) {
	gc := NewGarbageCollector(nil, index.NewMemoryIndex(), logger.NewNop(), time.Hour, 0)
	if gc.threshold != DefaultGCThreshold {
		t.Errorf("threshold = %v, want %v", gc.threshold, DefaultGCThreshold)
	}
}

func TestGarbageCollector_StartStop(t *testing.T) {
	memIndex := index.NewMemoryIndex()
	memIndex.AddBookmark(&domain.Bookmark{
		ID:        "old",
		Disabled:  true,
		UpdatedAt: time.Now().Add(-60 * 24 * time.Hour),
	})

	gc := NewGarbageCollector(nil, memIndex, logger.NewNop(), time.Hour, 0)
	if err := gc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	gc.Stop()
	gc.Stop()

	if memIndex.BookmarkCount() != 0 {
		t.Error("Start() should collect immediately")
	}
}
