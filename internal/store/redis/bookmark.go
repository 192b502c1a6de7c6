package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/scape/internal/domain"
)

// ErrBookmarkNotFound is returned when no bookmark is stored under an ID.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// SaveBookmark stores a bookmark in Redis
func (s *Store) SaveBookmark(ctx context.Context, bookmark *domain.Bookmark) error {
	data, err := json.Marshal(bookmark)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, BookmarkKey(bookmark.ID), data, DefaultBookmarkTTL)
	pipe.SAdd(ctx, KeyAllBookmarks, bookmark.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save bookmark: %w", err)
	}

	return nil
}

// GetBookmark retrieves a bookmark from Redis by ID
func (s *Store) GetBookmark(ctx context.Context, id string) (*domain.Bookmark, error) {
	data, err := s.client.Get(ctx, BookmarkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrBookmarkNotFound, id)
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	var bookmark domain.Bookmark
	if err := json.Unmarshal(data, &bookmark); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}

	return &bookmark, nil
}

// GetAllBookmarks retrieves all bookmarks from Redis. IDs whose entry has
// expired are dropped from the ID set.
func (s *Store) GetAllBookmarks(ctx context.Context) ([]*domain.Bookmark, error) {
	ids, err := s.client.SMembers(ctx, KeyAllBookmarks).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmark IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Bookmark{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = BookmarkKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	bookmarks := make([]*domain.Bookmark, 0, len(ids))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var bookmark domain.Bookmark
		if err := json.Unmarshal([]byte(raw), &bookmark); err != nil {
			// Skip bookmarks that couldn't be decoded
			continue
		}
		bookmarks = append(bookmarks, &bookmark)
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, KeyAllBookmarks, stale...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune expired bookmark IDs: %w", err)
		}
	}

	return bookmarks, nil
}

// DeleteBookmark removes a bookmark and its usage count from Redis
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, BookmarkKey(id))
	pipe.SRem(ctx, KeyAllBookmarks, id)
	pipe.HDel(ctx, KeyUsage, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}

	return nil
}

// SaveBookmarksMany stores multiple bookmarks in Redis (bulk operation)
func (s *Store) SaveBookmarksMany(ctx context.Context, bookmarks []*domain.Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()

	for _, bookmark := range bookmarks {
		data, err := json.Marshal(bookmark)
		if err != nil {
			return fmt.Errorf("failed to marshal bookmark %s: %w", bookmark.ID, err)
		}

		pipe.Set(ctx, BookmarkKey(bookmark.ID), data, DefaultBookmarkTTL)
		pipe.SAdd(ctx, KeyAllBookmarks, bookmark.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}

	return nil
}
