package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheResolution stores a query -> bookmark ID resolution in cache
func (s *Store) CacheResolution(ctx context.Context, query, bookmarkID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, CacheKey(query), bookmarkID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache resolution: %w", err)
	}
	return nil
}

// GetCachedResolution returns the bookmark ID cached for query, or "" on a
// cache miss.
func (s *Store) GetCachedResolution(ctx context.Context, query string) (string, error) {
	id, err := s.client.Get(ctx, CacheKey(query)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get cached resolution: %w", err)
	}
	return id, nil
}

// InvalidateCache removes a cached resolution
func (s *Store) InvalidateCache(ctx context.Context, query string) error {
	if err := s.client.Del(ctx, CacheKey(query)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

// FlushCache removes all cached resolutions. Run it after a reload, since
// cached IDs may point at bookmarks that moved or vanished.
func (s *Store) FlushCache(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixCache+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := s.client.Unlink(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Unlink(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to delete cache keys: %w", err)
		}
	}
	return nil
}
