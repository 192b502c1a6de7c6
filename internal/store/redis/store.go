package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultBookmarkTTL is the default TTL for bookmark and tree entries (48 hours)
	DefaultBookmarkTTL = 48 * time.Hour
	// DefaultCacheTTL is the default TTL for cached resolutions (24 hours)
	DefaultCacheTTL = 24 * time.Hour
)

// Store mirrors the bookmark index and the parsed export in Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that Redis answers.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}
