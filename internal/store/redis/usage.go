package redis

import (
	"context"
	"fmt"
	"strconv"
)

// IncrementUsage bumps the redirect count of a bookmark and returns the new
// value. Counts live apart from the bookmark entries so reloads keep them.
func (s *Store) IncrementUsage(ctx context.Context, bookmarkID string) (int64, error) {
	n, err := s.client.HIncrBy(ctx, KeyUsage, bookmarkID, 1).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment usage: %w", err)
	}
	return n, nil
}

// GetUsageStats returns the redirect count of every bookmark used at least
// once.
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, KeyUsage).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for id, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		stats[id] = n
	}
	return stats, nil
}
