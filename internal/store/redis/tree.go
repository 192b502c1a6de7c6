package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/scape/internal/netscape"
)

// ErrTreeNotFound is returned when no export snapshot is stored.
var ErrTreeNotFound = errors.New("bookmark tree not found")

// SaveTree stores a JSON snapshot of the parsed export.
func (s *Store) SaveTree(ctx context.Context, doc *netscape.Document) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark tree: %w", err)
	}

	if err := s.client.Set(ctx, KeyTree, data, DefaultBookmarkTTL).Err(); err != nil {
		return fmt.Errorf("failed to save bookmark tree: %w", err)
	}
	return nil
}

// GetTree rebuilds the parsed export from its snapshot.
func (s *Store) GetTree(ctx context.Context) (*netscape.Document, error) {
	data, err := s.client.Get(ctx, KeyTree).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTreeNotFound
		}
		return nil, fmt.Errorf("failed to get bookmark tree: %w", err)
	}

	doc, err := netscape.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bookmark tree: %w", err)
	}
	return doc, nil
}
