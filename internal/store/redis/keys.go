package redis

import (
	"fmt"
	"strings"
)

const (
	// KeyPrefixBookmark is the prefix for bookmark keys
	KeyPrefixBookmark = "scape:bookmark:"
	// KeyAllBookmarks is the key for the set of all bookmark IDs
	KeyAllBookmarks = "scape:bookmarks:all"
	// KeyPrefixCache is the prefix for cache keys
	KeyPrefixCache = "scape:cache:"
	// KeyUsage is the hash of bookmark ID -> redirect count
	KeyUsage = "scape:usage"
	// KeyTree is the JSON snapshot of the last parsed export
	KeyTree = "scape:tree"
)

// BookmarkKey returns the Redis key for a bookmark
func BookmarkKey(id string) string {
	return KeyPrefixBookmark + id
}

// CacheKey returns the Redis key for a cached resolution. Queries are
// compared case-insensitively.
func CacheKey(query string) string {
	return KeyPrefixCache + strings.ToLower(strings.TrimSpace(query))
}

// ExtractBookmarkID extracts the bookmark ID from a Redis key
func ExtractBookmarkID(key string) (string, error) {
	id, ok := strings.CutPrefix(key, KeyPrefixBookmark)
	if !ok || id == "" {
		return "", fmt.Errorf("invalid bookmark key: %s", key)
	}
	return id, nil
}
