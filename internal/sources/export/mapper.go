package export

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/MrSnakeDoc/scape/internal/domain"
	"github.com/MrSnakeDoc/scape/internal/netscape"
)

// ErrNoBookmarks is returned when an export holds no usable bookmark.
var ErrNoBookmarks = errors.New("no valid bookmarks found in export")

// Mapper converts a parsed export to domain bookmarks
type Mapper struct {
	now func() time.Time
}

// NewMapper creates a new export mapper
func NewMapper() *Mapper {
	return &Mapper{now: time.Now}
}

// MapBookmarks flattens the export tree to domain bookmarks, in document
// order.
func (m *Mapper) MapBookmarks(doc *netscape.Document) ([]*domain.Bookmark, error) {
	if doc == nil || doc.Root == nil {
		return nil, ErrNoBookmarks
	}

	now := m.now()
	bookmarks := make([]*domain.Bookmark, 0)
	seen := make(map[string]bool)

	for path, node := range doc.Root.Walk() {
		entry, ok := node.(*netscape.Bookmark)
		if !ok {
			continue
		}

		// Skip entries without href (separators, broken exports)
		if strings.TrimSpace(entry.URL) == "" {
			continue
		}

		id := generateBookmarkID(path, entry.URL)
		if seen[id] {
			continue
		}
		seen[id] = true

		createdAt, ok := ParseTimestamp(entry.AddDate)
		if !ok {
			createdAt = now
		}
		updatedAt, ok := ParseTimestamp(entry.LastModified)
		if !ok {
			updatedAt = createdAt
		}

		title := entry.Title
		if title == "" {
			title = entry.URL
		}

		bookmarks = append(bookmarks, &domain.Bookmark{
			ID:          id,
			Title:       title,
			URL:         entry.URL,
			Folder:      slices.Clone(path),
			Tags:        slices.Clone(entry.Tags),
			Shortcut:    entry.ShortcutURL,
			Description: entry.Description,
			Sources:     []string{domain.SourceNetscape},
			CreatedAt:   createdAt,
			UpdatedAt:   updatedAt,
			Disabled:    false,
		})
	}

	if len(bookmarks) == 0 {
		return nil, ErrNoBookmarks
	}

	return bookmarks, nil
}

// generateBookmarkID creates a stable ID from the folder path and URL
// using SHA-256, so the same entry keeps its ID (and usage counter) across
// reloads even when its title changes.
func generateBookmarkID(path []string, url string) string {
	h := sha256.New()
	for _, p := range path {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	h.Write([]byte(url))
	// Take first 16 characters of hex encoding (sufficient for uniqueness)
	return hex.EncodeToString(h.Sum(nil))[:16]
}
