package index

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/scape/internal/domain"
	"github.com/MrSnakeDoc/scape/internal/netscape"
)

// MemoryIndex holds the parsed export and its flattened bookmarks.
// It is the source of truth for queries; Redis only mirrors it.
type MemoryIndex struct {
	mu         sync.RWMutex
	bookmarks  map[string]*domain.Bookmark // ID -> Bookmark
	doc        *netscape.Document
	lastReload time.Time
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		bookmarks: make(map[string]*domain.Bookmark),
	}
}

// UpdateBookmarks replaces all bookmarks in the index
func (idx *MemoryIndex) UpdateBookmarks(bookmarks []*domain.Bookmark) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.bookmarks = make(map[string]*domain.Bookmark, len(bookmarks))
	for _, bookmark := range bookmarks {
		idx.bookmarks[bookmark.ID] = bookmark
	}
	idx.lastReload = time.Now()
}

// GetBookmark returns a copy of the bookmark with the given ID.
func (idx *MemoryIndex) GetBookmark(id string) (*domain.Bookmark, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bookmark, ok := idx.bookmarks[id]
	if !ok {
		return nil, false
	}
	cp := *bookmark
	return &cp, true
}

// GetAllBookmarks returns copies of every bookmark, sorted by ID.
func (idx *MemoryIndex) GetAllBookmarks() []*domain.Bookmark {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bookmarks := make([]*domain.Bookmark, 0, len(idx.bookmarks))
	for _, bookmark := range idx.bookmarks {
		cp := *bookmark
		bookmarks = append(bookmarks, &cp)
	}
	slices.SortFunc(bookmarks, func(a, b *domain.Bookmark) int {
		return strings.Compare(a.ID, b.ID)
	})
	return bookmarks
}

// AddBookmark adds or updates a single bookmark
func (idx *MemoryIndex) AddBookmark(bookmark *domain.Bookmark) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.bookmarks[bookmark.ID] = bookmark
}

// DeleteBookmark removes a bookmark from the index
func (idx *MemoryIndex) DeleteBookmark(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.bookmarks, id)
}

// BookmarkCount returns the number of bookmarks in the index
func (idx *MemoryIndex) BookmarkCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.bookmarks)
}

// IncrementCounter increments the usage counter for a bookmark
func (idx *MemoryIndex) IncrementCounter(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if bookmark, ok := idx.bookmarks[id]; ok {
		bookmark.Counter++
	}
}

// SetDocument replaces the parsed export. The document is shared with
// readers and must not be modified afterwards.
func (idx *MemoryIndex) SetDocument(doc *netscape.Document) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.doc = doc
}

// Document returns the current parsed export, or nil before the first load.
func (idx *MemoryIndex) Document() *netscape.Document {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.doc
}

// GetLastReload returns the timestamp of the last bookmarks reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
