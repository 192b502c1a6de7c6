package domain

import "time"

// SourceNetscape tags bookmarks loaded from a Netscape bookmark export.
const SourceNetscape = "netscape"

// Bookmark is one indexed entry of a bookmark export.
// Bookmarks can be jumped to with the search endpoint.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// Derived from the folder path and the URL.
	ID string `json:"id"`

	// Title is the link text of the entry.
	// Example: "Docker Hub"
	Title string `json:"title"`

	// URL is the full external URL to redirect to.
	// Example: https://hub.docker.com/
	URL string `json:"url"`

	// ─────────────────────────────
	// Placement
	// ─────────────────────────────

	// Folder is the chain of folder names from the export root.
	// Example: ["Bookmarks Bar", "Dev"]
	Folder []string `json:"folder,omitempty"`

	// Tags are the Firefox TAGS of the entry.
	Tags []string `json:"tags,omitempty"`

	// Shortcut is the Firefox keyword (SHORTCUTURL). An exact keyword hit
	// wins over any title match.
	Shortcut string `json:"shortcut,omitempty"`

	// Description is the <DD> text of the entry.
	Description string `json:"description,omitempty"`

	// ─────────────────────────────
	// Provenance & usage
	// ─────────────────────────────

	// Sources indicates where this bookmark was discovered from.
	// Example: netscape
	Sources []string `json:"sources"`

	// Counter counts successful jumps to this bookmark.
	Counter int64 `json:"counter"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is the export's ADD_DATE, or the first load time.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is updated on any mutation.
	UpdatedAt time.Time `json:"updated_at"`

	// ─────────────────────────────
	// Liveness & cleanup
	// ─────────────────────────────

	// Disabled marks a bookmark that left the export.
	// It may be garbage-collected later.
	Disabled bool `json:"disabled"`
}

// HasSource reports whether the bookmark was discovered from source.
func (b *Bookmark) HasSource(source string) bool {
	for _, s := range b.Sources {
		if s == source {
			return true
		}
	}
	return false
}
