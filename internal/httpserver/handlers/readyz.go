package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready     bool `json:"ready"`
	Bookmarks int  `json:"bookmarks"`
}

// Readyz answers 503 until a bookmark export has been loaded or restored.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{
			Ready:     d.MemoryIndex.Document() != nil,
			Bookmarks: d.MemoryIndex.BookmarkCount(),
		}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
