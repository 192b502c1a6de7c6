package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/netscape"
)

type bookmarksResponse struct {
	Folder    string           `json:"folder"`
	Total     int              `json:"total"`
	Bookmarks []map[string]any `json:"bookmarks"`
}

// Bookmarks lists the bookmarks below the root, or below ?folder=, in
// document order. ?q= keeps bookmarks whose title or URL contains it
// (ignoring case) and ?limit= caps the list.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := currentDocument(w, d.Logger, d.MemoryIndex.Document())
		if doc == nil {
			return
		}

		params := r.URL.Query()
		limit, err := parseLimit(params.Get("limit"), d.MaxResults)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		folder := doc.Root
		if name := params.Get("folder"); name != "" {
			if folder = doc.Root.FindFolder(name); folder == nil {
				writeError(w, http.StatusNotFound, "folder not found: "+name)
				return
			}
		}

		resp := bookmarksResponse{Folder: folder.Name, Bookmarks: []map[string]any{}}
		for bm := range folder.FindBookmarks(containsFilter(params.Get("q"))) {
			resp.Total++
			if limit == 0 || len(resp.Bookmarks) < limit {
				resp.Bookmarks = append(resp.Bookmarks, netscape.ToJSON(bm))
			}
		}

		w.Header().Set("X-Total-Count", strconv.Itoa(resp.Total))
		writeJSON(w, http.StatusOK, resp)
	}
}

// Folder serves one folder subtree. ?match=contains finds the first folder
// whose name contains {name}, ignoring case; the default is an exact match.
func Folder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := currentDocument(w, d.Logger, d.MemoryIndex.Document())
		if doc == nil {
			return
		}

		name := chi.URLParam(r, "name")
		var found *netscape.Folder
		switch r.URL.Query().Get("match") {
		case "", "exact":
			found = doc.Root.FindFolder(name)
		case "contains":
			found = doc.Root.FindFolderFunc(netscape.NameContains(name))
		default:
			writeError(w, http.StatusBadRequest, "match must be exact or contains")
			return
		}

		if found == nil {
			writeError(w, http.StatusNotFound, "folder not found: "+name)
			return
		}
		writeJSON(w, http.StatusOK, netscape.ToJSON(found))
	}
}

func containsFilter(q string) func(*netscape.Bookmark) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	return func(bm *netscape.Bookmark) bool {
		return strings.Contains(strings.ToLower(bm.Title), q) ||
			strings.Contains(strings.ToLower(bm.URL), q)
	}
}

// parseLimit reads ?limit=, capped by max when max is positive. 0 means no
// limit.
func parseLimit(raw string, max int) (int, error) {
	limit := max
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return 0, errInvalidLimit
		}
		limit = n
	}
	if max > 0 && (limit == 0 || limit > max) {
		limit = max
	}
	return limit, nil
}
