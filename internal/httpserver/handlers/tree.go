package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/netscape"
)

// Tree serves the whole parsed export as nested JSON.
func Tree(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := currentDocument(w, d.Logger, d.MemoryIndex.Document())
		if doc == nil {
			return
		}
		writeJSON(w, http.StatusOK, netscape.ToJSON(doc.Root))
	}
}

// Outline serves the folder outline as text, or the folder summaries as
// JSON with ?format=json.
func Outline(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc := currentDocument(w, d.Logger, d.MemoryIndex.Document())
		if doc == nil {
			return
		}

		if r.URL.Query().Get("format") == "json" {
			writeJSON(w, http.StatusOK, doc.Root.Summary())
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(doc.Outline()))
	}
}
