package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
)

type componentStatus struct {
	OK              bool   `json:"ok"`
	BookmarksLoaded *int   `json:"bookmarks_loaded,omitempty"`
	Title           string `json:"title,omitempty"`
	LastReload      string `json:"last_reload,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Impact          string `json:"impact,omitempty"`
	Error           string `json:"error,omitempty"`
}

type infraResponse struct {
	RoutingMode string                     `json:"routing_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"export":  checkExport(d),
			"redis":   checkRedis(r.Context(), d),
			"watcher": checkWatcher(d),
			"resolver": {
				OK:   true,
				Mode: "fuzzy+usage-learning",
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			RoutingMode: determineRoutingMode(components),
			Components:  components,
		})
	}
}

func checkExport(d deps.Deps) componentStatus {
	count := d.MemoryIndex.BookmarkCount()
	status := componentStatus{
		OK:              d.MemoryIndex.Document() != nil && count > 0,
		BookmarksLoaded: &count,
		LastReload:      "never",
	}
	if doc := d.MemoryIndex.Document(); doc != nil {
		status.Title = doc.Title
	}
	if last := d.MemoryIndex.GetLastReload(); !last.IsZero() {
		status.LastReload = last.Format(time.RFC3339)
	}
	if d.Reloader != nil {
		if st := d.Reloader.Status(); st.LastError != "" {
			status.Error = st.LastError
			status.Impact = "serving-previous-export"
		}
	}
	return status
}

func checkWatcher(d deps.Deps) componentStatus {
	if !d.WatchFile {
		return componentStatus{OK: true, Mode: "disabled", Impact: "periodic-reload-only"}
	}
	return componentStatus{OK: true, Mode: "fsnotify"}
}

func determineRoutingMode(components map[string]componentStatus) string {
	if export, ok := components["export"]; ok && !export.OK {
		return "critical" // nothing to resolve against
	}
	if redis, ok := components["redis"]; ok && !redis.OK {
		return "degraded" // no cache, counters not persisted
	}
	return "intelligent"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     true,
			Mode:   "memory-only",
			Impact: "usage-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "usage-learning-disabled",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "usage-learning-enabled",
	}
}
