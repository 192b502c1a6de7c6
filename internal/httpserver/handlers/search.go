package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/scape/internal/domain"
	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/logger"
	redisstore "github.com/MrSnakeDoc/scape/internal/store/redis"
)

// Search redirects to the bookmark that best matches ?q=. Queries starting
// with "/" jump to one of the service's own endpoints. Anything unresolved
// goes to the fallback URL.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))

		if query == "" {
			d.Logger.Debug("empty query, redirecting to fallback")
			http.Redirect(w, r, d.FallbackURL, http.StatusFound)
			return
		}

		d.Logger.Info("search request", logger.String("query", query))

		if strings.HasPrefix(query, "/") {
			handleInternalEndpoint(w, r, query, d)
			return
		}

		ctx := r.Context()
		if bm := cachedBookmark(ctx, query, d); bm != nil {
			d.Logger.Info("cache hit, redirecting",
				logger.String("query", query),
				logger.String("bookmark_id", bm.ID))
			redirectToBookmark(w, r, bm, d)
			return
		}

		candidates := domain.RankBookmarkCandidates(query, d.MemoryIndex.GetAllBookmarks())
		if len(candidates) == 0 {
			d.Logger.Info("no matching bookmarks found", logger.String("query", query))
			http.Redirect(w, r, d.FallbackURL, http.StatusFound)
			return
		}

		best := candidates[0]
		d.Logger.Info("resolved bookmark",
			logger.String("query", query),
			logger.String("title", best.Bookmark.Title),
			logger.String("url", best.Bookmark.URL),
			logger.String("score", fmt.Sprintf("%.2f", best.Score)))

		if d.Store != nil {
			if err := d.Store.CacheResolution(ctx, query, best.Bookmark.ID, redisstore.DefaultCacheTTL); err != nil {
				d.Logger.Warn("failed to cache resolution", logger.Error(err))
			}
		}

		redirectToBookmark(w, r, best.Bookmark, d)
	}
}

// cachedBookmark returns the bookmark cached for query if it is still live.
// Stale entries are dropped.
func cachedBookmark(ctx context.Context, query string, d deps.Deps) *domain.Bookmark {
	if d.Store == nil {
		return nil
	}

	id, err := d.Store.GetCachedResolution(ctx, query)
	if err != nil {
		d.Logger.Debug("cache lookup failed", logger.Error(err))
		return nil
	}
	if id == "" {
		return nil
	}

	if bm, ok := d.MemoryIndex.GetBookmark(id); ok && !bm.Disabled {
		return bm
	}

	d.Logger.Debug("cached bookmark is gone, invalidating cache", logger.String("bookmark_id", id))
	if err := d.Store.InvalidateCache(ctx, query); err != nil {
		d.Logger.Warn("failed to invalidate cache", logger.Error(err))
	}
	return nil
}

func redirectToBookmark(w http.ResponseWriter, r *http.Request, bm *domain.Bookmark, d deps.Deps) {
	d.MemoryIndex.IncrementCounter(bm.ID)
	if d.Store != nil {
		if _, err := d.Store.IncrementUsage(r.Context(), bm.ID); err != nil {
			d.Logger.Warn("failed to increment usage", logger.Error(err))
		}
	}
	http.Redirect(w, r, bm.URL, http.StatusFound)
}

// handleInternalEndpoint handles internal endpoint routing
func handleInternalEndpoint(w http.ResponseWriter, r *http.Request, query string, d deps.Deps) {
	if endpoint := matchInternalEndpoint(query); endpoint != "" {
		d.Logger.Info("internal endpoint redirect",
			logger.String("query", query),
			logger.String("endpoint", endpoint))
		http.Redirect(w, r, endpoint, http.StatusFound)
		return
	}
	d.Logger.Debug("no internal endpoint matched", logger.String("query", query))
	http.Redirect(w, r, d.FallbackURL, http.StatusFound)
}

var internalEndpoints = []string{
	"/api/outline",
	"/api/tree",
	"/healthz",
	"/infra",
	"/readyz",
}

// matchInternalEndpoint returns the only endpoint starting with query, or
// "" when none or several do. A bare prefix after "/api" is also tried, so
// "/tree" finds "/api/tree".
func matchInternalEndpoint(query string) string {
	query = strings.ToLower(query)
	if m := uniquePrefix(query); m != "" {
		return m
	}
	return uniquePrefix("/api" + query)
}

func uniquePrefix(prefix string) string {
	var matches []string
	for _, endpoint := range internalEndpoints {
		if strings.HasPrefix(endpoint, prefix) {
			matches = append(matches, endpoint)
		}
	}
	if len(matches) == 1 {
		return matches[0]
	}
	return ""
}
