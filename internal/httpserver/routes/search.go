package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/scape/internal/httpserver/mw"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RatePerMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	})
	r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		limit,
	).Get("/search", handlers.Search(d))
}
