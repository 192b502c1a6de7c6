package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/scape/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

// registerAPI mounts the read-only JSON views of the export.
func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		api.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		api.Get("/tree", handlers.Tree(d))
		api.Get("/bookmarks", handlers.Bookmarks(d))
		api.Get("/folders/{name}", handlers.Folder(d))
		api.Get("/outline", handlers.Outline(d))
	})
}
