package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/scape/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

// registerAdmin mounts the operator endpoints. They are limited to the
// allowed CIDRs; /reload also checks the Host header since it mutates state.
func registerAdmin(r chi.Router, d deps.Deps) {
	r.Group(func(admin chi.Router) {
		admin.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))

		admin.Get("/readyz", handlers.Readyz(d))
		admin.Get("/infra", handlers.Infra(d))
		admin.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/reload", handlers.Reload(d))
	})
}
