package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/httpserver/handlers"
)

func init() { Register(registerHealthz) }

// healthz stays open so container probes work from anywhere.
func registerHealthz(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
}
