package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
	LastReload    string  `json:"last_reload,omitempty"`
}

// Healthz reports liveness only; readiness is Readyz. It never fails while
// the process can answer.
func Healthz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var lastReload string
		if t := d.MemoryIndex.GetLastReload(); !t.IsZero() {
			lastReload = t.UTC().Format(time.RFC3339)
		}

		writeJSON(w, http.StatusOK, healthzResponse{
			Status:        "ok",
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			UptimeSeconds: time.Since(d.StartTime).Seconds(),
			LastReload:    lastReload,
		})
	}
}
