package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/scape/internal/httpserver/deps"
	"github.com/MrSnakeDoc/scape/internal/logger"
	"github.com/MrSnakeDoc/scape/internal/utils"
)

// Reload triggers a manual reload of the bookmark export
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual bookmark reload triggered via endpoint",
				logger.String("remote_ip", ip))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Reload triggered successfully\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		default:
			d.Logger.Warn("bookmark reload already pending",
				logger.String("remote_ip", ip))
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("⏳ Reload already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
