package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/scape/internal/logger"
	"github.com/MrSnakeDoc/scape/internal/utils"
)

// EnforceHost allows requests only if the Host header matches one of the
// allowed hosts. Patterns like "*.example.com" match any subdomain, and a
// pattern without a port matches the host on any port.
// If allowedHosts is empty, it acts as a passthrough.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	patterns := make([]string, len(allowedHosts))
	for i, h := range allowedHosts {
		patterns[i] = strings.ToLower(h)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := strings.ToLower(r.Host)
			for _, pattern := range patterns {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Debug("host rejected", logger.String("host", r.Host))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

func matchHost(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if !strings.Contains(pattern, ":") {
		host = utils.ParseHostNoPort(host)
		if host == pattern {
			return true
		}
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok && strings.HasPrefix(suffix, ".") {
		return strings.HasSuffix(host, suffix)
	}
	return false
}
