package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/scape/internal/logger"
	"github.com/MrSnakeDoc/scape/internal/netscape"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// currentDocument returns the loaded export, or answers 503 and returns nil.
func currentDocument(w http.ResponseWriter, log logger.Logger, doc *netscape.Document) *netscape.Document {
	if doc == nil {
		log.Debug("bookmark export not loaded yet")
		writeError(w, http.StatusServiceUnavailable, "bookmark export not loaded")
		return nil
	}
	return doc
}

var errInvalidLimit = errors.New("limit must be a non-negative integer")
