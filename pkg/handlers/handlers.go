// Package handlers provides shared HTTP response helpers for domain handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes message as a JSON error body with
// the given status code. Only message reaches the caller; the wrapped chain,
// with whatever driver or network detail it carries, stays in the log.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error, message string) {
	logger.Error("request failed", "status", status, "error", err)
	RespondJSON(w, status, map[string]string{"error": message})
}
