package middleware

import (
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// errorBody matches the error shape of the API handlers.
type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError sends a JSON error response from middleware that runs before
// any handler.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: msg, Code: code}); err != nil {
		slog.Warn("write middleware error response", "error", err)
	}
}
