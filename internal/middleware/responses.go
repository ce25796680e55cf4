package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"isoatthetop.com/web/internal/observability"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError answers htmx callers with a JSON error and everyone else with
// plain text. Server errors are logged with the request logger.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	writeError(w, r, code, msg)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if code >= http.StatusInternalServerError {
		observability.FromContext(r.Context()).Error("request failed", zap.Int("status", code), zap.String("error", msg))
	}
	if IsHTMX(r.Context()) {
		rid, _ := RequestID(r.Context())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: msg, RequestID: rid})
		return
	}
	http.Error(w, msg, code)
}
