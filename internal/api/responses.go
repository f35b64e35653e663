package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/matemagica/matemagica/internal/exercise"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes message with status. 5xx errors are logged at
// error level with err attached; the raw error never reaches the client.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	reqID := middleware.GetReqID(r.Context())

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []any{"status", status, "path", r.URL.Path, "request_id", reqID, "message", message}
	if err != nil {
		attrs = append(attrs, "error", err)
	}
	s.logger.Log(r.Context(), level, "api error response", attrs...)

	respondJSON(w, status, ErrorResponse{Error: message, RequestID: reqID})
}

// statusFor maps a domain error to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, exercise.ErrInvalidArgument) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// safeMessage returns the client-facing text for err.
func safeMessage(err error) string {
	if errors.Is(err, exercise.ErrInvalidArgument) {
		return err.Error()
	}
	return "failed to generate exercises"
}
