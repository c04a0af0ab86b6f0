package handler

// RESPONSE HELPERS:
// Every endpoint answers with the same envelope.
//
//	success: {"success": true, ...endpoint fields...}
//	failure: {"success": false, "error": 404, "message": "resource not found"}
//
// The failure message is fixed per status code. The detailed reason (which field
// was missing, which id was not found) goes to the log, not to the client.
//
// These helpers are exported because the router (unknown routes, wrong methods),
// the recovery middleware and the bearer-token guard answer with the same
// envelope without going through a handler.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/trivia-api/internal/apperror"
)

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// messages holds the fixed text for every status the API can fail with.
var messages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable entity",
	http.StatusInternalServerError: "internal server error",
}

// StatusMessage returns the envelope message for status.
func StatusMessage(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}

// WriteJSON sends data as JSON with the given status code.
//
// HEADER ORDER MATTERS:
// Headers and status must be set before the body is written. Once Encode
// writes, the headers are on the wire and later changes are ignored.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// The status line is already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// WriteStatus sends the failure envelope for status.
func WriteStatus(w http.ResponseWriter, status int) {
	WriteJSON(w, status, ErrorResponse{
		Success: false,
		Error:   status,
		Message: StatusMessage(status),
	})
}

// StatusFor maps a domain error to its HTTP status code.
//
// errors.Is walks the Unwrap chain, so a store error wrapped by the service
// with fmt.Errorf("...: %w", err) still matches its sentinel.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps err to a status code and sends the failure envelope.
// Internal errors are never described to the client.
func WriteError(w http.ResponseWriter, err error) {
	WriteStatus(w, StatusFor(err))
}

// respondError logs a rejected request and sends its envelope. Store faults
// have already been logged at Error by the service layer.
func respondError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status < http.StatusInternalServerError {
		logger.Warn("request rejected",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.String("reason", err.Error()),
		)
	}
	WriteStatus(w, status)
}
