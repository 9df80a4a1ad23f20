package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loanpath/backend/internal/apperror"
)

// ErrorResponse represents a JSON error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a JSON error response with the given status code and message.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError writes a JSON error response from a service error,
// extracting the HTTP status and user message.
func respondServiceError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: apperror.GetMessage(err)}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		resp.Field = appErr.Field
	}
	respondJSON(w, apperror.GetStatusCode(err), resp)
}
