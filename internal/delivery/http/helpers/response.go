package helpers

import (
	"encoding/json"
	"net/http"
)

// ValidationFailedResponse is the envelope for 422 responses.
// swagger:model ValidationFailedResponse
type ValidationFailedResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// ServerErrorResponse is the envelope for 500 responses.
// swagger:model ServerErrorResponse
type ServerErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// WriteJSON sets Content-Type to application/json, writes statusCode, and
// encodes payload. Success payloads carry their own success/message fields.
func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteValidationError writes a 422 with per-field reasons.
func WriteValidationError(w http.ResponseWriter, errs map[string]string) {
	WriteJSON(w, http.StatusUnprocessableEntity, ValidationFailedResponse{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// WriteServerError writes a 500 with a caller-facing message and the
// underlying error string.
func WriteServerError(w http.ResponseWriter, message string, err error) {
	WriteJSON(w, http.StatusInternalServerError, ServerErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}
