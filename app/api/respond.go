// Package api carries the JSON plumbing shared by every handler: response
// writers, the error envelope, and HTTP middleware.
package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse is the uniform error envelope. Errors is only populated for
// validation failures and maps field names to what is wrong with them.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encoding response: %v", err)
	}
}

// WriteError writes a plain error envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// WriteValidationErrors writes a 400 with the offending fields enumerated.
func WriteValidationErrors(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "validation failed",
		Errors:  fields,
	})
}

// WriteInternalError logs the cause server-side and answers with a generic
// message. Internal details never reach the client.
func WriteInternalError(w http.ResponseWriter, err error) {
	log.Printf("api: internal error: %v", err)
	WriteError(w, http.StatusInternalServerError, "internal server error")
}

// WriteUnauthorized writes the uniform denial. All authorization failures
// look identical to the caller.
func WriteUnauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "unauthorized")
}
