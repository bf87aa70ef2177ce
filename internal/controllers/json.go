package controllers

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes a JSON body with the given status. Encoding failures
// are unrecoverable after the header is out, so they are ignored.
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError writes the uniform error envelope.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error":  message,
		"status": "error",
	})
}
