package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON error envelope every handler returns on failure.
type ErrorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, code int, errCode, description string) {
	NoCache(w)
	WriteJSON(w, code, ErrorBody{Error: errCode, Description: description})
}

// NoCache marks the response as uncacheable. Required for anything carrying
// credentials or session state.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
