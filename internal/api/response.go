package api

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the JSON error envelope shared by every failure path. The
// chat widget always parses response bodies as JSON, so handlers must never
// produce an empty or non-JSON error body.
type ErrorBody struct {
	Error          string `json:"error"`
	Details        string `json:"details,omitempty"`
	RetryAfter     int    `json:"retryAfter,omitempty"`
	MaxLength      int    `json:"maxLength,omitempty"`
	ReceivedLength int    `json:"receivedLength,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, body ErrorBody) {
	JSON(w, status, body)
}

func ErrorMessage(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}
