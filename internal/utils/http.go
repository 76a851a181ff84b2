package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/michaelhessen/chronos/models"
)

// fallbackErrorBody is sent when a response value cannot be encoded.
const fallbackErrorBody = `{"error":"internal server error"}`

// WriteJSON encodes v as the JSON body of a response with the given status.
// A value that cannot be encoded turns the response into a 500 carrying the
// usual {error} body, and the encoding error is returned.
func WriteJSON(w http.ResponseWriter, v any, status int) (int, error) {
	body, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(fallbackErrorBody))
		return 0, fmt.Errorf("encoding %T response: %w", v, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return w.Write(body)
}

// WriteError writes the {"error": msg} body every failed API call returns.
func WriteError(w http.ResponseWriter, msg string, status int) {
	WriteJSON(w, models.ErrorResponse{Error: msg}, status)
}
