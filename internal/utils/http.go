package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON writes data as a JSON response with the given status code.
//
// The body is marshaled before any header is written, so a value that
// cannot be serialized still yields a well-formed 500 response instead of a
// truncated body behind a success status.
//
// A write failure after the header has gone out cannot be repaired at this
// layer; the returned error then only serves callers that want to log it.
//
// Example usage:
//
//	WriteJSON(w, models.APIError{Error: "not found"}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) error {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "response serialization failed", http.StatusInternalServerError)
		return fmt.Errorf("marshaling %T response: %w", data, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("writing response body: %w", err)
	}

	return nil
}
