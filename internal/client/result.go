package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Result is the discriminated outcome of a mutation. Every write against
// the backend resolves to either success or a carried failure message, so
// downstream components handle failure uniformly.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Err converts a failed Result into an error carrying the server-provided
// message. A successful Result yields nil.
func (r *Result) Err() error {
	if r.Success {
		return nil
	}
	msg := r.Message
	if msg == "" {
		msg = "operation failed"
	}
	return &APIError{Message: msg}
}

// APIError is a non-success response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return "api error: " + e.Message
}

// DecodeUploadResult reads an upload response envelope and fails on a
// non-success outcome. The upload adapter shares the client's result
// handling through it.
func DecodeUploadResult(res *http.Response) (*Result, error) {
	r, err := decodeResult(res)
	if err != nil {
		return nil, err
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// decodeResult reads a mutation response body. Non-2xx statuses still
// carry the envelope when the backend produced one; otherwise the status
// itself becomes the failure.
func decodeResult(res *http.Response) (*Result, error) {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var r Result
	if len(body) > 0 {
		if err := json.Unmarshal(body, &r); err != nil {
			if res.StatusCode >= 200 && res.StatusCode <= 299 {
				return nil, fmt.Errorf("decode response: %w", err)
			}
			return nil, &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := r.Message
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return nil, &APIError{Status: res.StatusCode, Message: msg}
	}

	// A bare 2xx with no body is still a success; some backends answer
	// writes with an empty 200 or 204.
	if len(body) == 0 {
		r.Success = true
	}

	return &r, nil
}
