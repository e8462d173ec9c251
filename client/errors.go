package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired marks a terminal session failure: the refresh endpoint
// rejected the renewal attempt and the stored credential has been cleared.
// Callers match it with errors.Is and should send the user back to login.
var ErrSessionExpired = errors.New("session expired, please log in again")

// APIError is the structured failure returned for any unsuccessful call.
// NoResponse distinguishes transport failures (no HTTP response at all)
// from server-side error statuses.
type APIError struct {
	Status     int
	Message    string
	NoResponse bool
	RequestID  string
	Err        error // underlying transport error, set only when NoResponse
}

func (e *APIError) Error() string {
	if e.NoResponse {
		return fmt.Sprintf("no response received: %v", e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("server returned %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("server returned %d %s", e.Status, http.StatusText(e.Status))
}

func (e *APIError) Unwrap() error { return e.Err }

// IsAuthStatus reports whether the error is a credential-rejection status.
// Both 401 and 403 are treated as expiry signals by the recovery policy.
func (e *APIError) IsAuthStatus() bool {
	return !e.NoResponse && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// newStatusError builds an APIError from a non-2xx response body.
// The server wraps failures as {"message": "..."}; anything else is kept
// as a raw preview so the cause is not lost.
func newStatusError(status int, body []byte, requestID string) *APIError {
	apiErr := &APIError{Status: status, RequestID: requestID}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	} else if len(body) > 0 {
		apiErr.Message = string(body[:min(len(body), 200)])
	}
	return apiErr
}

// newTransportError builds an APIError for a request that never produced a response.
func newTransportError(err error, requestID string) *APIError {
	return &APIError{NoResponse: true, RequestID: requestID, Err: err}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
