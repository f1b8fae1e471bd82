package client

import "fmt"

// APIError is the structured error returned by every client operation.
// Retryable is decided at construction time rather than inferred later from
// message text: transport-level failures are retryable, any HTTP response
// (4xx and 5xx alike) is terminal.
type APIError struct {
	StatusCode int    // zero when the request never produced a response
	Message    string
	Retryable  bool
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("request failed: %s", e.Message)
}

// transportError wraps a failure that produced no HTTP response.
func transportError(err error) *APIError {
	return &APIError{Message: err.Error(), Retryable: true}
}
