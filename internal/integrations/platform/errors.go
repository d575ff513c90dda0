package platform

import (
	"fmt"
	"net/http"
)

// NetworkError means the request never reached the server or no response
// was received
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx response. Message comes from the body's "message"
// or "error" field; Unstructured is set when neither was present.
type APIError struct {
	StatusCode   int
	Message      string
	Unstructured bool
}

func (e *APIError) Error() string {
	if e.Unstructured {
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// UserMessage returns the text to show the user for this error
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.StatusCode)
}

// MalformedResponseError is a 2xx response whose body could not be decoded
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
