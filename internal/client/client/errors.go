package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable matches every TransportError.
	ErrUnavailable = errors.New("server unavailable")

	// ErrMalformedResponse is wrapped when a response body cannot be decoded
	// or lacks required fields.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNotConfigured is returned without any I/O when the endpoint URL
	// for an operation is empty.
	ErrNotConfigured = errors.New("endpoint not configured")
)

// TransportError means the request could not be sent or its response could
// not be read or parsed. errors.Is(err, ErrUnavailable) holds for it.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrUnavailable, e.Err}
}

// APIError means the endpoint answered but flagged a failure.
type APIError struct {
	Op      string
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, msg)
}
