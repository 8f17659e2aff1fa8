// Package errors provides the standardized error taxonomy for backend calls.
//
// Every gateway failure is one of two kinds: the backend answered with a
// non-success status (remote), or the backend could not be reached at all
// (connectivity). Ambiguous user queries are not errors; the interpreter
// encodes those as data.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind distinguishes the two terminal failure categories.
type ErrorKind string

const (
	KindRemote       ErrorKind = "REMOTE_ERROR"
	KindConnectivity ErrorKind = "CONNECTIVITY_ERROR"
)

// GatewayError is a structured failure returned by backend operations.
type GatewayError struct {
	Kind       ErrorKind `json:"kind"`
	Backend    string    `json:"backend"`
	Operation  string    `json:"operation"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("GatewayError[%s]: %s", e.Kind, e.Message)
}

// NewRemoteError creates an error for a non-2xx backend response. The message
// is the backend-supplied detail when one was parseable, else a status line.
func NewRemoteError(backend, operation string, statusCode int, message string) *GatewayError {
	return &GatewayError{
		Kind:       KindRemote,
		Backend:    backend,
		Operation:  operation,
		Message:    message,
		StatusCode: statusCode,
		Timestamp:  time.Now().UTC(),
	}
}

// NewConnectivityError creates an error for a request that never reached the
// backend. The message names the expected backend and port so the user can
// check that the service is running.
func NewConnectivityError(backend, operation, message string) *GatewayError {
	return &GatewayError{
		Kind:      KindConnectivity,
		Backend:   backend,
		Operation: operation,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// IsRemote reports whether err is a remote (HTTP status) failure.
func IsRemote(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Kind == KindRemote
}

// IsConnectivity reports whether err is a transport-level failure.
func IsConnectivity(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge) && ge.Kind == KindConnectivity
}

// AsGatewayError extracts the structured error when present.
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}
