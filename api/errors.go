// File: api/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Common error types shared by the masking engines and the readiness poller.

// Package api holds the error model and shared types for wscore.
package api

import "fmt"

// Sentinel conditions, matched with errors.Is.
var (
	// ErrPollerClosed reports any use of a readiness table after Close,
	// a second Close included.
	ErrPollerClosed = fmt.Errorf("poller is closed")

	// ErrNotSupported reports a platform with no readiness backend.
	ErrNotSupported = fmt.Errorf("operation not supported on this platform")
)

// ErrorCode classifies structured error conditions.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument   // caller broke an input contract
	ErrCodeResourceExhausted // kernel or allocator refused a resource
	ErrCodeClosed            // handle is in its terminal state
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
