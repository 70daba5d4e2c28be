package errors

import (
	"errors"
	"fmt"
)

// Error records the helper operation that failed and the resource it addressed.
// The wrapped SDK error is kept as-is and remains reachable with errors.Is and errors.As.
type Error struct {
	// Op is the operation that failed (e.g., "secret.get", "storage.upload", "task.push")
	Op string

	// Resource identifies the addressed resource (secret name, bucket/key, queue)
	Resource string

	// Err is the underlying error from the SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Resource, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code classifies the underlying error.
func (e *Error) Code() ErrorCode {
	return CodeOf(e.Err)
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error for the given operation and resource.
func NewError(op, resource string, err error) *Error {
	return &Error{
		Op:       op,
		Resource: resource,
		Err:      err,
	}
}

// Sentinel errors shared by all helpers.
var (
	// ErrInvalidInput indicates a required identifier or argument is missing
	ErrInvalidInput = errors.New("invalid input")

	// ErrChecksumMismatch indicates a payload did not match the checksum sent with it
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// InvalidInput returns an *Error for a missing argument of op.
func InvalidInput(op, resource, message string) *Error {
	return NewError(op, resource, ErrInvalidInput).WithMessage(message)
}
