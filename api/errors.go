// Package api
// Author: momentics <momentics@gmail.com>
//
// Error taxonomy shared by buffers, allocators and pools.

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by this module matches exactly one of
// them through errors.Is.
var (
	// ErrInvalidArgument reports a missing argument, a non-positive capacity,
	// an index out of range, a capacity mismatch or a foreign buffer.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState reports an operation the receiver cannot perform in its
	// current state: borrowing from an exhausted fixed pool, Reset without a
	// mark, use of a released buffer.
	ErrInvalidState = errors.New("invalid state")

	// ErrOverflow reports a positional access past the limit of a buffer that
	// cannot grow.
	ErrOverflow = errors.New("buffer overflow")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeInvalidState
	ErrCodeOverflow
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	case ErrCodeInvalidState:
		return "invalid state"
	case ErrCodeOverflow:
		return "buffer overflow"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// sentinel maps a code to the error it matches under errors.Is.
func (c ErrorCode) sentinel() error {
	switch c {
	case ErrCodeInvalidArgument:
		return ErrInvalidArgument
	case ErrCodeInvalidState:
		return ErrInvalidState
	case ErrCodeOverflow:
		return ErrOverflow
	default:
		return nil
	}
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Code.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if len(e.Context) > 0 {
		msg = fmt.Sprintf("%s (context: %+v)", msg, e.Context)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is reports whether target is the sentinel for this error's code.
func (e *Error) Is(target error) bool {
	s := e.Code.sentinel()
	return s != nil && target == s
}

// Unwrap returns the underlying cause for error chaining.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause attaches an underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// InvalidArgument is shorthand for NewError(ErrCodeInvalidArgument, msg).
func InvalidArgument(msg string) *Error { return NewError(ErrCodeInvalidArgument, msg) }

// InvalidState is shorthand for NewError(ErrCodeInvalidState, msg).
func InvalidState(msg string) *Error { return NewError(ErrCodeInvalidState, msg) }

// Overflow is shorthand for NewError(ErrCodeOverflow, msg).
func Overflow(msg string) *Error { return NewError(ErrCodeOverflow, msg) }
