// Package errors defines the coded error type shared by every hookplayer
// component. Codes are stable and are what callers and tests match on;
// messages are for humans.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies the category of a failure.
type Code string

const (
	// ErrNetwork is a transport-level failure reaching a remote endpoint,
	// including non-success HTTP statuses.
	ErrNetwork Code = "NETWORK"
	// ErrParse is a malformed or schema-mismatched response body.
	ErrParse Code = "PARSE"
	// ErrNotFound means a named pack is absent from the registry index.
	ErrNotFound Code = "NOT_FOUND"
	// ErrUnsupportedPlatform is raised by the updater for OSes without a
	// published release asset.
	ErrUnsupportedPlatform Code = "UNSUPPORTED_PLATFORM"
	// ErrIO covers local filesystem failures.
	ErrIO Code = "IO"
	// ErrPlayback is an opaque failure from the audio player.
	ErrPlayback Code = "PLAYBACK"
	// ErrInvalidInput is bad user input (arguments, config values).
	ErrInvalidInput Code = "INVALID_INPUT"
)

// Error is a coded error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	Wrapped error
}

// Error renders the message and cause on a single line. The code is left
// out so the CLI diagnostic stays readable.
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

// Unwrap implements the errors.Unwrap interface.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err with a code and message. A nil err yields nil.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Wrapped: err}
}

// Wrapf wraps err with a code and formatted message. A nil err yields nil.
func Wrapf(err error, code Code, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// CodeOf returns the code of the outermost *Error in err's chain, or ""
// if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}
