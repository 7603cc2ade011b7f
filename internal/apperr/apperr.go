// Package apperr holds the error kinds surfaced by the API. Every error a
// handler can return carries one Kind so the response layer can map it to a
// status code without inspecting messages.
package apperr

import (
	"github.com/pkg/errors"
)

// Kind is a stable tag for a class of failure.
type Kind string

const (
	InvalidReference Kind = "INVALID_REFERENCE"
	InvalidPage      Kind = "INVALID_PAGE"
	InvalidLimit     Kind = "INVALID_LIMIT"
	InvalidSort      Kind = "INVALID_SORT"
	InvalidInput     Kind = "INVALID_INPUT"
	Unauthorized     Kind = "UNAUTHORIZED"
	Forbidden        Kind = "FORBIDDEN"
	NotFound         Kind = "NOT_FOUND"
	Conflict         Kind = "CONFLICT"
	StoreUnavailable Kind = "STORE_UNAVAILABLE"
	Internal         Kind = "INTERNAL"
)

// Error is a tagged error. Err is the underlying cause, if any, and is never
// shown to API clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Store wraps a failure of the backing database. The message names the
// operation that was being attempted.
func Store(err error, op string) *Error {
	return &Error{
		Kind:    StoreUnavailable,
		Message: "store unavailable",
		Err:     errors.Wrap(err, op),
	}
}

// KindOf reports the Kind of err, looking through wrapping. Untagged errors
// are Internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
