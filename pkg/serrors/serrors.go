// Package serrors defines semantic error kinds shared by the lookup client,
// the provider integrations and the command layer. A kind tells the caller
// which diagnostic to print without string matching on messages.
package serrors

import (
	"errors"
	"fmt"
)

// Kind is a marker interface implemented by all semantic error kinds created
// with NewKind. It allows distinguishing semantic kinds from ordinary errors.
type Kind interface {
	error
	isKind()
}

type kind struct{ s string }

func (k kind) Error() string { return k.s }
func (k kind) isKind()       {}

// NewKind creates a new semantic error kind (a sentinel) with the provided
// name. Kinds are comparable and match through errors.Is/As on *Error.
func NewKind(name string) Kind { return kind{s: name} }

var (
	// ErrConfig indicates the configuration is missing a value or is invalid.
	ErrConfig = NewKind("CONFIG")
	// ErrUsage indicates the command was invoked with the wrong arguments.
	ErrUsage = NewKind("USAGE")
	// ErrNotFound indicates the provider does not know the requested domain.
	ErrNotFound = NewKind("NOT_FOUND")
	// ErrUnauthorized indicates the API key was missing or rejected.
	ErrUnauthorized = NewKind("UNAUTHORIZED")
	// ErrForbidden indicates the API key is valid but not allowed to read the resource.
	ErrForbidden = NewKind("FORBIDDEN")
	// ErrRateLimited indicates too many requests.
	ErrRateLimited = NewKind("RATE_LIMITED")
	// ErrUnavailable indicates the provider answered with a 5xx status.
	ErrUnavailable = NewKind("UNAVAILABLE")
	// ErrUpstream indicates any other non-success status from the provider.
	ErrUpstream = NewKind("UPSTREAM")
	// ErrTimeout indicates the request did not complete in time.
	ErrTimeout = NewKind("TIMEOUT")
	// ErrIncomplete indicates the provider answered but the rating lacks a score or grade.
	ErrIncomplete = NewKind("INCOMPLETE")
)

// Error represents a semantic error carrying a kind (sentinel), an optional
// wrapped error and an optional message.
//
// Matching semantics:
//   - errors.Is(err, target) matches either the kind sentinel or the wrapped error.
//   - errors.As(err, target) succeeds for either the kind sentinel or the wrapped error.
//
// Error string formatting:
//   - If both msg and err are set: "<msg>: <err>"
//   - If only msg is set: "<msg>"
//   - If only err is set: "<err>"
//   - If neither set: the kind's Error() string.
type Error struct {
	kind Kind
	err  error
	msg  string
}

// With constructs a new semantic error with the given kind and a formatted
// message. Use Wrap to also carry a cause.
func With(k Kind, msgFmt string, args ...any) *Error {
	return &Error{kind: k, msg: fmt.Sprintf(msgFmt, args...)}
}

// Wrap constructs a new semantic error with the given kind around err. An
// empty msgFmt keeps the cause's message as the error string.
func Wrap(k Kind, err error, msgFmt string, args ...any) *Error {
	msg := ""
	if msgFmt != "" {
		msg = fmt.Sprintf(msgFmt, args...)
	}

	return &Error{kind: k, err: err, msg: msg}
}

// KindOnly creates a semantic error carrying only the kind.
func KindOnly(k Kind) *Error { return &Error{kind: k} }

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.msg != "" && e.err != nil:
		return e.msg + ": " + e.err.Error()
	case e.msg != "":
		return e.msg
	case e.err != nil:
		return e.err.Error()
	default:
		if e.kind != nil {
			return e.kind.Error()
		}

		return "unknown error"
	}
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// Is matches against either the kind sentinel or the wrapped error.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return e == nil && target == nil
	}
	if e.kind != nil && errors.Is(e.kind, target) {
		return true
	}
	if e.err != nil && errors.Is(e.err, target) {
		return true
	}

	return false
}

// As supports type assertions against either the kind sentinel or the wrapped error.
func (e *Error) As(target any) bool {
	if e == nil || target == nil {
		return false
	}
	if e.kind != nil && errors.As(e.kind, target) {
		return true
	}
	if e.err != nil && errors.As(e.err, target) {
		return true
	}

	return false
}

// Kind returns the semantic kind sentinel associated with this error, or nil.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message attached to this error.
func (e *Error) Message() string { return e.msg }

// Cause returns the wrapped cause (may be nil).
func (e *Error) Cause() error { return e.err }

// KindOf returns the kind of the first *Error found in err's chain, or nil
// when err carries no semantic kind.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.kind
	}

	return nil
}
