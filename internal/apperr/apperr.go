// Package apperr defines the error taxonomy shared by the HTTP server and
// the API client. Every failure that crosses the API boundary is one of
// these kinds, and each kind maps to exactly one HTTP status code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	// Internal is an unexpected store or transport failure (500).
	Internal Kind = iota
	// Validation is a missing or malformed request field (400).
	Validation
	// Constraint is a store-level rule broken beneath validation (400).
	Constraint
	// NotFound covers both "no such record" and "not owned by caller" (404).
	NotFound
	// Unauthenticated means no credential was presented (401).
	Unauthenticated
	// Forbidden means the credential is invalid or expired (403).
	Forbidden
	// Conflict is a uniqueness violation, e.g. duplicate username (409).
	Conflict
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind with an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the user-facing message for an error chain. Internal
// errors get a generic message so details never leak to clients.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "internal server error"
}

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case Validation, Constraint:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus reverses the status mapping; the client uses it to rebuild a
// typed error from an HTTP response.
func FromStatus(status int, message string) *Error {
	var kind Kind
	switch status {
	case http.StatusBadRequest:
		kind = Validation
	case http.StatusNotFound:
		kind = NotFound
	case http.StatusUnauthorized:
		kind = Unauthenticated
	case http.StatusForbidden:
		kind = Forbidden
	case http.StatusConflict:
		kind = Conflict
	default:
		kind = Internal
	}
	return &Error{Kind: kind, Message: message}
}
