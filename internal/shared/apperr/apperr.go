// Package apperr defines the error taxonomy shared by every feature.
// Usecases return errors of a Kind; the HTTP layer only looks at the Kind.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error by how it is surfaced to clients.
type Kind int

const (
	// Internal is any unexpected failure, usually from a store.
	Internal Kind = iota
	// MissingCredential means a protected operation was called without a token.
	MissingCredential
	// InvalidCredential covers bad tokens and bad logins alike.
	InvalidCredential
	// NotFound means the addressed user or entity does not exist.
	NotFound
	// Forbidden means the caller is authenticated but lacks the privilege.
	Forbidden
	// Validation means the request itself is unacceptable.
	Validation
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case MissingCredential:
		return "missing_credential"
	case InvalidCredential:
		return "invalid_credential"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case Validation:
		return "validation"
	default:
		return "internal"
	}
}

// Error is a client-safe error carrying its Kind.
type Error struct {
	Kind Kind
	Msg  string
}

// New creates an Error. Sentinels are declared with it so errors.Is works by identity.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func (e *Error) Error() string {
	return e.Msg
}

// KindOf returns the Kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the client-facing message for err.
// Internal errors never leak their cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Msg
	}
	return "internal server error"
}

// HTTPStatus maps a Kind to its response status.
func HTTPStatus(k Kind) int {
	switch k {
	case MissingCredential, InvalidCredential:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
