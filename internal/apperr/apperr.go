// Package apperr defines the error contract between handlers and the HTTP
// layer: every failure a handler reports carries a Kind, and each Kind maps
// to exactly one status code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
	Unauthorized
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Unauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// Status is the HTTP status for a Kind. Conflict and NotFound answer 400
// because clients of this API already treat duplicates and missing books
// as bad requests.
func (k Kind) Status() int {
	switch k {
	case Validation, Conflict, NotFound:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Message is what the client sees; Err is
// the underlying cause, kept for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// From classifies err. Anything that is not an *Error is Internal, with the
// cause's text as the message.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: Internal, Message: err.Error(), Err: err}
}

// KindOf returns the Kind of err, Internal for unclassified errors.
func KindOf(err error) Kind {
	return From(err).Kind
}
