// Package apperr is the error taxonomy every action boundary collapses to:
// authentication, validation, or storage. Handlers convert any of these to a
// uniform {"error": "..."} JSON body; nothing propagates past its own handler.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrAuth       = errors.New("authentication required")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
)

type Error struct {
	kind error
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

func (e *Error) Is(target error) bool { return target == e.kind }

// Auth marks a missing or invalid session.
func Auth(msg string) error {
	return &Error{kind: ErrAuth, msg: msg}
}

// Validation marks malformed or missing user input.
func Validation(msg string) error {
	return &Error{kind: ErrValidation, msg: msg}
}

// Storage wraps a backend read/write fault behind a user-facing message.
func Storage(err error, msg string) error {
	return &Error{kind: ErrStorage, msg: msg, err: err}
}

// Message returns the user-facing text for an error. Wrapped causes are kept
// out of responses; they belong in logs.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.msg
	}
	return "Something went wrong"
}

// Status maps an error to the HTTP status a handler should reply with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
