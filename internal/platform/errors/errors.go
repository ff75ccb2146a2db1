// Package errors defines typed application errors.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindStorage      Kind = "storage"
	KindExternal     Kind = "external"
)

// Error is a typed application failure, optionally wrapping a cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error renders the human-readable message, including the cause when set.
func (e Error) Error() string {
	switch {
	case e.Message == "" && e.Err == nil:
		return string(e.Kind)
	case e.Message == "":
		return e.Err.Error()
	case e.Err == nil:
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e Error) Unwrap() error {
	return e.Err
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// Errorf builds a typed Error with a formatted message.
func Errorf(kind Kind, format string, args ...any) error {
	return Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a typed Error around an underlying cause.
func Wrap(kind Kind, message string, err error) error {
	return Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var appErr Error
	if !stderrors.As(err, &appErr) {
		return KindUnknown
	}
	return appErr.Kind
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch KindOf(err) {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
