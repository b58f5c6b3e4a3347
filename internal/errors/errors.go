// Package errors carries the typed error model shared by the HTTP layer
// and the service internals. Every error that can cross an API boundary
// gets a status code here so handlers never guess.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error with an associated HTTP status code.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error while keeping code and message.
func (e *Error) WithCause(err error) *Error {
	return &Error{Code: e.Code, Message: e.Message, cause: err}
}

// New creates an error with an explicit status code.
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with an explicit status code and formatted message.
func Newf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvalidArg reports a bad request caused by a missing or malformed parameter.
func InvalidArg(name string) *Error {
	return Newf(http.StatusBadRequest, "invalid argument: %s", name)
}

// InvalidRequest wraps a request decoding failure.
func InvalidRequest(err error) *Error {
	return New(http.StatusBadRequest, "invalid request").WithCause(err)
}

// NotFound reports a missing resource.
func NotFound(what string) *Error {
	return Newf(http.StatusNotFound, "%s not found", what)
}

// Unavailable reports a feature that is disabled or has no configured backend.
func Unavailable(what string) *Error {
	return Newf(http.StatusNotImplemented, "%s not enabled", what)
}

// MediaFailed wraps a failure of the external media fetcher.
func MediaFailed(err error) *Error {
	return New(http.StatusBadGateway, "media extraction failed").WithCause(err)
}

// TranscriptionFailed wraps a failure of the speech backend.
func TranscriptionFailed(err error) *Error {
	return New(http.StatusInternalServerError, "transcription failed").WithCause(err)
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "internal error").WithCause(err)
}

// StatusOf resolves the HTTP status for an arbitrary error.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}
