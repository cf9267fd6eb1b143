package bapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Code mirrors the http status codes. Errors carrying a code describe faults at the HTTP level (no route,
// wrong method, body too large), as opposed to the business failures described by [APIError].
type Code int

const (
	CodeUnknown               Code = 0
	CodeBadRequest            Code = http.StatusBadRequest            // RFC 9110, 15.5.1
	CodeUnauthorized          Code = http.StatusUnauthorized          // RFC 9110, 15.5.2
	CodeForbidden             Code = http.StatusForbidden             // RFC 9110, 15.5.4
	CodeNotFound              Code = http.StatusNotFound              // RFC 9110, 15.5.5
	CodeMethodNotAllowed      Code = http.StatusMethodNotAllowed      // RFC 9110, 15.5.6
	CodeRequestEntityTooLarge Code = http.StatusRequestEntityTooLarge // RFC 9110, 15.5.14
	CodeUnsupportedMediaType  Code = http.StatusUnsupportedMediaType  // RFC 9110, 15.5.16
	CodeUnprocessableEntity   Code = http.StatusUnprocessableEntity   // RFC 9110, 15.5.21
	CodeTooManyRequests       Code = http.StatusTooManyRequests       // RFC 6585, 4
	CodeInternalServerError   Code = http.StatusInternalServerError   // RFC 9110, 15.6.1
	CodeNotImplemented        Code = http.StatusNotImplemented        // RFC 9110, 15.6.2
	CodeServiceUnavailable    Code = http.StatusServiceUnavailable    // RFC 9110, 15.6.4
)

// Error describes an http error.
type Error struct {
	code Code
	err  error
}

// NewError inits a new error given the error code.
func NewError(c Code, underlying error) *Error {
	return &Error{c, underlying}
}

// NewStatusError creates an error for 'c' whose detail is the standard status text.
func NewStatusError(c Code) *Error {
	text := http.StatusText(int(c))
	if text == "" {
		text = "Unknown"
	}

	return &Error{c, errors.New(text)}
}

func (e *Error) Code() Code { return e.code }

// Detail returns the message of the underlying error, without the status prefix.
func (e *Error) Detail() string { return e.err.Error() }

func (e *Error) Error() string {
	status := http.StatusText(int(e.Code()))
	if status == "" {
		status = "Unknown"
	}

	return fmt.Sprintf("%s: %s", status, e.err.Error())
}

func (e *Error) Unwrap() error { return e.err }

// CodeOf returns the error's status code if it is or wraps an [*Error] and
// [CodeUnknown] otherwise.
func CodeOf(err error) Code {
	if herr, ok := AsError(err); ok {
		return herr.Code()
	}
	return CodeUnknown
}

// AsError uses errors.As to unwrap any error and look for an [*Error].
func AsError(err error) (*Error, bool) {
	var herr *Error
	ok := errors.As(err, &herr)
	return herr, ok
}
