package bapi

import "errors"

// Default messages of the business error constructors.
const (
	MsgBadRequest   = "请求参数错误"
	MsgNotFound     = "资源不存在"
	MsgUnauthorized = "未授权, 请先登录"
	MsgForbidden    = "权限不足"
)

// APIError is a business failure raised by a handler. It is rendered as an envelope carrying its code,
// message and optional data while the transport status stays 200.
type APIError struct {
	code    int
	message string
	data    any
}

// NewAPIError creates a business error with an arbitrary code.
func NewAPIError(code int, message string) *APIError {
	return &APIError{code: code, message: message}
}

// BadRequest signals invalid business input (code 400).
func BadRequest(message string) *APIError {
	return NewAPIError(int(CodeBadRequest), orDefault(message, MsgBadRequest))
}

// NotFound signals that a referenced resource is absent (code 404).
func NotFound(message string) *APIError {
	return NewAPIError(int(CodeNotFound), orDefault(message, MsgNotFound))
}

// Unauthorized signals a missing or invalid credential (code 401).
func Unauthorized(message string) *APIError {
	return NewAPIError(int(CodeUnauthorized), orDefault(message, MsgUnauthorized))
}

// Forbidden signals an authenticated caller that is not allowed (code 403).
func Forbidden(message string) *APIError {
	return NewAPIError(int(CodeForbidden), orDefault(message, MsgForbidden))
}

// WithData returns a copy of the error carrying 'data' as envelope payload.
func (e *APIError) WithData(data any) *APIError {
	cp := *e
	cp.data = data
	return &cp
}

func (e *APIError) Code() int       { return e.code }
func (e *APIError) Message() string { return e.message }
func (e *APIError) Data() any       { return e.data }
func (e *APIError) Error() string   { return e.message }

// Envelope renders the error the way it is sent to the client.
func (e *APIError) Envelope() Envelope[any] {
	return Envelope[any]{Code: e.code, Message: e.message, Data: e.data}
}

// AsAPIError uses errors.As to look for an [*APIError] in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var aerr *APIError
	ok := errors.As(err, &aerr)
	return aerr, ok
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
