package bapi

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform body of every response. Code is the business code; the transport status of an
// envelope response is always 200.
type Envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// Success wraps 'data' in an envelope with code 200 and message "success".
func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Code: http.StatusOK, Message: "success", Data: data}
}

// Empty is a success envelope without data.
func Empty() Envelope[any] { return Success[any](nil) }

// WithMessage returns a copy with the message replaced.
func (e Envelope[T]) WithMessage(msg string) Envelope[T] {
	e.Message = msg
	return e
}

// WithCode returns a copy with the business code replaced.
func (e Envelope[T]) WithCode(code int) Envelope[T] {
	e.Code = code
	return e
}

// WriteEnvelope encodes 'env' as JSON with transport status 200.
func WriteEnvelope[T any](w http.ResponseWriter, env Envelope[T]) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	return json.NewEncoder(w).Encode(env)
}

// Render writes a success envelope holding 'data'. An empty message keeps the default.
func Render[T any](w http.ResponseWriter, data T, message string) error {
	env := Success(data)
	if message != "" {
		env = env.WithMessage(message)
	}

	return WriteEnvelope(w, env)
}
