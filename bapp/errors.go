package bapp

import (
	"fmt"
	"net/http"

	"github.com/advdv/bapi"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// MsgInternal is shown to callers for unclassified faults outside the development stage.
const MsgInternal = "服务器内部错误"

// MapErrors renders business errors, validation errors and HTTP faults as envelopes. Any other error is
// returned unchanged.
func MapErrors() bapi.Middleware {
	return func(next bapi.BareHandler) bapi.BareHandler {
		return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
			err := next.ServeBareBHTTP(w, r)
			if err == nil {
				return nil
			}

			logs := Log(r.Context()).With(zap.String("path", r.URL.Path))

			var env bapi.Envelope[any]
			if aerr, ok := bapi.AsAPIError(err); ok {
				logs.Warn("API exception", zap.Int("code", aerr.Code()), zap.String("message", aerr.Message()))
				env = aerr.Envelope()
			} else if verr, ok := bapi.AsValidationError(err); ok {
				logs.Warn("validation error", zap.String("errors", verr.Summary()))
				env = bapi.Envelope[any]{Code: http.StatusUnprocessableEntity, Message: verr.Summary()}
			} else if herr, ok := bapi.AsError(err); ok {
				logs.Warn("HTTP exception", zap.Int("code", int(herr.Code())), zap.String("detail", herr.Detail()))
				env = bapi.Envelope[any]{Code: int(herr.Code()), Message: herr.Detail()}
			} else {
				return err
			}

			w.Reset()
			return bapi.WriteEnvelope(w, env)
		})
	}
}

// Recoverer turns a panic of the handler chain into an error carrying the stack of the panic.
func Recoverer() bapi.Middleware {
	return func(next bapi.BareHandler) bapi.BareHandler {
		return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				} else if v == http.ErrAbortHandler { //nolint:errorlint
					panic(v)
				}

				if perr, ok := v.(error); ok {
					err = errors.Wrap(perr, "panic")
				} else {
					err = errors.Newf("panic: %v", v)
				}
			}()

			return next.ServeBareBHTTP(w, r)
		})
	}
}

// RenderFaults renders every error that is still unhandled as a 500 envelope. The error text is only
// shown to callers in the development stage, the full detail is always logged. The trace header survives
// the reset of the response.
func RenderFaults(dev bool) bapi.Middleware {
	return func(next bapi.BareHandler) bapi.BareHandler {
		return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
			err := next.ServeBareBHTTP(w, r)
			if err == nil {
				return nil
			}

			traceID := w.Header().Get(TraceHeader)
			withTraceFields(r.Context(), loggerFromContext(r.Context()), orDash(traceID)).Error("unhandled exception",
				zap.String("path", r.URL.Path),
				zap.String("detail", fmt.Sprintf("%+v", err)))

			msg := MsgInternal
			if dev {
				msg = err.Error()
			}

			w.Reset()
			if traceID != "" {
				w.Header().Set(TraceHeader, traceID)
			}

			return bapi.WriteEnvelope(w, bapi.Envelope[any]{Code: http.StatusInternalServerError, Message: msg})
		})
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
