package bapp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/advdv/bapi"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// TraceHeader carries the trace identifier on requests and responses.
const TraceHeader = "traceId"

// traceHeaderAlias is accepted on requests that do not carry TraceHeader.
const traceHeaderAlias = "trace-id"

// WithTraceID resolves the trace identifier of every request: the caller's value when present, a fresh
// uuid otherwise. The identifier is bound to the request context, logged on entry and exit and echoed in
// the response header. Errors from downstream are logged and returned unchanged, panics are logged and
// raised again.
func WithTraceID() bapi.Middleware {
	return func(next bapi.BareHandler) bapi.BareHandler {
		return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
			id := requestTraceID(r)

			ctx := context.WithValue(r.Context(), ctxKeyTraceID, id)
			trace.SpanFromContext(ctx).SetAttributes(attribute.String("app.trace_id", id))

			logs := Log(ctx)
			logs.Info(fmt.Sprintf("%s %s | Client: %s", r.Method, r.URL.Path, r.RemoteAddr))

			start := time.Now()
			defer func() {
				if rec := recover(); rec != nil {
					w.Header().Set(TraceHeader, id)
					logs.Error(fmt.Sprintf("%s %s | Panic: %v", r.Method, r.URL.Path, rec),
						zap.Float64("duration_ms", millis(time.Since(start))))
					panic(rec)
				}
			}()

			err := next.ServeBareBHTTP(w, r.WithContext(ctx))
			duration := zap.Float64("duration_ms", millis(time.Since(start)))

			w.Header().Set(TraceHeader, id)
			if err != nil {
				logs.Error(fmt.Sprintf("%s %s | Error: %v", r.Method, r.URL.Path, err), duration, zap.Error(err))
				return err
			}

			status := statusOf(w)
			logs.Info(fmt.Sprintf("%s %s | Status: %d", r.Method, r.URL.Path, status), zap.Int("status", status), duration)

			return nil
		})
	}
}

func requestTraceID(r *http.Request) string {
	if id := r.Header.Get(TraceHeader); id != "" {
		return id
	}
	if id := r.Header.Get(traceHeaderAlias); id != "" {
		return id
	}
	return uuid.NewString()
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// statusOf returns the status written to a buffered response, 200 if it cannot tell.
func statusOf(w http.ResponseWriter) int {
	if sw, ok := w.(interface{ Status() int }); ok {
		return sw.Status()
	}
	return http.StatusOK
}
