package bapp

import (
	"context"
	"net/http"

	"github.com/advdv/bapi"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ctxKey is the key type for context values.
type ctxKey int

const (
	ctxKeyRequestDep ctxKey = iota
	ctxKeyTraceID
)

// requestDep holds request-scoped dependencies available via context.
// App-scoped dependencies (env, mux, transport) are accessed via Runtime instead.
type requestDep struct {
	logger *zap.Logger
}

// withRequestDep injects dependencies into the request context.
func withRequestDep(d *requestDep) bapi.Middleware {
	return func(next bapi.BareHandler) bapi.BareHandler {
		return bapi.BareHandlerFunc(func(w bapi.ResponseWriter, r *http.Request) error {
			ctx := context.WithValue(r.Context(), ctxKeyRequestDep, d)
			return next.ServeBareBHTTP(w, r.WithContext(ctx))
		})
	}
}

func loggerFromContext(ctx context.Context) *zap.Logger {
	d, ok := ctx.Value(ctxKeyRequestDep).(*requestDep)
	if !ok {
		return zap.NewNop()
	}
	return d.logger
}

// TraceID returns the trace identifier of the request, or "-" outside of one.
func TraceID(ctx context.Context) string {
	id, ok := ctx.Value(ctxKeyTraceID).(string)
	if !ok || id == "" {
		return "-"
	}
	return id
}

// Log returns the request logger carrying the trace identifier. Outside of a request served by the app it
// returns a no-op logger.
func Log(ctx context.Context) *zap.Logger {
	return withTraceFields(ctx, loggerFromContext(ctx), TraceID(ctx))
}

func withTraceFields(ctx context.Context, l *zap.Logger, traceID string) *zap.Logger {
	fields := []zap.Field{zap.String("trace_id", traceID)}
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		fields = append(fields, zap.String("span_id", sc.SpanID().String()))
	}
	return l.With(fields...)
}
