package bapp

import (
	"net/http"

	"github.com/carlmjohnson/requests"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// NewHTTPTransport creates the RoundTripper for outbound calls. Requests are traced and carry the
// trace identifier of their context in the [TraceHeader], so upstream logs line up with ours.
func NewHTTPTransport(tp trace.TracerProvider, prop propagation.TextMapPropagator) http.RoundTripper {
	return otelhttp.NewTransport(traceIDTransport{next: http.DefaultTransport},
		otelhttp.WithTracerProvider(tp),
		otelhttp.WithPropagators(prop),
	)
}

// traceIDTransport copies the trace identifier of the request context onto the outbound request. A
// header set by the caller wins.
type traceIDTransport struct {
	next http.RoundTripper
}

func (t traceIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	id, ok := req.Context().Value(ctxKeyTraceID).(string)
	if !ok || req.Header.Get(TraceHeader) != "" {
		return t.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set(TraceHeader, id)
	return t.next.RoundTrip(req)
}

func newRequestBuilder(t http.RoundTripper) *requests.Builder {
	return requests.New().Transport(t)
}
