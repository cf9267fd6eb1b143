package bapp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// MetricsPath is where the Prometheus metrics are served, outside of the API prefix.
const MetricsPath = "/metrics"

// ServerParams holds the dependencies for creating an HTTP server.
type ServerParams struct {
	fx.In

	Env        Environment
	Mux        *Mux
	Logger     *zap.Logger
	Metrics    *Metrics
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
}

// NewServer creates an HTTP server with all middleware configured. Outermost first: request
// dependencies, fault rendering, trace identifiers, metrics, panic recovery and error mapping.
func NewServer(params ServerParams) *http.Server {
	s := params.Env.Base()

	params.Mux.Use(
		withRequestDep(&requestDep{logger: params.Logger}),
		RenderFaults(s.IsDev()),
		WithTraceID(),
		params.Metrics.Middleware(),
		Recoverer(),
		MapErrors(),
	)

	params.Mux.HandleStd("GET "+MetricsPath, params.Metrics.Handler(), "metrics")

	handler := withTracing(params.TracerProv, params.Propagator, s.ProjectName, MetricsPath)(params.Mux)

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// startServerHook registers lifecycle hooks for the HTTP server. The listener is bound on start so
// address errors fail the start of the app.
func startServerHook(lc fx.Lifecycle, server *http.Server, env Environment, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", server.Addr)
			if err != nil {
				return errors.Wrapf(err, "failed to listen on %s", server.Addr)
			}

			logger.Info("starting server", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")

			ctx, cancel := context.WithTimeout(ctx, env.Base().ShutdownTimeout)
			defer cancel()

			return server.Shutdown(ctx)
		},
	})
}
