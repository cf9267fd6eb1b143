// Package bapp wires a [bapi.ServeMux] into a complete HTTP service.
//
// It provides:
//   - Settings read from the environment (and an optional .env file)
//   - zap logging to stdout and to daily rotated log files
//   - a trace identifier per request, echoed in the "traceId" response header
//   - mapping of every error kind onto the {code, message, data} envelope
//   - Prometheus metrics, OpenTelemetry tracing and an fx managed server lifecycle
//
// A minimal service:
//
//	bapp.NewApp[bapp.Settings](func(m *bapp.Mux, env bapp.Environment) {
//	    api := m.Group(env.Base().APIV1Str)
//	    api.HandleFunc("GET /items/{id}", getItem, "get-item")
//	}).Run()
//
// Handlers log through the request logger, which carries the trace identifier:
//
//	func getItem(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error {
//	    bapp.Log(ctx).Info("getting item")
//	    return bapi.NotFound("")
//	}
package bapp
