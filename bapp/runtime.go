package bapp

import (
	"net/http"

	"github.com/advdv/bapi"
	"github.com/carlmjohnson/requests"
)

// Runtime provides access to app-scoped dependencies.
// Inject this into handler constructors via fx instead of pulling from context.
//
// Example:
//
//	type Handlers struct {
//	    rt *bapp.Runtime[Env]
//	}
//
//	func (h *Handlers) GetItem(ctx context.Context, w bapi.ResponseWriter, r *http.Request) error {
//	    url, _ := h.rt.Reverse("get-item", id)
//	    err := h.rt.NewRequest().BaseURL(h.rt.Env().UpstreamURL).Fetch(ctx)
//	    // ...
//	}
type Runtime[E Environment] struct {
	env       E
	mux       *Mux
	transport http.RoundTripper
}

// NewRuntime creates a new Runtime with the given dependencies.
func NewRuntime[E Environment](env E, mux *Mux, transport http.RoundTripper) *Runtime[E] {
	return &Runtime[E]{env: env, mux: mux, transport: transport}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Reverse returns the URL for a named route with the given parameters.
// The route must have been registered with a name using Handle/HandleFunc.
func (r *Runtime[E]) Reverse(name string, params ...string) (string, error) {
	return r.mux.Reverse(name, params...)
}

// Routes returns the routes registered so far.
func (r *Runtime[E]) Routes() []bapi.Route {
	return r.mux.Routes()
}

// NewRequest starts an outbound request. It is traced and carries the trace identifier of the context
// it is fetched with.
func (r *Runtime[E]) NewRequest() *requests.Builder {
	return newRequestBuilder(r.transport)
}
