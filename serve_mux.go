package bapi

import (
	"context"
	"log"
	"net/http"
	"sync"
)

// Router is implemented by [ServeMux] and [Group] so features can register routes without knowing where
// they are mounted.
type Router interface {
	Handle(pattern string, handler Handler, name ...string)
	HandleFunc(pattern string, handler HandlerFunc, name ...string)
	HandleStd(pattern string, handler http.Handler, name ...string)
	Group(prefix string) *Group
}

// Route describes a registered pattern.
type Route struct {
	Pattern string
	Name    string
}

// ServeMux is an HTTP multiplexer with buffered responses, error handling, and named routes. Requests that
// match no route are served through the same middleware and answered with an [*Error] carrying the status
// the standard mux would have used (404 or 405). Paths the standard mux would redirect to their canonical
// form (duplicate slashes, dot segments, a missing trailing slash) are answered as not found.
type ServeMux struct {
	logs        Logger
	bufLimit    int
	reverser    *Reverser
	mux         *http.ServeMux
	routes      []Route
	middlewares struct {
		captured bool
		buffered []Middleware
	}

	unmatchedOnce sync.Once
	unmatched     http.Handler
}

// NewServeMux creates a new ServeMux with default settings.
func NewServeMux() *ServeMux {
	return NewServeMuxWith(-1, NewStdLogger(log.Default()), http.NewServeMux(), NewReverser())
}

// NewServeMuxWith creates a ServeMux with custom settings.
func NewServeMuxWith(bufLimit int, logger Logger, baseMux *http.ServeMux, reverser *Reverser) *ServeMux {
	return &ServeMux{
		bufLimit: bufLimit,
		logs:     logger,
		reverser: reverser,
		mux:      baseMux,
	}
}

// Reverse returns the url based on the name and parameter values.
func (m *ServeMux) Reverse(name string, vals ...string) (string, error) {
	return m.reverser.Reverse(name, vals...)
}

// Routes returns the registered patterns in registration order.
func (m *ServeMux) Routes() []Route {
	return append([]Route(nil), m.routes...)
}

// Use allows providing of middleware.
func (m *ServeMux) Use(mw ...Middleware) {
	m.ensureNoUseAfterHandle()
	m.middlewares.buffered = append(m.middlewares.buffered, mw...)
}

// HandleFunc handles the request given the pattern using a function.
func (m *ServeMux) HandleFunc(pattern string, handler HandlerFunc, name ...string) {
	m.Handle(pattern, handler, name...)
}

// HandleStd registers a standard library [http.Handler] for the given pattern. Middleware
// registered via [ServeMux.Use] is applied but the handler owns its response, it is never
// wrapped in an envelope.
func (m *ServeMux) HandleStd(pattern string, handler http.Handler, name ...string) {
	m.Handle(pattern, HandlerFunc(func(_ context.Context, w ResponseWriter, r *http.Request) error {
		handler.ServeHTTP(w, r)
		return nil
	}), name...)
}

// Handle handles the request given a handler.
func (m *ServeMux) Handle(pattern string, handler Handler, name ...string) {
	m.handle(pattern, ToStd(
		Wrap(handler, m.middlewares.buffered...),
		m.bufLimit,
		m.logs,
	), name...)
}

// Group returns a router that registers every pattern below 'prefix'.
func (m *ServeMux) Group(prefix string) *Group {
	return &Group{mux: m, prefix: cleanPrefix(prefix)}
}

// ServeHTTP makes the server mux implement the http.Handler interface.
func (m *ServeMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, _ := m.mux.Handler(r); !isRoute(h) {
		m.unmatchedOnce.Do(m.initUnmatched)
		m.unmatched.ServeHTTP(w, r)
		return
	}

	m.mux.ServeHTTP(w, r)
}

// initUnmatched builds the handler for requests no route serves. The standard mux decides between 404 and
// 405, its response is captured and replaced by an error so it is rendered like any other. Redirects to a
// canonical path become 404.
func (m *ServeMux) initUnmatched() {
	m.middlewares.captured = true

	fallback := BareHandlerFunc(func(_ ResponseWriter, r *http.Request) error {
		std, _ := m.mux.Handler(r)

		rec := newBufferResponse(discard{}, -1)
		defer rec.Free()
		std.ServeHTTP(rec, r)

		if rec.Status() == http.StatusMethodNotAllowed {
			return NewStatusError(http.StatusMethodNotAllowed)
		}
		return NewStatusError(http.StatusNotFound)
	})

	m.unmatched = ToStd(wrapBare(fallback, m.middlewares.buffered...), m.bufLimit, m.logs)
}

func (m *ServeMux) handle(pattern string, handler http.Handler, name ...string) {
	m.middlewares.captured = true

	var routeName string
	if len(name) > 0 {
		routeName = name[0]
		pattern = m.reverser.Named(routeName, pattern)
	}

	m.routes = append(m.routes, Route{Pattern: pattern, Name: routeName})
	m.mux.Handle(pattern, route{handler})
}

// route marks handlers registered on the mux, anything else the standard mux hands out is a fallback.
type route struct{ http.Handler }

func isRoute(h http.Handler) bool {
	_, ok := h.(route)
	return ok
}

func (m *ServeMux) ensureNoUseAfterHandle() {
	if m.middlewares.captured {
		panic("bapi: cannot call Use() after calling Handle")
	}
}

// discard is a ResponseWriter nothing is ever flushed to.
type discard struct{}

func (discard) Header() http.Header         { return http.Header{} }
func (discard) Write(p []byte) (int, error) { return len(p), nil }
func (discard) WriteHeader(int)             {}
