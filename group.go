package bapi

import (
	"net/http"
	"strings"
)

// Group registers routes on a [ServeMux] below a common path prefix. Unlike mounting, the request path is
// not rewritten: handlers see the full path and named routes reverse to it.
type Group struct {
	mux    *ServeMux
	prefix string
}

// Prefix returns the path prefix of the group.
func (g *Group) Prefix() string { return g.prefix }

// Handle registers 'handler' for 'pattern' below the group prefix.
func (g *Group) Handle(pattern string, handler Handler, name ...string) {
	g.mux.Handle(g.join(pattern), handler, name...)
}

// HandleFunc registers a function for 'pattern' below the group prefix.
func (g *Group) HandleFunc(pattern string, handler HandlerFunc, name ...string) {
	g.mux.Handle(g.join(pattern), handler, name...)
}

// HandleStd registers a standard library handler for 'pattern' below the group prefix.
func (g *Group) HandleStd(pattern string, handler http.Handler, name ...string) {
	g.mux.HandleStd(g.join(pattern), handler, name...)
}

// Group returns a nested group.
func (g *Group) Group(prefix string) *Group {
	return &Group{mux: g.mux, prefix: g.prefix + cleanPrefix(prefix)}
}

func (g *Group) join(pattern string) string {
	method, path := splitMethodPattern(pattern)
	return method + g.prefix + path
}

// splitMethodPattern separates the "METHOD " part (space included) from the path.
func splitMethodPattern(pattern string) (method, path string) {
	if idx := strings.LastIndex(pattern, "/"); idx > 0 {
		prefix := pattern[:idx]
		if spaceIdx := strings.Index(prefix, " "); spaceIdx >= 0 {
			return pattern[:spaceIdx+1], pattern[spaceIdx+1:]
		}
	}

	return "", pattern
}

// cleanPrefix makes 'p' start with a slash and end without one; "/" and "" become "".
func cleanPrefix(p string) string {
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

var (
	_ Router = (*ServeMux)(nil)
	_ Router = (*Group)(nil)
)
