// Package module mounts self-contained HTTP handlers under single-level path prefixes.
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Module is an HTTP handler served under a prefix with its own middleware chain.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a Module. The prefix must be a single path segment with a
// leading slash, such as "/api"; anything else panics.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. Middleware registered first runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the handler wrapped in the registered middleware.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the prefix from the request path and dispatches to Handler.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	req := r.Clone(r.Context())
	req.URL.Path = path
	req.URL.RawPath = ""

	m.Handler().ServeHTTP(w, req)
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix must not be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if strings.Contains(prefix[1:], "/") {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}
