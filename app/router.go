package app

import (
	"regexp"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
)

// Router allows us to register many handlers with different paths and then
// direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux.
type Router struct {
	routes map[string]tokenmart.Handler
}

var _ tokenmart.Registry = (*Router)(nil)

// isPath describes the paths a handler can be registered under. The same
// format is produced by the Path method of every message.
var isPath = regexp.MustCompile(`^[a-z_]+/[a-z_]+$`).MatchString

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]tokenmart.Handler),
	}
}

// Handle adds a new handler for the given path. Panics on invalid path or on
// duplicate registration, as both are programmer errors caught at startup.
func (r *Router) Handle(path string, h tokenmart.Handler) {
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.routes[path]; ok {
		panic("re-registering route: " + path)
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is found,
// it returns a noSuchPathHandler, so you can always call the result safely.
func (r *Router) Handler(path string) tokenmart.Handler {
	h, ok := r.routes[path]
	if !ok {
		return noSuchPathHandler{path: path}
	}
	return h
}

// noSuchPathHandler always returns ErrNotFound, paired with the path that was
// requested.
type noSuchPathHandler struct {
	path string
}

var _ tokenmart.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(tokenmart.Context, tokenmart.KVStore, tokenmart.Tx) (*tokenmart.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}

func (h noSuchPathHandler) Deliver(tokenmart.Context, tokenmart.KVStore, tokenmart.Tx) (*tokenmart.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for path %q", h.path)
}
