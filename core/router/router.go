package router

import (
	"net/http"

	"github.com/routeserve/routeserve/core/handler"
)

// Router dispatches HTTP requests against an ordered route table.
// Routes are declared at startup and immutable afterwards; declaration
// order matters, since the first structurally matching pattern wins.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	// HTTP method handlers
	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Head(pattern string, h handler.HandlerFunc[C])
	Options(pattern string, h handler.HandlerFunc[C])

	// Handle registers a handler serving every method of the pattern.
	Handle(pattern string, h handler.HandlerFunc[C])
	// Method registers a handler for one or more specific HTTP methods.
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)
}

// Routes provides route introspection for debugging and monitoring.
type Routes interface {
	Routes() []Route
}

// Route describes a single registered route. Method is "*" for routes
// serving every method.
type Route struct {
	Method  string
	Pattern string
}

// New creates a new router with the given options.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux(opts...)
}
