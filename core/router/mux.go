package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/routeserve/routeserve/core/handler"
	"github.com/routeserve/routeserve/core/response"
)

// knownMethods is the set of method tokens accepted at registration time.
var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodDelete:  {},
	http.MethodPatch:   {},
	http.MethodHead:    {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
}

// route is one entry of the ordered route table. Exactly one dispatch
// form is set: all (a single handler serving every method) or methods
// (a per-method handler map keyed by upper-cased tokens).
type route[C handler.Context] struct {
	pattern *Pattern
	all     handler.HandlerFunc[C]
	methods map[string]handler.HandlerFunc[C]
}

// mux is the private implementation of Router.
type mux[C handler.Context] struct {
	routes       []*route[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
}

// newMux creates a new router instance.
func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		errorHandler: response.ErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(m)
	}

	// Without a factory only the default *Context type is supported;
	// custom context types must provide one.
	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
//
// The route table is scanned in declaration order and the first
// structurally matching pattern wins; scanning stops there even when the
// matched route has no handler for the request method, which then yields
// 405 rather than falling through to a later route. No structural match
// at all yields 404. Both carry the triggering request as their cause.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	var (
		matched  *route[C]
		captures map[string]string
	)
	for _, rt := range m.routes {
		if c, ok := rt.pattern.Match(path); ok {
			matched, captures = rt, c
			break
		}
	}

	ctx := m.newContext(ww, r, captures)

	// Recover from panics to prevent server crashes.
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{
				value: p,
				stack: debug.Stack(),
			}

			if ww.Written() {
				// Too late for an error response, just log it.
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
			} else {
				m.errorHandler(ctx, panicErr)
			}
		}
	}()

	if matched == nil {
		m.errorHandler(ctx, response.ErrNotFound.WithCause(r))
		return
	}

	fn := matched.all
	if fn == nil {
		fn = matched.methods[strings.ToUpper(r.Method)]
		if fn == nil {
			// Set Allow header per RFC 7231 before responding with 405.
			if allowed := matched.allowedMethods(); len(allowed) > 0 && !ww.Written() {
				ww.Header().Set("Allow", strings.Join(allowed, ", "))
			}
			m.errorHandler(ctx, response.ErrMethodNotAllowed.WithCause(r))
			return
		}
	}

	resp := fn(ctx)
	if resp == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := resp(ww, r); err != nil {
		m.errorHandler(ctx, err)
	}
}

// allowedMethods lists the methods a method-map route can serve, sorted
// for a stable Allow header.
func (rt *route[C]) allowedMethods() []string {
	methods := make([]string, 0, len(rt.methods))
	for method := range rt.methods {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodGet)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPost)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPut)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodDelete)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodPatch)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodHead)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern string, h handler.HandlerFunc[C]) {
	m.handle(pattern, h, http.MethodOptions)
}

// Handle registers a handler serving every method of the pattern.
// The route occupies its own position in the table and never merges
// with method-map routes for the same pattern.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilHandler, pattern))
	}
	m.routes = append(m.routes, &route[C]{
		pattern: MustPattern(pattern),
		all:     h,
	})
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}
	m.handle(pattern, h, methods...)
}

// Routes returns all registered routes in declaration order.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	for _, rt := range m.routes {
		if rt.all != nil {
			routes = append(routes, Route{Method: "*", Pattern: rt.pattern.String()})
			continue
		}
		for _, method := range rt.allowedMethods() {
			routes = append(routes, Route{Method: method, Pattern: rt.pattern.String()})
		}
	}
	return routes
}

// handle registers a method-map route. Registrations for the same
// template merge into one table entry, so
//
//	m.Get("/test", h1)
//	m.Post("/test", h2)
//
// produces a single route with two methods. Map semantics apply: a
// repeated method for the same template replaces the previous handler.
func (m *mux[C]) handle(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if h == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilHandler, pattern))
	}

	rt := m.methodRoute(pattern)
	for _, method := range methods {
		token := strings.ToUpper(method)
		if _, ok := knownMethods[token]; !ok {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		rt.methods[token] = h
	}
}

// methodRoute finds the method-map route for a template, appending a new
// table entry when none exists yet.
func (m *mux[C]) methodRoute(pattern string) *route[C] {
	for _, rt := range m.routes {
		if rt.methods != nil && rt.pattern.String() == pattern {
			return rt
		}
	}

	rt := &route[C]{
		pattern: MustPattern(pattern),
		methods: make(map[string]handler.HandlerFunc[C]),
	}
	m.routes = append(m.routes, rt)
	return rt
}
