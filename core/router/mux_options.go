package router

import (
	"log/slog"
	"net/http"

	"github.com/routeserve/routeserve/core/handler"
)

// Option configures a router during construction.
type Option[C handler.Context] func(*mux[C])

// WithErrorHandler sets a custom error handler for the router.
// The default renders normalized errors as plain text.
func WithErrorHandler[C handler.Context](h handler.ErrorHandler[C]) Option[C] {
	return func(m *mux[C]) {
		if h != nil {
			m.errorHandler = h
		}
	}
}

// WithContextFactory sets the factory used to build the per-request
// context. Required for custom context types.
func WithContextFactory[C handler.Context](factory func(http.ResponseWriter, *http.Request, map[string]string) C) Option[C] {
	return func(m *mux[C]) {
		if factory != nil {
			m.newContext = factory
		}
	}
}

// WithLogger sets the logger used for panic reporting.
func WithLogger[C handler.Context](logger *slog.Logger) Option[C] {
	return func(m *mux[C]) {
		if logger != nil {
			m.logger = logger
		}
	}
}
