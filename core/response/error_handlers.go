package response

import (
	"net/http"

	"github.com/routeserve/routeserve/core/handler"
)

// responseStarted reports whether a response has already been written.
// The router's response writer implements the written interface; plain
// http.ResponseWriter values are assumed untouched.
func responseStarted(w http.ResponseWriter) bool {
	ww, ok := w.(interface{ Written() bool })
	return ok && ww.Written()
}

// applyOverrides merges the error's header overrides into the outgoing
// response. Headers are applied first; the status — always the error's
// own — is written by the caller afterwards.
func applyOverrides(w http.ResponseWriter, httpErr HTTPError) {
	h := w.Header()
	for key, values := range httpErr.Header {
		for _, v := range values {
			h.Add(key, v)
		}
	}
}

// ErrorHandler is the default error handler that renders plain text errors.
// The error is normalized first, so any failure shape is accepted.
func ErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if responseStarted(w) {
		return
	}

	httpErr := Normalize(err)
	applyOverrides(w, httpErr)
	Render(ctx, StringWithStatus(httpErr.Message, httpErr.Status))
}

// JSONErrorHandler renders errors as JSON bodies of the form
// {"code": "...", "message": "..."}.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	w := ctx.ResponseWriter()
	if responseStarted(w) {
		return
	}

	httpErr := Normalize(err)
	applyOverrides(w, httpErr)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
