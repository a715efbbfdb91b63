// Package response provides the HTTP error model, failure normalization,
// and response builders used by handlers.
//
// # Error model
//
// HTTPError is the one error shape that crosses the response boundary.
// Dispatch failures (404/405), file-serving failures (403/404/405), and
// normalized handler failures all arrive here:
//
//	return response.Error(response.ErrNotFound.WithCause(req))
//
// Normalize maps arbitrary failures to an HTTPError by error kind —
// fs.ErrNotExist becomes 404, fs.ErrPermission 403, connection faults 502,
// timeouts 504, and so on. It is pure and idempotent: normalizing an
// HTTPError returns it unchanged.
//
// # Responses
//
// Builders return handler.Response values that perform the final write:
//
//	return response.JSON(result)
//	return response.RedirectPermanentPreserve(canonical)
//
// ErrorHandler and JSONErrorHandler are ready-made router error handlers
// that normalize, apply the error's header overrides, and render.
package response
