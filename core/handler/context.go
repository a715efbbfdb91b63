package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts.
// Implementations carry the request, the response writer, and any
// path parameters captured during route matching.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
}
