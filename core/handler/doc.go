// Package handler defines the request handling contract shared by the
// router, response, and static packages.
//
// A HandlerFunc receives a typed context and returns a Response, which is
// a deferred write of the final HTTP response:
//
//	func hello(ctx *router.Context) handler.Response {
//		return response.String("hello " + ctx.Param("name"))
//	}
//
// Splitting handling into a decision phase (HandlerFunc) and a write phase
// (Response) keeps handlers free of ResponseWriter plumbing and lets the
// router funnel every failure through a single ErrorHandler.
package handler
