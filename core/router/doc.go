// Package router implements an ordered-table HTTP request dispatcher.
//
// Routes pair a compiled path pattern with either a single handler that
// serves every method or a per-method handler map:
//
//	r := router.New[*router.Context]()
//	r.Get("/users/:id", showUser)       // method-map route
//	r.Handle("/assets/*", assetHandler) // all-methods route
//
// Patterns consist of literal segments, named parameters (":name"), and
// an optional trailing wildcard ("*"). Matching is case-sensitive and
// structural; query strings are never consulted.
//
// Dispatch walks the table in declaration order and stops at the first
// structurally matching pattern. Earlier routes shadow later ones: if the
// matched route lacks a handler for the request method, the result is 405
// even when a later route could have served it. No match yields 404. Both
// failures, and any error a handler produces, reach the configured error
// handler as a single normalized HTTPError shape.
//
// The route table is built at startup and read-only afterwards, so any
// number of concurrent requests can dispatch without synchronization.
package router
