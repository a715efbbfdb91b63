// Package static serves files with conditional-GET semantics and
// canonical-path enforcement.
//
// File serves one file; Dir serves a directory tree:
//
//	r.Get("/favicon.ico", static.File[*router.Context]("./public/favicon.ico"))
//	r.Handle("/*", static.Dir[*router.Context]("./public"))
//
// Responses carry Accept-Ranges: none (range requests are unsupported),
// Content-Length, Content-Type by extension, Last-Modified, and an ETag
// derived from file metadata. If-None-Match and If-Modified-Since are
// honored: a fresh client copy short-circuits to a body-less 304, with
// the ETag taking precedence over the modification time. HEAD requests
// never produce a body.
//
// Dir canonicalizes request paths before serving — duplicate separators
// and trailing slashes redirect (308) to the canonical URL, and any
// parent-directory segment left after normalization is rejected with 403
// before the filesystem is touched.
package static
