package static

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/routeserve/routeserve/core/handler"
	"github.com/routeserve/routeserve/core/response"
)

// Dir creates a handler that serves files from a directory tree with
// canonical-path enforcement:
//
//   - repeated path separators are collapsed and answered with a 308
//     redirect to the normalized URL
//   - trailing-slash forms are answered with a 308 redirect to the
//     slashless form
//   - any parent-directory segment surviving normalization is rejected
//     with 403 before touching the filesystem
//
// Directory listing does not exist: a path resolving to a directory is a
// 404. Panics at startup if the root doesn't exist or is not a directory.
func Dir[C handler.Context](root string) handler.HandlerFunc[C] {
	cleanRoot := filepath.Clean(root)

	if err := validateStartup(cleanRoot, true); err != nil {
		panic("static.Dir: " + err.Error())
	}

	return func(ctx C) handler.Response {
		return serveDir(ctx.Request(), cleanRoot)
	}
}

// serveDir canonicalizes the request path and resolves it within root.
func serveDir(r *http.Request, root string) handler.Response {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return response.Error(response.ErrMethodNotAllowed.
			WithHeader("Allow", "GET, HEAD").
			WithCause(r))
	}

	path := r.URL.Path
	if path == "" {
		path = "/"
	}

	// Canonical form first: a changed path is redirected, never served.
	if collapsed := collapseSeparators(path); collapsed != path {
		return response.RedirectPermanentPreserve(withQuery(collapsed, r))
	}

	// The bare root stays as is; stripping its slash would leave an
	// empty location. It then resolves to the root directory and 404s.
	if path != "/" && strings.HasSuffix(path, "/") {
		return response.RedirectPermanentPreserve(withQuery(strings.TrimSuffix(path, "/"), r))
	}

	// Traversal is checked strictly after normalization so encoded or
	// repeated-separator attempts cannot slip through.
	rel := strings.TrimLeft(path, "/")
	if hasTraversal(rel) {
		return response.Error(response.ErrForbidden.WithCause(r))
	}

	return fileResponse(filepath.Join(root, filepath.FromSlash(rel)))
}

// collapseSeparators reduces every run of '/' to a single separator.
func collapseSeparators(path string) string {
	if !strings.Contains(path, "//") {
		return path
	}

	var b strings.Builder
	b.Grow(len(path))
	var prevSlash bool
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '/' && prevSlash {
			continue
		}
		prevSlash = c == '/'
		b.WriteByte(c)
	}
	return b.String()
}

// hasTraversal reports whether any segment of the already-normalized
// relative path refers to a parent directory.
func hasTraversal(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// withQuery re-attaches the original query string to a redirect location.
func withQuery(path string, r *http.Request) string {
	if r.URL.RawQuery != "" {
		return path + "?" + r.URL.RawQuery
	}
	return path
}
