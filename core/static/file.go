package static

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/routeserve/routeserve/core/handler"
	"github.com/routeserve/routeserve/core/response"
)

// imsTolerance absorbs the sub-second precision lost by HTTP date
// formatting when comparing file modification times against
// If-Modified-Since.
const imsTolerance = time.Second

// File creates a handler that serves a single file with conditional
// request support (ETag and Last-Modified validators). Range requests
// are not supported. Panics at startup if the file doesn't exist or is
// a directory.
func File[C handler.Context](filePath string) handler.HandlerFunc[C] {
	cleanPath := filepath.Clean(filePath)

	if err := validateStartup(cleanPath, false); err != nil {
		panic("static.File: " + err.Error())
	}

	return func(ctx C) handler.Response {
		return fileResponse(cleanPath)
	}
}

// fileResponse defers the conditional serving of path to response time.
func fileResponse(path string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return serveFile(w, r, path)
	}
}

// serveFile writes a conditional file response.
//
// Metadata is read fresh from storage on every request. Response headers
// are computed unconditionally; the not-modified decision then selects
// between a 304 without body, a headers-only 200 for HEAD, and a streamed
// 200 for GET. The body stream honors request cancellation, releasing the
// file before full consumption when the client goes away.
func serveFile(w http.ResponseWriter, r *http.Request, path string) error {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return response.ErrMethodNotAllowed.
			WithHeader("Allow", "GET, HEAD").
			WithCause(r)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return response.ErrNotFound.WithCause(err)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return response.ErrNotFound.WithCause(fs.ErrNotExist)
	}

	h := w.Header()
	h.Set("Accept-Ranges", "none")
	h.Set("Content-Length", strconv.FormatInt(info.Size(), 10))

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)

	modTime := info.ModTime()
	if !modTime.IsZero() {
		h.Set("Last-Modified", modTime.UTC().Format(http.TimeFormat))
	}

	etag := metadataETag(info)
	if etag != "" {
		h.Set("ETag", etag)
	}

	if notModified(requestValidators(r), etag, modTime) {
		// Entity headers describing the suppressed body are dropped;
		// the validators stay so caches can refresh their entries.
		h.Del("Content-Length")
		h.Del("Content-Type")
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w.WriteHeader(http.StatusOK)
	_, err = io.Copy(w, &ctxReader{ctx: r.Context(), r: f})
	return err
}

// validators holds the conditional request headers consumed by the
// not-modified decision.
type validators struct {
	ifNoneMatch     string
	ifModifiedSince time.Time
}

// requestValidators extracts the cache validators from a request.
// Unparseable If-Modified-Since values are ignored.
func requestValidators(r *http.Request) validators {
	v := validators{
		ifNoneMatch: strings.TrimSpace(r.Header.Get("If-None-Match")),
	}
	if ims := r.Header.Get("If-Modified-Since"); ims != "" {
		if t, err := http.ParseTime(ims); err == nil {
			v.ifModifiedSince = t
		}
	}
	return v
}

// notModified decides whether the client's copy is still fresh.
//
// A present If-None-Match is decided by the ETag alone: a match means not
// modified, a mismatch — or no computable ETag — means modified, without
// ever consulting If-Modified-Since. Only when no If-None-Match was
// supplied does If-Modified-Since apply, treating the file as unchanged
// unless its modification time is strictly newer than the validator plus
// a one-second tolerance. No validators means always modified.
func notModified(v validators, etag string, modTime time.Time) bool {
	if v.ifNoneMatch != "" {
		return etag != "" && etagMatches(v.ifNoneMatch, etag)
	}
	if !v.ifModifiedSince.IsZero() && !modTime.IsZero() {
		return !modTime.After(v.ifModifiedSince.Add(imsTolerance))
	}
	return false
}

// etagMatches tests an If-None-Match header value against the computed
// ETag, handling the "*" form, comma-separated lists, and weak prefixes.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// ctxReader stops a copy as soon as the request context is canceled, so
// an aborted response releases the underlying file promptly.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}
