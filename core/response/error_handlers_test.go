package response_test

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeserve/routeserve/core/response"
)

// testContext is a minimal handler.Context for exercising the error
// handlers without the router.
type testContext struct {
	w http.ResponseWriter
	r *http.Request
}

func newTestContext(w http.ResponseWriter, r *http.Request) *testContext {
	return &testContext{w: w, r: r}
}

func (c *testContext) Deadline() (time.Time, bool)           { return c.r.Context().Deadline() }
func (c *testContext) Done() <-chan struct{}                 { return c.r.Context().Done() }
func (c *testContext) Err() error                            { return c.r.Context().Err() }
func (c *testContext) Value(key any) any                     { return c.r.Context().Value(key) }
func (c *testContext) Request() *http.Request                { return c.r }
func (c *testContext) ResponseWriter() http.ResponseWriter   { return c.w }
func (c *testContext) Param(string) string                   { return "" }

var _ context.Context = (*testContext)(nil)

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("renders normalized status and message", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		ctx := newTestContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

		response.ErrorHandler(ctx, fs.ErrNotExist)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), fs.ErrNotExist.Error())
	})

	t.Run("applies header overrides before the status", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		ctx := newTestContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

		err := response.ErrMethodNotAllowed.WithHeader("Allow", "GET, HEAD")
		response.ErrorHandler(ctx, err)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "GET, HEAD", w.Header().Get("Allow"))
	})

	t.Run("status is never overridden by the caller", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		ctx := newTestContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

		// Header overrides cannot smuggle a different status.
		err := response.ErrForbidden.WithHeader("X-Custom", "1")
		response.ErrorHandler(ctx, err)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestJSONErrorHandler(t *testing.T) {
	t.Parallel()

	t.Run("renders code and message", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		ctx := newTestContext(w, httptest.NewRequest(http.MethodGet, "/", nil))

		response.JSONErrorHandler(ctx, errors.New("kaput"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var body struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "internal_server_error", body.Code)
		assert.Equal(t, "kaput", body.Message)
	})
}
