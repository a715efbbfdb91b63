package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/routeserve/routeserve/core/handler"
	"github.com/routeserve/routeserve/core/response"
)

func TestRedirects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		resp   func(string) handler.Response
		status int
	}{
		{"found", response.Redirect, http.StatusFound},
		{"moved permanently", response.RedirectPermanent, http.StatusMovedPermanently},
		{"see other", response.RedirectSeeOther, http.StatusSeeOther},
		{"temporary", response.RedirectTemporary, http.StatusTemporaryRedirect},
		{"permanent preserve", response.RedirectPermanentPreserve, http.StatusPermanentRedirect},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/old", nil)

			err := tt.resp("/new")(w, r)

			assert.NoError(t, err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "/new", w.Header().Get("Location"))
		})
	}

	t.Run("invalid status falls back to 302", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/old", nil)

		err := response.RedirectWithStatus("/new", http.StatusOK)(w, r)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusFound, w.Code)
	})
}
