package response

import (
	"net/http"

	"github.com/routeserve/routeserve/core/handler"
)

// Error returns a response that propagates the given error to the
// router's error handler. Handlers use it to fail without touching the
// response writer themselves.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
