package response

import (
	"encoding/json"
	"net/http"

	"github.com/routeserve/routeserve/core/handler"
)

// JSON creates an application/json response with 200 OK status.
func JSON(v any) handler.Response {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus creates an application/json response with a custom status code.
// Encoding failures are reported before any byte is written, so the error
// handler can still produce a clean response.
func JSONWithStatus(v any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		body, err := json.Marshal(v)
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, err = w.Write(body)
		return err
	}
}
