package response

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"syscall"

	"github.com/go-playground/validator/v10"
)

// Normalize converts an arbitrary failure into an HTTPError.
// Errors that already are (or wrap) an HTTPError pass through unchanged,
// making Normalize idempotent. Anything else is classified by error kind
// via a fixed table; unclassified errors become 500. The original error's
// message is preserved when present, and the error itself is kept as the
// cause for diagnostics.
func Normalize(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	base, ok := httpErrorsByStatus[classify(err)]
	if !ok {
		base = ErrInternalServerError
	}

	if msg := err.Error(); msg != "" {
		base = base.WithMessage(msg)
	}
	return base.WithCause(err)
}

// classifier pairs an error-kind probe with the status it maps to.
type classifier struct {
	status int
	match  func(error) bool
}

// classifiers is consulted in order; the first matching kind wins.
// The table is fixed at startup and never mutated, so concurrent
// classification needs no synchronization.
var classifiers = []classifier{
	{http.StatusGatewayTimeout, isTimeout},
	{http.StatusForbidden, isPermissionDenied},
	{http.StatusNotFound, isNotExist},
	{http.StatusConflict, isAlreadyExists},
	{http.StatusUnprocessableEntity, isInvalidData},
	{http.StatusBadGateway, isUpstreamFault},
	{http.StatusServiceUnavailable, isBusy},
	{http.StatusBadRequest, isMalformedInput},
}

func classify(err error) int {
	for _, c := range classifiers {
		if c.match(err) {
			return c.status
		}
	}
	return http.StatusInternalServerError
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrDeadlineExceeded) ||
		errors.Is(err, syscall.ETIMEDOUT) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func isAlreadyExists(err error) bool {
	return errors.Is(err, fs.ErrExist)
}

func isInvalidData(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func isUpstreamFault(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

func isBusy(err error) bool {
	return errors.Is(err, syscall.EBUSY) || errors.Is(err, syscall.EAGAIN)
}

func isMalformedInput(err error) bool {
	if errors.Is(err, fs.ErrInvalid) ||
		errors.Is(err, strconv.ErrSyntax) ||
		errors.Is(err, strconv.ErrRange) ||
		errors.Is(err, syscall.EINVAL) ||
		errors.Is(err, syscall.EADDRNOTAVAIL) {
		return true
	}

	var (
		jsonSyntaxErr *json.SyntaxError
		jsonTypeErr   *json.UnmarshalTypeError
		escapeErr     url.EscapeError
		hostErr       url.InvalidHostError
		addrErr       net.InvalidAddrError
	)
	return errors.As(err, &jsonSyntaxErr) ||
		errors.As(err, &jsonTypeErr) ||
		errors.As(err, &escapeErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &addrErr)
}
