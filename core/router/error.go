package router

import (
	"errors"
	"fmt"
)

var (
	// Registration errors; all of them panic at startup.
	ErrNoContextFactory = errors.New("no context factory provided")
	ErrInvalidMethod    = errors.New("invalid http method")
	ErrInvalidPattern   = errors.New("invalid route path pattern")
	ErrNilHandler       = errors.New("nil handler")
	ErrWildcardPosition = errors.New("wildcard position must be last")
	ErrDuplicateParam   = errors.New("duplicate parameter name")

	// ErrNilResponse is raised when a handler returns a nil Response.
	ErrNilResponse = errors.New("nil response")
)

// PanicError allows error handlers to detect and handle recovered panics.
// It exposes the original panic value and the stack trace captured at the
// panic point.
type PanicError interface {
	error
	// Value returns the original panic value.
	Value() any
	// Stack returns the stack trace captured at the panic point.
	Stack() []byte
}

// panicError is the private implementation of PanicError.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

func (e *panicError) Value() any {
	return e.value
}

func (e *panicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
