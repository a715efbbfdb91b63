// Package logger provides slog construction and nil-safe attribute
// helpers shared across the module.
package logger
