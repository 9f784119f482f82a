// Package apperrors defines the structured error types shared by the fib
// shells, and the exit codes the command-line tool reports.
//
// All wrapping types implement Unwrap so errors.Is and errors.As see through
// them, and context errors keep their identity across the engine boundary.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution, including an empty range.
	ExitErrorGeneric  = 1   // Unexpected failure.
	ExitErrorTimeout  = 2   // The -timeout deadline was reached.
	ExitErrorLimit    = 3   // The request exceeded a configured limit.
	ExitErrorConfig   = 4   // Invalid flags, arguments or environment.
	ExitErrorCanceled = 130 // Interrupted by SIGINT or SIGTERM.
)

// ErrLimitExceeded is the root of every "request too large" error. The
// service wraps it with the specific limit that was hit.
var ErrLimitExceeded = errors.New("limit exceeded")

// LimitError reports a request rejected because Field exceeded Max. It
// matches both its Cause and ErrLimitExceeded under errors.Is.
type LimitError struct {
	// Cause is the specific sentinel, e.g. service.ErrMaxValueExceeded.
	Cause error
	// Field names the offending quantity ("n", "end", "length").
	Field string
	// Value is the requested amount.
	Value uint64
	// Max is the configured maximum.
	Max uint64
}

// Error describes the offending field and configured maximum.
func (e LimitError) Error() string {
	return fmt.Sprintf("%v: %s=%d, maximum is %d", e.Cause, e.Field, e.Value, e.Max)
}

// Unwrap returns the cause and ErrLimitExceeded.
func (e LimitError) Unwrap() []error { return []error{e.Cause, ErrLimitExceeded} }

// NewLimitError creates a LimitError.
func NewLimitError(cause error, field string, value, maxValue uint64) error {
	return LimitError{Cause: cause, Field: field, Value: value, Max: maxValue}
}

// ConfigError reports invalid user configuration such as an unknown flag
// value or a non-numeric index argument.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure that happened while computing values, for
// example a canceled context, keeping the cause inspectable.
type CalculationError struct {
	// Op names the operation that failed ("single" or "range").
	Op string
	// Cause is the underlying error.
	Cause error
}

// Error returns the operation prefixed cause message.
func (e CalculationError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// NewCalculationError wraps cause for op. It returns nil when cause is nil.
func NewCalculationError(op string, cause error) error {
	if cause == nil {
		return nil
	}
	return CalculationError{Op: op, Cause: cause}
}

// ServerError represents errors in the HTTP server component.
type ServerError struct {
	// Message is a descriptive message about the server error.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the message and the cause if present.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a new ServerError with a message and optional cause.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ValidationError reports malformed external input: a missing JSON field, a
// negative index, a value wider than 64 bits.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message describes why validation failed.
	Message string
	// Value is the invalid value (optional, may be nil).
	Value any
}

// Error returns the message, prefixed with the field when known.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new ValidationError.
//
// Parameters:
//   - field: The name of the field that failed validation.
//   - message: A description of why validation failed.
//   - value: The invalid value (optional).
//
// Returns:
//   - error: A new ValidationError instance.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// WrapError adds context to err with %w. It returns nil when err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or deadline error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
