package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies terminal color codes. It keeps this package free
// of a dependency on the cli package.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider provides no color codes.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Red() string    { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError prints a status line describing err and returns
// the matching exit code.
//
// Parameters:
//   - err: The error that occurred, or nil.
//   - duration: How long the calculation ran before failing (0 to omit).
//   - out: The io.Writer to which the status line is written.
//   - colors: Provider for terminal color codes (nil for no colors).
//
// Returns:
//   - int: The exit code for the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	var cfgErr ConfigError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	case errors.Is(err, ErrLimitExceeded):
		fmt.Fprintf(out, "%sStatus: Rejected.%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorLimit
	case errors.As(err, &cfgErr):
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
