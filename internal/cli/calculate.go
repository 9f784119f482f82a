package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/service"
	"github.com/agbru/fibrange/internal/ui"
)

// InvalidRangeMessage is printed when a range has end < start.
const InvalidRangeMessage = "Invalid range: end < start"

// Runner executes the single and range commands against a service.
type Runner struct {
	Service service.Service
	Output  OutputConfig
	// Out receives the values, ErrOut the spinner and status lines.
	Out    io.Writer
	ErrOut io.Writer
}

// RunSingle computes F(n) and renders it. It returns the process exit code.
func (r Runner) RunSingle(ctx context.Context, n uint64) int {
	stop := r.progress(fmt.Sprintf("Computing F(%d)...", n))
	start := time.Now()
	v, err := r.Service.Single(ctx, n)
	duration := time.Since(start)
	stop()
	if err != nil {
		return apperrors.HandleCalculationError(err, duration, r.ErrOut, ui.ThemeColors{})
	}

	code := r.emit(func(w io.Writer) error { return WriteSingle(w, n, v, r.Output) })
	if code == apperrors.ExitSuccess {
		r.status("Computed F(%d) in %s", n, FormatExecutionDuration(duration))
	}
	return code
}

// RunRange computes F(start) through F(end) and renders them in index
// order. An inverted range is reported on ErrOut and is not a failure.
func (r Runner) RunRange(ctx context.Context, start, end uint64) int {
	stop := r.progress(fmt.Sprintf("Computing F(%d)..F(%d)...", start, end))
	began := time.Now()
	values, err := r.Service.Range(ctx, start, end)
	duration := time.Since(began)
	stop()
	if err != nil {
		return apperrors.HandleCalculationError(err, duration, r.ErrOut, ui.ThemeColors{})
	}

	if len(values) == 0 {
		fmt.Fprintln(r.ErrOut, InvalidRangeMessage)
		if !r.Output.JSON {
			return apperrors.ExitSuccess
		}
	}

	code := r.emit(func(w io.Writer) error { return WriteRange(w, start, values, r.Output) })
	if code == apperrors.ExitSuccess && len(values) > 0 {
		r.status("Computed %d values in %s", len(values), FormatExecutionDuration(duration))
	}
	return code
}

// emit renders to Out, or to the output file when one is configured.
func (r Runner) emit(render func(io.Writer) error) int {
	if r.Output.OutputFile == "" {
		if err := render(r.Out); err != nil {
			fmt.Fprintf(r.ErrOut, "%sError writing result: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	if err := WriteResultToFile(r.Output.OutputFile, render); err != nil {
		fmt.Fprintf(r.ErrOut, "%sError saving result: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
	r.status("Result saved to: %s%s%s", ui.ColorCyan(), r.Output.OutputFile, ui.ColorReset())
	return apperrors.ExitSuccess
}

func (r Runner) progress(label string) func() {
	if r.Output.Quiet || r.ErrOut == nil {
		return func() {}
	}
	return StartProgress(r.ErrOut, label)
}

// status prints a colored line on ErrOut unless quiet or JSON output is on.
func (r Runner) status(format string, a ...any) {
	if r.Output.Quiet || r.Output.JSON {
		return
	}
	fmt.Fprintf(r.ErrOut, "%s%s%s\n", ui.ColorGreen(), fmt.Sprintf(format, a...), ui.ColorReset())
}
