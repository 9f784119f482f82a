// Package cli renders Fibonacci results for the command line and hosts the
// interactive REPL. Results go to standard output; progress and status
// lines go to standard error.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// SpinnerRefreshRate is the spinner animation interval.
const SpinnerRefreshRate = 100 * time.Millisecond

// FormatExecutionDuration formats d with µs below a millisecond, ms below
// a second, and time.Duration's own format above.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Spinner abstracts the terminal spinner so tests can observe it.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)}
}

// isTerminal reports whether w is a terminal. It is a variable for tests.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// StartProgress shows a spinner labelled with label on w while work runs.
// Nothing is drawn when w is not a terminal. The returned function stops
// the spinner and must be called exactly once.
func StartProgress(w io.Writer, label string) (stop func()) {
	if !isTerminal(w) {
		return func() {}
	}
	s := newSpinner(spinner.WithWriter(w))
	s.UpdateSuffix(" " + label)
	s.Start()
	return s.Stop
}
