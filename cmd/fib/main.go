// Command fib computes exact Fibonacci numbers and ranges from the command
// line, over HTTP, in a REPL or in a terminal form.
package main

import (
	"context"
	"os"

	"github.com/agbru/fibrange/internal/app"
	apperrors "github.com/agbru/fibrange/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
