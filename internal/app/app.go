package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agbru/fibrange/internal/cli"
	"github.com/agbru/fibrange/internal/config"
	apperrors "github.com/agbru/fibrange/internal/errors"
	"github.com/agbru/fibrange/internal/fibonacci"
	"github.com/agbru/fibrange/internal/logging"
	"github.com/agbru/fibrange/internal/server"
	"github.com/agbru/fibrange/internal/service"
	"github.com/agbru/fibrange/internal/tui"
	"github.com/agbru/fibrange/internal/ui"
)

// Application is one fib invocation: a parsed configuration and the
// streams it runs against.
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Backends lists the registered single-value backends.
	Backends []string
	// In feeds the interactive REPL. It defaults to os.Stdin.
	In io.Reader
	// ErrWriter receives diagnostics, status lines and logs.
	ErrWriter io.Writer
}

// New parses args (program name first) into an Application. Parse errors
// and usage are written to errWriter.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: flag.ErrHelp, a flag error or a ConfigError.
func New(args []string, errWriter io.Writer) (*Application, error) {
	backends := fibonacci.Backends()

	programName := "fib"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, backends)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Backends:  backends,
		In:        os.Stdin,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the configured mode and returns the process exit code.
//
// Parameters:
//   - ctx: The parent context; SIGINT and SIGTERM are added on top.
//   - out: The writer for values and interactive output.
//
// Returns:
//   - int: An exit code from the apperrors Exit* constants.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	logger, err := logging.New(a.ErrWriter, logging.Options{
		Level:   a.Config.LogLevel,
		Console: !a.Config.ServerMode,
	})
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	svc, err := service.New(service.Config{
		MaxN:        a.Config.MaxN,
		MaxRangeLen: a.Config.MaxRangeLen,
		Workers:     a.Config.Workers,
		Backend:     a.Config.Backend,
	}, logger)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	switch a.Config.Mode() {
	case "server":
		return a.runServer(ctx, svc, logger)
	case "interactive":
		return a.runREPL(ctx, svc, out)
	case "tui":
		return a.runTUI(ctx, svc)
	default:
		return a.runCalculate(ctx, svc, out)
	}
}

// runCompletion prints a shell completion script.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Backends); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runServer serves HTTP until a termination signal arrives.
func (a *Application) runServer(ctx context.Context, svc service.Service, logger logging.Logger) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	srv := server.NewServer(svc, a.Config, server.WithLogger(logger))
	if err := srv.Start(ctx); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runREPL runs the interactive session; each command gets its own timeout.
func (a *Application) runREPL(ctx context.Context, svc service.Service, out io.Writer) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	repl := cli.NewREPL(svc, cli.REPLConfig{
		Timeout:   a.Config.Timeout,
		HexOutput: a.Config.HexOutput,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

func (a *Application) runTUI(ctx context.Context, svc service.Service) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	return tui.Run(ctx, svc, tui.Config{
		Timeout:   a.Config.Timeout,
		HexOutput: a.Config.HexOutput,
	})
}

// runCalculate runs the single or range command under the -timeout
// deadline.
func (a *Application) runCalculate(ctx context.Context, svc service.Service, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	runner := cli.Runner{
		Service: svc,
		Output: cli.OutputConfig{
			OutputFile: a.Config.OutputFile,
			HexOutput:  a.Config.HexOutput,
			Quiet:      a.Config.Quiet,
			JSON:       a.Config.JSONOutput,
		},
		Out:    out,
		ErrOut: a.ErrWriter,
	}

	if a.Config.Command == config.CommandRange {
		return runner.RunRange(ctx, a.Config.Start, a.Config.End)
	}
	return runner.RunSingle(ctx, a.Config.N)
}

// IsHelpError reports whether err means -h or -help was given.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
