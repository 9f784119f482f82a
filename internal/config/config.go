// Package config parses the fib command line into an AppConfig. Flags come
// from a stdlib flag.FlagSet, positional arguments select the single or
// range command, and FIB_-prefixed environment variables fill in any flag
// not given explicitly.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/fibrange/internal/errors"
)

// EnvPrefix is the prefix for all environment variables read by fib.
const EnvPrefix = "FIB_"

// Commands selected by the first positional argument.
const (
	CommandSingle = "single"
	CommandRange  = "range"
)

// Default configuration values.
const (
	// DefaultTimeout is the default calculation timeout.
	DefaultTimeout = 5 * time.Minute
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultBackend is the default single-value backend.
	DefaultBackend = "big"
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
	// DefaultServerMaxN bounds indices accepted by the HTTP server.
	DefaultServerMaxN uint64 = 10_000_000
	// DefaultServerMaxRange bounds range lengths accepted by the HTTP server.
	DefaultServerMaxRange uint64 = 100_000
)

// AppConfig aggregates everything parsed from the command line and the
// environment.
type AppConfig struct {
	// Command is CommandSingle, CommandRange, or empty for the interactive
	// and server modes.
	Command string
	// N is the index for the single command.
	N uint64
	// Start and End are the inclusive bounds for the range command.
	Start, End uint64

	// Timeout bounds one calculation.
	Timeout time.Duration
	// Workers is the range parallelism degree, 0 for GOMAXPROCS.
	Workers int
	// Backend names the single-value backend.
	Backend string
	// MaxN is the largest accepted index, 0 for no limit.
	MaxN uint64
	// MaxRangeLen is the largest accepted range length, 0 for no limit.
	MaxRangeLen uint64

	// OutputFile, if set, receives the values. A .lz4 suffix compresses it.
	OutputFile string
	// Quiet prints bare values with no "F(n) = " prefix and no spinner.
	Quiet bool
	// HexOutput renders values in base 16.
	HexOutput bool
	// JSONOutput renders the result as a JSON document.
	JSONOutput bool
	// NoColor disables colored output. NO_COLOR is honoured too.
	NoColor bool
	// LogLevel is the zerolog level for diagnostic logs on stderr.
	LogLevel string

	// ServerMode starts the HTTP server.
	ServerMode bool
	// Port is the server listen port.
	Port string
	// Interactive starts the REPL.
	Interactive bool
	// TUI starts the terminal form.
	TUI bool
	// Completion names a shell to print a completion script for.
	Completion string
}

// Mode returns a short name for the selected run mode.
func (c AppConfig) Mode() string {
	switch {
	case c.Completion != "":
		return "completion"
	case c.ServerMode:
		return "server"
	case c.Interactive:
		return "interactive"
	case c.TUI:
		return "tui"
	default:
		return c.Command
	}
}

// Validate checks the semantic consistency of the configuration.
//
// Parameters:
//   - availableBackends: The registered backend names.
//
// Returns:
//   - error: A ConfigError if the configuration is invalid, nil otherwise.
func (c AppConfig) Validate(availableBackends []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers cannot be negative: %d", c.Workers)
	}
	if !slices.Contains(availableBackends, c.Backend) {
		return apperrors.NewConfigError("unrecognized backend: '%s'. Valid backends are: [%s]", c.Backend, strings.Join(availableBackends, ", "))
	}

	modes := 0
	for _, on := range []bool{c.ServerMode, c.Interactive, c.TUI} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("-server, -interactive and -tui are mutually exclusive")
	}
	if modes == 1 && c.Command != "" {
		return apperrors.NewConfigError("the %s command cannot be combined with -%s", c.Command, c.Mode())
	}
	if c.Completion != "" {
		return nil
	}
	if modes == 0 && c.Command == "" {
		return apperrors.NewConfigError("missing command: expected <n>, 'single <n>' or 'range <start> <end>'")
	}

	if c.ServerMode {
		if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
			return apperrors.NewConfigError("invalid port: '%s'", c.Port)
		}
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig.
// Flags may appear before, between or after the positional arguments.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: The command-line arguments without the program name.
//   - errorWriter: Where parsing errors and usage information are printed.
//   - availableBackends: The registered backend names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: flag.ErrHelp, a flag parsing error, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableBackends []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for one calculation.")
	fs.IntVar(&config.Workers, "workers", 0, "Range parallelism degree (0 uses GOMAXPROCS).")
	fs.StringVar(&config.Backend, "backend", DefaultBackend, fmt.Sprintf("Single-value backend, one of [%s].", strings.Join(availableBackends, ", ")))
	fs.Uint64Var(&config.MaxN, "max-n", 0, "Reject indices above this value (0 for no limit; server default 10000000).")
	fs.Uint64Var(&config.MaxRangeLen, "max-range", 0, "Reject ranges longer than this (0 for no limit; server default 100000).")
	fs.StringVar(&config.OutputFile, "output", "", "Write values to this file (.lz4 suffix compresses).")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare values only, for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.HexOutput, "hex", false, "Render values in hexadecimal.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results as JSON.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Diagnostic log level: debug, info, warn, error or disabled.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode (PORT env var is honoured).")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start the interactive REPL.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the terminal form UI.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")

	setCustomUsage(fs)

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)
	config.Backend = strings.ToLower(config.Backend)
	if config.ServerMode {
		applyServerDefaults(&config, fs)
	}

	if err := parseCommand(&config, positional); err != nil {
		return AppConfig{}, reportError(fs, errorWriter, err)
	}
	if err := config.Validate(availableBackends); err != nil {
		return AppConfig{}, reportError(fs, errorWriter, err)
	}
	return config, nil
}

func reportError(fs *flag.FlagSet, w io.Writer, err error) error {
	fmt.Fprintln(w, "Configuration error:", err)
	fs.Usage()
	return err
}

// parseInterleaved parses flags repeatedly so that flags following a
// positional argument are still recognised.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// parseCommand interprets the positional arguments.
func parseCommand(config *AppConfig, positional []string) error {
	if len(positional) == 0 {
		return nil
	}

	switch positional[0] {
	case CommandSingle:
		if len(positional) != 2 {
			return apperrors.NewConfigError("usage: single <n>")
		}
		n, err := ParseIndex(positional[1])
		if err != nil {
			return err
		}
		config.Command, config.N = CommandSingle, n
	case CommandRange:
		if len(positional) != 3 {
			return apperrors.NewConfigError("usage: range <start> <end>")
		}
		start, err := ParseIndex(positional[1])
		if err != nil {
			return err
		}
		end, err := ParseIndex(positional[2])
		if err != nil {
			return err
		}
		config.Command, config.Start, config.End = CommandRange, start, end
	default:
		if len(positional) != 1 {
			return apperrors.NewConfigError("unexpected arguments: %s", strings.Join(positional, " "))
		}
		n, err := ParseIndex(positional[0])
		if err != nil {
			return err
		}
		config.Command, config.N = CommandSingle, n
	}
	return nil
}

// ParseIndex parses a decimal Fibonacci index. Leading '+' signs, negative
// numbers and values wider than 64 bits are rejected with a ConfigError.
func ParseIndex(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err == nil {
		return n, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, apperrors.NewConfigError("index %q exceeds the maximum of %d", s, uint64(math.MaxUint64))
	}
	return 0, apperrors.NewConfigError("invalid index %q: must be a non-negative integer", s)
}
