// Package app wires the parsed configuration to the fib shells: the
// single and range commands, the HTTP server, the REPL and the terminal
// form.
package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build-time variables set via -ldflags:
//
//	go build -ldflags="-X github.com/agbru/fibrange/internal/app.Version=v1.2.3 -X github.com/agbru/fibrange/internal/app.Commit=abc123" ./cmd/fib
var (
	// Version is the semantic version of the application.
	Version = "dev"
	// Commit is the short Git commit hash.
	Commit = "unknown"
	// BuildDate is the ISO 8601 build timestamp.
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args contain -version, --version or -V
// in any position.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version, build metadata and Go runtime to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fib %s\n", Version)
	fmt.Fprintf(out, "  Commit:     %s\n", Commit)
	fmt.Fprintf(out, "  Built:      %s\n", BuildDate)
	fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
	fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
