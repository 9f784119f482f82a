package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibrange/internal/service"
	"github.com/agbru/fibrange/internal/ui"
)

// InvalidNumberMessage is printed for input that is not a valid index.
const InvalidNumberMessage = "Please enter a valid number"

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds each calculation.
	Timeout time.Duration
	// HexOutput displays values in hexadecimal.
	HexOutput bool
}

// REPL is an interactive session reading one command per line.
type REPL struct {
	config REPLConfig
	svc    service.Service
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a REPL on standard input and output.
func NewREPL(svc service.Service, config REPLConfig) *REPL {
	return &REPL{
		config: config,
		svc:    svc,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets the input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets the output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until exit, EOF, or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"fib> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(ctx, line) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%sfib interactive mode%s\n", ui.ColorBold(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssingle <n>%s           - Compute F(n) (alias: s, or just <n>)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srange <start> <end>%s  - Compute F(start)..F(end) (alias: r)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shex%s                  - Toggle hexadecimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s                 - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s          - Leave interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand executes one line. It returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "single", "s":
		r.cmdSingle(ctx, args)
	case "range", "r":
		r.cmdRange(ctx, args)
	case "hex":
		r.config.HexOutput = !r.config.HexOutput
		fmt.Fprintf(r.out, "Hexadecimal display: %v\n", r.config.HexOutput)
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if _, err := strconv.ParseUint(cmd, 10, 64); err == nil {
			r.cmdSingle(ctx, parts)
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) cmdSingle(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintf(r.out, "%sUsage: single <n>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	n, ok := r.parseIndex(args[0])
	if !ok {
		return
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	start := time.Now()
	v, err := r.svc.Single(ctx, n)
	if err != nil {
		r.printError(err)
		return
	}
	_ = WriteSingle(r.out, n, v, OutputConfig{HexOutput: r.config.HexOutput})
	fmt.Fprintf(r.out, "%s(%s, %d digits)%s\n", ui.ColorCyan(), FormatExecutionDuration(time.Since(start)), len(v.String()), ui.ColorReset())
}

func (r *REPL) cmdRange(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: range <start> <end>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	start, ok := r.parseIndex(args[0])
	if !ok {
		return
	}
	end, ok := r.parseIndex(args[1])
	if !ok {
		return
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	values, err := r.svc.Range(ctx, start, end)
	if err != nil {
		r.printError(err)
		return
	}
	if len(values) == 0 {
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorYellow(), InvalidRangeMessage, ui.ColorReset())
		return
	}
	_ = WriteRange(r.out, start, values, OutputConfig{HexOutput: r.config.HexOutput})
}

func (r *REPL) parseIndex(s string) (uint64, bool) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		fmt.Fprintf(r.out, "%s%s%s\n", ui.ColorRed(), InvalidNumberMessage, ui.ColorReset())
		return 0, false
	}
	return n, true
}

func (r *REPL) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.config.Timeout)
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
}
