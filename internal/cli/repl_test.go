package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibrange/internal/service"
	"github.com/agbru/fibrange/internal/testutil"
)

func newTestREPL(t *testing.T, cfg service.Config) (*REPL, *bytes.Buffer) {
	t.Helper()
	svc, err := service.New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewREPL(svc, REPLConfig{Timeout: time.Minute})
	var out bytes.Buffer
	r.SetOutput(&out)
	return r, &out
}

func TestREPLCommands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single", input: "single 10", want: []string{"F(10) = 55"}},
		{name: "alias", input: "s 20", want: []string{"F(20) = 6765"}},
		{name: "bare number", input: "30", want: []string{"F(30) = 832040"}},
		{name: "range", input: "range 3 5", want: []string{"F(3) = 2", "F(4) = 3", "F(5) = 5"}},
		{name: "range alias", input: "r 0 1", want: []string{"F(0) = 0", "F(1) = 1"}},
		{name: "inverted", input: "range 10 5", want: []string{InvalidRangeMessage}},
		{name: "invalid number", input: "single ten", want: []string{InvalidNumberMessage}},
		{name: "negative", input: "range -1 5", want: []string{InvalidNumberMessage}},
		{name: "single usage", input: "single", want: []string{"Usage: single <n>"}},
		{name: "range usage", input: "range 1", want: []string{"Usage: range <start> <end>"}},
		{name: "unknown", input: "frobnicate", want: []string{"Unknown command: frobnicate"}},
		{name: "help", input: "help", want: []string{"Available commands:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r, out := newTestREPL(t, service.Config{})
			if !r.processCommand(context.Background(), tt.input) {
				t.Fatal("command should not end the session")
			}
			got := testutil.StripAnsiCodes(out.String())
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output %q should contain %q", got, w)
				}
			}
		})
	}
}

func TestREPLHexToggle(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL(t, service.Config{})
	r.processCommand(context.Background(), "hex")
	r.processCommand(context.Background(), "single 10")
	if !strings.Contains(testutil.StripAnsiCodes(out.String()), "F(10) = 0x37") {
		t.Errorf("hex output missing: %q", out.String())
	}
}

func TestREPLReportsServiceErrors(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL(t, service.Config{MaxN: 10})
	r.processCommand(context.Background(), "single 11")
	if !strings.Contains(testutil.StripAnsiCodes(out.String()), "Error:") {
		t.Errorf("limit error should be printed: %q", out.String())
	}
}

func TestREPLStart(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL(t, service.Config{})
	r.SetInput(strings.NewReader("10\n\nquit\nsingle 20\n"))
	r.Start(context.Background())

	got := testutil.StripAnsiCodes(out.String())
	if !strings.Contains(got, "F(10) = 55") || !strings.Contains(got, "Goodbye!") {
		t.Errorf("unexpected session output: %q", got)
	}
	if strings.Contains(got, "F(20)") {
		t.Error("commands after quit must not run")
	}
}

func TestREPLStartEOFWithoutNewline(t *testing.T) {
	t.Parallel()
	r, out := newTestREPL(t, service.Config{})
	r.SetInput(strings.NewReader("s 10"))
	r.Start(context.Background())

	got := testutil.StripAnsiCodes(out.String())
	if !strings.Contains(got, "F(10) = 55") || !strings.Contains(got, "Goodbye!") {
		t.Errorf("last line before EOF should run: %q", got)
	}
}
