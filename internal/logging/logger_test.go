package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    zerolog.Level
		wantErr bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"WARN", zerolog.WarnLevel, false},
		{"disabled", zerolog.Disabled, false},
		{"chatty", zerolog.NoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestZerologAdapterWritesStructuredFields(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "debug", Component: "server"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("request handled",
		String("path", "/fib"),
		Int("status", 200),
		Uint64("n", 187),
		Duration("took", 2*time.Millisecond),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%s)", err, buf.String())
	}
	if entry["message"] != "request handled" || entry["level"] != "info" {
		t.Errorf("unexpected entry: %v", entry)
	}
	if entry["component"] != "server" || entry["path"] != "/fib" {
		t.Errorf("missing fields: %v", entry)
	}
	if entry["n"] != float64(187) || entry["status"] != float64(200) {
		t.Errorf("numeric fields not preserved: %v", entry)
	}
}

func TestZerologAdapterRespectsLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger, err := New(&buf, Options{Level: "warn"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	logger.Error("failed", errors.New("boom"))
	if !strings.Contains(buf.String(), `"error":"boom"`) {
		t.Errorf("error field missing: %q", buf.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, err := New(&bytes.Buffer{}, Options{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewStdLoggerAdapter(stdlog.New(&buf, "", 0))

	logger.Info("starting")
	logger.Warn("slow", Int("ms", 900))
	logger.Error("failed", errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"[INFO] starting", "[WARN] slow", "[ERROR] failed: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestNopDiscards(t *testing.T) {
	t.Parallel()
	var l Logger = Nop()
	l.Info("nothing")
	l.Error("nothing", errors.New("x"))
}
