package testutil

import (
	"slices"
	"testing"
)

func TestStripAnsiCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"\x1b[38;5;196mError\x1b[0m", "Error"},
		{"\x1b[1mF(10)\x1b[0m = 55", "F(10) = 55"},
		{"\x1b[?25lhidden cursor\x1b[?25h", "hidden cursor"},
	}
	for _, tt := range tests {
		if got := StripAnsiCodes(tt.in); got != tt.want {
			t.Errorf("StripAnsiCodes(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLines(t *testing.T) {
	t.Parallel()
	got := Lines("\x1b[32mF(1) = 1\x1b[0m\n\n  F(2) = 1  \n")
	if want := []string{"F(1) = 1", "F(2) = 1"}; !slices.Equal(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}
