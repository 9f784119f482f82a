// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"regexp"
	"strings"
)

// csiSequence matches ANSI CSI sequences such as color codes, which start
// with ESC [ and end with a letter.
var csiSequence = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripAnsiCodes removes ANSI escape sequences so terminal output can be
// compared as plain text.
func StripAnsiCodes(s string) string {
	return csiSequence.ReplaceAllString(s, "")
}

// Lines returns the non-empty lines of s with ANSI codes removed and
// surrounding whitespace trimmed.
func Lines(s string) []string {
	var out []string
	for _, line := range strings.Split(StripAnsiCodes(s), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
