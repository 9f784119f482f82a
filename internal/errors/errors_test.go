package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError formats",
			err:      NewConfigError("invalid index %q for %s", "abc", "single"),
			expected: `invalid index "abc" for single`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			var configErr ConfigError
			if !errors.As(tt.err, &configErr) {
				t.Error("expected error to be ConfigError type")
			}
		})
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		op          string
		cause       error
		expectedMsg string
	}{
		{"WithOp", "range", errors.New("boom"), "range: boom"},
		{"WithoutOp", "", errors.New("boom"), "boom"},
		{"ContextCause", "single", context.Canceled, "single: context canceled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewCalculationError(tt.op, tt.cause)
			if err.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, err.Error())
			}
			if !errors.Is(err, tt.cause) {
				t.Error("errors.Is should find the cause")
			}
		})
	}

	if NewCalculationError("single", nil) != nil {
		t.Error("NewCalculationError with nil cause should return nil")
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()
	cause := errors.New("address in use")
	err := NewServerError("listen failed", cause)
	if err.Error() != "listen failed: address in use" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if NewServerError("shutdown", nil).Error() != "shutdown" {
		t.Error("message without cause should be returned as is")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	if got := NewValidationError("n", "must be a non-negative integer", -1).Error(); got != "validation error for 'n': must be a non-negative integer" {
		t.Errorf("unexpected message %q", got)
	}
	if got := NewValidationError("", "empty body", nil).Error(); got != "validation error: empty body" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestLimitError(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("maximum n value exceeded")
	err := NewLimitError(sentinel, "n", 2_000_000, 1_000_000)

	if got := err.Error(); got != "maximum n value exceeded: n=2000000, maximum is 1000000" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(err, sentinel) {
		t.Error("errors.Is should match the cause")
	}
	if !errors.Is(err, ErrLimitExceeded) {
		t.Error("errors.Is should match ErrLimitExceeded")
	}
	var limitErr LimitError
	if !errors.As(fmt.Errorf("single: %w", err), &limitErr) || limitErr.Field != "n" {
		t.Error("errors.As should recover the LimitError through wrapping")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "context") != nil {
		t.Error("WrapError(nil) should return nil")
	}
	base := errors.New("disk full")
	err := WrapError(base, "writing %s", "out.txt")
	if err.Error() != "writing out.txt: disk full" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, base) {
		t.Error("wrapped error should unwrap to base")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{fmt.Errorf("range chunk canceled: %w", context.Canceled), true},
		{NewCalculationError("single", context.DeadlineExceeded), true},
		{errors.New("other"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
