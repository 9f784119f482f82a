package fibonacci

import (
	"context"
	"math/big"
	"slices"
	"testing"
)

func TestDefaultBackendRegistered(t *testing.T) {
	t.Parallel()
	if !slices.Contains(Backends(), DefaultBackend) {
		t.Fatalf("Backends() = %v, missing %q", Backends(), DefaultBackend)
	}
	fn, err := Backend(DefaultBackend)
	if err != nil {
		t.Fatalf("Backend(%q): %v", DefaultBackend, err)
	}
	got, err := fn(context.Background(), 187)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Cmp(Single(187)) != 0 {
		t.Errorf("default backend returned %s", got)
	}
}

func TestBackendUnknown(t *testing.T) {
	t.Parallel()
	if _, err := Backend("abacus"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestRegisterBackend(t *testing.T) {
	const name = "test-iterative"
	RegisterBackend(name, func(_ context.Context, n uint64) (*big.Int, error) {
		return fibOracle(n), nil
	})
	t.Cleanup(func() {
		backendsMu.Lock()
		delete(backends, name)
		backendsMu.Unlock()
	})

	if !slices.IsSorted(Backends()) {
		t.Errorf("Backends() not sorted: %v", Backends())
	}
	fn, err := Backend(name)
	if err != nil {
		t.Fatalf("Backend(%q): %v", name, err)
	}
	got, _ := fn(context.Background(), 50)
	if got.Cmp(big.NewInt(12586269025)) != 0 {
		t.Errorf("registered backend returned %s", got)
	}
}
