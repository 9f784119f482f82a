//go:build gmp

package fibonacci

import (
	"context"
	"testing"
)

func TestGMPMatchesBig(t *testing.T) {
	t.Parallel()
	fn, err := Backend("gmp")
	if err != nil {
		t.Fatalf("gmp backend not registered: %v", err)
	}
	for _, n := range []uint64{0, 1, 2, 93, 186, 187, 1000, 65537} {
		got, err := fn(context.Background(), n)
		if err != nil {
			t.Fatalf("gmp F(%d): %v", n, err)
		}
		if got.Cmp(Single(n)) != 0 {
			t.Errorf("gmp F(%d) differs from math/big", n)
		}
	}
}
