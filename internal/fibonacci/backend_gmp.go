//go:build gmp

// This file registers a GMP-backed single-value backend. It is compiled only
// with -tags=gmp and requires libgmp:
//   - Linux: apt-get install libgmp-dev
//   - macOS: brew install gmp

package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/ncw/gmp"
)

func init() {
	RegisterBackend("gmp", singleGMP)
}

// singleGMP runs the same bit scan as pairContext on gmp.Int values and
// converts the result back to math/big.
func singleGMP(ctx context.Context, n uint64) (*big.Int, error) {
	a := gmp.NewInt(0)
	b := gmp.NewInt(1)
	t1 := gmp.NewInt(0)
	t2 := gmp.NewInt(0)

	numBits := bits.Len64(n)
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("gmp doubling canceled at bit %d/%d: %w", i, numBits-1, err)
		}
		gmpDoublingStep(a, b, t1, t2)
		if (n>>uint(i))&1 == 1 {
			t1.Add(a, b)
			a.Set(b)
			b.Set(t1)
		}
	}
	return new(big.Int).SetBytes(a.Bytes()), nil
}

// gmpDoublingStep maps (a, b) = (F(k), F(k+1)) to (F(2k), F(2k+1)) using
// t1 and t2 as scratch.
func gmpDoublingStep(a, b, t1, t2 *gmp.Int) {
	t1.MulUint32(b, 2)
	t1.Sub(t1, a)
	t1.Mul(a, t1)

	t2.Mul(a, a)
	a.Mul(b, b)
	t2.Add(t2, a)

	a.Set(t1)
	b.Set(t2)
}
