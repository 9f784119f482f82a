// Package fibonacci computes exact Fibonacci numbers of arbitrary size.
//
// Single values use the fast doubling identities
//
//	F(2k)   = F(k) * (2*F(k+1) - F(k))
//	F(2k+1) = F(k)^2 + F(k+1)^2
//
// applied over the bits of the index from most to least significant, so a
// call costs O(log n) big-integer multiplications and no recursion.
//
// Ranges are split into contiguous chunks. Each chunk is seeded with a
// doubling computation and then filled by plain addition, and the chunks are
// reassembled in index order regardless of which worker finished first.
package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"math/bits"
)

// Single returns F(n). It never fails for any representable index; very
// large n is bounded only by available memory.
func Single(n uint64) *big.Int {
	fk, _ := pair(n)
	return fk
}

// SingleContext is like Single but checks ctx before each doubling step and
// returns the wrapped context error once ctx is done.
func SingleContext(ctx context.Context, n uint64) (*big.Int, error) {
	fk, _, err := pairContext(ctx, n)
	if err != nil {
		return nil, err
	}
	return fk, nil
}

// pair returns (F(n), F(n+1)). pair(0) is (0, 1).
func pair(n uint64) (*big.Int, *big.Int) {
	s := newDoublingState()
	for i := bits.Len64(n) - 1; i >= 0; i-- {
		s.step((n >> uint(i)) & 1)
	}
	return s.fk, s.fk1
}

func pairContext(ctx context.Context, n uint64) (*big.Int, *big.Int, error) {
	numBits := bits.Len64(n)
	s := newDoublingState()
	for i := numBits - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("fast doubling canceled at bit %d/%d: %w", i, numBits-1, err)
		}
		s.step((n >> uint(i)) & 1)
	}
	return s.fk, s.fk1, nil
}

// doublingState holds F(k), F(k+1) and the scratch values one step needs.
// Pointers are rotated between steps so buffers are reused instead of
// reallocated.
type doublingState struct {
	fk, fk1    *big.Int
	t1, t2, t3 *big.Int
}

func newDoublingState() *doublingState {
	return &doublingState{
		fk:  new(big.Int),
		fk1: big.NewInt(1),
		t1:  new(big.Int),
		t2:  new(big.Int),
		t3:  new(big.Int),
	}
}

// step maps (F(k), F(k+1)) to (F(2k), F(2k+1)), then to (F(2k+1), F(2k+2))
// when bit is 1.
func (s *doublingState) step(bit uint64) {
	// t1 = F(k) * (2*F(k+1) - F(k))
	s.t1.Lsh(s.fk1, 1)
	s.t1.Sub(s.t1, s.fk)
	s.t1.Mul(s.t1, s.fk)

	// t2 = F(k)^2 + F(k+1)^2
	s.t2.Mul(s.fk, s.fk)
	s.t3.Mul(s.fk1, s.fk1)
	s.t2.Add(s.t2, s.t3)

	s.fk, s.fk1, s.t1, s.t2 = s.t1, s.t2, s.fk, s.fk1

	if bit == 1 {
		s.t1.Add(s.fk, s.fk1)
		s.fk, s.fk1, s.t1 = s.fk1, s.t1, s.fk
	}
}
