package fibonacci

import (
	"context"
	"math/big"
)

// Sequence yields consecutive Fibonacci numbers starting at an arbitrary
// index. It is seeded with one fast doubling computation and then advances
// by a single addition per term.
//
// A Sequence is not safe for concurrent use. Values returned by Next are
// never modified afterwards and may be retained by the caller.
type Sequence struct {
	current *big.Int
	next    *big.Int
	index   uint64
}

// NewSequence returns a Sequence whose first call to Next yields F(start).
func NewSequence(start uint64) *Sequence {
	a, b := pair(start)
	return &Sequence{current: a, next: b, index: start}
}

// NewSequenceContext is like NewSequence but the seeding computation honours
// ctx cancellation.
func NewSequenceContext(ctx context.Context, start uint64) (*Sequence, error) {
	a, b, err := pairContext(ctx, start)
	if err != nil {
		return nil, err
	}
	return &Sequence{current: a, next: b, index: start}, nil
}

// Next returns F(Index()) and advances the sequence by one.
func (s *Sequence) Next() *big.Int {
	v := s.current
	s.current, s.next = s.next, new(big.Int).Add(v, s.next)
	s.index++
	return v
}

// Index returns the index of the value the next call to Next will return.
func (s *Sequence) Index() uint64 {
	return s.index
}
