package fibonacci

import (
	"context"
	"fmt"
	"math"
	"math/big"

	"golang.org/x/sync/errgroup"
)

// Chunk is a contiguous run of indices computed by a single worker.
type Chunk struct {
	// Start is the first index of the chunk.
	Start uint64
	// Len is the number of values in the chunk.
	Len int
}

// Range returns F(start), F(start+1), ..., F(end). If end < start the result
// is an empty, non-nil slice. The values are identical for any worker count.
//
// Range panics with ErrRangeTooLarge if the sequence cannot be held in a
// slice; RangeContext reports that case as an error instead.
func Range(start, end uint64) []*big.Int {
	values, err := RangeContext(context.Background(), start, end, Options{})
	if err != nil {
		panic(err)
	}
	return values
}

// RangeContext computes the same sequence as Range using opts.Workers as the
// parallelism degree. Workers check ctx periodically, and the first
// cancellation stops the remaining chunks.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - start: The first index, inclusive.
//   - end: The last index, inclusive.
//   - opts: Tuning options.
//
// Returns:
//   - []*big.Int: The values in index order, empty when end < start.
//   - error: ErrRangeTooLarge or a wrapped context error.
func RangeContext(ctx context.Context, start, end uint64, opts Options) ([]*big.Int, error) {
	total, err := rangeLen(start, end)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []*big.Int{}, nil
	}

	workers := opts.workers()
	chunks := planChunks(start, total, workers)
	parts := make([][]*big.Int, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range chunks {
		g.Go(func() error {
			values, err := fillChunk(gctx, c)
			if err != nil {
				return err
			}
			parts[i] = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*big.Int, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// ChunkPlan returns the chunks RangeContext would compute for [start, end]
// with the given parallelism degree. Workers <= 0 selects GOMAXPROCS. The
// plan is empty for an inverted range or one too large to materialize.
func ChunkPlan(start, end uint64, workers int) []Chunk {
	total, err := rangeLen(start, end)
	if err != nil || total == 0 {
		return nil
	}
	return planChunks(start, total, Options{Workers: workers}.workers())
}

// rangeLen returns end-start+1, or 0 for an inverted range.
func rangeLen(start, end uint64) (int, error) {
	if end < start {
		return 0, nil
	}
	span := end - start
	if span >= uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrRangeTooLarge, start, end)
	}
	return int(span) + 1, nil
}

// planChunks splits total indices starting at start into chunks of
// max(1, total/workers) values. The last chunk holds the remainder.
func planChunks(start uint64, total, workers int) []Chunk {
	size := max(1, total/workers)
	count := (total + size - 1) / size
	chunks := make([]Chunk, count)
	for i := range chunks {
		offset := i * size
		chunks[i] = Chunk{
			Start: start + uint64(offset),
			Len:   min(size, total-offset),
		}
	}
	return chunks
}

// fillChunk seeds a Sequence at c.Start and collects c.Len values.
func fillChunk(ctx context.Context, c Chunk) ([]*big.Int, error) {
	seq, err := NewSequenceContext(ctx, c.Start)
	if err != nil {
		return nil, fmt.Errorf("seeding chunk at index %d: %w", c.Start, err)
	}
	values := make([]*big.Int, c.Len)
	for j := range values {
		if j%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("range chunk canceled at index %d: %w", seq.Index(), err)
			}
		}
		values[j] = seq.Next()
	}
	return values, nil
}
