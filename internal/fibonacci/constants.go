package fibonacci

import (
	"errors"
	"math"
)

// MaxIndex is the largest index accepted by the engine. Indices are uint64,
// so callers parsing wider input must reject it before it gets here.
const MaxIndex uint64 = math.MaxUint64

// DefaultBackend is the name of the math/big single-value backend.
const DefaultBackend = "big"

// cancelCheckInterval is the number of additions a range worker performs
// between context checks.
const cancelCheckInterval = 1024

// ErrRangeTooLarge is returned when a range holds more values than a slice
// can index. Range panics with it.
var ErrRangeTooLarge = errors.New("fibonacci: range too large to materialize")
