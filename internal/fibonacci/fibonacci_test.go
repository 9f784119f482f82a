package fibonacci

import (
	"context"
	"errors"
	"math/big"
	"testing"
)

// fibOracle computes F(n) by plain iteration.
func fibOracle(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func mustParse(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid decimal literal %q", s)
	}
	return v
}

func TestSingleKnownValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{10, "55"},
		{20, "6765"},
		{50, "12586269025"},
		{93, "12200160415121876738"},
		{94, "19740274219868223167"},
		{100, "354224848179261915075"},
		{128, "251728825683549488150424261"},
		{186, "332825110087067562321196029789634457848"},
		{187, "538522340430300790495419781092981030533"},
		{256, "141693817714056513234709965875411919657707794958199867"},
		{300, "222232244629420445529739893461909967206666939096499764990979600"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Single(tt.n)
			if got.Cmp(mustParse(t, tt.want)) != 0 {
				t.Errorf("Single(%d) = %s, want %s", tt.n, got, tt.want)
			}
		})
	}
}

func TestSingleMatchesOracle(t *testing.T) {
	t.Parallel()
	for n := uint64(0); n <= 1500; n++ {
		if got, want := Single(n), fibOracle(n); got.Cmp(want) != 0 {
			t.Fatalf("Single(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestSingleRecurrence(t *testing.T) {
	t.Parallel()
	for n := uint64(2); n < 1000; n++ {
		sum := new(big.Int).Add(Single(n-1), Single(n-2))
		if Single(n).Cmp(sum) != 0 {
			t.Fatalf("F(%d) != F(%d) + F(%d)", n, n-1, n-2)
		}
	}
}

func TestSingleStrictlyIncreasing(t *testing.T) {
	t.Parallel()
	if Single(1).Cmp(Single(2)) != 0 {
		t.Fatal("expected F(1) == F(2)")
	}
	for n := uint64(3); n < 500; n++ {
		if Single(n).Cmp(Single(n-1)) <= 0 {
			t.Fatalf("F(%d) is not greater than F(%d)", n, n-1)
		}
	}
}

func TestPairReturnsAdjacentValues(t *testing.T) {
	t.Parallel()
	for _, n := range []uint64{0, 1, 2, 3, 64, 65, 1023, 1024, 4097} {
		fk, fk1 := pair(n)
		if fk.Cmp(fibOracle(n)) != 0 || fk1.Cmp(fibOracle(n+1)) != 0 {
			t.Errorf("pair(%d) = (%s, %s), want (F(%d), F(%d))", n, fk, fk1, n, n+1)
		}
	}
}

func TestSingleResultsAreIndependent(t *testing.T) {
	t.Parallel()
	a := Single(30)
	a.SetInt64(0)
	if Single(30).Cmp(big.NewInt(832040)) != 0 {
		t.Error("mutating a returned value affected a later call")
	}
}

func TestSingleContext(t *testing.T) {
	t.Parallel()

	t.Run("MatchesSingle", func(t *testing.T) {
		for _, n := range []uint64{0, 1, 10, 187, 10_000} {
			got, err := SingleContext(context.Background(), n)
			if err != nil {
				t.Fatalf("SingleContext(%d): unexpected error: %v", n, err)
			}
			if got.Cmp(Single(n)) != 0 {
				t.Errorf("SingleContext(%d) differs from Single", n)
			}
		}
	})

	t.Run("Canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := SingleContext(ctx, 1_000_000)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("ZeroNeedsNoSteps", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		got, err := SingleContext(ctx, 0)
		if err != nil || got.Sign() != 0 {
			t.Errorf("SingleContext(canceled, 0) = %v, %v; want 0, nil", got, err)
		}
	})
}

func TestSingleLargeIndexDigits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large index in short mode")
	}
	t.Parallel()
	// F(10000) has 2090 decimal digits.
	s := Single(10_000).String()
	if len(s) != 2090 {
		t.Fatalf("len(F(10000)) = %d digits, want 2090", len(s))
	}
	if s[:20] != "33644764876431783266" || s[len(s)-20:] != "66073310059947366875" {
		t.Errorf("unexpected digits in F(10000): %s...%s", s[:20], s[len(s)-20:])
	}
}
