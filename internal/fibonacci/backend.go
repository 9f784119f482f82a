package fibonacci

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"sync"
)

// SingleFunc computes F(n) with a particular big-integer implementation.
// Implementations must return the same value as Single for every n.
type SingleFunc func(ctx context.Context, n uint64) (*big.Int, error)

var (
	backendsMu sync.RWMutex
	backends   = map[string]SingleFunc{
		DefaultBackend: SingleContext,
	}
)

// RegisterBackend makes a single-value backend available under name,
// replacing any backend previously registered with that name. Optional
// backends register themselves from init functions behind build tags.
func RegisterBackend(name string, fn SingleFunc) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = fn
}

// Backend returns the backend registered under name.
func Backend(name string) (SingleFunc, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	fn, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
	return fn, nil
}

// Backends returns the sorted names of all registered backends.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
