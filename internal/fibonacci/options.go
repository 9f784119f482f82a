package fibonacci

import "runtime"

// Options tunes range generation. The zero value is ready to use.
type Options struct {
	// Workers is the parallelism degree used to size chunks and bound the
	// number of chunks computed at once. Zero or negative selects
	// runtime.GOMAXPROCS(0).
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
