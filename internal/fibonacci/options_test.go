package fibonacci

import (
	"runtime"
	"testing"
)

func TestOptionsWorkers(t *testing.T) {
	t.Parallel()
	procs := runtime.GOMAXPROCS(0)
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"zero selects GOMAXPROCS", 0, procs},
		{"negative selects GOMAXPROCS", -3, procs},
		{"explicit", 7, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := (Options{Workers: tt.workers}).workers(); got != tt.want {
				t.Errorf("workers() = %d, want %d", got, tt.want)
			}
		})
	}
}
