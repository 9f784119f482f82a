// Command generate-golden writes the reference values used by the engine's
// golden tests. Values are computed by plain iteration so the file does not
// depend on the code it checks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData is one entry of the golden file.
type GoldenData struct {
	N      uint64 `json:"n"`
	Result string `json:"result"`
}

// targets covers the base cases, the machine-width boundaries (F(93) is the
// last value that fits in uint64, F(186) the last that fits in 128 bits),
// powers of two and a few larger indices.
var targets = []uint64{
	0, 1, 2, 3, 4, 5, 10, 20, 50, 92, 93, 94, 100,
	128, 185, 186, 187, 255, 256, 512, 1000, 1024,
	2000, 2048, 5000, 8192, 10000,
}

func main() {
	outputDir := flag.String("out", "internal/fibonacci/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := run(*outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	filename := filepath.Join(outputDir, "fibonacci_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	data := make([]GoldenData, 0, len(targets))
	for _, n := range targets {
		data = append(data, GoldenData{N: n, Result: fibIterative(n).String()})
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	fmt.Printf("Wrote %d golden values to %s\n", len(data), filename)
	return nil
}

// fibIterative computes F(n) with n additions.
func fibIterative(n uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := uint64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}
