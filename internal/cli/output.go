package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// lz4Suffix selects compressed file output.
const lz4Suffix = ".lz4"

// OutputConfig holds the rendering options for results.
type OutputConfig struct {
	// OutputFile receives the values instead of standard output.
	OutputFile string
	// HexOutput renders values in base 16 with a 0x prefix.
	HexOutput bool
	// Quiet prints bare values, one per line.
	Quiet bool
	// JSON renders a single {"F": ...} document.
	JSON bool
}

// FormatValue renders v as an exact base-10 string, or base 16 when hex is set.
func FormatValue(v *big.Int, hex bool) string {
	if hex {
		return "0x" + v.Text(16)
	}
	return v.String()
}

type singleDocument struct {
	F string `json:"F"`
}

type rangeDocument struct {
	F []string `json:"F"`
}

// WriteSingle renders F(n) = v.
func WriteSingle(out io.Writer, n uint64, v *big.Int, cfg OutputConfig) error {
	value := FormatValue(v, cfg.HexOutput)
	switch {
	case cfg.JSON:
		return json.NewEncoder(out).Encode(singleDocument{F: value})
	case cfg.Quiet:
		_, err := fmt.Fprintln(out, value)
		return err
	default:
		_, err := fmt.Fprintf(out, "F(%d) = %s\n", n, value)
		return err
	}
}

// WriteRange renders values[i] as F(start+i), one line per value.
func WriteRange(out io.Writer, start uint64, values []*big.Int, cfg OutputConfig) error {
	if cfg.JSON {
		doc := rangeDocument{F: make([]string, len(values))}
		for i, v := range values {
			doc.F[i] = FormatValue(v, cfg.HexOutput)
		}
		return json.NewEncoder(out).Encode(doc)
	}

	w := bufio.NewWriter(out)
	for i, v := range values {
		if cfg.Quiet {
			fmt.Fprintln(w, FormatValue(v, cfg.HexOutput))
			continue
		}
		fmt.Fprintf(w, "F(%d) = %s\n", start+uint64(i), FormatValue(v, cfg.HexOutput))
	}
	return w.Flush()
}

// WriteResultToFile creates path, creating parent directories as needed,
// and calls render with a writer on it. Paths ending in .lz4 are written as
// an lz4 frame.
func WriteResultToFile(path string, render func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if !strings.HasSuffix(path, lz4Suffix) {
		return render(file)
	}

	zw := lz4.NewWriter(file)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4.Level4)); err != nil {
		return fmt.Errorf("failed to configure lz4: %w", err)
	}
	if err := render(zw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish lz4 stream: %w", err)
	}
	return nil
}
