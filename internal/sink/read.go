package sink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
)

// ErrNotConserved reports a log whose rows do not all sum to the same
// population.
var ErrNotConserved = errors.New("population not conserved")

// ReadLog parses a count log. The header must name the five states in order.
func ReadLog(r io.Reader) ([]epidemic.Counts, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(epidemic.Columns)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if !slices.Equal(header, epidemic.Columns) {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	var out []epidemic.Counts
	values := make([]int, len(epidemic.Columns))
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		for i, field := range rec {
			if values[i], err = strconv.Atoi(field); err != nil {
				return nil, fmt.Errorf("line %d, %s: %w", line, epidemic.Columns[i], err)
			}
		}
		c, err := epidemic.CountsFromRow(values)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, c)
	}
}

// ReadLogDir reads the log inside a run directory.
func ReadLogDir(dir string) ([]epidemic.Counts, error) {
	f, err := os.Open(filepath.Join(dir, LogName))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLog(f)
}

// CheckConservation returns the shared row total, or ErrNotConserved naming
// the first row that disagrees with the first.
func CheckConservation(rows []epidemic.Counts) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	total := rows[0].Total()
	for i, c := range rows[1:] {
		if got := c.Total(); got != total {
			return total, fmt.Errorf("row %d sums to %d, row 0 to %d: %w", i+1, got, total, ErrNotConserved)
		}
	}
	return total, nil
}
