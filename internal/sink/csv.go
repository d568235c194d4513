// Package sink persists per-tick counts as the flat CSV log that the plotting
// tools read back.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
)

// LogName is the file name of a run's count log inside its log directory.
const LogName = "log.csv"

// DirLayout formats run directory names as day_month_year_hour_minute_second.
const DirLayout = "02_01_2006_15_04_05"

// LogDir returns the run directory for a run started at now under base.
func LogDir(base string, now time.Time) string {
	return filepath.Join(base, now.Format(DirLayout))
}

// CSV writes a header row then one row of counts per tick. Each row is flushed
// as it is written so a crashed run still leaves a readable log.
type CSV struct {
	w      *csv.Writer
	closer io.Closer
	row    []string
}

// NewCSV writes the header to w. If w is an io.Closer, Close closes it.
func NewCSV(w io.Writer) (*CSV, error) {
	s := &CSV{w: csv.NewWriter(w), row: make([]string, len(epidemic.Columns))}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	if err := s.w.Write(epidemic.Columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	return s, nil
}

// Create makes dir and a log file inside it.
func Create(dir string) (*CSV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, LogName))
	if err != nil {
		return nil, fmt.Errorf("create log: %w", err)
	}
	s, err := NewCSV(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return s, nil
}

// Record appends one row.
func (s *CSV) Record(_ int, c epidemic.Counts) error {
	for i, v := range c.Row() {
		s.row[i] = strconv.Itoa(v)
	}
	if err := s.w.Write(s.row); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

// Close flushes pending rows and closes the underlying file.
func (s *CSV) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
