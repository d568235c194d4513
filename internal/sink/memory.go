package sink

import (
	"sync"

	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
)

// Memory keeps every recorded row. Safe for concurrent use.
type Memory struct {
	mu   sync.Mutex
	rows []epidemic.Counts
}

func (m *Memory) Record(_ int, c epidemic.Counts) error {
	m.mu.Lock()
	m.rows = append(m.rows, c)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error { return nil }

// Rows returns a copy of the recorded rows.
func (m *Memory) Rows() []epidemic.Counts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]epidemic.Counts(nil), m.rows...)
}

// Last returns the most recent row.
func (m *Memory) Last() (epidemic.Counts, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rows) == 0 {
		return epidemic.Counts{}, false
	}
	return m.rows[len(m.rows)-1], true
}
