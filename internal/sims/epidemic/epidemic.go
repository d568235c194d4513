package epidemic

import (
	"math/rand/v2"

	"github.com/Ashboy64/disease-spread/internal/core"
)

// World adapts the epidemic engine to the core.Sim contract and offers the
// manual-edit surface used by interactive front ends.
type World struct {
	cfg Config

	state  SimulationState
	counts Counts

	// initial holds the states of a loaded configuration; Reset rehydrates
	// from it instead of seeding a fresh infection.
	initial [][]State

	display *core.ByteGrid
	rng     *rand.Rand
}

// New returns an epidemic world with the provided dimensions using defaults.
func New(rows, cols int) *World {
	cfg := DefaultConfig()
	cfg.CellSize = 1
	cfg.Width = cols
	cfg.Height = rows
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from the provided options, reset
// with the config seed.
func NewWithConfig(cfg Config) *World {
	rows, cols := cfg.Dims()
	w := &World{
		cfg:     cfg,
		display: core.NewByteGrid(cols, rows),
	}
	w.Reset(0)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "epidemic" }

// Size reports the grid dimensions: W columns by H rows.
func (w *World) Size() core.Size { return w.display.Size() }

// Cells exposes the State of every cell in row-major order.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Config returns the configuration the world was built from.
func (w *World) Config() Config { return w.cfg }

// State exposes the current simulation state. The grid is shared, not copied.
func (w *World) State() SimulationState { return w.state }

// Grid exposes the live grid.
func (w *World) Grid() *Grid { return w.state.Grid }

// Counts returns the aggregate counts of the last tick, or of the initial grid
// before the first tick.
func (w *World) Counts() Counts { return w.counts }

// Tick reports how many ticks have run since the last reset.
func (w *World) Tick() int { return w.state.Tick }

// Reset rebuilds the grid. A zero seed reuses the config seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRand(effective)
	rows, cols := w.cfg.Dims()
	if w.initial != nil {
		w.state = hydrate(w.cfg.Params, w.initial, w.rng)
	} else {
		w.state = NewState(w.cfg.Params, rows, cols, w.cfg.Blank, w.rng)
	}
	w.counts = w.state.Grid.Count()
	w.rebuildDisplay()
}

// Step advances the simulation by one tick.
func (w *World) Step() {
	w.state, w.counts = Advance(w.state, w.rng)
	w.rebuildDisplay()
}

// CellAt returns the cell at (row, col).
func (w *World) CellAt(row, col int) (Cell, bool) {
	if !w.state.Grid.InBounds(row, col) {
		return Cell{}, false
	}
	return w.state.Grid.Get(row, col), true
}

// SetCellState forces the cell at (row, col) into s.
func (w *World) SetCellState(row, col int, s State) bool {
	if !w.state.Grid.SetState(row, col, s) {
		return false
	}
	w.afterEdit(row, col)
	return true
}

// CycleCell advances the cell at column x, row y to its next state.
func (w *World) CycleCell(x, y int) bool {
	if _, ok := w.state.Grid.CycleState(y, x); !ok {
		return false
	}
	w.afterEdit(y, x)
	return true
}

func (w *World) afterEdit(row, col int) {
	w.counts = w.state.Grid.Count()
	w.display.Set(col, row, uint8(w.state.Grid.Get(row, col).State))
}

func (w *World) rebuildDisplay() {
	cells := w.display.Cells()
	for i, c := range w.state.Grid.Cells() {
		cells[i] = uint8(c.State)
	}
}

func hydrate(p Params, states [][]State, rng Rand) SimulationState {
	rows := len(states)
	cols := 0
	if rows > 0 {
		cols = len(states[0])
	}
	g := NewGrid(rows, cols)
	g.SeedResistance(p.Demographics.ExpectedResistance(), rng)
	for r, row := range states {
		for c, s := range row {
			g.SetState(r, c, s)
		}
	}
	return SimulationState{Params: p, Grid: g}
}

func init() {
	core.Register("epidemic", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
