package epidemic

// Rand is the source of randomness consumed by the engine. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a uniform sample in [0, 1).
	Float64() float64
	// IntN returns a uniform sample in [0, n). n must be positive.
	IntN(n int) int
}

// Pos addresses a grid cell.
type Pos struct {
	Row, Col int
}

type neighbourOffset struct {
	dr, dc   int
	diagonal bool
}

// neighbourOffsets lists the Moore neighbourhood in the order neighbours are
// visited: the row above left to right, the same row, then the row below.
var neighbourOffsets = [8]neighbourOffset{
	{-1, -1, true}, {-1, 0, false}, {-1, 1, true},
	{0, -1, false}, {0, 1, false},
	{1, -1, true}, {1, 0, false}, {1, 1, true},
}

// Grid owns the rows x cols array of cells in row-major order. Every index
// always holds exactly one Cell.
type Grid struct {
	rows, cols int
	cells      []Cell
}

// NewGrid allocates an all-susceptible grid. Dimensions below one are raised
// to one.
func NewGrid(rows, cols int) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// Rows reports the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols reports the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len is the population size rows*cols.
func (g *Grid) Len() int { return len(g.cells) }

// Cells exposes the backing row-major slice.
func (g *Grid) Cells() []Cell { return g.cells }

// InBounds reports whether (row, col) addresses a cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) at(row, col int) *Cell { return &g.cells[row*g.cols+col] }

// Get returns a copy of the cell at (row, col). The coordinates must be in
// bounds.
func (g *Grid) Get(row, col int) Cell { return *g.at(row, col) }

// SetState forces the cell at (row, col) into s and resets its counter. It
// reports false for out-of-range coordinates or invalid states.
func (g *Grid) SetState(row, col int, s State) bool {
	if !g.InBounds(row, col) || !s.Valid() {
		return false
	}
	g.at(row, col).SetState(s)
	return true
}

// CycleState advances the cell at (row, col) to the next state in the
// manual-edit cycle and returns the new state.
func (g *Grid) CycleState(row, col int) (State, bool) {
	if !g.InBounds(row, col) {
		return 0, false
	}
	c := g.at(row, col)
	c.SetState(c.State.Next())
	return c.State, true
}

// Swap exchanges the full cell values held at a and b.
func (g *Grid) Swap(a, b Pos) {
	ca, cb := g.at(a.Row, a.Col), g.at(b.Row, b.Col)
	*ca, *cb = *cb, *ca
}

// Neighbors8 returns the existing Moore neighbours of (row, col). Edge and
// corner cells have fewer neighbours; the grid does not wrap.
func (g *Grid) Neighbors8(row, col int) []Pos {
	out := make([]Pos, 0, 8)
	for _, off := range neighbourOffsets {
		r, c := row+off.dr, col+off.dc
		if g.InBounds(r, c) {
			out = append(out, Pos{Row: r, Col: c})
		}
	}
	return out
}

// Neighbours splits the existing neighbours of (row, col) into the four
// orthogonal and four diagonal directions.
func (g *Grid) Neighbours(row, col int) (orthogonal, diagonal []Pos) {
	for _, off := range neighbourOffsets {
		r, c := row+off.dr, col+off.dc
		if !g.InBounds(r, c) {
			continue
		}
		if off.diagonal {
			diagonal = append(diagonal, Pos{Row: r, Col: c})
		} else {
			orthogonal = append(orthogonal, Pos{Row: r, Col: c})
		}
	}
	return orthogonal, diagonal
}

// SeedResistance assigns every cell expected*U(0,1) in row-major order.
func (g *Grid) SeedResistance(expected float64, rng Rand) {
	for i := range g.cells {
		g.cells[i].Resistance = expected * rng.Float64()
	}
}

// SeedInfection forces one uniformly chosen cell into the Infected state.
func (g *Grid) SeedInfection(rng Rand) Pos {
	p := Pos{Row: rng.IntN(g.rows), Col: rng.IntN(g.cols)}
	g.SetState(p.Row, p.Col, Infected)
	return p
}

// States returns the cell states row by row.
func (g *Grid) States() [][]State {
	out := make([][]State, g.rows)
	for r := range out {
		row := make([]State, g.cols)
		for c := range row {
			row[c] = g.at(r, c).State
		}
		out[r] = row
	}
	return out
}

// Count tallies the population by state.
func (g *Grid) Count() Counts {
	var counts Counts
	for i := range g.cells {
		counts.Add(g.cells[i].State)
	}
	return counts
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}
