package epidemic

// SimulationState is everything one tick reads and writes.
type SimulationState struct {
	Params Params
	Grid   *Grid
	Tick   int
}

// NewState builds a fresh grid: every cell gets expected*U(0,1) resistance and,
// unless blank is set, one random cell is seeded Infected.
func NewState(p Params, rows, cols int, blank bool, rng Rand) SimulationState {
	g := NewGrid(rows, cols)
	g.SeedResistance(p.Demographics.ExpectedResistance(), rng)
	if !blank {
		g.SeedInfection(rng)
	}
	return SimulationState{Params: p, Grid: g}
}

// Advance runs one tick: the transition sweep followed by the movement sweep.
//
// The transition sweep visits cells row by row, left to right, and updates
// them in place, so a cell can see the new state of neighbours visited earlier
// in the same tick. Counts tally each cell's state right after its transition
// and always sum to rows*cols.
func Advance(st SimulationState, rng Rand) (SimulationState, Counts) {
	counts, mobile := transitionSweep(st.Grid, st.Params, rng)
	moveSweep(st.Grid, st.Params, mobile, rng)
	st.Tick++
	return st, counts
}

func transitionSweep(g *Grid, p Params, rng Rand) (Counts, []Pos) {
	var counts Counts
	var mobile []Pos
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			// Marking happens before the transition and ignores the state.
			if rng.Float64() < p.MovementProb {
				mobile = append(mobile, Pos{Row: r, Col: c})
			}
			cell := g.at(r, c)
			transition(g, r, c, cell, p, rng)
			counts.Add(cell.State)
		}
	}
	return counts, mobile
}

func transition(g *Grid, r, c int, cell *Cell, p Params, rng Rand) {
	switch cell.State {
	case Susceptible:
		draw := rng.Float64()
		if draw < InfectionProbability(g, r, c, p.Weights, rng) {
			cell.SetState(Latent)
		}
	case Latent:
		if cell.Counter > p.MaxLatent {
			cell.SetState(Infected)
		} else {
			cell.Counter++
		}
	case Infected:
		switch {
		case cell.Counter > p.MaxInfected:
			cell.SetState(Recovered)
		case rng.Float64() < p.ProbDeath:
			cell.SetState(Dead)
		default:
			cell.Counter++
		}
	case Recovered:
		if cell.Counter > p.MaxImmune {
			cell.SetState(Susceptible)
		} else {
			cell.Counter++
		}
	case Dead:
	}
}

// moveSweep relocates each marked position, in marking order, by swapping it
// with a random target within MaxMovementRadius. Later swaps act on content
// already moved earlier in the sweep.
func moveSweep(g *Grid, p Params, mobile []Pos, rng Rand) {
	radius := p.MaxMovementRadius
	for _, from := range mobile {
		var dr, dc int
		if radius > 0 {
			dr = rng.IntN(2*radius) - radius
			dc = rng.IntN(2*radius) - radius
		}
		g.Swap(from, movementTarget(g, from, dr, dc, p.MovementClamp))
	}
}

func movementTarget(g *Grid, from Pos, dr, dc int, mode ClampMode) Pos {
	rowBound, colBound := g.rows-1, g.cols-1
	if mode == ClampRows {
		colBound = g.rows - 1
	}
	to := Pos{Row: clamp(from.Row+dr, 0, rowBound), Col: clamp(from.Col+dc, 0, colBound)}
	if to.Col > g.cols-1 {
		to.Col = g.cols - 1
	}
	return to
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
