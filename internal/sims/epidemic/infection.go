package epidemic

import "math"

// Weights scale the contribution of diagonal and orthogonal neighbours to the
// infection probability.
type Weights struct {
	Diagonal   float64
	Orthogonal float64
}

// DefaultWeights weighs both directions equally at 0.5.
func DefaultWeights() Weights {
	return Weights{Diagonal: 0.5, Orthogonal: 0.5}
}

// InfectionProbability computes the chance that the susceptible cell at
// (row, col) becomes exposed this tick. Each Infected neighbour, visited in
// neighbourOffsets order, draws u ~ U(0,1) and adds sqrt(u*(1-resistance)) to
// its direction's sum. The result is
//
//	w.Diagonal/4*diagonal + w.Orthogonal/4*orthogonal
//
// and may exceed one. A cell without Infected neighbours gets exactly zero and
// consumes no randomness.
func InfectionProbability(g *Grid, row, col int, w Weights, rng Rand) float64 {
	damping := 1 - g.at(row, col).Resistance
	var diagonal, orthogonal float64
	for _, off := range neighbourOffsets {
		r, c := row+off.dr, col+off.dc
		if !g.InBounds(r, c) || g.at(r, c).State != Infected {
			continue
		}
		contribution := math.Sqrt(rng.Float64() * damping)
		if off.diagonal {
			diagonal += contribution
		} else {
			orthogonal += contribution
		}
	}
	return w.Diagonal/4*diagonal + w.Orthogonal/4*orthogonal
}
