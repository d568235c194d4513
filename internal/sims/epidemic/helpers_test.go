package epidemic

import (
	"math/rand/v2"
	"testing"
)

// scriptRand replays fixed draws and fails the test when it runs dry.
type scriptRand struct {
	t      *testing.T
	floats []float64
	ints   []int
}

func (s *scriptRand) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatal("unexpected Float64 draw")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptRand) IntN(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatal("unexpected IntN draw")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted IntN value %d outside [0,%d)", v, n)
	}
	return v
}

func (s *scriptRand) exhausted() bool { return len(s.floats) == 0 && len(s.ints) == 0 }

// countingRand counts draws taken from a seeded generator.
type countingRand struct {
	r     *rand.Rand
	draws int
}

func newCountingRand(seed uint64) *countingRand {
	return &countingRand{r: rand.New(rand.NewPCG(seed, 0))}
}

func (c *countingRand) Float64() float64 { c.draws++; return c.r.Float64() }
func (c *countingRand) IntN(n int) int   { c.draws++; return c.r.IntN(n) }

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, 0)) }

// stillParams disables movement and death so transitions are threshold-driven.
func stillParams() Params {
	p := DefaultParams()
	p.MovementProb = 0
	p.ProbDeath = 0
	return p
}

func randomGrid(rows, cols int, rng *rand.Rand) *Grid {
	g := NewGrid(rows, cols)
	for i := range g.cells {
		g.cells[i] = Cell{
			State:      State(rng.IntN(NumStates)),
			Resistance: rng.Float64(),
			Counter:    rng.IntN(5),
		}
	}
	return g
}
