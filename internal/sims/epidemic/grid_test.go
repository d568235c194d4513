package epidemic

import (
	"math"
	"testing"
)

func TestExpectedResistanceDefaults(t *testing.T) {
	got := DefaultDemographics().ExpectedResistance()
	if math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("expected resistance 0.1, got %v", got)
	}

	d := Demographics{
		MFProp:       [2]float64{0.4, 0.6},
		MFInfluence:  [2]float64{1, 0.5},
		AgeProp:      [5]float64{1, 0, 0, 0, 0},
		AgeInfluence: [5]float64{0.5, 9, 9, 9, 9},
	}
	want := (0.4*1 + 0.6*0.5) * 0.5
	if got := d.ExpectedResistance(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNewGridClampsDimensions(t *testing.T) {
	g := NewGrid(0, -3)
	if g.Rows() != 1 || g.Cols() != 1 || g.Len() != 1 {
		t.Fatalf("expected 1x1 grid, got %dx%d", g.Rows(), g.Cols())
	}
}

func TestNeighbors8RespectsEdges(t *testing.T) {
	g := NewGrid(4, 5)
	cases := []struct {
		row, col int
		want     int
	}{
		{0, 0, 3},
		{0, 4, 3},
		{3, 0, 3},
		{3, 4, 3},
		{0, 2, 5},
		{2, 0, 5},
		{2, 2, 8},
	}
	for _, tc := range cases {
		got := g.Neighbors8(tc.row, tc.col)
		if len(got) != tc.want {
			t.Fatalf("(%d,%d): expected %d neighbours, got %d", tc.row, tc.col, tc.want, len(got))
		}
		for _, p := range got {
			if !g.InBounds(p.Row, p.Col) {
				t.Fatalf("(%d,%d): neighbour %+v out of bounds", tc.row, tc.col, p)
			}
			if p.Row == tc.row && p.Col == tc.col {
				t.Fatalf("(%d,%d): cell listed as its own neighbour", tc.row, tc.col)
			}
		}
	}

	if got := NewGrid(1, 1).Neighbors8(0, 0); len(got) != 0 {
		t.Fatalf("1x1 grid should have no neighbours, got %v", got)
	}
}

func TestNeighboursSplitsDirections(t *testing.T) {
	g := NewGrid(3, 3)
	orth, diag := g.Neighbours(1, 1)
	if len(orth) != 4 || len(diag) != 4 {
		t.Fatalf("centre: expected 4/4, got %d/%d", len(orth), len(diag))
	}
	for _, p := range orth {
		if p.Row != 1 && p.Col != 1 {
			t.Fatalf("orthogonal neighbour %+v is diagonal", p)
		}
	}
	for _, p := range diag {
		if p.Row == 1 || p.Col == 1 {
			t.Fatalf("diagonal neighbour %+v is orthogonal", p)
		}
	}

	orth, diag = g.Neighbours(0, 0)
	if len(orth) != 2 || len(diag) != 1 {
		t.Fatalf("corner: expected 2/1, got %d/%d", len(orth), len(diag))
	}
}

func TestSwapMovesWholeCell(t *testing.T) {
	g := NewGrid(2, 2)
	*g.at(0, 0) = Cell{State: Infected, Resistance: 0.3, Counter: 4}
	*g.at(1, 1) = Cell{State: Dead, Resistance: 0.05, Counter: 0}

	g.Swap(Pos{0, 0}, Pos{1, 1})

	if got := g.Get(1, 1); got != (Cell{State: Infected, Resistance: 0.3, Counter: 4}) {
		t.Fatalf("unexpected cell at (1,1): %+v", got)
	}
	if got := g.Get(0, 0); got != (Cell{State: Dead, Resistance: 0.05}) {
		t.Fatalf("unexpected cell at (0,0): %+v", got)
	}

	g.Swap(Pos{0, 1}, Pos{0, 1})
	if g.Count().Total() != 4 {
		t.Fatal("self swap changed the population")
	}
}

func TestSetStateAndCycleResetCounter(t *testing.T) {
	g := NewGrid(2, 2)
	g.at(0, 1).Counter = 7

	if !g.SetState(0, 1, Recovered) {
		t.Fatal("SetState rejected valid input")
	}
	if c := g.Get(0, 1); c.State != Recovered || c.Counter != 0 {
		t.Fatalf("expected recovered with counter 0, got %+v", c)
	}
	if g.SetState(2, 0, Dead) || g.SetState(0, 0, State(9)) {
		t.Fatal("SetState accepted invalid input")
	}

	g.SetState(1, 0, Dead)
	want := []State{Susceptible, Latent, Infected, Recovered, Dead}
	for i, s := range want {
		g.at(1, 0).Counter = i + 1
		got, ok := g.CycleState(1, 0)
		if !ok || got != s {
			t.Fatalf("cycle %d: expected %v, got %v", i, s, got)
		}
		if g.Get(1, 0).Counter != 0 {
			t.Fatalf("cycle %d: counter not reset", i)
		}
	}
	if _, ok := g.CycleState(-1, 0); ok {
		t.Fatal("CycleState accepted out-of-range coordinates")
	}
}

func TestSeedResistanceWithinCeiling(t *testing.T) {
	g := NewGrid(10, 10)
	g.SeedResistance(0.1, seeded(3))
	for i, c := range g.Cells() {
		if c.Resistance < 0 || c.Resistance >= 0.1 {
			t.Fatalf("cell %d resistance %v outside [0, 0.1)", i, c.Resistance)
		}
	}
}

func TestSeedInfectionInfectsExactlyOne(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g := NewGrid(7, 3)
		p := g.SeedInfection(seeded(seed))
		if !g.InBounds(p.Row, p.Col) {
			t.Fatalf("seed %d: infection at %+v out of bounds", seed, p)
		}
		counts := g.Count()
		if counts.Infected != 1 || counts.Susceptible != 20 {
			t.Fatalf("seed %d: unexpected counts %+v", seed, counts)
		}
	}
}

func TestCountsRowOrder(t *testing.T) {
	c := Counts{Susceptible: 1, Latent: 2, Infected: 3, Recovered: 4, Dead: 5}
	row := c.Row()
	for i, s := range []State{Susceptible, Latent, Infected, Recovered, Dead} {
		if row[i] != c.Of(s) {
			t.Fatalf("column %d (%s): expected %d, got %d", i, Columns[i], c.Of(s), row[i])
		}
		if Columns[i] != s.String() {
			t.Fatalf("column %d named %q, state is %q", i, Columns[i], s)
		}
	}
	back, err := CountsFromRow(row)
	if err != nil || back != c {
		t.Fatalf("CountsFromRow: got %+v, %v", back, err)
	}
	if _, err := CountsFromRow([]int{1, 2}); err == nil {
		t.Fatal("short row should fail")
	}
	if _, err := CountsFromRow([]int{1, -2, 0, 0, 0}); err == nil {
		t.Fatal("negative count should fail")
	}
}
