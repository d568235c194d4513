package epidemic

import (
	"slices"
	"testing"

	"github.com/Ashboy64/disease-spread/internal/core"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 12
	cfg.Height = 8
	cfg.CellSize = 1
	cfg.Seed = 99
	return cfg
}

func TestWorldDimensionsFollowCellSize(t *testing.T) {
	cfg := DefaultConfig()
	world := NewWithConfig(cfg)
	if got := world.Size(); got.W != 32 || got.H != 32 {
		t.Fatalf("expected 32x32 grid, got %dx%d", got.W, got.H)
	}

	cfg.Width, cfg.Height, cfg.CellSize = 100, 60, 20
	world = NewWithConfig(cfg)
	if world.Grid().Rows() != 3 || world.Grid().Cols() != 5 {
		t.Fatalf("expected 3 rows by 5 columns, got %dx%d", world.Grid().Rows(), world.Grid().Cols())
	}
	if len(world.Cells()) != 15 {
		t.Fatalf("display buffer has %d cells, want 15", len(world.Cells()))
	}
}

func TestResetDeterministic(t *testing.T) {
	world := NewWithConfig(smallConfig())
	initialCells := append([]uint8(nil), world.Cells()...)
	initialResistance := world.ResistanceField()
	for i := 0; i < 25; i++ {
		world.Step()
	}
	afterRun := append([]uint8(nil), world.Cells()...)

	world.Reset(0)
	if !slices.Equal(initialCells, world.Cells()) {
		t.Fatal("Reset with config seed not deterministic for display buffer")
	}
	if !slices.Equal(initialResistance, world.ResistanceField()) {
		t.Fatal("Reset with config seed not deterministic for resistance")
	}
	if world.Tick() != 0 {
		t.Fatalf("expected tick 0 after reset, got %d", world.Tick())
	}
	for i := 0; i < 25; i++ {
		world.Step()
	}
	if !slices.Equal(afterRun, world.Cells()) {
		t.Fatal("replay from the same seed diverged")
	}

	world.Reset(777)
	seeded := append([]uint8(nil), world.Cells()...)
	world.Reset(777)
	if !slices.Equal(seeded, world.Cells()) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
}

func TestResetSeedsExactlyOneInfection(t *testing.T) {
	world := NewWithConfig(smallConfig())
	counts := world.Counts()
	if counts.Infected != 1 || counts.Susceptible != 95 {
		t.Fatalf("expected one infected among 96, got %+v", counts)
	}
	ceiling := world.Config().Params.Demographics.ExpectedResistance()
	for i, r := range world.ResistanceField() {
		if r < 0 || r >= ceiling {
			t.Fatalf("cell %d resistance %v outside [0,%v)", i, r, ceiling)
		}
	}
}

func TestBlankWorldHasNoInfection(t *testing.T) {
	cfg := smallConfig()
	cfg.Blank = true
	world := NewWithConfig(cfg)
	if got := world.Counts(); got != (Counts{Susceptible: 96}) {
		t.Fatalf("expected an all-susceptible grid, got %+v", got)
	}
	world.Step()
	if got := world.Counts(); got != (Counts{Susceptible: 96}) {
		t.Fatalf("blank grid should stay healthy, got %+v", got)
	}
}

func TestStepCountsMatchGrid(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.MovementProb = 0.2
	world := NewWithConfig(cfg)
	for i := 0; i < 50; i++ {
		world.Step()
		if world.Counts() != world.Grid().Count() {
			t.Fatalf("tick %d: counts %+v disagree with grid %+v", world.Tick(), world.Counts(), world.Grid().Count())
		}
		for j, c := range world.Grid().Cells() {
			if world.Cells()[j] != uint8(c.State) {
				t.Fatalf("tick %d: display cell %d stale", world.Tick(), j)
			}
		}
	}
}

func TestCycleCellEditsColumnAndRow(t *testing.T) {
	cfg := smallConfig()
	cfg.Blank = true
	world := NewWithConfig(cfg)

	if !world.CycleCell(3, 2) {
		t.Fatal("expected in-bounds edit to succeed")
	}
	cell, ok := world.CellAt(2, 3)
	if !ok || cell.State != Latent {
		t.Fatalf("expected (row 2, col 3) latent, got %+v", cell)
	}
	if world.Cells()[2*12+3] != uint8(Latent) {
		t.Fatal("display not updated after edit")
	}
	if world.Counts().Latent != 1 {
		t.Fatalf("counts not refreshed after edit: %+v", world.Counts())
	}

	for i := 0; i < 4; i++ {
		world.CycleCell(3, 2)
	}
	if cell, _ := world.CellAt(2, 3); cell.State != Susceptible {
		t.Fatalf("five cycles should return to susceptible, got %v", cell.State)
	}
	if world.CycleCell(12, 0) || world.CycleCell(0, -1) {
		t.Fatal("out-of-bounds edits must be rejected")
	}
	if _, ok := world.CellAt(8, 0); ok {
		t.Fatal("CellAt should reject out-of-bounds rows")
	}
}

func TestSetCellStateResetsCounter(t *testing.T) {
	cfg := smallConfig()
	cfg.Params.MovementProb = 0
	world := NewWithConfig(cfg)
	world.SetCellState(0, 0, Recovered)
	world.Step()
	if cell, _ := world.CellAt(0, 0); cell.State != Recovered || cell.Counter != 1 {
		t.Fatalf("expected recovered counter 1, got %+v", cell)
	}
	world.SetCellState(0, 0, Recovered)
	if cell, _ := world.CellAt(0, 0); cell.Counter != 0 {
		t.Fatalf("forcing a state should restart its counter, got %+v", cell)
	}
}

func TestParameterSetters(t *testing.T) {
	world := NewWithConfig(smallConfig())

	if !world.SetIntParameter("max_latent", -4) || world.State().Params.MaxLatent != 0 {
		t.Fatal("negative max_latent should clamp to zero")
	}
	if !world.SetFloatParameter("prob_death", 3) || world.State().Params.ProbDeath != 1 {
		t.Fatal("prob_death should clamp to one")
	}
	if !world.SetFloatParameter("orthogonal_weight", 1.625) || world.Config().Params.Weights.Orthogonal != 1.625 {
		t.Fatal("weights should update the config too")
	}
	if world.SetIntParameter("unknown", 1) || world.SetFloatParameter("unknown", 1) {
		t.Fatal("unknown keys must be rejected")
	}

	snap := world.Parameters()
	p, ok := snap.Lookup("prob_death")
	if !ok || p.Value != "1" {
		t.Fatalf("snapshot prob_death = %+v", p)
	}
	if _, ok := snap.Lookup("expected_resistance"); !ok {
		t.Fatal("snapshot should report expected resistance")
	}
	for _, control := range world.ParameterControls() {
		if _, ok := snap.Lookup(control.Key); !ok {
			t.Fatalf("control %q missing from snapshot", control.Key)
		}
	}
}

func TestRegisteredInCore(t *testing.T) {
	factory, ok := core.Sims()["epidemic"]
	if !ok {
		t.Fatal("epidemic not registered")
	}
	sim := factory(map[string]string{"w": "10", "h": "4", "cell_size": "2", "blank": "true"})
	if sim.Name() != "epidemic" {
		t.Fatalf("unexpected name %q", sim.Name())
	}
	if size := sim.Size(); size.W != 5 || size.H != 2 {
		t.Fatalf("expected 5x2, got %dx%d", size.W, size.H)
	}
	if _, ok := sim.(core.Editor); !ok {
		t.Fatal("world should support cell editing")
	}
	if _, ok := sim.(core.PaletteProvider); !ok {
		t.Fatal("world should provide a palette")
	}
}

func TestFromMapValidates(t *testing.T) {
	cfg := FromMap(map[string]string{
		"max_latent":     "3",
		"prob_death":     "1.5",
		"movement_prob":  "0.25",
		"movement_clamp": "axes",
		"w":              "-5",
		"seed":           "42",
	})
	if cfg.Params.MaxLatent != 3 || cfg.Params.MovementProb != 0.25 || cfg.Seed != 42 {
		t.Fatalf("valid values not applied: %+v", cfg)
	}
	if cfg.Params.ProbDeath != DefaultParams().ProbDeath {
		t.Fatal("out-of-range probability should keep its default")
	}
	if cfg.Width != 640 {
		t.Fatal("non-positive width should keep its default")
	}
	if cfg.Params.MovementClamp != ClampAxes {
		t.Fatal("movement_clamp not parsed")
	}
}
