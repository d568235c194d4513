package app

import (
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
	"github.com/Ashboy64/disease-spread/internal/sink"

	"github.com/charmbracelet/log"
)

func TestBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-width", "100", "-height", "60", "-cell", "10", "-seed", "5", "-blank"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	w := cfg.World()
	if rows, cols := w.Dims(); rows != 6 || cols != 10 {
		t.Fatalf("unexpected dims %dx%d", rows, cols)
	}
	if w.Seed != 5 || !w.Blank {
		t.Fatalf("unexpected world config %+v", w)
	}
}

func TestSetFlagsReachTheWorld(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	args := []string{"-width", "40", "-height", "20", "-cell", "10", "-set", "prob_death=0.125", "-set", "max_latent=3", "-set", "h=30"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse: %v", err)
	}
	world, err := OpenWorld(cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got := world.Config()
	if got.Params.ProbDeath != 0.125 || got.Params.MaxLatent != 3 {
		t.Fatalf("-set parameters not applied: %+v", got.Params)
	}
	if rows, cols := got.Dims(); rows != 3 || cols != 4 {
		t.Fatalf("-set should win over -height, got %dx%d", rows, cols)
	}
	if cfg.Set.String() != "h=30,max_latent=3,prob_death=0.125" {
		t.Fatalf("unexpected flag string %q", cfg.Set.String())
	}
	if err := fs.Parse([]string{"-set", "=3"}); err == nil {
		t.Fatal("expected an error for a missing key")
	}
}

func TestOpenWorldUnknownSim(t *testing.T) {
	cfg := NewConfig()
	cfg.Sim = "measles"
	_, err := OpenWorld(cfg)
	if err == nil || !strings.Contains(err.Error(), "epidemic") {
		t.Fatalf("expected an error listing the registered sims, got %v", err)
	}
}

func TestPaletteAndEditThroughSimInterfaces(t *testing.T) {
	world, err := NewSim("epidemic", map[string]string{"w": "3", "h": "2", "cell_size": "1", "blank": "true"})
	if err != nil {
		t.Fatalf("new sim: %v", err)
	}
	if len(simPalette(world)) != epidemic.NumStates {
		t.Fatalf("expected one color per state, got %d", len(simPalette(world)))
	}
	if !cycleCell(world, 2, 1) {
		t.Fatal("cycling an in-range cell should succeed")
	}
	if c, _ := world.CellAt(1, 2); c.State != epidemic.Latent {
		t.Fatalf("cycled cell should be latent, got %v", c.State)
	}
	if cycleCell(world, 3, 0) {
		t.Fatal("column 3 is outside a 3-column grid")
	}
	if len(simPalette(nil)) != len(monochrome) {
		t.Fatal("sims without a palette should fall back to monochrome")
	}
}

func TestSessionLogsAndSaves(t *testing.T) {
	base := t.TempDir()
	cfg := NewConfig()
	cfg.Width, cfg.Height, cfg.CellSize = 8, 8, 1
	cfg.LogDir = base
	now := time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC)

	s, err := Open(cfg, log.New(io.Discard), now)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 0; i < 4; i++ {
		if _, err := s.Driver.StepOnce(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
	savePath := filepath.Join(base, "saved.yml")
	if err := s.Save(savePath); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if s.LogPath != filepath.Join(base, "02_01_2021_03_04_05", sink.LogName) {
		t.Fatalf("unexpected log path %q", s.LogPath)
	}
	rows, err := sink.ReadLogDir(filepath.Dir(s.LogPath))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if total, err := sink.CheckConservation(rows); err != nil || total != 64 {
		t.Fatalf("conservation: %d, %v", total, err)
	}

	cfg.ConfigPath = savePath
	cfg.LogDir = ""
	reopened, err := Open(cfg, log.New(io.Discard), now)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if reopened.LogPath != "" {
		t.Fatal("empty log dir should disable the log")
	}
	if reopened.World.Counts() != s.World.Counts() {
		t.Fatalf("reloaded counts %+v, saved %+v", reopened.World.Counts(), s.World.Counts())
	}
}

func TestOpenWorldMissingConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.ConfigPath = filepath.Join(t.TempDir(), "missing.yml")
	if _, err := OpenWorld(cfg); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestCountsRow(t *testing.T) {
	if got := CountsRow(epidemic.Counts{Susceptible: 5, Dead: 2}); got != "5,0,0,0,2" {
		t.Fatalf("unexpected row %q", got)
	}
}

func TestNewLoggerRejectsUnknownLevel(t *testing.T) {
	if _, err := NewLogger("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if _, err := NewLogger("debug"); err != nil {
		t.Fatalf("debug level: %v", err)
	}
}
