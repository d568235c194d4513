package epidemic

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Ashboy64/disease-spread/internal/core"

	"gopkg.in/yaml.v3"
)

// ErrGridMismatch reports a saved grid whose shape disagrees with its
// declared settings.
var ErrGridMismatch = errors.New("grid does not match settings")

type fileParams struct {
	MaxLatent         int     `yaml:"max_latent"`
	MaxInfected       int     `yaml:"max_infected"`
	MaxImmune         int     `yaml:"max_immune"`
	ProbDeath         float64 `yaml:"prob_death"`
	MaxMovementRadius int     `yaml:"max_movement_radius"`
	MovementProb      float64 `yaml:"movement_prob"`
	MovementClamp     string  `yaml:"movement_clamp,omitempty"`
	DiagonalWeight    float64 `yaml:"diagonal_weight"`
	OrthogonalWeight  float64 `yaml:"orthogonal_weight"`
}

type fileProps struct {
	MFProp       []float64 `yaml:"mf_prop,flow"`
	MFInfluence  []float64 `yaml:"mf_influence,flow"`
	AgeProp      []float64 `yaml:"age_prop,flow"`
	AgeInfluence []float64 `yaml:"age_influence,flow"`
}

type fileSettings struct {
	Width    int   `yaml:"width"`
	Height   int   `yaml:"height"`
	CellSize int   `yaml:"cell_size"`
	Seed     int64 `yaml:"seed,omitempty"`
}

// gridRow marshals as a flow sequence so each grid row stays on one line.
type gridRow []int

func (r gridRow) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range r {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)})
	}
	return node, nil
}

type configFile struct {
	Params   fileParams   `yaml:"params"`
	Props    fileProps    `yaml:"props"`
	Settings fileSettings `yaml:"settings"`
	Grid     []gridRow    `yaml:"grid"`
}

// fileConfig lays out cfg the way configuration files store it, without the
// grid.
func fileConfig(cfg Config) configFile {
	p := cfg.Params
	d := p.Demographics
	return configFile{
		Params: fileParams{
			MaxLatent:         p.MaxLatent,
			MaxInfected:       p.MaxInfected,
			MaxImmune:         p.MaxImmune,
			ProbDeath:         p.ProbDeath,
			MaxMovementRadius: p.MaxMovementRadius,
			MovementProb:      p.MovementProb,
			MovementClamp:     p.MovementClamp.String(),
			DiagonalWeight:    p.Weights.Diagonal,
			OrthogonalWeight:  p.Weights.Orthogonal,
		},
		Props: fileProps{
			MFProp:       append([]float64(nil), d.MFProp[:]...),
			MFInfluence:  append([]float64(nil), d.MFInfluence[:]...),
			AgeProp:      append([]float64(nil), d.AgeProp[:]...),
			AgeInfluence: append([]float64(nil), d.AgeInfluence[:]...),
		},
		Settings: fileSettings{
			Width:    cfg.Width,
			Height:   cfg.Height,
			CellSize: cfg.CellSize,
			Seed:     cfg.Seed,
		},
	}
}

// EncodeConfig writes cfg and the current states of g as YAML.
func EncodeConfig(w io.Writer, cfg Config, g *Grid) error {
	f := fileConfig(cfg)
	for _, row := range g.States() {
		out := make(gridRow, len(row))
		for i, s := range row {
			out[i] = s.Code()
		}
		f.Grid = append(f.Grid, out)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// DecodeConfig reads a YAML configuration and its persisted grid states. The
// grid must have exactly the rows and columns implied by the settings. Keys
// missing from the document keep their DefaultConfig values.
func DecodeConfig(r io.Reader) (Config, [][]State, error) {
	f := fileConfig(DefaultConfig())
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return Config{}, nil, fmt.Errorf("decode config: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Width = f.Settings.Width
	cfg.Height = f.Settings.Height
	cfg.CellSize = f.Settings.CellSize
	if f.Settings.Seed != 0 {
		cfg.Seed = f.Settings.Seed
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.CellSize <= 0 {
		return Config{}, nil, fmt.Errorf("settings: width, height and cell_size must be positive (got %d, %d, %d)",
			cfg.Width, cfg.Height, cfg.CellSize)
	}

	clampMode, err := ParseClampMode(f.Params.MovementClamp)
	if err != nil {
		return Config{}, nil, fmt.Errorf("params: %w", err)
	}
	cfg.Params = Params{
		MaxLatent:         f.Params.MaxLatent,
		MaxInfected:       f.Params.MaxInfected,
		MaxImmune:         f.Params.MaxImmune,
		ProbDeath:         f.Params.ProbDeath,
		MaxMovementRadius: f.Params.MaxMovementRadius,
		MovementProb:      f.Params.MovementProb,
		MovementClamp:     clampMode,
		Weights:           Weights{Diagonal: f.Params.DiagonalWeight, Orthogonal: f.Params.OrthogonalWeight},
	}
	if err := fillProps(&cfg.Params.Demographics, f.Props); err != nil {
		return Config{}, nil, fmt.Errorf("props: %w", err)
	}

	states, err := decodeGrid(cfg, f.Grid)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, states, nil
}

func fillProps(d *Demographics, p fileProps) error {
	vectors := []struct {
		name string
		src  []float64
		dst  []float64
	}{
		{"mf_prop", p.MFProp, d.MFProp[:]},
		{"mf_influence", p.MFInfluence, d.MFInfluence[:]},
		{"age_prop", p.AgeProp, d.AgeProp[:]},
		{"age_influence", p.AgeInfluence, d.AgeInfluence[:]},
	}
	for _, v := range vectors {
		if len(v.src) != len(v.dst) {
			return fmt.Errorf("%s has %d entries, want %d", v.name, len(v.src), len(v.dst))
		}
		copy(v.dst, v.src)
	}
	return nil
}

func decodeGrid(cfg Config, grid []gridRow) ([][]State, error) {
	rows, cols := cfg.Dims()
	if len(grid) < rows {
		return nil, fmt.Errorf("row %d: missing (grid has %d rows, settings need %d): %w", len(grid), len(grid), rows, ErrGridMismatch)
	}
	if len(grid) > rows {
		return nil, fmt.Errorf("row %d: unexpected (settings need %d rows): %w", rows, rows, ErrGridMismatch)
	}
	states := make([][]State, rows)
	for r, row := range grid {
		if len(row) != cols {
			col := min(len(row), cols)
			return nil, fmt.Errorf("row %d, col %d: row has %d columns, settings need %d: %w", r, col, len(row), cols, ErrGridMismatch)
		}
		states[r] = make([]State, cols)
		for c, code := range row {
			s, err := ParseState(code)
			if err != nil {
				return nil, fmt.Errorf("row %d, col %d: %w", r, c, err)
			}
			states[r][c] = s
		}
	}
	return states, nil
}

// SaveConfig writes the world's configuration and current grid to path,
// creating parent directories as needed.
func (w *World) SaveConfig(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := EncodeConfig(f, w.cfg, w.state.Grid); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FromConfig builds a world that starts from the given states. Resistance is
// re-seeded from the expected resistance and every counter starts at zero, so
// a reloaded run does not replay the saved run's trajectory.
func FromConfig(cfg Config, states [][]State) *World {
	rows, cols := cfg.Dims()
	w := &World{
		cfg:     cfg,
		initial: states,
		display: core.NewByteGrid(cols, rows),
	}
	w.Reset(0)
	return w
}

// LoadConfig reads a YAML configuration from path and builds a world from it.
func LoadConfig(path string) (*World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, states, err := DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return FromConfig(cfg, states), nil
}
