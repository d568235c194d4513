package epidemic

import (
	"fmt"
	"strconv"
)

// ClampMode selects how movement targets are kept inside the grid.
type ClampMode uint8

const (
	// ClampRows bounds both target coordinates by the row count. Column
	// targets are then clipped to the last column so non-square grids never
	// index outside the array.
	ClampRows ClampMode = iota
	// ClampAxes bounds each coordinate by its own axis.
	ClampAxes
)

func (m ClampMode) String() string {
	switch m {
	case ClampAxes:
		return "axes"
	default:
		return "rows"
	}
}

// ParseClampMode accepts "rows" or "axes". The empty string means ClampRows.
func ParseClampMode(s string) (ClampMode, error) {
	switch s {
	case "", "rows":
		return ClampRows, nil
	case "axes":
		return ClampAxes, nil
	}
	return ClampRows, fmt.Errorf("unknown movement clamp %q", s)
}

// Params holds the behaviour parameters fixed for a run.
type Params struct {
	MaxLatent   int
	MaxInfected int
	MaxImmune   int
	ProbDeath   float64

	MaxMovementRadius int
	MovementProb      float64
	MovementClamp     ClampMode

	Weights      Weights
	Demographics Demographics
}

// DefaultParams returns the configurator defaults.
func DefaultParams() Params {
	return Params{
		MaxLatent:         10,
		MaxInfected:       20,
		MaxImmune:         5,
		ProbDeath:         0.0005,
		MaxMovementRadius: 2,
		MovementProb:      0.01,
		MovementClamp:     ClampRows,
		Weights:           DefaultWeights(),
		Demographics:      DefaultDemographics(),
	}
}

// Config controls the epidemic simulation. The grid has Height/CellSize rows
// and Width/CellSize columns.
type Config struct {
	Width    int
	Height   int
	CellSize int

	Seed int64
	// Blank skips the random initial infection on Reset.
	Blank bool

	Params Params
}

// DefaultConfig returns the standard 640x640 window of 20px cells.
func DefaultConfig() Config {
	return Config{
		Width:    640,
		Height:   640,
		CellSize: 20,
		Seed:     1337,
		Params:   DefaultParams(),
	}
}

// Dims derives the grid dimensions. Both are at least one.
func (c Config) Dims() (rows, cols int) {
	size := c.CellSize
	if size <= 0 {
		size = 1
	}
	rows, cols = c.Height/size, c.Width/size
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	positiveInt(cfg, "w", &c.Width)
	positiveInt(cfg, "h", &c.Height)
	positiveInt(cfg, "cell_size", &c.CellSize)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["blank"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Blank = parsed
		}
	}
	p := &c.Params
	nonNegativeInt(cfg, "max_latent", &p.MaxLatent)
	nonNegativeInt(cfg, "max_infected", &p.MaxInfected)
	nonNegativeInt(cfg, "max_immune", &p.MaxImmune)
	nonNegativeInt(cfg, "max_movement_radius", &p.MaxMovementRadius)
	probability(cfg, "prob_death", &p.ProbDeath)
	probability(cfg, "movement_prob", &p.MovementProb)
	nonNegativeFloat(cfg, "diagonal_weight", &p.Weights.Diagonal)
	nonNegativeFloat(cfg, "orthogonal_weight", &p.Weights.Orthogonal)
	if v, ok := cfg["movement_clamp"]; ok {
		if mode, err := ParseClampMode(v); err == nil {
			p.MovementClamp = mode
		}
	}
	return c
}

func positiveInt(cfg map[string]string, key string, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			*dst = parsed
		}
	}
}

func nonNegativeInt(cfg map[string]string, key string, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

func nonNegativeFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

func probability(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			*dst = parsed
		}
	}
}
