package app

import (
	"flag"
	"strconv"

	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
)

// Config represents the command-line parameters shared by the front ends.
type Config struct {
	ConfigPath string
	SavePath   string
	LogDir     string
	LogLevel   string

	Sim string
	Set Settings

	Width    int
	Height   int
	CellSize int
	Seed     int64
	Blank    bool

	Scale    int
	TPS      int
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	d := epidemic.DefaultConfig()
	return &Config{
		SavePath: "config.yml",
		LogDir:   "logs",
		LogLevel: "info",
		Sim:      "epidemic",
		Set:      Settings{},
		Width:    d.Width,
		Height:   d.Height,
		CellSize: d.CellSize,
		Seed:     d.Seed,
		Scale:    20,
		TPS:      10,
		HUDWidth: 260,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML configuration to load (overrides grid flags)")
	fs.StringVar(&c.SavePath, "save", c.SavePath, "where to save the configuration")
	fs.StringVar(&c.LogDir, "logdir", c.LogDir, "base directory for per-run count logs; empty disables logging")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.StringVar(&c.Sim, "sim", c.Sim, "registered simulation to run")
	fs.Var(c.Set, "set", "simulation parameter as key=value, repeatable (e.g. -set prob_death=0.001); ignored with -config")
	fs.IntVar(&c.Width, "width", c.Width, "world width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "world height in pixels")
	fs.IntVar(&c.CellSize, "cell", c.CellSize, "pixels per person")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.BoolVar(&c.Blank, "blank", c.Blank, "start without an infected person")
	fs.IntVar(&c.Scale, "scale", c.Scale, "screen pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels; 0 hides it")
}

// Map flattens the flags into the key/value form sim factories accept. -set
// entries win over the dedicated flags.
func (c *Config) Map() map[string]string {
	m := map[string]string{
		"w":         strconv.Itoa(c.Width),
		"h":         strconv.Itoa(c.Height),
		"cell_size": strconv.Itoa(c.CellSize),
		"seed":      strconv.FormatInt(c.Seed, 10),
		"blank":     strconv.FormatBool(c.Blank),
	}
	for k, v := range c.Set {
		m[k] = v
	}
	return m
}

// World returns the epidemic settings selected by the flags.
func (c *Config) World() epidemic.Config {
	return epidemic.FromMap(c.Map())
}
