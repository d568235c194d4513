package app

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/Ashboy64/disease-spread/internal/core"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
)

// Settings collects repeated -set key=value flags for a sim factory.
type Settings map[string]string

func (s Settings) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + s[k]
	}
	return strings.Join(pairs, ",")
}

// Set implements flag.Value.
func (s Settings) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	s[key] = strings.TrimSpace(value)
	return nil
}

// NewSim builds the named sim from the registry.
func NewSim(name string, cfg map[string]string) (*epidemic.World, error) {
	factory, ok := core.Sims()[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %s)", name, strings.Join(core.Names(), ", "))
	}
	world, ok := factory(cfg).(*epidemic.World)
	if !ok {
		return nil, fmt.Errorf("sim %q does not track an epidemic", name)
	}
	return world, nil
}

var monochrome = []color.RGBA{{0, 0, 0, 255}, {255, 255, 255, 255}}

func simPalette(sim core.Sim) []color.RGBA {
	if p, ok := sim.(core.PaletteProvider); ok {
		return p.Palette()
	}
	return monochrome
}

func cycleCell(sim core.Sim, x, y int) bool {
	ed, ok := sim.(core.Editor)
	return ok && ed.CycleCell(x, y)
}
