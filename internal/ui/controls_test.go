package ui

import (
	"strings"
	"testing"

	"github.com/Ashboy64/disease-spread/internal/core"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
)

type fakeSetter struct {
	ints   map[string]int
	floats map[string]float64
}

func (f *fakeSetter) SetIntParameter(key string, v int) bool {
	f.ints[key] = v
	return true
}

func (f *fakeSetter) SetFloatParameter(key string, v float64) bool {
	f.floats[key] = v
	return true
}

func TestCountLinesListsEveryState(t *testing.T) {
	lines := CountLines(7, epidemic.Counts{Susceptible: 3, Infected: 1}, true)
	if len(lines) != 1+epidemic.NumStates+2 {
		t.Fatalf("unexpected line count %d", len(lines))
	}
	if lines[0].Value != "7" {
		t.Fatalf("tick line %+v", lines[0])
	}
	if lines[1].Label != "susceptible" || lines[1].Value != "3 (75.0%)" {
		t.Fatalf("susceptible line %+v", lines[1])
	}
	if lines[3].Swatch != epidemic.StateColor(epidemic.Infected) {
		t.Fatal("infected line should carry the state color")
	}
	if last := lines[len(lines)-1]; last.Value != "paused" {
		t.Fatalf("state line %+v", last)
	}
}

func TestControlStepsRespectBounds(t *testing.T) {
	world := epidemic.New(4, 4)
	snap := world.Parameters()
	controls := make([]controlState, 0)
	for _, ctrl := range world.ParameterControls() {
		c := controlState{control: ctrl}
		c.refresh(snap)
		if !c.hasValue {
			t.Fatalf("control %q has no value", ctrl.Key)
		}
		controls = append(controls, c)
	}

	setter := &fakeSetter{ints: map[string]int{}, floats: map[string]float64{}}
	for i := range controls {
		c := &controls[i]
		switch c.control.Key {
		case "max_latent":
			if !c.apply(1, setter, setter) || setter.ints["max_latent"] != 11 {
				t.Fatalf("max_latent step: %v", setter.ints)
			}
		case "prob_death":
			// Default 0.0005 minus one step of 0.0005 hits the lower bound.
			if !c.apply(-1, setter, setter) || setter.floats["prob_death"] != 0 {
				t.Fatalf("prob_death step: %v", setter.floats)
			}
			if _, ok := c.target(-1); ok {
				t.Fatal("prob_death at its minimum should not step down")
			}
			if c.value != "0.0000" {
				t.Fatalf("unexpected formatted value %q", c.value)
			}
		}
	}
}

func TestControlWithoutSnapshotValue(t *testing.T) {
	c := controlState{control: core.ParameterControl{Key: "missing", Type: core.ParamTypeInt}}
	c.refresh(core.ParameterSnapshot{})
	if c.hasValue || c.value != "--" {
		t.Fatalf("unexpected state %+v", c)
	}
	if c.apply(1, nil, nil) {
		t.Fatal("control without a value must not apply")
	}
}

func TestLayoutAndHit(t *testing.T) {
	controls := []controlState{
		{control: core.ParameterControl{Key: "a", Type: core.ParamTypeInt}, hasValue: true},
		{control: core.ParameterControl{Key: "b", Type: core.ParamTypeInt}, hasValue: true},
	}
	layoutControls(controls, 240, 100)
	if controls[1].top != 100+lineHeight {
		t.Fatalf("second control top %d", controls[1].top)
	}
	plus := controls[1].plusRect
	c, dir := hit(controls, plus.Min.X+1, plus.Min.Y+1)
	if c == nil || c.control.Key != "b" || dir != 1 {
		t.Fatalf("expected plus of b, got %v %d", c, dir)
	}
	minus := controls[0].minusRect
	if c, dir := hit(controls, minus.Min.X, minus.Min.Y); c == nil || dir != -1 {
		t.Fatal("expected minus of a")
	}
	if c, _ := hit(controls, 0, 0); c != nil {
		t.Fatal("expected no hit in the corner")
	}
}

func TestFillHeat(t *testing.T) {
	buf := make([]byte, 3*4)
	fillHeatRGBA(buf, []float64{0, 0.05, 0.5}, 0.1, epidemic.StateColor(epidemic.Recovered))
	if buf[3] != 0 {
		t.Fatal("zero resistance should be transparent")
	}
	if buf[7] != 80 || buf[11] != 160 {
		t.Fatalf("unexpected alphas %d %d", buf[7], buf[11])
	}
	if strings.TrimSpace(formatFloat(core.ParameterControl{Step: 0.125}, 0.5)) != "0.5" {
		t.Fatal("coarse steps format with one decimal")
	}
}
