package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/Ashboy64/disease-spread/internal/core"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
)

const (
	panelPadding   = 12
	lineHeight     = 30
	statusHeight   = 18
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 20
	swatchSize     = 10
)

// StatusLine is one read-only row of the HUD status block.
type StatusLine struct {
	Label  string
	Value  string
	Swatch color.RGBA
}

// CountLines describes a tick's census, one line per state with its display
// color, followed by the total and run state.
func CountLines(tick int, c epidemic.Counts, paused bool) []StatusLine {
	lines := []StatusLine{{Label: "Tick", Value: strconv.Itoa(tick)}}
	for s := epidemic.State(0); s < epidemic.NumStates; s++ {
		n := c.Of(s)
		pct := 0.0
		if total := c.Total(); total > 0 {
			pct = 100 * float64(n) / float64(total)
		}
		lines = append(lines, StatusLine{
			Label:  s.String(),
			Value:  fmt.Sprintf("%d (%.1f%%)", n, pct),
			Swatch: epidemic.StateColor(s),
		})
	}
	state := "running"
	if paused {
		state = "paused"
	}
	return append(lines, StatusLine{Label: "Population", Value: strconv.Itoa(c.Total())}, StatusLine{Label: "State", Value: state})
}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// refresh loads the control's current value from a parameter snapshot.
func (s *controlState) refresh(snapshot core.ParameterSnapshot) {
	s.hasValue = false
	s.value = "--"
	param, ok := snapshot.Lookup(s.control.Key)
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.intValue = parsed
		s.floatValue = float64(parsed)
		s.value = strconv.Itoa(parsed)
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.floatValue = parsed
		s.value = formatFloat(s.control, parsed)
	default:
		return
	}
	s.hasValue = true
}

// target computes the value one step in direction, clamped to the control's
// bounds. ok is false when the step would not change the value.
func (s *controlState) target(direction int) (value float64, ok bool) {
	if !s.hasValue || direction == 0 {
		return 0, false
	}
	ctrl := s.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		step := int(math.Round(ctrl.Step))
		if step <= 0 {
			step = 1
		}
		next := s.intValue + direction*step
		if ctrl.HasMin {
			next = max(next, int(math.Round(ctrl.Min)))
		}
		if ctrl.HasMax {
			next = min(next, int(math.Round(ctrl.Max)))
		}
		return float64(next), next != s.intValue
	case core.ParamTypeFloat:
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		next := s.floatValue + float64(direction)*step
		if ctrl.HasMin && next < ctrl.Min {
			next = ctrl.Min
		}
		if ctrl.HasMax && next > ctrl.Max {
			next = ctrl.Max
		}
		return next, math.Abs(next-s.floatValue) >= 1e-9
	}
	return 0, false
}

// apply moves the control one step and pushes the value to the setters.
func (s *controlState) apply(direction int, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	value, ok := s.target(direction)
	if !ok {
		return false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		if ints == nil || !ints.SetIntParameter(s.control.Key, int(value)) {
			return false
		}
		s.intValue = int(value)
		s.floatValue = value
		s.value = strconv.Itoa(s.intValue)
	case core.ParamTypeFloat:
		if floats == nil || !floats.SetFloatParameter(s.control.Key, value) {
			return false
		}
		s.floatValue = value
		s.value = formatFloat(s.control, value)
	}
	return true
}

// layoutControls positions the -/+ buttons of each control below top.
func layoutControls(controls []controlState, width, top int) {
	for i := range controls {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		controls[i].top = rowTop
		controls[i].minusRect = minus
		controls[i].plusRect = plus
	}
}

// hit returns the control and direction under the point, if any.
func hit(controls []controlState, x, y int) (*controlState, int) {
	p := image.Pt(x, y)
	for i := range controls {
		c := &controls[i]
		if !c.hasValue {
			continue
		}
		if p.In(c.minusRect) {
			return c, -1
		}
		if p.In(c.plusRect) {
			return c, 1
		}
	}
	return nil, 0
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// fillHeatRGBA tints each cell by value/ceiling. Zero values stay transparent.
func fillHeatRGBA(buf []byte, values []float64, ceiling float64, tint color.RGBA) {
	const maxAlpha = 160.0
	for i, v := range values {
		base := i * 4
		t := 0.0
		if ceiling > 0 {
			t = math.Min(math.Max(v/ceiling, 0), 1)
		}
		if t == 0 {
			clear(buf[base : base+4])
			continue
		}
		alpha := math.Round(maxAlpha * t)
		// Premultiplied, as ebiten expects.
		buf[base+0] = uint8(float64(tint.R) * alpha / 255)
		buf[base+1] = uint8(float64(tint.G) * alpha / 255)
		buf[base+2] = uint8(float64(tint.B) * alpha / 255)
		buf[base+3] = uint8(alpha)
	}
}
