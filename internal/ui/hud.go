//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"github.com/Ashboy64/disease-spread/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor      = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor      = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the status and parameter panel to the right of the grid.
type HUD struct {
	sim    core.Sim
	width  int
	panel  *ebiten.Image
	title  string
	status []StatusLine

	controls    []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	offsetX     int
}

// NewHUD builds a panel of the given width for sim.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: strings.ToUpper(sim.Name())}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, controlState{control: ctrl, value: "--"})
		}
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the status block and parameter values and handles clicks
// on the -/+ buttons. offsetX is the panel's left edge on screen.
func (h *HUD) Update(offsetX int, status []StatusLine) {
	if h == nil || h.width == 0 {
		return
	}
	h.offsetX = offsetX
	h.status = status
	layoutControls(h.controls, h.width, h.controlsTop())

	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	snapshot := provider.Parameters()
	for i := range h.controls {
		h.controls[i].refresh(snapshot)
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if c, dir := hit(h.controls, mx-h.offsetX, my); c != nil {
		c.apply(dir, h.intSetter, h.floatSetter)
	}
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int) {
	if h == nil || h.width == 0 {
		return
	}
	height := screen.Bounds().Dy()
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	y += statusHeight
	for _, line := range h.status {
		x := panelPadding
		if line.Swatch.A != 0 {
			vector.DrawFilledRect(h.panel, float32(x), float32(y-swatchSize), swatchSize, swatchSize, line.Swatch, false)
			x += swatchSize + buttonGap
		}
		text.Draw(h.panel, line.Label, face, x, y, labelColor)
		h.drawRight(line.Value, h.width-panelPadding, y, labelColor)
		y += statusHeight
	}

	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y+statusHeight, mutedColor)
	}
	for i := range h.controls {
		c := &h.controls[i]
		labelY := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, labelY, labelColor)
		valueColor := labelColor
		if !c.hasValue {
			valueColor = mutedColor
		}
		h.drawRight(c.value, c.minusRect.Min.X-buttonGap, labelY, valueColor)
		_, canDown := c.target(-1)
		_, canUp := c.target(1)
		h.drawButton(c.minusRect, "-", canDown)
		h.drawButton(c.plusRect, "+", canUp)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) controlsTop() int {
	return panelPadding + headerBaseline + (len(h.status)+1)*statusHeight
}

func (h *HUD) drawRight(s string, right, y int, clr color.Color) {
	w := text.BoundString(basicfont.Face7x13, s).Dx()
	text.Draw(h.panel, s, basicfont.Face7x13, right-w, y, clr)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	bounds := text.BoundString(basicfont.Face7x13, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, basicfont.Face7x13, x, y, fg)
}
