//go:build ebiten

package ui

import (
	"image/color"
	"slices"

	"github.com/Ashboy64/disease-spread/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type resistanceProvider interface {
	ResistanceField() []float64
}

var (
	heatTint  = color.RGBA{R: 60, G: 120, B: 255, A: 255}
	gridColor = color.RGBA{R: 0, G: 0, B: 0, A: 60}
	hoverLine = color.RGBA{R: 255, G: 255, B: 255, A: 200}
)

// Overlay draws optional visuals over the grid: a resistance heatmap (key 1),
// cell borders (key 2) and the outline of the hovered cell.
type Overlay struct {
	sim   core.Sim
	scale int

	showHeat  bool
	showGrid  bool
	heatImg   *ebiten.Image
	heatBuf   []byte
	hoverX    int
	hoverY    int
	hoverShow bool
}

// NewOverlay constructs an overlay for sim drawn at scale pixels per cell.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: max(scale, 1)}
}

// Update handles the overlay toggles and tracks the hovered cell.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showGrid = !o.showGrid
	}
	size := o.sim.Size()
	mx, my := ebiten.CursorPosition()
	o.hoverX, o.hoverY = mx/o.scale, my/o.scale
	o.hoverShow = mx >= 0 && my >= 0 && o.hoverX < size.W && o.hoverY < size.H
}

// Hovered returns the cell under the cursor as column x, row y.
func (o *Overlay) Hovered() (x, y int, ok bool) {
	return o.hoverX, o.hoverY, o.hoverShow
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := float32(o.scale)

	if provider, ok := o.sim.(resistanceProvider); ok && o.showHeat {
		field := provider.ResistanceField()
		if o.heatImg == nil || len(o.heatBuf) != 4*len(field) {
			o.heatImg = ebiten.NewImage(size.W, size.H)
			o.heatBuf = make([]byte, 4*len(field))
		}
		ceiling := 0.0
		if len(field) > 0 {
			ceiling = slices.Max(field)
		}
		fillHeatRGBA(o.heatBuf, field, ceiling, heatTint)
		o.heatImg.WritePixels(o.heatBuf)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(o.scale), float64(o.scale))
		screen.DrawImage(o.heatImg, op)
	}

	if o.showGrid && o.scale >= 4 {
		w, h := float32(size.W)*scale, float32(size.H)*scale
		for x := 1; x < size.W; x++ {
			vector.StrokeLine(screen, float32(x)*scale, 0, float32(x)*scale, h, 1, gridColor, false)
		}
		for y := 1; y < size.H; y++ {
			vector.StrokeLine(screen, 0, float32(y)*scale, w, float32(y)*scale, 1, gridColor, false)
		}
	}

	if o.hoverShow {
		x, y := float32(o.hoverX)*scale, float32(o.hoverY)*scale
		vector.StrokeRect(screen, x, y, scale, scale, 1, hoverLine, false)
	}
}
