package epidemic

import "image/color"

var statePalette = []color.RGBA{
	Susceptible: {R: 225, G: 225, B: 225, A: 255},
	Latent:      {R: 240, G: 200, B: 60, A: 255},
	Infected:    {R: 210, G: 45, B: 45, A: 255},
	Recovered:   {R: 70, G: 160, B: 90, A: 255},
	Dead:        {R: 20, G: 20, B: 24, A: 255},
}

// Palette maps states to display colors.
func (w *World) Palette() []color.RGBA { return statePalette }

// StateColor returns the display color of s.
func StateColor(s State) color.RGBA {
	if !s.Valid() {
		return color.RGBA{A: 255}
	}
	return statePalette[s]
}

// ResistanceField returns each cell's resistance in row-major order.
func (w *World) ResistanceField() []float64 {
	cells := w.state.Grid.Cells()
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = c.Resistance
	}
	return out
}
