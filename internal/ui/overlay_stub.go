//go:build !ebiten

package ui

import "github.com/Ashboy64/disease-spread/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Hovered reports no cell in headless builds.
func (o *Overlay) Hovered() (int, int, bool) { return 0, 0, false }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
