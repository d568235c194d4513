//go:build ebiten

package app

import (
	"errors"

	"github.com/Ashboy64/disease-spread/internal/core"
	"github.com/Ashboy64/disease-spread/internal/driver"
	"github.com/Ashboy64/disease-spread/internal/render"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
	"github.com/Ashboy64/disease-spread/internal/ui"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a session to the ebiten.Game interface. Everything runs on the
// ebiten update goroutine, so HUD parameter changes never race a tick.
type Game struct {
	session *Session
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.FixedStep

	scale    int
	savePath string
}

// New constructs a Game for the provided session.
func New(s *Session, c *Config) *Game {
	size := s.World.Size()
	return &Game{
		session:  s,
		painter:  render.NewGridPainter(size.W, size.H, simPalette(s.World)),
		overlay:  ui.NewOverlay(s.World, c.Scale),
		hud:      ui.NewHUD(s.World, c.HUDWidth),
		pacer:    core.NewFixedStep(c.TPS),
		scale:    max(c.Scale, 1),
		savePath: c.SavePath,
	}
}

// Update handles input and advances the simulation at the configured rate.
func (g *Game) Update() error {
	d, log := g.session.Driver, g.session.Log
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if d.Paused() {
			d.Resume()
		} else {
			d.Pause()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if _, err := d.StepOnce(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := d.Reset(0); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.session.Save(g.savePath); err != nil {
			log.Error("save failed", "err", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		_, counts := d.Counts()
		if err := clipboard.WriteAll(CountsRow(counts)); err != nil {
			log.Warn("copy failed", "err", err)
		} else {
			log.Info("copied counts", "row", CountsRow(counts))
		}
	}

	g.overlay.Update()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if x, y, ok := g.overlay.Hovered(); ok {
			err := d.Edit(func(w *epidemic.World) error {
				cycleCell(w, x, y)
				return nil
			})
			if errors.Is(err, driver.ErrRunning) {
				log.Debug("pause to edit cells")
			}
		}
	}

	tick, counts := d.Counts()
	size := g.session.World.Size()
	g.hud.Update(size.W*g.scale, ui.CountLines(tick, counts, d.Paused()))

	if !d.Paused() && g.pacer.ShouldStep() {
		if _, err := d.StepOnce(); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the grid, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.session.Driver.View(func(w *epidemic.World) {
		g.painter.Blit(screen, w.Cells(), g.scale)
	})
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.session.World.Size().W*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.World.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
