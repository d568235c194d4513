//go:build ebiten

// Command epidemic opens the interactive simulation window.
package main

import (
	"errors"
	"flag"
	"time"

	"github.com/Ashboy64/disease-spread/internal/app"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	session, err := app.Open(cfg, logger, time.Now())
	if err != nil {
		logger.Fatal("open session", "err", err)
	}

	game := app.New(session, cfg)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowTitle("disease-spread: epidemic")
	ebiten.SetWindowSize(w, h)

	runErr := ebiten.RunGame(game)
	if err := session.Close(); err != nil {
		logger.Error("close session", "err", err)
	}
	if runErr != nil && !errors.Is(runErr, ebiten.Termination) {
		logger.Fatal("run", "err", runErr)
	}
}
