// Command epidemic-server runs the simulation headlessly and serves its
// counts over HTTP and websockets.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ashboy64/disease-spread/internal/app"
	"github.com/Ashboy64/disease-spread/internal/driver"
	"github.com/Ashboy64/disease-spread/internal/stream"

	"github.com/charmbracelet/log"
)

func main() {
	cfg, err := loadServerConfig(flag.CommandLine, os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger = logger.WithPrefix("server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := stream.NewHub(logger)
	appCfg := app.NewConfig()
	appCfg.ConfigPath = cfg.ConfigPath
	appCfg.LogDir = cfg.LogDir
	appCfg.Seed = cfg.Seed
	appCfg.Set = cfg.Set
	session, err := app.Open(appCfg, logger, time.Now(),
		driver.WithSink(hub),
		driver.WithPace(time.Second/time.Duration(cfg.TPS)),
	)
	if err != nil {
		logger.Fatal("open session", "err", err)
	}
	if cfg.StartPaused {
		session.Driver.Pause()
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewServer(session.Driver, hub, logger).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("listening", "addr", cfg.Addr, "tps", cfg.TPS)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", "err", err)
			stop()
		}
	}()

	if err := session.Driver.Run(ctx, 0); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("simulation stopped", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	if err := session.Close(); err != nil {
		logger.Error("close session", "err", err)
	}
	logger.Info("stopped", "log", session.LogPath)
}
