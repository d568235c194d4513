// Command epidemic-headless runs the simulation without a window, logging
// counts and optionally recording a video.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Ashboy64/disease-spread/internal/app"
	"github.com/Ashboy64/disease-spread/internal/driver"
	"github.com/Ashboy64/disease-spread/internal/record"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"

	"github.com/charmbracelet/log"
)

func main() {
	cfg := app.NewConfig()
	cfg.SavePath = ""
	cfg.Bind(flag.CommandLine)
	ticks := flag.Int("ticks", 500, "ticks to simulate")
	video := flag.String("video", "", "optional MJPEG/AVI output path")
	videoOpts := record.DefaultOptions()
	flag.IntVar(&videoOpts.Scale, "video-scale", videoOpts.Scale, "video pixels per cell")
	flag.IntVar(&videoOpts.FPS, "fps", videoOpts.FPS, "video frames per second")
	flag.Parse()

	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	if err := run(cfg, *ticks, *video, videoOpts, logger); err != nil {
		logger.Fatal("run failed", "err", err)
	}
}

func run(cfg *app.Config, ticks int, video string, videoOpts record.Options, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	world, err := app.OpenWorld(cfg)
	if err != nil {
		return err
	}
	var (
		opts []driver.Option
		rec  *record.Recorder
	)
	if video != "" {
		rec, err = record.New(video, world.Size(), world.Palette(), videoOpts)
		if err != nil {
			return err
		}
		opts = append(opts, driver.WithFrames(rec))
	}
	session, err := app.Attach(world, cfg, logger, time.Now(), opts...)
	if err != nil {
		if rec != nil {
			// The driver never owned the recorder, so drop the empty video here.
			err = errors.Join(err, rec.Close(), os.Remove(video))
		}
		return err
	}

	start := time.Now()
	runErr := session.Driver.Run(ctx, ticks)
	if errors.Is(runErr, context.Canceled) {
		logger.Warn("interrupted")
		runErr = nil
	}
	if cfg.SavePath != "" {
		if err := session.Save(cfg.SavePath); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}
	if err := session.Close(); err != nil {
		runErr = errors.Join(runErr, err)
	}

	tick, counts := session.Driver.Counts()
	logger.Info("finished", "ticks", tick, "elapsed", time.Since(start).Round(time.Millisecond), "log", session.LogPath)
	fmt.Println(summary(tick, counts))
	return runErr
}

func summary(tick int, c epidemic.Counts) string {
	return fmt.Sprintf("tick %d: susceptible=%d latent=%d infected=%d recovered=%d dead=%d",
		tick, c.Susceptible, c.Latent, c.Infected, c.Recovered, c.Dead)
}
