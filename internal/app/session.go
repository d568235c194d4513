package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Ashboy64/disease-spread/internal/driver"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"
	"github.com/Ashboy64/disease-spread/internal/sink"

	"github.com/charmbracelet/log"
)

// Session is one run: the world, the driver that advances it, and where its
// count log is written.
type Session struct {
	World   *epidemic.World
	Driver  *driver.Driver
	LogPath string
	Log     *log.Logger
}

// NewLogger returns a timestamped stderr logger at the named level.
func NewLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}), nil
}

// OpenWorld loads the configured YAML file or builds a fresh world.
func OpenWorld(c *Config) (*epidemic.World, error) {
	if c.ConfigPath == "" {
		return NewSim(c.Sim, c.Map())
	}
	world, err := epidemic.LoadConfig(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	return world, nil
}

// Open builds the world and a driver that logs counts under
// <LogDir>/<start time>/log.csv. An empty LogDir disables the log.
func Open(c *Config, logger *log.Logger, now time.Time, opts ...driver.Option) (*Session, error) {
	world, err := OpenWorld(c)
	if err != nil {
		return nil, err
	}
	return Attach(world, c, logger, now, opts...)
}

// Attach is Open for a world that already exists.
func Attach(world *epidemic.World, c *Config, logger *log.Logger, now time.Time, opts ...driver.Option) (*Session, error) {
	s := &Session{World: world, Log: logger}

	if c.LogDir != "" {
		dir := sink.LogDir(c.LogDir, now)
		csv, err := sink.Create(dir)
		if err != nil {
			return nil, err
		}
		s.LogPath = filepath.Join(dir, sink.LogName)
		opts = append([]driver.Option{driver.WithSink(csv)}, opts...)
	}
	opts = append(opts, driver.WithLogger(logger))
	s.Driver = driver.New(world, opts...)

	rows, cols := world.Config().Dims()
	logger.Info("session opened", "rows", rows, "cols", cols, "seed", world.Config().Seed, "log", s.LogPath)
	return s, nil
}

// Save writes the world's configuration and current grid to path.
func (s *Session) Save(path string) error {
	var err error
	s.Driver.View(func(w *epidemic.World) { err = w.SaveConfig(path) })
	if err != nil {
		return err
	}
	s.Log.Info("saved config", "path", path)
	return nil
}

// Close stops the driver and flushes the log.
func (s *Session) Close() error {
	return s.Driver.Close()
}

// CountsRow formats counts as one log line.
func CountsRow(c epidemic.Counts) string {
	row := c.Row()
	fields := make([]string, len(row))
	for i, v := range row {
		fields[i] = strconv.Itoa(v)
	}
	return strings.Join(fields, ",")
}
