// Package driver runs an epidemic world tick by tick and fans each tick's
// counts out to sinks. It is the only place that mutates the world once a run
// has started, so front ends pause, edit and read through it.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Ashboy64/disease-spread/internal/core"
	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"

	"github.com/charmbracelet/log"
)

var (
	// ErrClosed is returned by operations on a closed driver.
	ErrClosed = errors.New("driver closed")
	// ErrRunning is returned by Edit when the driver is not paused.
	ErrRunning = errors.New("driver is running; pause before editing")
)

// Sink receives the aggregate counts of every tick.
type Sink interface {
	Record(tick int, c epidemic.Counts) error
	Close() error
}

// FrameSink receives the state buffer of every tick. cells is only valid for
// the duration of the call.
type FrameSink interface {
	Frame(tick int, size core.Size, cells []uint8) error
	Close() error
}

// Option configures a Driver.
type Option func(*Driver)

// WithSink adds a counts sink.
func WithSink(s Sink) Option {
	return func(d *Driver) {
		if s != nil {
			d.sinks = append(d.sinks, s)
		}
	}
}

// WithFrames adds a frame sink.
func WithFrames(f FrameSink) Option {
	return func(d *Driver) {
		if f != nil {
			d.frames = append(d.frames, f)
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithPace limits Run to one tick per interval. Zero runs unthrottled.
func WithPace(interval time.Duration) Option {
	return func(d *Driver) { d.pace = interval }
}

// Driver owns a world and advances it.
type Driver struct {
	mu     sync.Mutex
	world  *epidemic.World
	sinks  []Sink
	frames []FrameSink
	log    *log.Logger
	pace   time.Duration

	paused bool
	// wake is closed when a pause ends or the driver closes.
	wake   chan struct{}
	closed bool

	closeOnce sync.Once
	closeErr  error
}

// New wraps world. The driver starts running (not paused).
func New(world *epidemic.World, opts ...Option) *Driver {
	d := &Driver{world: world}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = log.New(io.Discard)
	}
	return d
}

// Run advances the world until n ticks have run, ctx is cancelled or the
// driver is closed. n <= 0 runs until cancelled or closed. Cancellation and
// pauses only take effect between ticks.
func (d *Driver) Run(ctx context.Context, n int) error {
	var tick <-chan time.Time
	if d.pace > 0 {
		ticker := time.NewTicker(d.pace)
		defer ticker.Stop()
		tick = ticker.C
	}

	for done := 0; n <= 0 || done < n; {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.mu.Lock()
		closed, paused, wake := d.closed, d.paused, d.wake
		d.mu.Unlock()
		if closed {
			return ErrClosed
		}
		if paused {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-wake:
			}
			continue
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}

		d.mu.Lock()
		if d.paused || d.closed {
			d.mu.Unlock()
			continue
		}
		_, err := d.advanceLocked()
		d.mu.Unlock()
		if err != nil {
			return err
		}
		done++
	}
	return nil
}

// StepOnce advances exactly one tick, paused or not.
func (d *Driver) StepOnce() (epidemic.Counts, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return epidemic.Counts{}, ErrClosed
	}
	return d.advanceLocked()
}

func (d *Driver) advanceLocked() (epidemic.Counts, error) {
	d.world.Step()
	tick, counts := d.world.Tick(), d.world.Counts()
	for _, s := range d.sinks {
		if err := s.Record(tick, counts); err != nil {
			return counts, fmt.Errorf("record tick %d: %w", tick, err)
		}
	}
	if len(d.frames) > 0 {
		size, cells := d.world.Size(), d.world.Cells()
		for _, f := range d.frames {
			if err := f.Frame(tick, size, cells); err != nil {
				return counts, fmt.Errorf("frame %d: %w", tick, err)
			}
		}
	}
	d.log.Debug("tick", "tick", tick, "infected", counts.Infected, "dead", counts.Dead)
	return counts, nil
}

// Pause stops Run from advancing after the current tick.
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.paused || d.closed {
		return
	}
	d.paused = true
	d.wake = make(chan struct{})
	d.log.Info("paused", "tick", d.world.Tick())
}

// Resume lets Run continue.
func (d *Driver) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.paused {
		return
	}
	d.paused = false
	close(d.wake)
	d.wake = nil
	d.log.Info("resumed", "tick", d.world.Tick())
}

// Paused reports whether the driver is paused.
func (d *Driver) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

// Edit runs fn against the world. Edits are only allowed while paused.
func (d *Driver) Edit(fn func(w *epidemic.World) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if !d.paused {
		return ErrRunning
	}
	return fn(d.world)
}

// View runs fn against the world between ticks. fn must not keep references
// to the world's buffers.
func (d *Driver) View(fn func(w *epidemic.World)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.world)
}

// Counts returns the counts of the latest tick.
func (d *Driver) Counts() (tick int, c epidemic.Counts) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.world.Tick(), d.world.Counts()
}

// Reset rebuilds the world with seed; zero reuses the configured seed.
func (d *Driver) Reset(seed int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.world.Reset(seed)
	d.log.Info("reset", "seed", seed)
	return nil
}

// Close stops Run and closes every sink exactly once.
func (d *Driver) Close() error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.closed = true
		if d.paused {
			d.paused = false
			close(d.wake)
			d.wake = nil
		}
		var errs []error
		for _, s := range d.sinks {
			errs = append(errs, s.Close())
		}
		for _, f := range d.frames {
			errs = append(errs, f.Close())
		}
		d.closeErr = errors.Join(errs...)
		d.log.Info("closed", "tick", d.world.Tick())
	})
	return d.closeErr
}
