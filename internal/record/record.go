// Package record encodes the grid of every tick as a frame of an MJPEG video.
package record

import (
	"bytes"
	"fmt"
	"image/color"
	"image/jpeg"

	"github.com/Ashboy64/disease-spread/internal/core"
	"github.com/Ashboy64/disease-spread/internal/render"

	"github.com/icza/mjpeg"
)

// Options controls the video layout.
type Options struct {
	// Scale is the pixel size of one cell.
	Scale int
	FPS   int
	// Quality is the JPEG quality, 1 to 100.
	Quality int
	// Caption draws the tick number over each frame.
	Caption bool
}

// DefaultOptions renders 4px cells at 10 frames per second.
func DefaultOptions() Options {
	return Options{Scale: 4, FPS: 10, Quality: 90, Caption: true}
}

// Recorder writes one JPEG frame per tick into an AVI container.
type Recorder struct {
	aw      mjpeg.AviWriter
	size    core.Size
	palette []color.RGBA
	opts    Options
	buf     bytes.Buffer
	frames  int
}

// New creates the video at path for a grid of the given size.
func New(path string, size core.Size, palette []color.RGBA, opts Options) (*Recorder, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 10
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = jpeg.DefaultQuality
	}
	aw, err := mjpeg.New(path, int32(size.W*opts.Scale), int32(size.H*opts.Scale), int32(opts.FPS))
	if err != nil {
		return nil, fmt.Errorf("create video: %w", err)
	}
	return &Recorder{aw: aw, size: size, palette: palette, opts: opts}, nil
}

// Frame encodes cells as the next video frame.
func (r *Recorder) Frame(tick int, size core.Size, cells []uint8) error {
	if size != r.size {
		return fmt.Errorf("frame is %dx%d, video is %dx%d", size.W, size.H, r.size.W, r.size.H)
	}
	img := render.Image(size, cells, r.palette, r.opts.Scale)
	if r.opts.Caption {
		render.Caption(img, fmt.Sprintf("tick %d", tick))
	}
	r.buf.Reset()
	if err := jpeg.Encode(&r.buf, img, &jpeg.Options{Quality: r.opts.Quality}); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := r.aw.AddFrame(r.buf.Bytes()); err != nil {
		return fmt.Errorf("add frame: %w", err)
	}
	r.frames++
	return nil
}

// Frames reports how many frames have been written.
func (r *Recorder) Frames() int { return r.frames }

// Close finalises the AVI index.
func (r *Recorder) Close() error { return r.aw.Close() }
