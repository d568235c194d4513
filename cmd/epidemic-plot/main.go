// Command epidemic-plot charts a run's count log as a PNG.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Ashboy64/disease-spread/internal/plot"
	"github.com/Ashboy64/disease-spread/internal/sink"

	"github.com/charmbracelet/log"
)

func main() {
	dir := flag.String("dir", "", "run directory containing log.csv")
	out := flag.String("out", "", "PNG output path (default <dir>/plot.png)")
	opts := plot.DefaultOptions()
	flag.IntVar(&opts.Width, "width", opts.Width, "chart width in pixels")
	flag.IntVar(&opts.Height, "height", opts.Height, "chart height in pixels")
	flag.Parse()

	if *dir == "" {
		log.Fatal("-dir is required")
	}
	if *out == "" {
		*out = filepath.Join(*dir, "plot.png")
	}
	total, err := render(*dir, *out, opts)
	if err != nil {
		log.Fatal("plot failed", "dir", *dir, "err", err)
	}
	log.Info("wrote chart", "out", *out, "population", total)
}

// render checks that the population is conserved across the log before
// charting it.
func render(dir, out string, opts plot.Options) (int, error) {
	rows, err := sink.ReadLogDir(dir)
	if err != nil {
		return 0, err
	}
	total, err := sink.CheckConservation(rows)
	if err != nil {
		return 0, err
	}
	opts.Title = fmt.Sprintf("%s (population %d)", filepath.Base(dir), total)

	f, err := os.Create(out)
	if err != nil {
		return 0, err
	}
	if err := plot.Render(f, rows, opts); err != nil {
		f.Close()
		return 0, err
	}
	return total, f.Close()
}
