// Package plot charts a run's count log.
package plot

import (
	"errors"
	"fmt"
	"io"

	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrTooShort is returned for logs with fewer than two rows.
var ErrTooShort = errors.New("need at least two rows to plot")

// Options sizes the chart.
type Options struct {
	Width  int
	Height int
	Title  string
}

// DefaultOptions returns a 1024x512 chart.
func DefaultOptions() Options {
	return Options{Width: 1024, Height: 512, Title: "Population by state"}
}

// Series splits rows into one y-series per state, in state order.
func Series(rows []epidemic.Counts) [epidemic.NumStates][]float64 {
	var out [epidemic.NumStates][]float64
	for s := range out {
		out[s] = make([]float64, len(rows))
	}
	for i, c := range rows {
		for s := range out {
			out[s][i] = float64(c.Of(epidemic.State(s)))
		}
	}
	return out
}

// Render writes a PNG line chart of every state's count over time.
func Render(w io.Writer, rows []epidemic.Counts, opts Options) error {
	if len(rows) < 2 {
		return ErrTooShort
	}
	ticks := make([]float64, len(rows))
	for i := range ticks {
		ticks[i] = float64(i + 1)
	}

	series := Series(rows)
	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "tick",
			Range: &chart.ContinuousRange{Min: 1, Max: float64(len(rows))},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "people",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(rows[0].Total())},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
	}
	for s, ys := range series {
		state := epidemic.State(s)
		c := epidemic.StateColor(state)
		if state == epidemic.Susceptible {
			// The display color is too pale against a white background.
			c.R, c.G, c.B = 90, 120, 200
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    state.String(),
			XValues: ticks,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: drawing.Color{R: c.R, G: c.G, B: c.B, A: 255},
				StrokeWidth: 2,
			},
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
