package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/mechsolver/internal/calc"
)

var ErrNoSeries = errors.New("report: nothing to plot")

type PlotOptions struct {
	Width   int
	Height  int
	Caption string
}

// Plot draws a series output against its sample index.
func Plot(res *calc.Result, name string, opts PlotOptions) (string, error) {
	y, ok := res.Series(name)
	if !ok || len(y) == 0 {
		return "", fmt.Errorf("%w: no series %q", ErrNoSeries, name)
	}
	if opts.Caption == "" {
		opts.Caption = name
	}
	return draw(y, opts), nil
}

// PlotXY draws y against x. When x increases monotonically, y is resampled
// onto an even x grid so the horizontal axis is to scale; otherwise it
// falls back to index order.
func PlotXY(res *calc.Result, xName, yName string, opts PlotOptions) (string, error) {
	x, okX := res.Series(xName)
	y, okY := res.Series(yName)
	if !okX || !okY || len(y) == 0 {
		return "", fmt.Errorf("%w: need series %q and %q", ErrNoSeries, xName, yName)
	}
	if opts.Caption == "" {
		opts.Caption = fmt.Sprintf("%s vs %s", yName, xName)
	}
	n := min(len(x), len(y))
	x, y = x[:n], y[:n]
	if n < 2 || !sort.Float64sAreSorted(x) || x[0] == x[n-1] {
		return draw(y, opts), nil
	}

	cols := opts.Width
	if cols <= 1 {
		cols = n
	}
	return draw(resample(x, y, cols), opts), nil
}

func draw(y []float64, opts PlotOptions) string {
	var o []asciigraph.Option
	if opts.Height > 0 {
		o = append(o, asciigraph.Height(opts.Height))
	}
	if opts.Width > 0 {
		o = append(o, asciigraph.Width(opts.Width))
	}
	if opts.Caption != "" {
		o = append(o, asciigraph.Caption(opts.Caption))
	}
	return asciigraph.Plot(y, o...)
}

// resample linearly interpolates y(x) at n evenly spaced x values.
func resample(x, y []float64, n int) []float64 {
	grid := make([]float64, n)
	floats.Span(grid, x[0], x[len(x)-1])

	out := make([]float64, n)
	j := 0
	for i, g := range grid {
		for j < len(x)-2 && x[j+1] < g {
			j++
		}
		x0, x1 := x[j], x[j+1]
		if x1 == x0 {
			out[i] = y[j]
			continue
		}
		t := (g - x0) / (x1 - x0)
		out[i] = y[j] + t*(y[j+1]-y[j])
	}
	return out
}
