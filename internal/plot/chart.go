package plot

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sobolvd/internal/sweep"
)

type Options struct {
	Width   int
	Height  int
	Caption string
}

func DefaultOptions() Options {
	return Options{Width: 80, Height: 15}
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue, asciigraph.Orange, asciigraph.Green, asciigraph.Red,
	asciigraph.Purple, asciigraph.Brown, asciigraph.Pink, asciigraph.Olive,
	asciigraph.Cyan, asciigraph.Navy,
}

// CumulativeChart plots the upper edge of every stacked share band. The
// area between consecutive lines is that term's share.
func CumulativeChart(sum *sweep.Summary, opts Options) (string, error) {
	if len(sum.Temperatures) == 0 {
		return "", fmt.Errorf("plot: summary has no temperatures")
	}
	names, bands := sum.Cumulative()

	// asciigraph needs at least two points to draw a line.
	if len(sum.Temperatures) == 1 {
		for j := range bands {
			bands[j] = append(bands[j], bands[j][0])
		}
	}

	colors := make([]asciigraph.AnsiColor, len(bands))
	for j := range colors {
		colors[j] = seriesColors[j%len(seriesColors)]
	}
	colors[len(colors)-1] = asciigraph.Gray

	caption := opts.Caption
	if caption == "" {
		first, last := sum.Temperatures[0], sum.Temperatures[len(sum.Temperatures)-1]
		caption = fmt.Sprintf("cumulative variance share, T = %g..%g K", first, last)
	}

	upper := 1.0
	for _, v := range bands[len(bands)-1] {
		if v > upper {
			upper = v
		}
	}

	return asciigraph.PlotMany(bands,
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(upper),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption(caption),
	), nil
}
