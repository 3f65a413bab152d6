package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/sobolvd/internal/sweep"
)

const (
	DefaultSVGWidth  = 720
	DefaultSVGHeight = 360
)

var bandColors = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#bcbd22", "#17becf", "#393b79",
}

// SVG renders the cumulative share bands as filled areas over temperature,
// with a legend on the right.
func SVG(w io.Writer, sum *sweep.Summary, width, height int) error {
	if len(sum.Temperatures) == 0 {
		return ErrNoData
	}
	names, bands := sum.Cumulative()

	const legendWidth = 160
	plotW := float64(width - legendWidth)
	plotH := float64(height)

	minX, maxX := sum.Temperatures[0], sum.Temperatures[len(sum.Temperatures)-1]
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	maxY := 1.0
	for _, v := range bands[len(bands)-1] {
		if v > maxY {
			maxY = v
		}
	}

	x := func(t float64) float64 { return (t - minX) / rangeX * plotW }
	y := func(v float64) float64 { return plotH - v/maxY*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	lower := make([]float64, len(sum.Temperatures))
	for j, upper := range bands {
		color := bandColors[j%len(bandColors)]
		if names[j] == "other" {
			color = "#bbbbbb"
		}

		sb.WriteString(fmt.Sprintf(`<path fill="%s" fill-opacity="0.8" stroke="none" d="M`, color))
		for i, t := range sum.Temperatures {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x(t), y(upper[i])))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x(t), y(upper[i])))
			}
		}
		for i := len(sum.Temperatures) - 1; i >= 0; i-- {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x(sum.Temperatures[i]), y(lower[i])))
		}
		sb.WriteString(" Z\"/>\n")

		ly := 20 + j*18
		sb.WriteString(fmt.Sprintf(`<rect x="%.0f" y="%d" width="12" height="12" fill="%s"/>
<text x="%.0f" y="%d" font-family="sans-serif" font-size="12">%s</text>
`, plotW+12, ly, color, plotW+30, ly+10, escape(names[j])))

		lower = upper
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
