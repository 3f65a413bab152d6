package plot

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Right)

	BorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444466"))

	ShareHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	ShareMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	ShareLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// Sparkline renders values on a fixed 0..1 scale so rows are comparable.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if math.IsNaN(v) {
			result.WriteRune(' ')
			continue
		}
		idx := int(v * float64(len(chars)-1))
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx < 0 {
			idx = 0
		}
		result.WriteString(shareStyle(v).Render(string(chars[idx])))
	}

	return result.String()
}

func shareStyle(v float64) lipgloss.Style {
	switch {
	case v > 0.5:
		return ShareHigh
	case v > 0.1:
		return ShareMid
	default:
		return ShareLow
	}
}
