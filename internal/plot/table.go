package plot

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/sobolvd/internal/sweep"
)

// Pick returns n indices spread evenly over [0, total), always including
// the first and last.
func Pick(total, n int) []int {
	if n >= total {
		out := make([]int, total)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if n <= 1 {
		return []int{0}
	}
	out := make([]int, n)
	for i := range out {
		out[i] = int(math.Round(float64(i) * float64(total-1) / float64(n-1)))
	}
	return out
}

// Table renders the mean share of every term at the temperatures indexed
// by cols, plus a sparkline of the term over the whole sweep.
func Table(sum *sweep.Summary, cols []int) string {
	headers := []string{"term"}
	for _, c := range cols {
		headers = append(headers, fmt.Sprintf("%gK", sum.Temperatures[c]))
	}
	headers = append(headers, "trend")

	terms := append(sum.Terms(), "other")
	series := make([][]float64, len(terms))
	for j := range terms {
		series[j] = make([]float64, len(sum.Temperatures))
		for ti := range sum.Temperatures {
			if j < len(sum.Mean[ti]) {
				series[j][ti] = sum.Mean[ti][j]
			} else {
				series[j][ti] = sum.Other[ti]
			}
		}
	}

	rows := make([][]string, len(terms))
	for j, name := range terms {
		row := []string{name}
		for _, c := range cols {
			row = append(row, formatShare(series[j][c]))
		}
		row = append(row, Sparkline(series[j], 20))
		rows[j] = row
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case col == 0:
				return LabelStyle
			case col == len(headers)-1:
				return CellStyle.Align(lipgloss.Left)
			}
			return CellStyle
		})

	return t.Render()
}

func formatShare(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v)
}
