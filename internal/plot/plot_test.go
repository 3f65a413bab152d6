package plot

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/sobolvd/internal/experiment"
	"github.com/san-kum/sobolvd/internal/sweep"
)

func testSummary() *sweep.Summary {
	return &sweep.Summary{
		Temperatures: []float64{1, 2, 3},
		Labels: experiment.Labels{
			First:  []string{"TCRE", "T2010"},
			Second: []string{"TCRE x T2010"},
			Third:  []string{},
		},
		Mean: [][]float64{
			{0.6, 0.3, 0.05},
			{0.7, 0.2, 0.05},
			{0.8, math.NaN(), 0.05},
		},
		StdDev: [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		Other:  []float64{0.05, 0.05, 0.15},
		Runs:   2,
	}
}

func TestPick(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{50, 5, []int{0, 12, 25, 37, 49}},
		{3, 5, []int{0, 1, 2}},
		{10, 1, []int{0}},
		{10, 2, []int{0, 9}},
	}
	for _, tt := range tests {
		got := Pick(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Errorf("Pick(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Pick(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
				break
			}
		}
	}
}

func TestTable(t *testing.T) {
	out := Table(testSummary(), []int{0, 2})

	for _, want := range []string{"term", "1K", "3K", "TCRE x T2010", "other", "0.600", "0.800", "n/a", "0.150"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2K") {
		t.Error("table shows an unselected temperature")
	}
}

func TestCumulativeChart(t *testing.T) {
	out, err := CumulativeChart(testSummary(), Options{Width: 40, Height: 8})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"TCRE", "T2010", "TCRE x T2010", "other", "cumulative variance share"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q", want)
		}
	}
}

func TestCumulativeChartSinglePoint(t *testing.T) {
	sum := testSummary()
	sum.Temperatures = sum.Temperatures[:1]
	sum.Mean = sum.Mean[:1]
	sum.Other = sum.Other[:1]

	if _, err := CumulativeChart(sum, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if _, err := CumulativeChart(&sweep.Summary{}, DefaultOptions()); err == nil {
		t.Error("expected error for empty summary")
	}
}
