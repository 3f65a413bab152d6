package sweep

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/sobolvd/internal/experiment"
	"github.com/san-kum/sobolvd/internal/sobol"
)

func est(first, second, third []float64) *sobol.Estimate {
	return &sobol.Estimate{FirstOrder: first, SecondOrder: second, ThirdOrder: third}
}

func TestAggregateMeanClampOther(t *testing.T) {
	res := &Result{
		Temperatures: []float64{1, 2},
		Labels: experiment.Labels{
			First:  []string{"a", "b"},
			Second: []string{"a x b"},
			Third:  []string{},
		},
		Runs: [][]*sobol.Estimate{
			{
				est([]float64{0.5, 0.2}, []float64{-0.02}, []float64{}),
				est([]float64{0.7, 0.2}, []float64{-0.04}, []float64{}),
			},
			{
				est([]float64{0.9, 0.3}, []float64{0.1}, []float64{}),
				est([]float64{0.9, 0.3}, []float64{0.1}, []float64{}),
			},
		},
	}

	sum, err := Aggregate(res)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean first", sum.Mean[0][0], 0.6},
		{"mean second", sum.Mean[0][1], 0.2},
		{"clamped pair", sum.Mean[0][2], 0},
		{"std dev", sum.StdDev[0][0], 0.1},
		{"std dev of negative pair", sum.StdDev[0][2], 0.01},
		{"other", sum.Other[0], 0.2},
		{"other clamped", sum.Other[1], 0},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if sum.Runs != 2 {
		t.Errorf("Runs = %d, want 2", sum.Runs)
	}

	first, second, third := sum.Split(sum.Mean[1])
	if len(first) != 2 || len(second) != 1 || len(third) != 0 {
		t.Errorf("Split lengths = %d, %d, %d", len(first), len(second), len(third))
	}
}

func TestAggregateKeepsNaN(t *testing.T) {
	nan := math.NaN()
	res := &Result{
		Temperatures: []float64{1},
		Runs: [][]*sobol.Estimate{
			{est([]float64{nan}, []float64{}, []float64{})},
		},
	}
	sum, err := Aggregate(res)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(sum.Mean[0][0]) {
		t.Errorf("got %v, want NaN", sum.Mean[0][0])
	}
	if sum.NaNs() != 1 {
		t.Errorf("NaNs() = %d, want 1", sum.NaNs())
	}
	if sum.Labels.First[0] != "x0" {
		t.Errorf("default label = %q", sum.Labels.First[0])
	}
}

func TestAggregateErrors(t *testing.T) {
	tests := []struct {
		name string
		res  *Result
	}{
		{"no temperatures", &Result{}},
		{"missing run set", &Result{Temperatures: []float64{1, 2}, Runs: [][]*sobol.Estimate{{}}}},
		{"empty run set", &Result{Temperatures: []float64{1}, Runs: [][]*sobol.Estimate{{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Aggregate(tt.res); !errors.Is(err, ErrEmptyResult) {
				t.Errorf("got %v, want ErrEmptyResult", err)
			}
		})
	}

	ragged := &Result{
		Temperatures: []float64{1},
		Runs: [][]*sobol.Estimate{{
			est([]float64{0.1, 0.2}, nil, nil),
			est([]float64{0.1}, nil, nil),
		}},
	}
	if _, err := Aggregate(ragged); err == nil {
		t.Error("expected error for runs with different term counts")
	}
}

func TestCumulative(t *testing.T) {
	sum := &Summary{
		Temperatures: []float64{1, 2},
		Labels: experiment.Labels{
			First:  []string{"a", "b"},
			Second: []string{"a x b"},
			Third:  []string{},
		},
		Mean:  [][]float64{{0.5, 0.25, 0.125}, {0.5, math.NaN(), 0}},
		Other: []float64{0.125, 0.5},
	}

	names, bands := sum.Cumulative()
	wantNames := []string{"a", "b", "a x b", "other"}
	if len(names) != len(wantNames) {
		t.Fatalf("got names %v", names)
	}
	for i := range names {
		if names[i] != wantNames[i] {
			t.Errorf("name %d = %q, want %q", i, names[i], wantNames[i])
		}
	}

	want := [][]float64{{0.5, 0.5}, {0.75, 0.5}, {0.875, 0.5}, {1, 1}}
	for j := range want {
		for ti := range want[j] {
			if bands[j][ti] != want[j][ti] {
				t.Errorf("band %d at %d = %v, want %v", j, ti, bands[j][ti], want[j][ti])
			}
		}
	}
}
