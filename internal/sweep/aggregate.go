package sweep

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/san-kum/sobolvd/internal/experiment"
	"github.com/san-kum/sobolvd/internal/sobol"
)

// Summary is the aggregated form of a sweep. Mean and StdDev rows follow
// Temperatures; columns follow Labels.All().
type Summary struct {
	Temperatures []float64         `json:"temperatures"`
	Labels       experiment.Labels `json:"labels"`
	Mean         [][]float64       `json:"mean"`
	StdDev       [][]float64       `json:"std_dev"`
	Other        []float64         `json:"other"`
	Runs         int               `json:"runs"`
}

// Terms returns the column labels of Mean and StdDev.
func (s *Summary) Terms() []string { return s.Labels.All() }

// Split slices a Mean or StdDev row into first, second and third order terms.
func (s *Summary) Split(row []float64) (first, second, third []float64) {
	a := len(s.Labels.First)
	b := a + len(s.Labels.Second)
	return row[:a], row[a:b], row[b:]
}

// Aggregate averages every term across runs at each temperature, clamps the
// mean at zero, and derives the unexplained share max(0, 1 - sum).
func Aggregate(res *Result) (*Summary, error) {
	if len(res.Temperatures) == 0 {
		return nil, ErrEmptyResult
	}
	if len(res.Runs) != len(res.Temperatures) {
		return nil, fmt.Errorf("%w: %d temperatures, %d run sets", ErrEmptyResult, len(res.Temperatures), len(res.Runs))
	}

	sum := &Summary{
		Temperatures: append([]float64(nil), res.Temperatures...),
		Labels:       res.Labels,
		Mean:         make([][]float64, len(res.Temperatures)),
		StdDev:       make([][]float64, len(res.Temperatures)),
		Other:        make([]float64, len(res.Temperatures)),
	}

	for ti, runs := range res.Runs {
		if len(runs) == 0 {
			return nil, fmt.Errorf("%w: temperature %g", ErrEmptyResult, res.Temperatures[ti])
		}
		if ti == 0 {
			sum.Runs = len(runs)
		}

		rows := make([][]float64, len(runs))
		for r, est := range runs {
			rows[r] = flatten(est)
			if len(rows[r]) != len(rows[0]) {
				return nil, fmt.Errorf("sweep: run %d at %g has %d terms, want %d", r, res.Temperatures[ti], len(rows[r]), len(rows[0]))
			}
		}

		mean := make([]float64, len(rows[0]))
		sd := make([]float64, len(rows[0]))
		column := make(stats.Float64Data, len(rows))
		for j := range mean {
			for r, row := range rows {
				column[r] = row[j]
			}
			m, err := stats.Mean(column)
			if err != nil {
				return nil, err
			}
			s, err := stats.StandardDeviation(column)
			if err != nil {
				return nil, err
			}
			mean[j] = clamp(m)
			sd[j] = s
		}

		total, err := stats.Sum(mean)
		if err != nil {
			return nil, err
		}
		sum.Mean[ti] = mean
		sum.StdDev[ti] = sd
		sum.Other[ti] = clamp(1 - total)
	}

	if len(sum.Labels.All()) != len(sum.Mean[0]) {
		sum.Labels = defaultLabels(res.Runs[0][0])
	}
	return sum, nil
}

// clamp floors x at zero and leaves NaN untouched.
func clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

func flatten(est *sobol.Estimate) []float64 {
	out := make([]float64, 0, len(est.FirstOrder)+len(est.SecondOrder)+len(est.ThirdOrder))
	out = append(out, est.FirstOrder...)
	out = append(out, est.SecondOrder...)
	return append(out, est.ThirdOrder...)
}

func defaultLabels(est *sobol.Estimate) experiment.Labels {
	l := experiment.Labels{
		First:  make([]string, len(est.FirstOrder)),
		Second: make([]string, len(est.SecondOrder)),
		Third:  make([]string, len(est.ThirdOrder)),
	}
	for i := range l.First {
		l.First[i] = fmt.Sprintf("x%d", i)
	}
	for i := range l.Second {
		l.Second[i] = fmt.Sprintf("pair%d", i)
	}
	for i := range l.Third {
		l.Third[i] = fmt.Sprintf("triple%d", i)
	}
	return l
}

// NaNs reports how many mean cells are not finite.
func (s *Summary) NaNs() int {
	n := 0
	for _, row := range s.Mean {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				n++
			}
		}
	}
	return n
}

// Cumulative returns the stacked share bands in reporting order: first
// order terms, pairs, the triple, then "other". bands[j][ti] is the running
// total up to and including term j at temperature ti. Non-finite means
// contribute nothing.
func (s *Summary) Cumulative() (names []string, bands [][]float64) {
	names = append(s.Terms(), "other")
	bands = make([][]float64, len(names))
	for j := range bands {
		bands[j] = make([]float64, len(s.Temperatures))
	}
	for ti := range s.Temperatures {
		row := append(append([]float64(nil), s.Mean[ti]...), s.Other[ti])
		acc := 0.0
		for j, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				acc += v
			}
			bands[j][ti] = acc
		}
	}
	return names, bands
}
