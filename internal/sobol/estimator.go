package sobol

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Estimator computes Sobol-Jansen estimators against a fixed pair of fully
// resampled outputs yA and yB. The mean and total variance are taken from yA
// alone and computed once.
type Estimator struct {
	yA, yB []float64
	n      float64
	f0sq   float64
	vy     float64
}

// NewEstimator prepares the baseline statistics for yA and yB.
func NewEstimator(yA, yB []float64) (*Estimator, error) {
	if len(yA) == 0 {
		return nil, fmt.Errorf("%w: empty output vector", ErrOutputLength)
	}
	if len(yB) != len(yA) {
		return nil, fmt.Errorf("%w: yA has %d values, yB has %d", ErrOutputLength, len(yA), len(yB))
	}
	n := float64(len(yA))
	f0 := stat.Mean(yA, nil)
	f0sq := f0 * f0
	return &Estimator{
		yA:   yA,
		yB:   yB,
		n:    n,
		f0sq: f0sq,
		vy:   floats.Dot(yA, yA)/n - f0sq,
	}, nil
}

// Variance returns the total output variance VY.
func (e *Estimator) Variance() float64 { return e.vy }

// FirstOrder estimates the variance share of the columns taken from A in the
// hybrid matrix that produced yH. A zero variance yields a non-finite value.
func (e *Estimator) FirstOrder(yH []float64) float64 {
	return (floats.Dot(e.yA, yH)/e.n - e.f0sq) / e.vy
}

// TotalEffect estimates the total-effect share of the same columns.
func (e *Estimator) TotalEffect(yH []float64) float64 {
	return 1 - (floats.Dot(e.yB, yH)/e.n-e.f0sq)/e.vy
}

// Estimate returns the first-order share and, when withTotal is set, the
// total-effect share. total is NaN when not requested.
func (e *Estimator) Estimate(yH []float64, withTotal bool) (first, total float64, err error) {
	if len(yH) != len(e.yA) {
		return 0, 0, fmt.Errorf("%w: hybrid output has %d values, want %d", ErrOutputLength, len(yH), len(e.yA))
	}
	first = e.FirstOrder(yH)
	total = math.NaN()
	if withTotal {
		total = e.TotalEffect(yH)
	}
	return first, total, nil
}
