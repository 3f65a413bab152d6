package sobol

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Sampler produces n independent draws of one parameter.
type Sampler interface {
	Sample(n int) []float64
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func(n int) []float64

func (f SamplerFunc) Sample(n int) []float64 { return f(n) }

// Evaluator maps a design matrix (one row per sample, one column per
// parameter) at a fixed condition t to one output per row. Implementations
// must accept arbitrary real values in every column.
type Evaluator interface {
	Evaluate(t float64, x mat.Matrix) []float64
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(t float64, x mat.Matrix) []float64

func (f EvaluatorFunc) Evaluate(t float64, x mat.Matrix) []float64 { return f(t, x) }

// Pair names an unordered pair of parameter indices.
type Pair [2]int

// Key returns the pair with its indices in ascending order.
func (p Pair) Key() Pair {
	if p[0] > p[1] {
		return Pair{p[1], p[0]}
	}
	return p
}

func (p Pair) String() string { return fmt.Sprintf("(%d,%d)", p[0], p[1]) }

// Triple names three parameter indices for the third-order term.
type Triple [3]int

// Pairs returns the three unordered pairs contained in the triple.
func (t Triple) Pairs() [3]Pair {
	return [3]Pair{
		Pair{t[0], t[1]}.Key(),
		Pair{t[0], t[2]}.Key(),
		Pair{t[1], t[2]}.Key(),
	}
}

func (t Triple) String() string { return fmt.Sprintf("(%d,%d,%d)", t[0], t[1], t[2]) }

// Indices selects the interaction terms to estimate. A nil Triple skips the
// third-order computation entirely.
type Indices struct {
	Pairs  []Pair
	Triple *Triple
}

// Validate checks every index against a parameter count k.
func (idx Indices) Validate(k int) error {
	if k < 1 {
		return ErrNoParameters
	}
	seen := make(map[Pair]bool, len(idx.Pairs))
	for p, pair := range idx.Pairs {
		for _, i := range pair {
			if i < 0 || i >= k {
				return fmt.Errorf("%w: pair %d %s with %d parameters", ErrIndexOutOfRange, p, pair, k)
			}
		}
		if pair[0] == pair[1] {
			return fmt.Errorf("%w: pair %d %s", ErrDuplicateIndex, p, pair)
		}
		if seen[pair.Key()] {
			return fmt.Errorf("%w: %s", ErrDuplicatePair, pair)
		}
		seen[pair.Key()] = true
	}

	if idx.Triple == nil {
		return nil
	}
	t := *idx.Triple
	for _, i := range t {
		if i < 0 || i >= k {
			return fmt.Errorf("%w: triple %s with %d parameters", ErrIndexOutOfRange, t, k)
		}
	}
	if t[0] == t[1] || t[0] == t[2] || t[1] == t[2] {
		return fmt.Errorf("%w: triple %s", ErrDuplicateIndex, t)
	}
	for _, pair := range t.Pairs() {
		if !seen[pair] {
			return fmt.Errorf("%w: triple %s is missing pair %s", ErrTriplePairs, t, pair)
		}
	}
	return nil
}

// Estimate holds the relative variance shares for one condition value.
// Values are not clamped and may be negative or non-finite.
type Estimate struct {
	FirstOrder  []float64 `json:"first_order"`
	SecondOrder []float64 `json:"second_order"`
	ThirdOrder  []float64 `json:"third_order"`
}
