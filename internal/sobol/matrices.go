package sobol

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Matrices is the full set of design matrices for one analysis.
// C has one entry per parameter, D one per requested pair, and E is nil
// unless a third-order triple was requested.
type Matrices struct {
	A, B *mat.Dense
	C    []*mat.Dense
	D    []*mat.Dense
	E    *mat.Dense

	pairs  []Pair
	triple *Triple
}

// Outputs holds the model outputs for every design matrix. YE is nil when no
// third-order triple was requested.
type Outputs struct {
	YA, YB []float64
	YC     [][]float64
	YD     [][]float64
	YE     []float64
}

// BuildMatrices draws 2n values from each sampler in a single call, splits
// them into the base matrices A (first n) and B (last n), and assembles the
// hybrid matrices requested by idx.
func BuildMatrices(n int, samplers []Sampler, idx Indices) (*Matrices, error) {
	a, b, err := baseMatrices(n, samplers, idx)
	if err != nil {
		return nil, err
	}

	k := len(samplers)
	m := &Matrices{
		A:      a,
		B:      b,
		C:      make([]*mat.Dense, k),
		D:      make([]*mat.Dense, len(idx.Pairs)),
		pairs:  idx.Pairs,
		triple: idx.Triple,
	}
	for i := range m.C {
		m.C[i] = hybrid(a, b, i)
	}
	for p, pair := range idx.Pairs {
		m.D[p] = hybrid(a, b, pair[0], pair[1])
	}
	if idx.Triple != nil {
		t := *idx.Triple
		m.E = hybrid(a, b, t[0], t[1], t[2])
	}
	return m, nil
}

func baseMatrices(n int, samplers []Sampler, idx Indices) (a, b *mat.Dense, err error) {
	if n < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrSampleCount, n)
	}
	k := len(samplers)
	if err := idx.Validate(k); err != nil {
		return nil, nil, err
	}

	a = mat.NewDense(n, k, nil)
	b = mat.NewDense(n, k, nil)
	for j, s := range samplers {
		draws := s.Sample(2 * n)
		if len(draws) != 2*n {
			return nil, nil, fmt.Errorf("%w: parameter %d returned %d, want %d", ErrSamplerArity, j, len(draws), 2*n)
		}
		a.SetCol(j, draws[:n])
		b.SetCol(j, draws[n:])
	}
	return a, b, nil
}

// Evaluate runs the model on every matrix at the same condition t.
func (m *Matrices) Evaluate(t float64, eval Evaluator) (*Outputs, error) {
	n, _ := m.A.Dims()
	run := runner(n, t, eval)

	var (
		out = &Outputs{
			YC: make([][]float64, len(m.C)),
			YD: make([][]float64, len(m.D)),
		}
		err error
	)
	if out.YA, err = run("A", m.A); err != nil {
		return nil, err
	}
	if out.YB, err = run("B", m.B); err != nil {
		return nil, err
	}
	for i, c := range m.C {
		if out.YC[i], err = run(fmt.Sprintf("C_%d", i), c); err != nil {
			return nil, err
		}
	}
	for p, d := range m.D {
		if out.YD[p], err = run("D_"+m.pairs[p].String(), d); err != nil {
			return nil, err
		}
	}
	if m.E != nil {
		if out.YE, err = run("E_"+m.triple.String(), m.E); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Sample draws A and B, then builds and evaluates one hybrid matrix at a
// time in a single scratch matrix, so at most three n x k matrices are live.
// The outputs equal those of BuildMatrices followed by Evaluate. eval must
// not retain the matrix it is given.
func Sample(n int, t float64, samplers []Sampler, eval Evaluator, idx Indices) (*Outputs, error) {
	a, b, err := baseMatrices(n, samplers, idx)
	if err != nil {
		return nil, err
	}
	run := runner(n, t, eval)

	out := &Outputs{
		YC: make([][]float64, len(samplers)),
		YD: make([][]float64, len(idx.Pairs)),
	}
	if out.YA, err = run("A", a); err != nil {
		return nil, err
	}
	if out.YB, err = run("B", b); err != nil {
		return nil, err
	}

	h := mat.NewDense(n, len(samplers), nil)
	col := make([]float64, n)
	reset := func(cols ...int) *mat.Dense {
		h.Copy(b)
		for _, j := range cols {
			mat.Col(col, j, a)
			h.SetCol(j, col)
		}
		return h
	}

	for i := range out.YC {
		if out.YC[i], err = run(fmt.Sprintf("C_%d", i), reset(i)); err != nil {
			return nil, err
		}
	}
	for p, pair := range idx.Pairs {
		if out.YD[p], err = run("D_"+pair.String(), reset(pair[0], pair[1])); err != nil {
			return nil, err
		}
	}
	if tr := idx.Triple; tr != nil {
		if out.YE, err = run("E_"+tr.String(), reset(tr[0], tr[1], tr[2])); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// runner evaluates one matrix and checks the output length.
func runner(n int, t float64, eval Evaluator) func(string, *mat.Dense) ([]float64, error) {
	return func(name string, x *mat.Dense) ([]float64, error) {
		y := eval.Evaluate(t, x)
		if len(y) != n {
			return nil, fmt.Errorf("%w: %s gave %d outputs for %d rows", ErrOutputLength, name, len(y), n)
		}
		return y, nil
	}
}

// hybrid copies b and overwrites the given columns with a's columns.
func hybrid(a, b *mat.Dense, cols ...int) *mat.Dense {
	n, _ := b.Dims()
	h := mat.DenseCopyOf(b)
	col := make([]float64, n)
	for _, j := range cols {
		mat.Col(col, j, a)
		h.SetCol(j, col)
	}
	return h
}
