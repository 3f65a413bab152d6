package sobol

import "fmt"

// Analyze estimates first-, second- and third-order variance shares of eval
// at condition t using n samples per base matrix.
//
// SecondOrder[p] is the pure interaction of Pairs[p]: the closed estimate of
// the pair minus both first-order shares. ThirdOrder is empty unless a triple
// is requested, in which case it holds the closed triple estimate minus the
// triple's three pair terms and its three first-order shares.
func Analyze(n int, t float64, samplers []Sampler, eval Evaluator, idx Indices) (*Estimate, error) {
	out, err := Sample(n, t, samplers, eval, idx)
	if err != nil {
		return nil, err
	}
	return Decompose(out, idx)
}

// Decompose turns model outputs into variance shares. It is the pure part of
// Analyze and expects outputs produced with the same idx.
func Decompose(out *Outputs, idx Indices) (*Estimate, error) {
	k := len(out.YC)
	if err := idx.Validate(k); err != nil {
		return nil, err
	}
	if len(out.YD) != len(idx.Pairs) {
		return nil, fmt.Errorf("%w: %d pair outputs for %d pairs", ErrOutputLength, len(out.YD), len(idx.Pairs))
	}
	n := len(out.YA)
	for _, y := range append(append([][]float64{out.YB}, out.YC...), out.YD...) {
		if len(y) != n {
			return nil, fmt.Errorf("%w: got %d, want %d", ErrOutputLength, len(y), n)
		}
	}

	est, err := NewEstimator(out.YA, out.YB)
	if err != nil {
		return nil, err
	}

	res := &Estimate{
		FirstOrder:  make([]float64, k),
		SecondOrder: make([]float64, len(idx.Pairs)),
		ThirdOrder:  []float64{},
	}
	for i, yC := range out.YC {
		res.FirstOrder[i] = est.FirstOrder(yC)
	}

	byPair := make(map[Pair]float64, len(idx.Pairs))
	for p, pair := range idx.Pairs {
		s := est.FirstOrder(out.YD[p]) - res.FirstOrder[pair[0]] - res.FirstOrder[pair[1]]
		res.SecondOrder[p] = s
		byPair[pair.Key()] = s
	}

	if idx.Triple == nil {
		return res, nil
	}
	if len(out.YE) != n {
		return nil, fmt.Errorf("%w: third-order output has %d values, want %d", ErrOutputLength, len(out.YE), n)
	}
	t := *idx.Triple
	s := est.FirstOrder(out.YE)
	for _, pair := range t.Pairs() {
		s -= byPair[pair]
	}
	for _, i := range t {
		s -= res.FirstOrder[i]
	}
	res.ThirdOrder = append(res.ThirdOrder, s)
	return res, nil
}
