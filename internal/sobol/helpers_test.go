package sobol

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

func normalSampler(seed uint64, mu, sigma float64) Sampler {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return SamplerFunc(func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = mu + sigma*r.NormFloat64()
		}
		return out
	})
}

func constSampler(v float64) Sampler {
	return SamplerFunc(func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	})
}

// rampSampler returns base, base+1, ... so every cell of A and B is distinct.
func rampSampler(base float64) Sampler {
	return SamplerFunc(func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = base + float64(i)
		}
		return out
	})
}

func sumOf(cols ...int) Evaluator {
	return EvaluatorFunc(func(_ float64, x mat.Matrix) []float64 {
		n, _ := x.Dims()
		y := make([]float64, n)
		for i := range y {
			for _, c := range cols {
				y[i] += x.At(i, c)
			}
		}
		return y
	})
}
