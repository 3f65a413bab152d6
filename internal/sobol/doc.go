// Package sobol estimates variance-based (Sobol) sensitivity indices of a
// scalar model by Monte Carlo resampling.
//
// The package is built from three pieces:
//
//   - [BuildMatrices]: draws the base matrices A and B and the hybrid
//     matrices C_i, D_(i,j) and E used by the estimators
//   - [Estimator]: first-order and total-effect estimators over model outputs
//   - [Analyze]: evaluates a model on all matrices at one fixed condition and
//     decomposes the output variance into first-, second- and third-order shares
//
// # Example
//
//	samplers := []sobol.Sampler{tcre, t2010, nonCO2}
//	idx := sobol.Indices{Pairs: []sobol.Pair{{0, 1}, {0, 2}, {1, 2}}}
//	est, err := sobol.Analyze(1_000_000, 2.0, samplers, climate.CarbonBudget{}, idx)
//
// # Concurrency
//
// Analyze keeps no state between calls. Samplers usually carry a random
// source and must not be shared between goroutines; build one set per call.
package sobol
