// Package sweep repeats a sensitivity analysis over a grid of temperatures
// and aggregates the repeated runs.
//
// # Driver
//
//   - [Driver.Run] fans temperatures out across a bounded worker pool and
//     returns every per-run [sobol.Estimate], ordered by temperature index.
//   - Each run draws from its own samplers. With a base seed s, run r at
//     temperature index i uses seed s + i*runs + r.
//
// # Aggregation
//
//   - [Aggregate] averages each term across runs, clamps the mean at zero,
//     and reports the residual share left unexplained by the reported terms.
package sweep
