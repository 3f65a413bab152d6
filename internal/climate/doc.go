// Package climate implements the model evaluators analysed by the sobol
// package: the remaining carbon budget for a temperature target and the
// mitigation cost of meeting it.
//
// Both take a design matrix whose columns are, in order:
//
//	0 TCRE          transient climate response to cumulative emissions (°C / 1000 GtCO2)
//	1 T2010         warming up to 2010 (°C)
//	2 sigma_nonCO2  non-CO2 warming contribution (°C)
//	3 p             cost percentile (cost models only)
//
// A [Variant] selects the parameter distributions for one published
// scenario.
package climate
