// Package distributions provides the parameter samplers used to draw
// uncertain model inputs.
//
// A [Spec] is the configuration-time description of one distribution
// family and its parameters; [Spec.New] turns it into a sampler bound to a
// random source. Supported families:
//
//   - normal: Mu, Sigma
//   - lognormal: Mu, Sigma of the underlying normal
//   - trunc_lognormal: log-normal with median Scale, truncated to [Low, High]
//   - beta_pert: Beta-PERT on [Min, Max] with mode Mode
//   - constant: Value
//
// Samplers hold their random source and are not safe for concurrent use.
package distributions
