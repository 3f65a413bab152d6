package sobol

import "errors"

// Domain errors for sensitivity analysis.
var (
	// ErrSampleCount indicates a non-positive number of samples per run.
	ErrSampleCount = errors.New("sobol: sample count must be at least 1")

	// ErrNoParameters indicates an empty parameter set.
	ErrNoParameters = errors.New("sobol: no parameter samplers")

	// ErrIndexOutOfRange indicates a pair or triple referencing a parameter
	// index outside [0, k).
	ErrIndexOutOfRange = errors.New("sobol: index out of range")

	// ErrDuplicateIndex indicates a pair or triple naming the same parameter twice.
	ErrDuplicateIndex = errors.New("sobol: duplicate parameter index")

	// ErrDuplicatePair indicates the same unordered pair requested twice.
	ErrDuplicatePair = errors.New("sobol: duplicate second-order pair")

	// ErrTriplePairs indicates a requested triple whose three pairs are not
	// all among the requested second-order pairs.
	ErrTriplePairs = errors.New("sobol: third-order triple requires all three of its pairs")

	// ErrSamplerArity indicates a sampler returned the wrong number of draws.
	ErrSamplerArity = errors.New("sobol: sampler returned wrong number of draws")

	// ErrOutputLength indicates a model output vector whose length differs
	// from the number of sample rows.
	ErrOutputLength = errors.New("sobol: model output length mismatch")
)
