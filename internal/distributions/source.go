package distributions

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/sobolvd/internal/sobol"
)

// NewSource returns a PCG source for the given seed and stream. A zero seed
// draws fresh entropy, so repeated calls are independent.
func NewSource(seed, stream uint64) rand.Source {
	if seed == 0 {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(seed, stream)
}

// Samplers builds one sampler per spec, each on its own stream of seed.
func Samplers(specs []Spec, seed uint64) ([]sobol.Sampler, error) {
	out := make([]sobol.Sampler, len(specs))
	for j, spec := range specs {
		s, err := spec.New(NewSource(seed, uint64(j)+1))
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", j, err)
		}
		out[j] = s
	}
	return out, nil
}
