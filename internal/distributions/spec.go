package distributions

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/sobolvd/internal/sobol"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	FamilyNormal         = "normal"
	FamilyLogNormal      = "lognormal"
	FamilyTruncLogNormal = "trunc_lognormal"
	FamilyBetaPERT       = "beta_pert"
	FamilyConstant       = "constant"
)

// Spec describes one parameter distribution. Only the fields used by
// Family are read.
type Spec struct {
	Family string  `yaml:"family" json:"family"`
	Mu     float64 `yaml:"mu,omitempty" json:"mu,omitempty"`
	Sigma  float64 `yaml:"sigma,omitempty" json:"sigma,omitempty"`
	Scale  float64 `yaml:"scale,omitempty" json:"scale,omitempty"`
	Low    float64 `yaml:"low,omitempty" json:"low,omitempty"`
	High   float64 `yaml:"high,omitempty" json:"high,omitempty"`
	Min    float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Mode   float64 `yaml:"mode,omitempty" json:"mode,omitempty"`
	Max    float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Value  float64 `yaml:"value,omitempty" json:"value,omitempty"`
}

func Normal(mu, sigma float64) Spec {
	return Spec{Family: FamilyNormal, Mu: mu, Sigma: sigma}
}

func LogNormal(mu, sigma float64) Spec {
	return Spec{Family: FamilyLogNormal, Mu: mu, Sigma: sigma}
}

// TruncLogNormal is a log-normal with median scale and shape sigma,
// restricted to [low, high].
func TruncLogNormal(scale, sigma, low, high float64) Spec {
	return Spec{Family: FamilyTruncLogNormal, Scale: scale, Sigma: sigma, Low: low, High: high}
}

func BetaPERT(min, mode, max float64) Spec {
	return Spec{Family: FamilyBetaPERT, Min: min, Mode: mode, Max: max}
}

func Constant(v float64) Spec {
	return Spec{Family: FamilyConstant, Value: v}
}

func (s Spec) Validate() error {
	switch s.Family {
	case FamilyNormal, FamilyLogNormal:
		if !(s.Sigma > 0) {
			return fmt.Errorf("%w: %s sigma must be positive, got %g", ErrInvalidParams, s.Family, s.Sigma)
		}
	case FamilyTruncLogNormal:
		if !(s.Sigma > 0) || !(s.Scale > 0) {
			return fmt.Errorf("%w: %s needs positive scale and sigma", ErrInvalidParams, s.Family)
		}
		if s.Low < 0 || !(s.Low < s.High) {
			return fmt.Errorf("%w: %s bounds [%g, %g]", ErrInvalidParams, s.Family, s.Low, s.High)
		}
	case FamilyBetaPERT:
		if !(s.Min < s.Max) || s.Mode < s.Min || s.Mode > s.Max {
			return fmt.Errorf("%w: %s needs min <= mode <= max and min < max, got (%g, %g, %g)",
				ErrInvalidParams, s.Family, s.Min, s.Mode, s.Max)
		}
	case FamilyConstant:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFamily, s.Family)
	}
	return nil
}

// New builds a sampler drawing from src.
func (s Spec) New(src rand.Source) (sobol.Sampler, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	switch s.Family {
	case FamilyNormal:
		d := distuv.Normal{Mu: s.Mu, Sigma: s.Sigma, Src: src}
		return sampler(d.Rand), nil
	case FamilyLogNormal:
		d := distuv.LogNormal{Mu: s.Mu, Sigma: s.Sigma, Src: src}
		return sampler(d.Rand), nil
	case FamilyTruncLogNormal:
		return newTruncLogNormal(s, src), nil
	case FamilyBetaPERT:
		return newBetaPERT(s, src), nil
	default:
		v := s.Value
		return sampler(func() float64 { return v }), nil
	}
}

// Mean returns the distribution mean, used for reporting.
func (s Spec) Mean() float64 {
	switch s.Family {
	case FamilyNormal:
		return s.Mu
	case FamilyLogNormal:
		return distuv.LogNormal{Mu: s.Mu, Sigma: s.Sigma}.Mean()
	case FamilyTruncLogNormal:
		// not closed form here; median of the untruncated law
		return s.Scale
	case FamilyBetaPERT:
		return (s.Min + 4*s.Mode + s.Max) / 6
	default:
		return s.Value
	}
}

func (s Spec) String() string {
	switch s.Family {
	case FamilyNormal, FamilyLogNormal:
		return fmt.Sprintf("%s(mu=%g, sigma=%g)", s.Family, s.Mu, s.Sigma)
	case FamilyTruncLogNormal:
		return fmt.Sprintf("%s(scale=%g, sigma=%g, [%g, %g])", s.Family, s.Scale, s.Sigma, s.Low, s.High)
	case FamilyBetaPERT:
		return fmt.Sprintf("%s(%g, %g, %g)", s.Family, s.Min, s.Mode, s.Max)
	case FamilyConstant:
		return fmt.Sprintf("%s(%g)", s.Family, s.Value)
	default:
		return s.Family
	}
}

// sampler draws n values from a scalar generator.
type sampler func() float64

func (f sampler) Sample(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f()
	}
	return out
}

func newTruncLogNormal(s Spec, src rand.Source) sampler {
	d := distuv.LogNormal{Mu: math.Log(s.Scale), Sigma: s.Sigma}
	u := distuv.Uniform{Min: d.CDF(s.Low), Max: d.CDF(s.High), Src: src}
	return func() float64 {
		return d.Quantile(u.Rand())
	}
}

func newBetaPERT(s Spec, src rand.Source) sampler {
	width := s.Max - s.Min
	d := distuv.Beta{
		Alpha: (4*s.Mode + s.Max - 5*s.Min) / width,
		Beta:  (5*s.Max - s.Min - 4*s.Mode) / width,
		Src:   src,
	}
	lo := s.Min
	return func() float64 {
		return lo + width*d.Rand()
	}
}
