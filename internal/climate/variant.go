package climate

import (
	"fmt"

	"github.com/san-kum/sobolvd/internal/distributions"
)

// Variant selects the parameter distributions of one scenario.
type Variant int

const (
	// PinkNormal: TCRE from the pink plume, symmetric (Gaussian).
	PinkNormal Variant = iota
	// PinkPERT: TCRE from the pink plume, asymmetric (Beta-PERT).
	PinkPERT
	// GrayLinear: TCRE from the gray plume, linear non-CO2.
	GrayLinear
	// GrayConvex: gray plume, convex non-CO2. The non-CO2 spread is scaled
	// by the forcing-to-temperature factor.
	GrayConvex
	// GrayConvexMAGICC: as GrayConvex, halving the spread to undo the doubled
	// MAGICC coefficient used to reproduce the pink plume.
	GrayConvexMAGICC
	// CollinsLinear: TCRE from Collins et al. (2013), linear non-CO2.
	CollinsLinear
	// PinkPERTLogPrice: PinkPERT with a normal log-price cost parameter.
	PinkPERTLogPrice
)

const (
	nonCO2Sigma        = 0.121
	forcingToTemp      = 0.60713
	t2010Mean          = 0.909
	t2010Sigma         = 0.15 / 2
	costPercentileStar = 0.20615
	costPercentileSig  = 0.83555
	costPercentileHigh = 1.5
	logPriceSigma      = 0.85114
)

var variantInfo = []struct {
	name string
	code string
}{
	PinkNormal:       {"pink_normal", "0"},
	PinkPERT:         {"pink_pert", "1"},
	GrayLinear:       {"gray_linear", "2"},
	GrayConvex:       {"gray_convex", "3"},
	GrayConvexMAGICC: {"gray_convex_magicc", "3.1"},
	CollinsLinear:    {"collins_linear", "4"},
	PinkPERTLogPrice: {"pink_pert_logprice", "5"},
}

// Variants lists every variant in code order.
func Variants() []Variant {
	out := make([]Variant, len(variantInfo))
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

// ParseVariant accepts a variant name or its numeric code ("3.1").
func ParseVariant(s string) (Variant, error) {
	for i, info := range variantInfo {
		if s == info.name || s == info.code {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variant: %s", s)
}

func (v Variant) valid() bool { return v >= 0 && int(v) < len(variantInfo) }

func (v Variant) String() string {
	if !v.valid() {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantInfo[v].name
}

// Code returns the numeric scenario code.
func (v Variant) Code() string {
	if !v.valid() {
		return ""
	}
	return variantInfo[v].code
}

func (v Variant) MarshalText() ([]byte, error) {
	if !v.valid() {
		return nil, fmt.Errorf("unknown variant: %d", int(v))
	}
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Distributions returns the specs for TCRE, T2010, sigma_nonCO2 and p.
func (v Variant) Distributions() []distributions.Spec {
	tcre := distributions.Normal(0.62, 0.12)
	nonCO2 := distributions.Normal(0, nonCO2Sigma)
	p := distributions.TruncLogNormal(costPercentileStar, costPercentileSig, 0, costPercentileHigh)

	switch v {
	case PinkPERT:
		tcre = distributions.BetaPERT(0.255, 0.62, 0.855)
	case GrayLinear:
		tcre = distributions.Normal(0.45, 0.12)
	case GrayConvex:
		tcre = distributions.Normal(0.45, 0.12)
		nonCO2 = distributions.Normal(0, nonCO2Sigma/forcingToTemp)
	case GrayConvexMAGICC:
		tcre = distributions.Normal(0.45, 0.12)
		nonCO2 = distributions.Normal(0, nonCO2Sigma/forcingToTemp/2)
	case CollinsLinear:
		tcre = distributions.Normal(0.45, 0.25)
	case PinkPERTLogPrice:
		tcre = distributions.BetaPERT(0.255, 0.62, 0.855)
		p = distributions.Normal(0, logPriceSigma)
	}

	return []distributions.Spec{
		tcre,
		distributions.Normal(t2010Mean, t2010Sigma),
		nonCO2,
		p,
	}
}

// DistributionsFor trims the variant's specs to the model's parameters.
func (v Variant) DistributionsFor(m Model) []distributions.Spec {
	specs := v.Distributions()
	return specs[:len(m.Params())]
}
