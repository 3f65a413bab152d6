package sobol

import (
	"encoding/json"
	"math"
)

type estimateJSON struct {
	FirstOrder  []*float64 `json:"first_order"`
	SecondOrder []*float64 `json:"second_order"`
	ThirdOrder  []*float64 `json:"third_order"`
}

// MarshalJSON writes non-finite shares as null.
func (e Estimate) MarshalJSON() ([]byte, error) {
	return json.Marshal(estimateJSON{
		FirstOrder:  Nullable(e.FirstOrder),
		SecondOrder: Nullable(e.SecondOrder),
		ThirdOrder:  Nullable(e.ThirdOrder),
	})
}

// UnmarshalJSON reads null shares back as NaN.
func (e *Estimate) UnmarshalJSON(b []byte) error {
	var v estimateJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	e.FirstOrder = FromNullable(v.FirstOrder)
	e.SecondOrder = FromNullable(v.SecondOrder)
	e.ThirdOrder = FromNullable(v.ThirdOrder)
	return nil
}

// Nullable maps NaN and infinities to nil so the values survive JSON.
func Nullable(xs []float64) []*float64 {
	if xs == nil {
		return nil
	}
	out := make([]*float64, len(xs))
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) {
			continue
		}
		v := xs[i]
		out[i] = &v
	}
	return out
}

// FromNullable is the inverse of Nullable, with nil read as NaN.
func FromNullable(ps []*float64) []float64 {
	if ps == nil {
		return nil
	}
	out := make([]float64, len(ps))
	for i, p := range ps {
		if p == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *p
	}
	return out
}
