package climate

import "math"

const (
	// budgets at or above this many 1000 GtCO2 cost nothing
	costCutoff = 5.5

	fMaxA, fMaxB = 14.9766, 0.541945
	fMinA, fMinB = 0.886887, 3.47027

	// USD per unit of indexed cost
	usdPerIndex = 33.94462214705881
)

func expCost(co2, a, b float64) float64 {
	if !(co2 < costCutoff) {
		return 0
	}
	return a*math.Exp(-b*co2) - a*math.Exp(-costCutoff*b)
}

// FMax is the upper cost envelope as a function of the carbon budget.
func FMax(co2 float64) float64 { return expCost(co2, fMaxA, fMaxB) }

// FMin is the lower cost envelope.
func FMin(co2 float64) float64 { return expCost(co2, fMinA, fMinB) }

// Cost interpolates between the envelopes at percentile p.
func Cost(co2, p float64) float64 {
	lo := FMin(co2)
	return lo + (FMax(co2)-lo)*p
}

func ToRealCosts(indexed float64) float64 { return indexed * usdPerIndex }
