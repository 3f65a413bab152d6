package climate

import (
	"gonum.org/v1/gonum/mat"
)

// Model is an evaluator with named input columns.
type Model interface {
	Name() string
	Params() []string
	Evaluate(t float64, x mat.Matrix) []float64
}

var (
	budgetParams = []string{"TCRE", "T2010", "sigma_nonCO2"}
	costParams   = []string{"TCRE", "T2010", "sigma_nonCO2", "p"}
)

// CO2FromTemperature returns the cumulative emissions compatible with
// warming t.
func CO2FromTemperature(t, tcre, t2010, nonCO2 float64) float64 {
	return (t - t2010 - nonCO2) / tcre
}

type CarbonBudget struct{}

func (CarbonBudget) Name() string     { return "carbon_budget" }
func (CarbonBudget) Params() []string { return budgetParams }

func (CarbonBudget) Evaluate(t float64, x mat.Matrix) []float64 {
	n, _ := x.Dims()
	tcre, t2010, nonCO2 := mat.Col(nil, 0, x), mat.Col(nil, 1, x), mat.Col(nil, 2, x)
	y := make([]float64, n)
	for i := range y {
		y[i] = CO2FromTemperature(t, tcre[i], t2010[i], nonCO2[i])
	}
	return y
}

// MitigationCost evaluates the indexed cost of the carbon budget at
// percentile p. With USD set the result is converted to dollars.
type MitigationCost struct {
	USD bool
}

func (m MitigationCost) Name() string {
	if m.USD {
		return "mitigation_cost_usd"
	}
	return "mitigation_cost"
}

func (MitigationCost) Params() []string { return costParams }

func (m MitigationCost) Evaluate(t float64, x mat.Matrix) []float64 {
	n, _ := x.Dims()
	tcre, t2010, nonCO2, p := mat.Col(nil, 0, x), mat.Col(nil, 1, x), mat.Col(nil, 2, x), mat.Col(nil, 3, x)
	y := make([]float64, n)
	for i := range y {
		y[i] = Cost(CO2FromTemperature(t, tcre[i], t2010[i], nonCO2[i]), p[i])
		if m.USD {
			y[i] = ToRealCosts(y[i])
		}
	}
	return y
}
