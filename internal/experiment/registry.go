package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/sobolvd/internal/climate"
)

type Registry struct {
	models map[string]func() climate.Model
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() climate.Model),
	}

	r.models["carbon_budget"] = func() climate.Model { return climate.CarbonBudget{} }
	r.models["mitigation_cost"] = func() climate.Model { return climate.MitigationCost{} }
	r.models["mitigation_cost_usd"] = func() climate.Model { return climate.MitigationCost{USD: true} }

	return r
}

// Register adds or replaces a model constructor.
func (r *Registry) Register(name string, fn func() climate.Model) {
	r.models[name] = fn
}

func (r *Registry) GetModel(name string) (climate.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
