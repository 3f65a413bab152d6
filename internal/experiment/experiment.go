package experiment

import (
	"fmt"
	"strings"

	"github.com/san-kum/sobolvd/internal/climate"
	"github.com/san-kum/sobolvd/internal/config"
	"github.com/san-kum/sobolvd/internal/distributions"
	"github.com/san-kum/sobolvd/internal/sobol"
)

type Config struct {
	Model   string
	Variant climate.Variant
	Samples int
	Indices sobol.Indices
	// Parameters overrides the variant's distributions when set.
	Parameters []distributions.Spec
}

// Experiment is one model with its parameter distributions and the
// interaction terms to estimate. It is safe for concurrent Analyze calls.
type Experiment struct {
	cfg   Config
	model climate.Model
	specs []distributions.Spec
}

func New(cfg Config, model climate.Model) (*Experiment, error) {
	specs := cfg.Parameters
	if len(specs) == 0 {
		specs = cfg.Variant.DistributionsFor(model)
	}
	k := len(model.Params())
	if len(specs) != k {
		return nil, fmt.Errorf("model %s takes %d parameters, got %d distributions", model.Name(), k, len(specs))
	}
	for j, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", model.Params()[j], err)
		}
	}
	if err := cfg.Indices.Validate(k); err != nil {
		return nil, err
	}
	if cfg.Samples < 1 {
		return nil, fmt.Errorf("%w: got %d", sobol.ErrSampleCount, cfg.Samples)
	}
	return &Experiment{cfg: cfg, model: model, specs: specs}, nil
}

// FromConfig resolves the model and variant named in a sweep config.
func FromConfig(r *Registry, c *config.Config) (*Experiment, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	model, err := r.GetModel(c.Model)
	if err != nil {
		return nil, err
	}
	variant, err := climate.ParseVariant(c.Variant)
	if err != nil {
		return nil, err
	}
	return New(Config{
		Model:      c.Model,
		Variant:    variant,
		Samples:    c.Samples,
		Indices:    c.Indices(),
		Parameters: c.Parameters,
	}, model)
}

// Analyze runs one sensitivity analysis at temperature t with fresh
// samplers seeded from seed (zero means fresh entropy).
func (e *Experiment) Analyze(t float64, seed uint64) (*sobol.Estimate, error) {
	samplers, err := distributions.Samplers(e.specs, seed)
	if err != nil {
		return nil, err
	}
	return sobol.Analyze(e.cfg.Samples, t, samplers, e.model, e.cfg.Indices)
}

func (e *Experiment) Model() climate.Model        { return e.model }
func (e *Experiment) Config() Config              { return e.cfg }
func (e *Experiment) Specs() []distributions.Spec { return e.specs }
func (e *Experiment) Params() []string            { return e.model.Params() }

// Labels names every estimated term in output order.
type Labels struct {
	First  []string `json:"first"`
	Second []string `json:"second"`
	Third  []string `json:"third"`
}

// All returns the labels flattened in first, second, third order.
func (l Labels) All() []string {
	out := make([]string, 0, len(l.First)+len(l.Second)+len(l.Third))
	out = append(out, l.First...)
	out = append(out, l.Second...)
	return append(out, l.Third...)
}

func (e *Experiment) Labels() Labels {
	params := e.model.Params()
	l := Labels{
		First:  append([]string(nil), params...),
		Second: make([]string, len(e.cfg.Indices.Pairs)),
		Third:  []string{},
	}
	for i, p := range e.cfg.Indices.Pairs {
		l.Second[i] = strings.Join([]string{params[p[0]], params[p[1]]}, " x ")
	}
	if t := e.cfg.Indices.Triple; t != nil {
		l.Third = append(l.Third, strings.Join([]string{params[t[0]], params[t[1]], params[t[2]]}, " x "))
	}
	return l
}
