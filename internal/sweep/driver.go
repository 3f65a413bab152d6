package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/san-kum/sobolvd/internal/experiment"
	"github.com/san-kum/sobolvd/internal/logging"
	"github.com/san-kum/sobolvd/internal/sobol"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Analyzer runs one analysis at temperature t. *experiment.Experiment
// satisfies it.
type Analyzer interface {
	Analyze(t float64, seed uint64) (*sobol.Estimate, error)
}

type labeler interface {
	Labels() experiment.Labels
}

// ProgressFunc is called after each temperature completes. Calls are
// serialized.
type ProgressFunc func(done, total int, t float64)

type Option func(*Driver)

func WithWorkers(n int) Option        { return func(d *Driver) { d.workers = n } }
func WithSeed(seed uint64) Option     { return func(d *Driver) { d.seed = seed } }
func WithLogger(l *zap.Logger) Option { return func(d *Driver) { d.logger = logging.OrNop(l) } }
func WithProgress(fn ProgressFunc) Option {
	return func(d *Driver) { d.progress = fn }
}

type Driver struct {
	analyzer Analyzer
	temps    []float64
	runs     int
	seed     uint64
	workers  int
	logger   *zap.Logger
	progress ProgressFunc
}

func NewDriver(a Analyzer, temps []float64, runs int, opts ...Option) *Driver {
	d := &Driver{
		analyzer: a,
		temps:    append([]float64(nil), temps...),
		runs:     runs,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Result holds every run of a sweep. Runs[i][r] is run r at Temperatures[i].
type Result struct {
	Temperatures []float64           `json:"temperatures"`
	Labels       experiment.Labels   `json:"labels"`
	Runs         [][]*sobol.Estimate `json:"runs"`
	Seed         uint64              `json:"seed"`
	Elapsed      time.Duration       `json:"elapsed"`
}

// RunSeed returns the seed for run r at temperature index ti, or zero
// (fresh entropy) when no base seed is set.
func (d *Driver) RunSeed(ti, r int) uint64 {
	if d.seed == 0 {
		return 0
	}
	return d.seed + uint64(ti*d.runs+r)
}

func (d *Driver) Run(ctx context.Context) (*Result, error) {
	if len(d.temps) == 0 {
		return nil, ErrNoTemperatures
	}
	if d.runs < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoRuns, d.runs)
	}

	workers := d.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	res := &Result{
		Temperatures: append([]float64(nil), d.temps...),
		Runs:         make([][]*sobol.Estimate, len(d.temps)),
		Seed:         d.seed,
	}
	if l, ok := d.analyzer.(labeler); ok {
		res.Labels = l.Labels()
	}

	d.logger.Info("sweep started",
		zap.Int("temperatures", len(d.temps)),
		zap.Int("runs", d.runs),
		zap.Int("workers", workers),
		zap.Uint64("seed", d.seed))

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for ti, t := range d.temps {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			runs := make([]*sobol.Estimate, d.runs)
			for r := range runs {
				if err := gctx.Err(); err != nil {
					return err
				}
				est, err := d.analyzer.Analyze(t, d.RunSeed(ti, r))
				if err != nil {
					return fmt.Errorf("temperature %g run %d: %w", t, r, err)
				}
				runs[r] = est
			}
			res.Runs[ti] = runs

			mu.Lock()
			done++
			d.logger.Debug("temperature complete",
				zap.Float64("t", t),
				zap.Int("done", done),
				zap.Int("total", len(d.temps)))
			if d.progress != nil {
				d.progress(done, len(d.temps), t)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		d.logger.Warn("sweep failed", zap.Error(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)
	d.logger.Info("sweep finished", zap.Duration("elapsed", res.Elapsed))
	return res, nil
}
