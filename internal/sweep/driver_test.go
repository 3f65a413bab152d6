package sweep_test

import (
	"context"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sobolvd/internal/climate"
	"github.com/san-kum/sobolvd/internal/experiment"
	"github.com/san-kum/sobolvd/internal/sobol"
	"github.com/san-kum/sobolvd/internal/sweep"
)

var errBoom = errors.New("boom")

// fakeAnalyzer encodes t and seed into the estimate so tests can check
// ordering and seeding without running real analyses.
type fakeAnalyzer struct {
	mu     sync.Mutex
	seeds  []uint64
	failAt float64
	delay  func(t float64) time.Duration
}

func (f *fakeAnalyzer) Analyze(t float64, seed uint64) (*sobol.Estimate, error) {
	if f.delay != nil {
		time.Sleep(f.delay(t))
	}
	if f.failAt != 0 && t == f.failAt {
		return nil, errBoom
	}
	f.mu.Lock()
	f.seeds = append(f.seeds, seed)
	f.mu.Unlock()
	return &sobol.Estimate{
		FirstOrder:  []float64{t, float64(seed)},
		SecondOrder: []float64{},
		ThirdOrder:  []float64{},
	}, nil
}

var _ = Describe("Driver", func() {
	var (
		fake  *fakeAnalyzer
		temps []float64
		ctx   context.Context
	)

	BeforeEach(func() {
		fake = &fakeAnalyzer{}
		temps = []float64{1, 2, 3, 4}
		ctx = context.Background()
	})

	It("orders results by temperature index regardless of completion order", func() {
		fake.delay = func(t float64) time.Duration {
			return time.Duration(5-t) * time.Millisecond
		}
		res, err := sweep.NewDriver(fake, temps, 2, sweep.WithWorkers(4)).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Temperatures).To(Equal(temps))
		Expect(res.Runs).To(HaveLen(len(temps)))
		for ti, runs := range res.Runs {
			Expect(runs).To(HaveLen(2))
			for _, est := range runs {
				Expect(est.FirstOrder[0]).To(Equal(temps[ti]))
			}
		}
	})

	It("gives every run a distinct seed derived from the base seed", func() {
		d := sweep.NewDriver(fake, temps, 3, sweep.WithSeed(100), sweep.WithWorkers(2))
		res, err := d.Run(ctx)
		Expect(err).NotTo(HaveOccurred())

		var want []uint64
		for s := uint64(100); s < 100+uint64(len(temps)*3); s++ {
			want = append(want, s)
		}
		Expect(fake.seeds).To(ConsistOf(want))
		Expect(res.Runs[2][1].FirstOrder[1]).To(BeNumerically("==", 100+2*3+1))
		Expect(d.RunSeed(2, 1)).To(Equal(uint64(107)))
	})

	It("passes zero seeds through when no base seed is set", func() {
		_, err := sweep.NewDriver(fake, temps, 2).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(fake.seeds).To(HaveLen(8))
		for _, s := range fake.seeds {
			Expect(s).To(BeZero())
		}
	})

	It("reports progress once per temperature", func() {
		var (
			mu     sync.Mutex
			done   []int
			totals []int
		)
		progress := func(n, total int, t float64) {
			mu.Lock()
			defer mu.Unlock()
			done = append(done, n)
			totals = append(totals, total)
		}
		_, err := sweep.NewDriver(fake, temps, 1, sweep.WithProgress(progress), sweep.WithWorkers(3)).Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(done).To(Equal([]int{1, 2, 3, 4}))
		Expect(totals).To(HaveEach(len(temps)))
	})

	It("stops on the first error", func() {
		fake.failAt = 3
		_, err := sweep.NewDriver(fake, temps, 2, sweep.WithWorkers(1)).Run(ctx)
		Expect(err).To(MatchError(errBoom))
		Expect(err.Error()).To(ContainSubstring("temperature 3 run 0"))
		Expect(len(fake.seeds)).To(BeNumerically("<=", 6))
	})

	It("returns the context error when cancelled", func() {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := sweep.NewDriver(fake, temps, 2).Run(cctx)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("rejects empty grids and zero runs", func() {
		_, err := sweep.NewDriver(fake, nil, 2).Run(ctx)
		Expect(err).To(MatchError(sweep.ErrNoTemperatures))

		_, err = sweep.NewDriver(fake, temps, 0).Run(ctx)
		Expect(err).To(MatchError(sweep.ErrNoRuns))
	})

	Context("with a real experiment", func() {
		It("labels terms and aggregates to shares in [0, 1]", func() {
			exp, err := experiment.New(experiment.Config{
				Variant: climate.PinkNormal,
				Samples: 5000,
				Indices: sobol.Indices{
					Pairs:  []sobol.Pair{{0, 1}, {0, 2}, {1, 2}},
					Triple: &sobol.Triple{0, 1, 2},
				},
			}, climate.CarbonBudget{})
			Expect(err).NotTo(HaveOccurred())

			res, err := sweep.NewDriver(exp, []float64{1.5, 3}, 3, sweep.WithSeed(7)).Run(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Labels.First).To(Equal([]string{"TCRE", "T2010", "sigma_nonCO2"}))

			sum, err := sweep.Aggregate(res)
			Expect(err).NotTo(HaveOccurred())
			Expect(sum.Runs).To(Equal(3))
			Expect(sum.Terms()).To(HaveLen(7))
			for ti := range sum.Temperatures {
				Expect(sum.Mean[ti]).To(HaveLen(7))
				for _, v := range sum.Mean[ti] {
					Expect(v).To(BeNumerically(">=", 0))
				}
				Expect(sum.Other[ti]).To(BeNumerically(">=", 0))
				first, _, _ := sum.Split(sum.Mean[ti])
				Expect(first[0] + first[1] + first[2]).To(BeNumerically("~", 1, 0.3))
			}
		})
	})
})
