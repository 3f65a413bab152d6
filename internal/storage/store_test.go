package storage

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/sobolvd/internal/config"
	"github.com/san-kum/sobolvd/internal/experiment"
	"github.com/san-kum/sobolvd/internal/sobol"
	"github.com/san-kum/sobolvd/internal/sweep"
)

func fixture() (*config.Config, *sweep.Result, *sweep.Summary) {
	cfg := config.DefaultConfig()
	cfg.Runs = 2
	cfg.Seed = 9

	labels := experiment.Labels{
		First:  []string{"TCRE", "T2010", "sigma_nonCO2"},
		Second: []string{"TCRE x T2010"},
		Third:  []string{},
	}
	res := &sweep.Result{
		Temperatures: []float64{1.5, 3},
		Labels:       labels,
		Runs: [][]*sobol.Estimate{
			{
				{FirstOrder: []float64{0.5, 0.3, 0.1}, SecondOrder: []float64{0.05}, ThirdOrder: []float64{}},
				{FirstOrder: []float64{0.6, 0.2, 0.1}, SecondOrder: []float64{math.NaN()}, ThirdOrder: []float64{}},
			},
			{
				{FirstOrder: []float64{0.7, 0.2, 0.05}, SecondOrder: []float64{0.01}, ThirdOrder: []float64{}},
				{FirstOrder: []float64{0.7, 0.2, 0.05}, SecondOrder: []float64{0.01}, ThirdOrder: []float64{}},
			},
		},
		Seed:    9,
		Elapsed: 1500 * time.Millisecond,
	}
	sum := &sweep.Summary{
		Temperatures: res.Temperatures,
		Labels:       labels,
		Mean:         [][]float64{{0.55, 0.25, 0.1, 0.05}, {0.7, 0.2, 0.05, 0.01}},
		StdDev:       [][]float64{{0.05, 0.05, 0, 0}, {0, 0, 0, 0}},
		Other:        []float64{0.05, 0.04},
		Runs:         2,
	}
	return cfg, res, sum
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}

	cfg, res, sum := fixture()
	id, err := s.Save(cfg, res, sum)
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`^carbon_budget_[0-9a-f]{8}$`).MatchString(id) {
		t.Errorf("unexpected run id %q", id)
	}

	for _, name := range []string{"metadata.json", "summary.csv", "stddev.csv", "runs.json"} {
		if _, err := os.Stat(filepath.Join(s.Dir(), id, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Model != "carbon_budget" || meta.Variant != "pink_normal" || meta.Seed != 9 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.ElapsedSeconds != 1.5 {
		t.Errorf("ElapsedSeconds = %v, want 1.5", meta.ElapsedSeconds)
	}

	got, err := s.LoadSummary(id)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sum, got); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	runs, err := s.LoadRuns(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs.Runs) != 2 || len(runs.Runs[0]) != 2 {
		t.Fatalf("unexpected run shape")
	}
	if !math.IsNaN(runs.Runs[0][1].SecondOrder[0]) {
		t.Errorf("NaN estimate did not survive storage: %v", runs.Runs[0][1].SecondOrder)
	}
	if runs.Runs[1][0].FirstOrder[0] != 0.7 {
		t.Errorf("got %v", runs.Runs[1][0].FirstOrder)
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	cfg, res, sum := fixture()

	first, err := s.Save(cfg, res, sum)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)
	second, err := s.Save(cfg, res, sum)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].ID != second || runs[1].ID != first {
		t.Errorf("runs not newest first: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))
	runs, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs", len(runs))
	}
}

func TestLoadErrors(t *testing.T) {
	s := New(t.TempDir())

	tests := []struct {
		id   string
		want error
	}{
		{"missing_00000000", ErrNotFound},
		{"../etc", ErrInvalidID},
		{"", ErrInvalidID},
		{".hidden", ErrInvalidID},
	}
	for _, tt := range tests {
		if _, err := s.Load(tt.id); !errors.Is(err, tt.want) {
			t.Errorf("Load(%q) = %v, want %v", tt.id, err, tt.want)
		}
	}
}

func TestLoadSummaryCorrupt(t *testing.T) {
	s := New(t.TempDir())
	cfg, res, sum := fixture()
	id, err := s.Save(cfg, res, sum)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(s.Dir(), id, "summary.csv")
	if err := os.WriteFile(path, []byte("temperature,a\n1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadSummary(id); !errors.Is(err, ErrCorrupt) {
		t.Errorf("got %v, want ErrCorrupt", err)
	}
}
