package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/sobolvd/internal/config"
	"github.com/san-kum/sobolvd/internal/experiment"
	"github.com/san-kum/sobolvd/internal/export"
	"github.com/san-kum/sobolvd/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	summaryFile  = "summary.csv"
	stdDevFile   = "stddev.csv"
	runsFile     = "runs.json"
)

var (
	ErrNotFound  = errors.New("storage: run not found")
	ErrInvalidID = errors.New("storage: invalid run id")
	ErrCorrupt   = errors.New("storage: corrupt run data")
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID             string            `json:"id"`
	Model          string            `json:"model"`
	Variant        string            `json:"variant"`
	Samples        int               `json:"samples"`
	Runs           int               `json:"runs"`
	Seed           uint64            `json:"seed"`
	Pairs          [][]int           `json:"pairs"`
	Triple         []int             `json:"triple,omitempty"`
	Params         []string          `json:"params"`
	Labels         experiment.Labels `json:"labels"`
	Temperatures   []float64         `json:"temperatures"`
	Timestamp      time.Time         `json:"timestamp"`
	ElapsedSeconds float64           `json:"elapsed_seconds"`
}

// NewRunID returns <model>_<first 8 hex digits of a random uuid>.
func NewRunID(model string) string {
	return fmt.Sprintf("%s_%s", model, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// Save persists a sweep and its summary under a fresh run id.
func (s *Store) Save(cfg *config.Config, res *sweep.Result, sum *sweep.Summary) (string, error) {
	runID := NewRunID(cfg.Model)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Model:          cfg.Model,
		Variant:        cfg.Variant,
		Samples:        cfg.Samples,
		Runs:           cfg.Runs,
		Seed:           cfg.Seed,
		Pairs:          cfg.Pairs,
		Triple:         cfg.Triple,
		Params:         sum.Labels.First,
		Labels:         sum.Labels,
		Temperatures:   sum.Temperatures,
		Timestamp:      time.Now(),
		ElapsedSeconds: res.Elapsed.Seconds(),
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, runsFile), res); err != nil {
		return "", err
	}

	err := writeFile(filepath.Join(runDir, summaryFile), func(w io.Writer) error {
		return export.CSV(w, sum)
	})
	if err != nil {
		return "", err
	}
	err = writeFile(filepath.Join(runDir, stdDevFile), func(w io.Writer) error {
		return export.Table(w, sum.Terms(), sum.Temperatures, sum.StdDev)
	})
	if err != nil {
		return "", err
	}

	return runID, nil
}

// List returns stored runs, newest first. Unreadable entries are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	var meta RunMetadata
	if err := s.readJSON(runID, metadataFile, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadRuns reads the raw per-run estimates.
func (s *Store) LoadRuns(runID string) (*sweep.Result, error) {
	var res sweep.Result
	if err := s.readJSON(runID, runsFile, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// LoadSummary rebuilds the aggregated summary from summary.csv and
// stddev.csv, with labels from the metadata.
func (s *Store) LoadSummary(runID string) (*sweep.Summary, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	terms := meta.Labels.All()

	temps, mean, err := s.readCSV(runID, summaryFile, len(terms)+1)
	if err != nil {
		return nil, err
	}
	_, sd, err := s.readCSV(runID, stdDevFile, len(terms))
	if err != nil {
		return nil, err
	}
	if len(sd) != len(mean) {
		return nil, fmt.Errorf("%w: %s has %d rows, %s has %d", ErrCorrupt, summaryFile, len(mean), stdDevFile, len(sd))
	}

	sum := &sweep.Summary{
		Temperatures: temps,
		Labels:       meta.Labels,
		Mean:         make([][]float64, len(mean)),
		StdDev:       sd,
		Other:        make([]float64, len(mean)),
		Runs:         meta.Runs,
	}
	for i, row := range mean {
		sum.Mean[i] = row[:len(terms)]
		sum.Other[i] = row[len(terms)]
	}
	return sum, nil
}

func (s *Store) path(runID, name string) (string, error) {
	if runID == "" || runID != filepath.Base(runID) || strings.HasPrefix(runID, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, runID)
	}
	return filepath.Join(s.baseDir, runID, name), nil
}

func (s *Store) readJSON(runID, name string, v any) error {
	path, err := s.path(runID, name)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

func (s *Store) readCSV(runID, name string, width int) ([]float64, [][]float64, error) {
	path, err := s.path(runID, name)
	if err != nil {
		return nil, nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = width + 1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	if len(records) < 1 {
		return nil, nil, fmt.Errorf("%w: %s has no header", ErrCorrupt, name)
	}

	temps := make([]float64, 0, len(records)-1)
	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
			}
			vals[j] = v
		}
		temps = append(temps, vals[0])
		rows = append(rows, vals[1:])
	}
	return temps, rows, nil
}
