package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/san-kum/sobolvd/internal/sobol"
	"github.com/san-kum/sobolvd/internal/sweep"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatSVG  Format = "svg"
)

var writers = map[Format]func(io.Writer, *sweep.Summary, *sweep.Result) error{
	FormatJSON: JSON,
	FormatCSV:  func(w io.Writer, s *sweep.Summary, _ *sweep.Result) error { return CSV(w, s) },
	FormatXLSX: func(w io.Writer, s *sweep.Summary, _ *sweep.Result) error { return XLSX(w, s) },
	FormatSVG: func(w io.Writer, s *sweep.Summary, _ *sweep.Result) error {
		return SVG(w, s, DefaultSVGWidth, DefaultSVGHeight)
	},
}

func Formats() []string {
	names := make([]string, 0, len(writers))
	for f := range writers {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}

// Write dispatches to the writer for format. raw may be nil.
func Write(w io.Writer, format Format, sum *sweep.Summary, raw *sweep.Result) error {
	fn, ok := writers[format]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	if len(sum.Temperatures) == 0 {
		return ErrNoData
	}
	return fn(w, sum, raw)
}

type Document struct {
	Temperatures []float64           `json:"temperatures"`
	Terms        []string            `json:"terms"`
	Values       [][]*float64        `json:"values"`
	StdDev       [][]*float64        `json:"std_dev"`
	Other        []*float64          `json:"other"`
	Runs         int                 `json:"runs"`
	Results      [][]*sobol.Estimate `json:"results,omitempty"`
}

func JSON(w io.Writer, sum *sweep.Summary, raw *sweep.Result) error {
	doc := Document{
		Temperatures: sum.Temperatures,
		Terms:        sum.Terms(),
		Values:       make([][]*float64, len(sum.Mean)),
		StdDev:       make([][]*float64, len(sum.StdDev)),
		Other:        sobol.Nullable(sum.Other),
		Runs:         sum.Runs,
	}
	for i, row := range sum.Mean {
		doc.Values[i] = sobol.Nullable(row)
	}
	for i, row := range sum.StdDev {
		doc.StdDev[i] = sobol.Nullable(row)
	}
	if raw != nil {
		doc.Results = raw.Runs
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// CSV writes the mean shares with a trailing "other" column.
func CSV(w io.Writer, sum *sweep.Summary) error {
	rows := make([][]float64, len(sum.Mean))
	for i, row := range sum.Mean {
		rows[i] = append(append([]float64(nil), row...), sum.Other[i])
	}
	return Table(w, append(sum.Terms(), "other"), sum.Temperatures, rows)
}

// Table writes a temperature column followed by one column per name.
func Table(out io.Writer, columns []string, temps []float64, rows [][]float64) error {
	w := csv.NewWriter(out)

	header := append([]string{"temperature"}, columns...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i, t := range temps {
		record := make([]string, 0, len(header))
		record = append(record, strconv.FormatFloat(t, 'g', -1, 64))
		for _, v := range rows[i] {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
