package export

import (
	"io"
	"math"

	"github.com/san-kum/sobolvd/internal/sweep"
	"github.com/xuri/excelize/v2"
)

// XLSX writes one sheet per term order, "other", and "std_dev". Non-finite
// values are left as empty cells.
func XLSX(w io.Writer, sum *sweep.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "first_order"); err != nil {
		return err
	}

	first := make([][]float64, len(sum.Mean))
	second := make([][]float64, len(sum.Mean))
	third := make([][]float64, len(sum.Mean))
	other := make([][]float64, len(sum.Mean))
	for i, row := range sum.Mean {
		first[i], second[i], third[i] = sum.Split(row)
		other[i] = []float64{sum.Other[i]}
	}

	sheets := []struct {
		name    string
		columns []string
		rows    [][]float64
	}{
		{"first_order", sum.Labels.First, first},
		{"second_order", sum.Labels.Second, second},
		{"third_order", sum.Labels.Third, third},
		{"other", []string{"other"}, other},
		{"std_dev", sum.Terms(), sum.StdDev},
	}

	for i, sh := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(sh.name); err != nil {
				return err
			}
		}
		if err := writeSheet(f, sh.name, sh.columns, sum.Temperatures, sh.rows); err != nil {
			return err
		}
	}
	f.SetActiveSheet(0)

	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, columns []string, temps []float64, rows [][]float64) error {
	header := make([]any, 0, len(columns)+1)
	header = append(header, "temperature")
	for _, c := range columns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for r, t := range temps {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, t); err != nil {
			return err
		}
		for c, v := range rows[r] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+2, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
