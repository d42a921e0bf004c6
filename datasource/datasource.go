// Package datasource loads batch rows from the file formats operators
// actually have: XLSX exports, CSV dumps and JSON arrays. The first
// row/header supplies the column names; every value is read as a string,
// matching how the evaluator consumes rows. The render pipeline itself never
// imports this package.
package datasource

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rotulado/rotulado/design"
)

// Rows loads the rows of a data file, dispatching on the file extension.
func Rows(path string) ([]design.DataRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FromXLSX(path)
	case ".csv":
		return FromCSV(path)
	case ".json":
		return FromJSON(path)
	default:
		return nil, fmt.Errorf("unsupported data file %s (want .xlsx, .csv or .json)", path)
	}
}

// FromXLSX reads the first sheet of a workbook. Row 1 is the header; blank
// rows are skipped.
func FromXLSX(path string) ([]design.DataRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return tabular(raw), nil
}

// FromCSV reads a comma-separated file with a header row.
func FromCSV(path string) ([]design.DataRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	raw, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return tabular(raw), nil
}

// FromJSON reads an array of flat objects. Non-string scalars are rendered
// the way the template language expects them (integers without a decimal
// point).
func FromJSON(path string) ([]design.DataRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json %s: %w", path, err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode json %s: %w", path, err)
	}
	rows := make([]design.DataRow, 0, len(records))
	for _, rec := range records {
		row := make(design.DataRow, len(rec))
		for k, v := range rec {
			row[k] = scalarString(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// tabular converts header+rows cell data into DataRows. Short rows leave
// trailing columns empty; fully empty rows are dropped.
func tabular(raw [][]string) []design.DataRow {
	if len(raw) == 0 {
		return nil
	}
	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = strings.TrimSpace(h)
	}
	var rows []design.DataRow
	for _, cells := range raw[1:] {
		row := make(design.DataRow, len(headers))
		empty := true
		for i, h := range headers {
			if h == "" {
				continue
			}
			var v string
			if i < len(cells) {
				v = cells[i]
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			row[h] = v
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}

func scalarString(v any) string {
	switch vv := v.(type) {
	case nil:
		return ""
	case string:
		return vv
	case float64:
		if vv == float64(int64(vv)) {
			return fmt.Sprintf("%d", int64(vv))
		}
		return fmt.Sprintf("%v", vv)
	case bool:
		if vv {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", vv)
	}
}
