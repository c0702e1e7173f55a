// internal/sheet/sheet.go
package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a parsed recipient sheet. Headers keep their original column
// order but are normalized to lowercase with surrounding whitespace trimmed;
// every row maps those normalized headers to raw cell text.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// Read parses the sheet at path, dispatching on the file extension. Only
// .xlsx and .csv are supported.
func Read(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(path)
	case ".csv":
		return readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported sheet format %q, expected .xlsx or .csv", filepath.Ext(path))
	}
}

func readXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}

	return buildTable(rows)
}

func readCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are padded below
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return buildTable(records)
}

// buildTable normalizes the header row and converts each data row to a map.
// Rows shorter than the header are padded with empty cells; rows whose every
// cell is blank are dropped entirely.
func buildTable(raw [][]string) (*Table, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	headers := make([]string, 0, len(raw[0]))
	for _, h := range raw[0] {
		headers = append(headers, strings.ToLower(strings.TrimSpace(h)))
	}

	t := &Table{Headers: headers}
	for _, cells := range raw[1:] {
		row := make(map[string]string, len(headers))
		empty := true
		for i, h := range headers {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if strings.TrimSpace(val) != "" {
				empty = false
			}
			row[h] = val
		}
		if empty {
			continue
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
