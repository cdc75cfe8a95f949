// Package tabular decodes spreadsheet-like uploads (CSV, XLSX) into row
// objects keyed by the header row, and holds the allow-list of destination
// tables an import may target.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat means the file extension maps to no known decoder.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Row is one decoded record. Columns absent from the raw row are absent
// from Values and insert as NULL. Mismatched is set when the raw cell
// count differs from the header width; such rows are flagged, not fixed.
type Row struct {
	Values     map[string]string
	Mismatched bool
}

// Parse decodes the file at path into a header (the inferred column set,
// in source order) and a sequence of rows. The first sheet is used for
// workbooks; the first line is always treated as the header.
func Parse(path string) ([]string, []Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSV(path)
	case ".xlsx", ".xlsm":
		return parseXLSX(path)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func parseCSV(path string) ([]string, []Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are flagged, not rejected

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	header = trimHeader(header)

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, buildRow(header, record))
	}
	return header, rows, nil
}

func parseXLSX(path string) ([]string, []Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header := trimHeader(records[0])
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, buildRow(header, record))
	}
	return header, rows, nil
}

// buildRow maps cells onto header columns positionally. Cells beyond the
// header width are dropped; missing cells leave their column unset.
func buildRow(header, record []string) Row {
	row := Row{Values: make(map[string]string, len(header))}
	for i, col := range header {
		if i < len(record) {
			row.Values[col] = record[i]
		}
	}
	if len(record) != len(header) {
		row.Mismatched = true
	}
	return row
}

func trimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	return out
}
