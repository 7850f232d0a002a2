package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoSheets          = errors.New("no sheets")
	ErrNoDataRows        = errors.New("no data rows")
)

// SupportedExtensions lists the accepted upload extensions.
var SupportedExtensions = []string{".xlsx", ".xls", ".csv"}

// Supported reports whether filename has an accepted extension.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Table is the first sheet of a workbook: a header row and the data rows
// padded to the header width.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadTable reads a workbook or CSV file, choosing the format by extension.
func ReadTable(r io.Reader, filename string) (*Table, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		rows, err = readWorkbook(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, err
	}
	return newTable(rows)
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// newTable takes the first non-empty row as the header. Blank header cells
// are named column_<n>; rows with no content are dropped.
func newTable(rows [][]string) (*Table, error) {
	for len(rows) > 0 && blank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	header := rows[0]
	t := &Table{Columns: make([]string, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		t.Columns[i] = h
	}

	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		padded := make([]string, len(t.Columns))
		for i := range padded {
			if i < len(row) {
				padded[i] = strings.TrimSpace(row[i])
			}
		}
		t.Rows = append(t.Rows, padded)
	}
	if len(t.Rows) == 0 {
		return nil, ErrNoDataRows
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
