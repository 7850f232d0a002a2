package dataset

import (
	"io"

	"feedback-insights-go/internal/types"
)

const (
	previewSampleRows = 5
	previewDistinct   = 10
)

// Preview summarizes an upload before analysis: columns, the detected
// mapping, sample rows, the date range and distinct products and regions.
func Preview(r io.Reader, filename string) (*types.FilePreview, error) {
	t, err := ReadTable(r, filename)
	if err != nil {
		return nil, err
	}
	m := DetectMapping(t.Columns)

	p := &types.FilePreview{
		Filename:        filename,
		TotalRows:       len(t.Rows),
		Columns:         t.Columns,
		SampleData:      make([]map[string]string, 0, previewSampleRows),
		DetectedMapping: m.Names(t.Columns),
	}
	for _, row := range t.Rows[:min(previewSampleRows, len(t.Rows))] {
		sample := make(map[string]string, len(t.Columns))
		for i, col := range t.Columns {
			sample[col] = row[i]
		}
		p.SampleData = append(p.SampleData, sample)
	}

	if m[fieldProduct] >= 0 {
		p.ProductCategories = distinct(t.Rows, m[fieldProduct], previewDistinct)
	}
	if m[fieldRegion] >= 0 {
		p.Regions = distinct(t.Rows, m[fieldRegion], previewDistinct)
	}
	if m[fieldDate] >= 0 {
		p.DateRange = dateRange(t.Rows, m[fieldDate])
	}
	return p, nil
}

func distinct(rows [][]string, col, limit int) []string {
	seen := map[string]bool{}
	var out []string
	for _, row := range rows {
		v := row[col]
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

func dateRange(rows [][]string, col int) *types.DateRange {
	var first, last string
	for _, row := range rows {
		t, ok := ParseDate(row[col])
		if !ok {
			continue
		}
		day := t.Format(DateLayout)
		if first == "" || day < first {
			first = day
		}
		if day > last {
			last = day
		}
	}
	if first == "" {
		return nil
	}
	return &types.DateRange{Start: first, End: last}
}
