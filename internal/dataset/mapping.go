package dataset

import (
	"strings"

	"feedback-insights-go/internal/types"
)

// Record fields that can be mapped to a column.
const (
	fieldText = iota
	fieldProduct
	fieldRegion
	fieldCategory
	fieldSentiment
	fieldSatisfaction
	fieldIssue
	fieldRating
	fieldDate
	fieldCustomer
	fieldChannel
	fieldCount
)

// columnKeywords holds the header substrings for each field. A column may
// serve several fields; the first matching column wins per field.
var columnKeywords = [fieldCount][]string{
	fieldText:         {"feedback", "comment", "review", "text", "komentar", "ulasan", "pendapat", "masukan", "complaint", "keluhan", "experience", "pengalaman", "response", "respon"},
	fieldProduct:      {"product", "produk", "item", "barang"},
	fieldRegion:       {"region", "area", "city", "kota", "location", "lokasi", "province", "provinsi", "state", "country", "negara", "wilayah", "daerah", "address", "alamat", "origin", "asal"},
	fieldCategory:     {"category", "kategori", "type", "tipe"},
	fieldSentiment:    {"sentiment", "sentimen", "feeling", "mood", "emotion", "emosi", "satisfaction", "kepuasan"},
	fieldSatisfaction: {"satisfaction", "kepuasan", "happy", "puas"},
	fieldIssue:        {"issue", "problem", "masalah", "trouble", "error", "defect", "cacat", "broken", "rusak"},
	fieldRating:       {"rating", "nilai", "score"},
	fieldDate:         {"date", "tanggal", "time"},
	fieldCustomer:     {"customer", "name", "nama"},
	fieldChannel:      {"channel", "saluran"},
}

// Mapping holds the column index of each field, -1 when absent.
type Mapping [fieldCount]int

// DetectMapping matches headers against the column keywords. The text
// field falls back to the first column.
func DetectMapping(columns []string) Mapping {
	var m Mapping
	for f := range m {
		m[f] = -1
		for i, col := range columns {
			if containsAny(strings.ToLower(col), columnKeywords[f]) {
				m[f] = i
				break
			}
		}
	}
	if m[fieldText] == -1 && len(columns) > 0 {
		m[fieldText] = 0
	}
	return m
}

func (m Mapping) value(row []string, f int) string {
	if i := m[f]; i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}

// Names resolves the mapping to header names.
func (m Mapping) Names(columns []string) types.ColumnMapping {
	name := func(f int) string {
		if i := m[f]; i >= 0 && i < len(columns) {
			return columns[i]
		}
		return ""
	}
	return types.ColumnMapping{
		Feedback:     name(fieldText),
		Product:      name(fieldProduct),
		Category:     name(fieldCategory),
		Region:       name(fieldRegion),
		Date:         name(fieldDate),
		Rating:       name(fieldRating),
		Customer:     name(fieldCustomer),
		Channel:      name(fieldChannel),
		Sentiment:    name(fieldSentiment),
		Issue:        name(fieldIssue),
		Satisfaction: name(fieldSatisfaction),
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
