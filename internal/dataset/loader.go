// Package dataset reads customer feedback spreadsheets.
package dataset

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// Load reads the feedback records of a workbook or CSV file on disk.
func Load(path string, log *logger.Logger) ([]types.FeedbackRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Parse(f, path, log)
}

// Parse reads feedback records from r. The format follows the extension of
// filename. Rows with blank feedback text are dropped; ids keep the data
// row position, so they may have gaps.
func Parse(r io.Reader, filename string, log *logger.Logger) ([]types.FeedbackRecord, error) {
	if log == nil {
		log = logger.Discard()
	}
	log = log.Component("dataset")

	t, err := ReadTable(r, filename)
	if err != nil {
		return nil, err
	}
	m := DetectMapping(t.Columns)
	log.WithField("file", filename).
		WithField("rows", len(t.Rows)).
		WithField("mapping", m.Names(t.Columns)).
		Debug("detected columns")

	out := make([]types.FeedbackRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		rec := types.FeedbackRecord{
			ID:               fmt.Sprintf("feedback_%d", i+1),
			Text:             m.value(row, fieldText),
			Product:          m.value(row, fieldProduct),
			Region:           m.value(row, fieldRegion),
			Category:         m.value(row, fieldCategory),
			CustomerInfo:     m.value(row, fieldCustomer),
			Channel:          m.value(row, fieldChannel),
			Date:             m.value(row, fieldDate),
			Rating:           parseRating(m.value(row, fieldRating)),
			SentimentHint:    m.value(row, fieldSentiment),
			IssueHint:        m.value(row, fieldIssue),
			SatisfactionHint: m.value(row, fieldSatisfaction),
		}
		if strings.TrimSpace(rec.Text) == "" {
			continue
		}
		out = append(out, rec)
	}

	log.WithField("file", filename).WithField("records", len(out)).Info("feedback parsed")
	return out, nil
}

// parseRating accepts integer or decimal ratings, truncating decimals.
func parseRating(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return types.IntPtr(int(math.Trunc(v)))
}
