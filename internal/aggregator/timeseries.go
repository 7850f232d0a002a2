package aggregator

import (
	"feedback-insights-go/internal/dataset"
	"feedback-insights-go/internal/types"
)

const trendDays = 7

// timeSeries counts sentiments over the trailing week ending today (UTC).
// Records with unparseable dates are skipped.
func (a *Aggregator) timeSeries(records []types.ClassifiedFeedback) []types.TimeSeriesPoint {
	today := a.now().UTC()
	points := make([]types.TimeSeriesPoint, trendDays)
	index := make(map[string]int, trendDays)
	for i := range points {
		day := today.AddDate(0, 0, i-(trendDays-1)).Format(dataset.DateLayout)
		points[i].Date = day
		index[day] = i
	}

	for _, r := range records {
		t, ok := dataset.ParseDate(r.Date)
		if !ok {
			continue
		}
		i, ok := index[t.Format(dataset.DateLayout)]
		if !ok {
			continue
		}
		switch r.Sentiment {
		case types.SentimentPositive:
			points[i].Positive++
		case types.SentimentNegative:
			points[i].Negative++
		default:
			points[i].Neutral++
		}
	}

	if a.fill {
		for i := range points {
			a.fillPoint(&points[i])
		}
	}
	return points
}

// fillPoint replaces zero counts with plausible chart values.
func (a *Aggregator) fillPoint(p *types.TimeSeriesPoint) {
	if p.Positive == 0 {
		p.Positive, p.Synthetic = a.intn(10, 20), true
	}
	if p.Neutral == 0 {
		p.Neutral, p.Synthetic = a.intn(8, 15), true
	}
	if p.Negative == 0 {
		p.Negative, p.Synthetic = a.intn(3, 10), true
	}
}
