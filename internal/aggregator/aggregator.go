// Package aggregator folds classified feedback into the dashboard result.
package aggregator

import (
	"math/rand"
	"sync"
	"time"

	"feedback-insights-go/internal/actionable"
	"feedback-insights-go/internal/config"
	"feedback-insights-go/internal/issues"
	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/types"
)

// Options controls the non-deterministic parts of aggregation.
type Options struct {
	// Now anchors the time series. Defaults to time.Now.
	Now func() time.Time
	// FillerPolicy is config.FillerRandom or config.FillerNone.
	FillerPolicy string
	// Rand feeds the random filler. Defaults to a time-seeded source.
	Rand *rand.Rand
}

type Aggregator struct {
	lex  *lexicon.Lexicon
	now  func() time.Time
	fill bool

	mu  sync.Mutex
	rng *rand.Rand
}

func New(lex *lexicon.Lexicon, opts Options) *Aggregator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Aggregator{
		lex:  lex,
		now:  opts.Now,
		fill: opts.FillerPolicy != config.FillerNone,
		rng:  opts.Rand,
	}
}

// Aggregate builds the result body from classified records and the
// optional batch aggregates of the model. Identity fields (id, path,
// timestamp) are left to the caller.
func (a *Aggregator) Aggregate(records []types.ClassifiedFeedback, insights *types.ModelInsights) types.AnalysisResult {
	if insights == nil {
		insights = &types.ModelInsights{}
	}
	if records == nil {
		records = []types.ClassifiedFeedback{}
	}
	total := len(records)
	dist := sentimentDistribution(records)

	issueCounts := insights.IssueAnalysis
	if len(issueCounts) == 0 {
		issueCounts = issues.Tally(records)
	}

	patterns := insights.NegativePatterns
	if patterns == nil {
		patterns = []types.NegativePattern{}
	}

	mitigation := insights.MitigationStrategies
	if mitigation.IsEmpty() {
		mitigation = actionable.DefaultMitigation(dist, issueCounts)
	}

	findings := actionable.CompleteFindings(insights.KeyFindings, total)
	summary := insights.Summary
	if summary == "" {
		summary = actionable.FallbackSummary(total)
	}

	return types.AnalysisResult{
		TotalFeedback:           total,
		SentimentDistribution:   dist,
		TopicDistribution:       orElse(insights.TopicDistribution, func() map[string]int { return a.topics(records) }),
		IssueAnalysis:           issueCounts,
		NegativePatterns:        patterns,
		MitigationStrategies:    mitigation,
		RegionalDistribution:    orElse(insights.RegionalDistribution, func() map[string]int { return a.regions(records) }),
		ProductDistribution:     orElse(insights.ProductDistribution, func() map[string]int { return a.products(records) }),
		TimeSeriesData:          a.timeSeries(records),
		KeyFindings:             findings,
		AISummary:               summary,
		BusinessRecommendations: actionable.Recommendations(),
		IndividualFeedback:      records,
	}
}

func orElse(m map[string]int, build func() map[string]int) map[string]int {
	if len(m) > 0 {
		return m
	}
	return build()
}

func sentimentDistribution(records []types.ClassifiedFeedback) types.SentimentDistribution {
	var d types.SentimentDistribution
	for _, r := range records {
		switch r.Sentiment {
		case types.SentimentPositive:
			d.Positive++
		case types.SentimentNegative:
			d.Negative++
		default:
			d.Neutral++
		}
	}
	return d
}

func (a *Aggregator) topics(records []types.ClassifiedFeedback) map[string]int {
	out := make(map[string]int, len(a.lex.Topics)+1)
	for _, name := range a.lex.TopicNames() {
		out[name] = 0
	}
	for _, r := range records {
		for _, t := range r.Topics {
			out[t]++
		}
	}
	return out
}

func (a *Aggregator) products(records []types.ClassifiedFeedback) map[string]int {
	if len(records) == 0 {
		return map[string]int{"beverages": 0, "snacks": 0, "dairy": 0, "frozen": 0, "personal_care": 0}
	}
	out := map[string]int{}
	for _, r := range records {
		out[a.productBucket(r.FeedbackRecord)]++
	}
	return out
}

// productBucket matches the product field, then the category field, then
// the feedback text when both fields are blank.
func (a *Aggregator) productBucket(rec types.FeedbackRecord) string {
	field := rec.Product
	if field == "" {
		field = rec.Category
	}
	var text lexicon.Text
	if field != "" {
		text = lexicon.NewText(field)
	} else {
		text = lexicon.NewText(rec.Text)
	}
	for _, g := range a.lex.Products {
		if g.Set.AnyWord(text) {
			return g.Name
		}
	}
	return "other"
}

// intn draws from [lo, lo+n).
func (a *Aggregator) intn(lo, n int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return lo + a.rng.Intn(n)
}
