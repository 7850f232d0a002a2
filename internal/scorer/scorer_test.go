package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/types"
)

func newScorer() *Scorer {
	return New(lexicon.Default(), nil)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		p, n      int
		sentiment string
		score     float64
	}{
		{p: 0, n: 5, sentiment: types.SentimentNegative, score: -0.5},
		{p: 9, n: 0, sentiment: types.SentimentPositive, score: 0.9},
		{p: 2, n: 2, sentiment: types.SentimentNeutral, score: 0},
		{p: 0, n: 0, sentiment: types.SentimentNeutral, score: 0},
		{p: 0, n: 12, sentiment: types.SentimentNegative, score: -0.9},
		{p: 1, n: 3, sentiment: types.SentimentNegative, score: -0.3},
		{p: 3, n: 4, sentiment: types.SentimentNegative, score: -0.6},
		{p: 0, n: 1, sentiment: types.SentimentNegative, score: -0.15},
		{p: 20, n: 0, sentiment: types.SentimentPositive, score: 0.9},
		{p: 5, n: 0, sentiment: types.SentimentPositive, score: 0.5},
		{p: 4, n: 2, sentiment: types.SentimentPositive, score: 0.48},
		{p: 3, n: 2, sentiment: types.SentimentPositive, score: 0.15},
		{p: 2, n: 0, sentiment: types.SentimentPositive, score: 0.3},
		{p: 1, n: 1, sentiment: types.SentimentNeutral, score: 0},
		{p: 1, n: 0, sentiment: types.SentimentNeutral, score: 0.05},
	}

	for _, tt := range tests {
		sentiment, score := Classify(tt.p, tt.n)
		assert.Equal(t, tt.sentiment, sentiment, "P=%d N=%d", tt.p, tt.n)
		assert.InDelta(t, tt.score, score, 1e-9, "P=%d N=%d", tt.p, tt.n)
	}
}

func TestClassify_ScoreBounds(t *testing.T) {
	for p := 0; p <= 30; p++ {
		for n := 0; n <= 30; n++ {
			_, score := Classify(p, n)
			assert.GreaterOrEqual(t, score, -1.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
}

func TestScore_DefectiveProduct(t *testing.T) {
	res := newScorer().Score(types.FeedbackRecord{
		ID:   "feedback_1",
		Text: "Produk ini rusak total, tidak berfungsi sama sekali",
	})
	assert.Equal(t, types.SentimentNegative, res.Sentiment)
	assert.GreaterOrEqual(t, res.Negative, 5)
	assert.InDelta(t, -0.9, res.Score, 1e-9)
	assert.False(t, res.FromHint)
}

func TestScore_EnthusiasticReview(t *testing.T) {
	res := newScorer().Score(types.FeedbackRecord{
		ID:   "feedback_2",
		Text: "Saya sangat suka produk ini, kualitas luar biasa, recommended banget!",
	})
	assert.Equal(t, types.SentimentPositive, res.Sentiment)
	assert.Equal(t, 0, res.Negative)
	assert.Equal(t, 16, res.Positive)
	assert.InDelta(t, 0.9, res.Score, 1e-9)
}

func TestScore_LowRatingNeutralText(t *testing.T) {
	res := newScorer().Score(types.FeedbackRecord{
		ID:     "feedback_3",
		Text:   "Produk diterima hari Senin.",
		Rating: types.IntPtr(1),
	})
	assert.Equal(t, types.SentimentNegative, res.Sentiment)
	assert.Equal(t, 3, res.Negative)
	assert.Equal(t, 0, res.Positive)
}

func TestScore_HintOverridesText(t *testing.T) {
	res := newScorer().Score(types.FeedbackRecord{
		ID:            "feedback_4",
		Text:          "Amazing product, love it, excellent quality!",
		SentimentHint: "Negative",
	})
	assert.Equal(t, types.SentimentNegative, res.Sentiment)
	assert.InDelta(t, -0.7, res.Score, 1e-9)
	assert.True(t, res.FromHint)
}

func TestScore_UnrecognizedHintIsNeutral(t *testing.T) {
	res := newScorer().Score(types.FeedbackRecord{
		Text:          "Produk rusak total",
		SentimentHint: "mixed",
	})
	assert.Equal(t, types.SentimentNeutral, res.Sentiment)
	assert.Zero(t, res.Score)
	assert.True(t, res.FromHint)
}

func TestScore_SatisfactionHint(t *testing.T) {
	s := newScorer()

	low := s.Score(types.FeedbackRecord{Text: "Produk diterima hari Senin.", SatisfactionHint: "Tidak Puas"})
	assert.Equal(t, types.SentimentNegative, low.Sentiment)
	assert.Equal(t, 3, low.Negative)
	assert.Equal(t, 0, low.Positive, "low satisfaction never also counts as high")

	high := s.Score(types.FeedbackRecord{Text: "Produk diterima hari Senin.", SatisfactionHint: "puas"})
	assert.Equal(t, types.SentimentPositive, high.Sentiment)
	assert.Equal(t, 4, high.Positive)
	assert.InDelta(t, 0.48, high.Score, 1e-9)
}

func TestScore_IssueHint(t *testing.T) {
	res := newScorer().Score(types.FeedbackRecord{Text: "Produk diterima hari Senin.", IssueHint: "packaging"})
	assert.Equal(t, types.SentimentNegative, res.Sentiment)
	assert.Equal(t, 3, res.Negative)

	res = newScorer().Score(types.FeedbackRecord{Text: "Produk diterima hari Senin.", IssueHint: "None"})
	assert.Equal(t, types.SentimentNeutral, res.Sentiment)
}

func TestScore_NegatedRecommendation(t *testing.T) {
	s := newScorer()
	assert.Equal(t, 5, s.Score(types.FeedbackRecord{Text: "I recommend it"}).Positive)
	assert.Equal(t, 2, s.Score(types.FeedbackRecord{Text: "I do not recommend it"}).Positive)
}

// The positive word list still counts a bare "recommend" after a negator,
// so a lone negated recommendation leans positive.
func TestScore_NegatedRecommendationKeepsPositiveWord(t *testing.T) {
	res := newScorer().Score(types.FeedbackRecord{Text: "I would not recommend this"})

	assert.Equal(t, 2, res.Positive)
	assert.Zero(t, res.Negative)
	assert.Equal(t, types.SentimentPositive, res.Sentiment)
	assert.InDelta(t, 0.3, res.Score, 1e-9)
}

func TestSentimentFromHint(t *testing.T) {
	tests := []struct {
		hint      string
		sentiment string
		ok        bool
	}{
		{"Positive", types.SentimentPositive, true},
		{"sangat bagus", types.SentimentPositive, true},
		{"1", types.SentimentPositive, true},
		{"POS", types.SentimentPositive, true},
		{"negatif", types.SentimentNegative, true},
		{"-1", types.SentimentNegative, true},
		{"0", types.SentimentNegative, true},
		{"neg", types.SentimentNegative, true},
		{"Netral", types.SentimentNeutral, true},
		{"2", types.SentimentNeutral, true},
		{"mixed", types.SentimentNeutral, false},
		{"   ", types.SentimentNeutral, false},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			sentiment, _, ok := SentimentFromHint(tt.hint)
			assert.Equal(t, tt.sentiment, sentiment)
			assert.Equal(t, tt.ok, ok)
		})
	}

	assert.True(t, IsNegativeHint("Negative"))
	assert.False(t, IsNegativeHint("neutral"))
}

func TestMeaningfulIssueHint(t *testing.T) {
	assert.True(t, MeaningfulIssueHint("broken screen"))
	assert.False(t, MeaningfulIssueHint(""))
	assert.False(t, MeaningfulIssueHint(" None "))
	assert.False(t, MeaningfulIssueHint("NO"))
}

func TestShouting(t *testing.T) {
	assert.True(t, shouting("THIS IS BAD ONE"))
	assert.False(t, shouting("SHORT"))
	assert.False(t, shouting("1234567890123"))
	assert.False(t, shouting("This Is Mixed Case"))
}
