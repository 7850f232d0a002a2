package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/types"
)

func TestClassifyOne(t *testing.T) {
	p := New(lexicon.Default(), 1, nil)

	neg := p.ClassifyOne(types.FeedbackRecord{ID: "feedback_1", Text: "Produk ini rusak total, tidak berfungsi sama sekali"})
	assert.Equal(t, types.SentimentNegative, neg.Sentiment)
	assert.Equal(t, types.IssueFunctionalDefects, neg.IssueType)
	assert.Equal(t, types.PriorityHigh, neg.Priority)
	assert.Equal(t, types.SourceHeuristic, neg.Source)

	pos := p.ClassifyOne(types.FeedbackRecord{ID: "feedback_2", Text: "Saya sangat suka produk ini, kualitas luar biasa, recommended banget!"})
	assert.Equal(t, types.SentimentPositive, pos.Sentiment)
	assert.Contains(t, pos.Topics, "quality")
	assert.Empty(t, pos.IssueType)
	assert.Equal(t, types.PriorityLow, pos.Priority)

	plain := p.ClassifyOne(types.FeedbackRecord{ID: "feedback_3", Text: "Diterima hari Senin"})
	assert.Equal(t, []string{lexicon.DefaultTopic}, plain.Topics)
	assert.NotNil(t, plain.KeyPhrases)
}

func TestRun_PreservesOrder(t *testing.T) {
	records := make([]types.FeedbackRecord, 50)
	for i := range records {
		text := "Produk bagus sekali"
		if i%3 == 0 {
			text = "Produk rusak dan mengecewakan"
		}
		records[i] = types.FeedbackRecord{ID: fmt.Sprintf("feedback_%d", i+1), Text: text}
	}

	out, err := New(lexicon.Default(), 8, nil).Run(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, out, len(records))
	for i, r := range out {
		assert.Equal(t, records[i].ID, r.ID)
		if i%3 == 0 {
			assert.Equal(t, types.SentimentNegative, r.Sentiment, r.ID)
		}
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(lexicon.Default(), 2, nil).Run(ctx, []types.FeedbackRecord{{ID: "a", Text: "x"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Empty(t *testing.T) {
	out, err := New(lexicon.Default(), 0, nil).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
