package actionable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-insights-go/internal/types"
)

func TestDefaultMitigation_NoNegatives(t *testing.T) {
	m := DefaultMitigation(types.SentimentDistribution{Positive: 4, Neutral: 1}, nil)
	assert.True(t, m.IsEmpty())
	assert.NotNil(t, m.ImmediateResponse, "buckets serialize as empty lists")
}

func TestDefaultMitigation_WithNegatives(t *testing.T) {
	issues := map[string]int{
		types.IssueFunctionalDefects: 2,
		types.IssueQualityIssues:     1,
		types.IssueServiceProblems:   1,
	}
	m := DefaultMitigation(types.SentimentDistribution{Positive: 2, Negative: 3}, issues)

	require.Len(t, m.ImmediateResponse, 2)
	assert.Contains(t, m.ImmediateResponse[0].Strategy, "3 affected customers")
	assert.Equal(t, types.IssueFunctionalDefects, m.ImmediateResponse[1].IssueType)

	require.Len(t, m.ImprovementInitiatives, 2)
	assert.Equal(t, "quality_control", m.ImprovementInitiatives[0].FocusArea)
	assert.Equal(t, "customer_service", m.ImprovementInitiatives[1].FocusArea)

	require.Len(t, m.PositiveReinforcement, 1)
	assert.Contains(t, m.PositiveReinforcement[0].Strength, "2 positive")
}

func TestDefaultMitigation_EveryBucketPopulated(t *testing.T) {
	m := DefaultMitigation(types.SentimentDistribution{Negative: 1}, map[string]int{})
	assert.Len(t, m.ImmediateResponse, 1)
	assert.Len(t, m.ImprovementInitiatives, 1)
	assert.Len(t, m.PositiveReinforcement, 1)
}

func TestRecommendations(t *testing.T) {
	recs := Recommendations()
	require.Len(t, recs, 5)
	for i, r := range recs {
		assert.NotEmpty(t, r.Recommendation, "entry %d", i)
		assert.Len(t, r.ActionItems, 3, "entry %d", i)
	}

	recs[0].KPIs[0] = "changed"
	assert.NotEqual(t, "changed", Recommendations()[0].KPIs[0])
}

func TestFallbackText(t *testing.T) {
	findings := FallbackFindings(12)
	assert.Len(t, findings, 5)
	assert.Equal(t, "Analyzed 12 customer feedback entries", findings[0])
	assert.Contains(t, FallbackSummary(12), "12 consumer feedback entries")
}

func TestCompleteFindings(t *testing.T) {
	tests := []struct {
		name  string
		model []string
		first []string
	}{
		{"none from model", nil, []string{"Analyzed 3 customer feedback entries"}},
		{"short list padded", []string{"Taste complaints dominate", " "}, []string{"Taste complaints dominate", "Analyzed 3 customer feedback entries"}},
		{"duplicates dropped", []string{"Analyzed 3 customer feedback entries", "Analyzed 3 customer feedback entries"}, []string{"Analyzed 3 customer feedback entries", "Sentiment patterns vary across different product categories"}},
		{"long list capped", []string{"a", "b", "c", "d", "e", "f"}, []string{"a", "b", "c", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompleteFindings(tt.model, 3)
			require.Len(t, got, KeyFindingCount)
			assert.Equal(t, tt.first, got[:len(tt.first)])
		})
	}
}
