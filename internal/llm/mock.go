package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"feedback-insights-go/internal/types"
)

// Mock is an offline provider for demos and tests. It answers
// deterministically from the record ratings.
type Mock struct{}

func NewMock() *Mock { return &Mock{} }

func (m *Mock) Name() string { return "mock" }

func (m *Mock) Complete(_ context.Context, req Request) (string, error) {
	dist := map[string]int{}
	items := make([]map[string]any, 0, len(req.Records))
	var negatives []string

	for _, r := range req.Records {
		sentiment, score, issue := types.SentimentNeutral, 0.0, "none"
		switch {
		case r.Rating != nil && *r.Rating >= 4:
			sentiment, score = types.SentimentPositive, 0.8
		case r.Rating != nil && *r.Rating <= 2:
			sentiment, score, issue = types.SentimentNegative, -0.8, "quality"
			if len(negatives) < 2 {
				negatives = append(negatives, r.Text)
			}
		}
		dist[sentiment]++
		items = append(items, map[string]any{
			"feedbackId":     r.ID,
			"sentiment":      sentiment,
			"sentimentScore": score,
			"topics":         []string{"quality"},
			"keyPhrases":     []string{},
			"priority":       types.PriorityFor(sentiment),
			"issueType":      issue,
		})
	}

	patterns := []map[string]any{}
	if dist[types.SentimentNegative] > 0 {
		patterns = append(patterns, map[string]any{
			"pattern":  "Low-rated quality complaints",
			"count":    dist[types.SentimentNegative],
			"severity": types.PriorityHigh,
			"examples": negatives,
		})
	}

	resp := map[string]any{
		"sentimentAnalysis": dist,
		"topicAnalysis":     map[string]int{"quality": len(req.Records)},
		"negativePatterns":  patterns,
		"businessSummary":   fmt.Sprintf("Mock analysis of %d feedback entries.", len(req.Records)),
		"keyFindings": []string{
			fmt.Sprintf("%d positive, %d neutral and %d negative entries",
				dist[types.SentimentPositive], dist[types.SentimentNeutral], dist[types.SentimentNegative]),
			fmt.Sprintf("%d entries flagged as low-rated quality complaints", dist[types.SentimentNegative]),
			"Quality is the most discussed topic",
			"Ratings of 4 or more read as positive",
			"Unrated entries read as neutral",
		},
		"individualAnalysis": items,
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return "", fail(ReasonParse, err)
	}
	// models like to fence their JSON
	return "```json\n" + string(data) + "\n```", nil
}
