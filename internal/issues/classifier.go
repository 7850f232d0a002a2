// Package issues assigns a single issue category to issue-bearing feedback.
package issues

import (
	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/scorer"
	"feedback-insights-go/internal/types"
)

// Classifier is safe for concurrent use.
type Classifier struct {
	gate         *lexicon.Set
	satisfaction *lexicon.Set
	categories   []lexicon.Group
}

func New(lex *lexicon.Lexicon) *Classifier {
	return &Classifier{
		gate:         lex.IssueGate,
		satisfaction: lex.Set("satisfaction_issue"),
		categories:   lex.IssueCategories,
	}
}

// Classify returns the issue category of rec. ok is false when the record
// carries no issue signal at all.
func (c *Classifier) Classify(rec types.FeedbackRecord, sentiment string) (category string, ok bool) {
	text := lexicon.NewText(rec.Text)
	if !c.issueBearing(rec, sentiment, text) {
		return "", false
	}
	for _, g := range c.categories {
		if g.Set.Any(text) {
			return g.Name, true
		}
	}
	return types.IssueQualityIssues, true
}

func (c *Classifier) issueBearing(rec types.FeedbackRecord, sentiment string, text lexicon.Text) bool {
	switch {
	case sentiment == types.SentimentNegative:
		return true
	case scorer.IsNegativeHint(rec.SentimentHint):
		return true
	case c.satisfaction.Any(lexicon.NewText(rec.SatisfactionHint)):
		return true
	case scorer.MeaningfulIssueHint(rec.IssueHint):
		return true
	default:
		return c.gate.Any(text)
	}
}

// Tally counts categories over classified records. Every category is present.
func Tally(records []types.ClassifiedFeedback) map[string]int {
	out := make(map[string]int, len(types.IssueCategories))
	for _, cat := range types.IssueCategories {
		out[cat] = 0
	}
	for _, r := range records {
		if r.IssueType != "" {
			out[r.IssueType]++
		}
	}
	return out
}
