package scorer

import (
	"strings"

	"feedback-insights-go/internal/types"
)

var (
	positiveHintWords = []string{"positive", "positif", "good", "bagus"}
	negativeHintWords = []string{"negative", "negatif", "bad", "buruk"}
	neutralHintWords  = []string{"neutral", "netral"}

	// short codes are compared exactly
	positiveHintCodes = []string{"1", "pos"}
	negativeHintCodes = []string{"-1", "0", "neg"}
	neutralHintCodes  = []string{"2", "neu"}
)

// SentimentFromHint maps an explicit sentiment column value to a label and
// fixed score. ok is false for unrecognized values, which map to neutral.
func SentimentFromHint(hint string) (sentiment string, score float64, ok bool) {
	h := strings.ToLower(strings.TrimSpace(hint))
	switch {
	case h == "":
		return types.SentimentNeutral, 0, false
	case containsAny(h, positiveHintWords) || equalsAny(h, positiveHintCodes):
		return types.SentimentPositive, 0.7, true
	case containsAny(h, negativeHintWords) || equalsAny(h, negativeHintCodes):
		return types.SentimentNegative, -0.7, true
	case containsAny(h, neutralHintWords) || equalsAny(h, neutralHintCodes):
		return types.SentimentNeutral, 0, true
	default:
		return types.SentimentNeutral, 0, false
	}
}

// IsNegativeHint reports whether hint explicitly marks a record negative.
func IsNegativeHint(hint string) bool {
	sentiment, _, ok := SentimentFromHint(hint)
	return ok && sentiment == types.SentimentNegative
}

// MeaningfulIssueHint reports whether an issue column value names an issue.
func MeaningfulIssueHint(hint string) bool {
	h := strings.ToLower(strings.TrimSpace(hint))
	return h != "" && h != "none" && h != "no"
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func equalsAny(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
