package types

// Sentiment polarity labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Priority labels.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Issue categories, in classifier priority order.
const (
	IssueFunctionalDefects   = "functional_defects"
	IssueQualityIssues       = "quality_issues"
	IssueServiceProblems     = "service_problems"
	IssueDeliveryIssues      = "delivery_issues"
	IssuePerformanceProblems = "performance_problems"
	IssueDesignFlaws         = "design_flaws"
)

// IssueCategories lists every issue category in first-match order.
var IssueCategories = []string{
	IssueFunctionalDefects,
	IssueQualityIssues,
	IssueServiceProblems,
	IssueDeliveryIssues,
	IssuePerformanceProblems,
	IssueDesignFlaws,
}

// Classification sources.
const (
	SourceAI        = "ai"
	SourceHeuristic = "heuristic"
)

// FeedbackRecord is one normalized spreadsheet row.
type FeedbackRecord struct {
	ID               string `json:"id"`
	Text             string `json:"feedback"`
	Product          string `json:"product,omitempty"`
	Region           string `json:"region,omitempty"`
	Category         string `json:"category,omitempty"`
	CustomerInfo     string `json:"customerInfo,omitempty"`
	Channel          string `json:"channel,omitempty"`
	Date             string `json:"date,omitempty"`
	Rating           *int   `json:"rating,omitempty"`
	SentimentHint    string `json:"sentiment,omitempty"`
	IssueHint        string `json:"issue,omitempty"`
	SatisfactionHint string `json:"satisfaction,omitempty"`
}

// ClassifiedFeedback is a FeedbackRecord plus the per-record decisions.
type ClassifiedFeedback struct {
	FeedbackRecord
	Sentiment      string   `json:"aiSentiment"`
	SentimentScore float64  `json:"sentimentScore"`
	Topics         []string `json:"aiTopics"`
	KeyPhrases     []string `json:"keyPhrases"`
	Priority       string   `json:"priority"`
	IssueType      string   `json:"issueType,omitempty"`
	Source         string   `json:"source"`
}

// PriorityFor derives the default priority of a sentiment label.
func PriorityFor(sentiment string) string {
	switch sentiment {
	case SentimentNegative:
		return PriorityHigh
	case SentimentPositive:
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// IntPtr is a small helper for optional ratings.
func IntPtr(v int) *int { return &v }
