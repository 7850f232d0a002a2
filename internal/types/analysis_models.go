// internal/types/analysis_models.go
package types

import "time"

// --------------------------------------------
// FINAL output delivered to the dashboard
// --------------------------------------------
type AnalysisResponse struct {
	Status         string          `json:"status"`
	Analysis       *AnalysisResult `json:"analysis,omitempty"`
	ProcessingTime string          `json:"processingTime,omitempty"`
	Error          string          `json:"error,omitempty"`
}

type AnalysisResult struct {
	AnalysisID              string                   `json:"analysisId"`
	AnalysisPath            string                   `json:"analysisPath"`
	GeneratedAt             time.Time                `json:"generatedAt"`
	TotalFeedback           int                      `json:"totalFeedback"`
	SentimentDistribution   SentimentDistribution    `json:"sentimentDistribution"`
	TopicDistribution       map[string]int           `json:"topicDistribution"`
	IssueAnalysis           map[string]int           `json:"issueAnalysis"`
	NegativePatterns        []NegativePattern        `json:"negativePatterns"`
	MitigationStrategies    MitigationStrategies     `json:"mitigationStrategies"`
	RegionalDistribution    map[string]int           `json:"regionalDistribution"`
	ProductDistribution     map[string]int           `json:"productDistribution"`
	TimeSeriesData          []TimeSeriesPoint        `json:"timeSeriesData"`
	KeyFindings             []string                 `json:"keyFindings"`
	AISummary               string                   `json:"aiSummary"`
	BusinessRecommendations []BusinessRecommendation `json:"businessRecommendations"`
	IndividualFeedback      []ClassifiedFeedback     `json:"individualFeedback"`
}

// Analysis paths.
const (
	PathPrimary   = "primary"
	PathHeuristic = "heuristic"
)

type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Total is the number of records counted.
func (d SentimentDistribution) Total() int {
	return d.Positive + d.Neutral + d.Negative
}

// --------------------------------------------
// Negative patterns (AI-sourced only)
// --------------------------------------------
type NegativePattern struct {
	Pattern    string             `json:"pattern"`
	Count      int                `json:"count"`
	Severity   string             `json:"severity"`
	Examples   []string           `json:"examples"`
	Mitigation *PatternMitigation `json:"mitigation,omitempty"`
}

type PatternMitigation struct {
	ImmediateActions   []string `json:"immediate_actions"`
	LongTermSolutions  []string `json:"long_term_solutions"`
	PreventionMeasures []string `json:"prevention_measures"`
}

// --------------------------------------------
// Mitigation strategy buckets
// --------------------------------------------
type MitigationStrategies struct {
	ImmediateResponse      []ImmediateResponse     `json:"immediate_response"`
	ImprovementInitiatives []ImprovementInitiative `json:"improvement_initiatives"`
	PositiveReinforcement  []PositiveReinforcement `json:"positive_reinforcement"`
}

// IsEmpty reports whether every bucket is empty.
func (m MitigationStrategies) IsEmpty() bool {
	return len(m.ImmediateResponse) == 0 && len(m.ImprovementInitiatives) == 0 && len(m.PositiveReinforcement) == 0
}

type ImmediateResponse struct {
	IssueType       string `json:"issue_type"`
	Strategy        string `json:"strategy"`
	Timeline        string `json:"timeline"`
	ResponsibleTeam string `json:"responsible_team"`
}

type ImprovementInitiative struct {
	FocusArea          string `json:"focus_area"`
	Initiative         string `json:"initiative"`
	ExpectedImpact     string `json:"expected_impact"`
	InvestmentRequired string `json:"investment_required"`
}

type PositiveReinforcement struct {
	Strength              string `json:"strength"`
	AmplificationStrategy string `json:"amplification_strategy"`
	MarketingOpportunity  string `json:"marketing_opportunity"`
}

// --------------------------------------------
// Trend chart entry
// --------------------------------------------
type TimeSeriesPoint struct {
	Date      string `json:"date"`
	Positive  int    `json:"positive"`
	Neutral   int    `json:"neutral"`
	Negative  int    `json:"negative"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// --------------------------------------------
// Static recommendation catalog entry
// --------------------------------------------
type BusinessRecommendation struct {
	ID                 string   `json:"id"`
	Category           string   `json:"category"`
	Department         string   `json:"department"`
	Recommendation     string   `json:"recommendation"`
	Priority           string   `json:"priority"`
	Impact             string   `json:"impact"`
	ImplementationCost string   `json:"implementationCost"`
	Timeframe          string   `json:"timeframe"`
	KPIs               []string `json:"kpis"`
	ActionItems        []string `json:"actionItems"`
}

// --------------------------------------------
// Upload preview
// --------------------------------------------
type FilePreview struct {
	Filename          string              `json:"filename"`
	TotalRows         int                 `json:"totalRows"`
	Columns           []string            `json:"columns"`
	SampleData        []map[string]string `json:"sampleData"`
	DetectedMapping   ColumnMapping       `json:"detectedMapping"`
	DateRange         *DateRange          `json:"dateRange,omitempty"`
	ProductCategories []string            `json:"productCategories,omitempty"`
	Regions           []string            `json:"regions,omitempty"`
}

type ColumnMapping struct {
	Feedback     string `json:"feedback"`
	Product      string `json:"product,omitempty"`
	Category     string `json:"category,omitempty"`
	Region       string `json:"region,omitempty"`
	Date         string `json:"date,omitempty"`
	Rating       string `json:"rating,omitempty"`
	Customer     string `json:"customer,omitempty"`
	Channel      string `json:"channel,omitempty"`
	Sentiment    string `json:"sentiment,omitempty"`
	Issue        string `json:"issue,omitempty"`
	Satisfaction string `json:"satisfaction,omitempty"`
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// --------------------------------------------
// Batch-level aggregates returned by the model
// --------------------------------------------
type ModelInsights struct {
	TopicDistribution    map[string]int
	IssueAnalysis        map[string]int
	RegionalDistribution map[string]int
	ProductDistribution  map[string]int
	NegativePatterns     []NegativePattern
	MitigationStrategies MitigationStrategies
	KeyFindings          []string
	Summary              string
}
