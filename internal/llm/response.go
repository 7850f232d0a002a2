package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/types"
)

// modelResponse mirrors the JSON shape requested in the prompt. Every
// member is optional.
type modelResponse struct {
	SentimentAnalysis    Counts                     `json:"sentimentAnalysis"`
	TopicAnalysis        Counts                     `json:"topicAnalysis"`
	IssueAnalysis        Counts                     `json:"issueAnalysis"`
	RegionalInsights     Counts                     `json:"regionalInsights"`
	ProductCategories    Counts                     `json:"productCategories"`
	NegativePatterns     []negativePattern          `json:"negativePatterns"`
	MitigationStrategies types.MitigationStrategies `json:"mitigationStrategies"`
	BusinessSummary      string                     `json:"businessSummary"`
	KeyFindings          stringList                 `json:"keyFindings"`
	IndividualAnalysis   []item                     `json:"individualAnalysis"`
}

type item struct {
	FeedbackID     string     `json:"feedbackId"`
	Sentiment      string     `json:"sentiment"`
	SentimentScore flexFloat  `json:"sentimentScore"`
	Topics         stringList `json:"topics"`
	KeyPhrases     stringList `json:"keyPhrases"`
	Priority       string     `json:"priority"`
	IssueType      string     `json:"issueType"`
}

type negativePattern struct {
	Pattern    string                   `json:"pattern"`
	Count      flexFloat                `json:"count"`
	Severity   string                   `json:"severity"`
	Examples   stringList               `json:"examples"`
	Mitigation *types.PatternMitigation `json:"mitigation"`
}

// Counts decodes a JSON object of numbers. Members that are not numeric
// are skipped; a value that is not an object decodes as empty.
type Counts map[string]int

func (c *Counts) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		*c = nil
		return nil
	}
	out := make(Counts, len(raw))
	for k, v := range raw {
		var f flexFloat
		if json.Unmarshal(v, &f) != nil || !f.set || f.v < 0 {
			continue
		}
		out[k] = int(math.Round(f.v))
	}
	*c = out
	return nil
}

// flexFloat accepts a JSON number or a numeric string. Anything else
// decodes as unset.
type flexFloat struct {
	v   float64
	set bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	var v float64
	if b[0] == '"' {
		var s string
		if json.Unmarshal(b, &s) != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = parsed
	} else if json.Unmarshal(b, &v) != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	f.v, f.set = v, true
	return nil
}

// stringList accepts an array of strings (other elements skipped) or a
// single string.
type stringList []string

func (l *stringList) UnmarshalJSON(b []byte) error {
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		if strings.TrimSpace(one) != "" {
			*l = stringList{one}
		}
		return nil
	}
	var many []json.RawMessage
	if err := json.Unmarshal(b, &many); err != nil {
		return nil
	}
	out := make(stringList, 0, len(many))
	for _, m := range many {
		var s string
		if json.Unmarshal(m, &s) == nil && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

func parseResponse(content string) (*modelResponse, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fail(ReasonEmpty, errors.New("empty completion"))
	}
	raw := extractJSON(content)
	if raw == "" {
		return nil, fail(ReasonParse, errors.New("no JSON object in completion"))
	}
	var resp modelResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fail(ReasonParse, fmt.Errorf("decode completion: %w", err))
	}
	return &resp, nil
}

var issueTypes = map[string]string{
	"functional":  types.IssueFunctionalDefects,
	"quality":     types.IssueQualityIssues,
	"service":     types.IssueServiceProblems,
	"delivery":    types.IssueDeliveryIssues,
	"performance": types.IssuePerformanceProblems,
	"design":      types.IssueDesignFlaws,
}

func normalizeIssueType(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if cat, ok := issueTypes[v]; ok {
		return cat
	}
	for _, cat := range types.IssueCategories {
		if v == cat {
			return cat
		}
	}
	return ""
}

func normalizeSentiment(v string) string {
	switch s := strings.ToLower(strings.TrimSpace(v)); s {
	case types.SentimentPositive, types.SentimentNeutral, types.SentimentNegative:
		return s
	default:
		return types.SentimentNeutral
	}
}

func normalizePriority(v string) string {
	switch p := strings.ToLower(strings.TrimSpace(v)); p {
	case types.PriorityHigh, types.PriorityMedium, types.PriorityLow:
		return p
	default:
		return types.PriorityMedium
	}
}

// mapResponse joins response items to records by id, falling back to
// position for items without an id. Unmatched records get neutral defaults.
func mapResponse(records []types.FeedbackRecord, resp *modelResponse) *BatchResult {
	byID := make(map[string]item, len(resp.IndividualAnalysis))
	for _, it := range resp.IndividualAnalysis {
		if id := strings.TrimSpace(it.FeedbackID); id != "" {
			if _, dup := byID[id]; !dup {
				byID[id] = it
			}
		}
	}

	out := &BatchResult{Records: make([]types.ClassifiedFeedback, len(records))}
	for i, rec := range records {
		it, ok := byID[rec.ID]
		if !ok && i < len(resp.IndividualAnalysis) && strings.TrimSpace(resp.IndividualAnalysis[i].FeedbackID) == "" {
			it, ok = resp.IndividualAnalysis[i], true
		}
		if ok {
			out.Matched++
		}
		out.Records[i] = classify(rec, it)
	}

	out.Insights = types.ModelInsights{
		TopicDistribution:    resp.TopicAnalysis,
		IssueAnalysis:        resp.IssueAnalysis,
		RegionalDistribution: resp.RegionalInsights,
		ProductDistribution:  resp.ProductCategories,
		NegativePatterns:     convertPatterns(resp.NegativePatterns),
		MitigationStrategies: resp.MitigationStrategies,
		KeyFindings:          resp.KeyFindings,
		Summary:              strings.TrimSpace(resp.BusinessSummary),
	}
	return out
}

func classify(rec types.FeedbackRecord, it item) types.ClassifiedFeedback {
	topics := []string(it.Topics)
	if len(topics) == 0 {
		topics = []string{lexicon.DefaultTopic}
	}
	phrases := []string(it.KeyPhrases)
	if phrases == nil {
		phrases = []string{}
	}
	return types.ClassifiedFeedback{
		FeedbackRecord: rec,
		Sentiment:      normalizeSentiment(it.Sentiment),
		SentimentScore: math.Max(-1, math.Min(1, it.SentimentScore.v)),
		Topics:         topics,
		KeyPhrases:     phrases,
		Priority:       normalizePriority(it.Priority),
		IssueType:      normalizeIssueType(it.IssueType),
		Source:         types.SourceAI,
	}
}

func convertPatterns(in []negativePattern) []types.NegativePattern {
	out := make([]types.NegativePattern, 0, len(in))
	for _, p := range in {
		if strings.TrimSpace(p.Pattern) == "" {
			continue
		}
		examples := []string(p.Examples)
		if examples == nil {
			examples = []string{}
		}
		out = append(out, types.NegativePattern{
			Pattern:    p.Pattern,
			Count:      int(math.Round(math.Max(0, p.Count.v))),
			Severity:   normalizePriority(p.Severity),
			Examples:   examples,
			Mitigation: p.Mitigation,
		})
	}
	return out
}

// extractJSON finds the first balanced JSON object in a string and returns it.
// It strips common markdown fences first.
func extractJSON(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, r := range []string{"```json", "```JSON", "```"} {
		s = strings.ReplaceAll(s, r, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
