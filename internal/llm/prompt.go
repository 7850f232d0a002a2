package llm

import (
	"fmt"
	"strings"

	"feedback-insights-go/internal/types"
)

const contextSampleSize = 10

const promptTemplate = `As an expert business analyst, analyze the following customer feedback data comprehensively.

IMPORTANT INSTRUCTIONS:
1. Detect the actual product categories from the data
2. Focus on identifying specific negative feedback patterns like:
   - Product malfunction/defects ("not function properly", "broken within a week", "stopped working")
   - Quality issues ("poor quality", "cheap material", "disappointing")
   - Service problems ("poor service", "late delivery", "rude staff")
   - Performance issues ("slow", "laggy", "overheating", "battery drain")
3. If there are sentiment, issue, or satisfaction columns in the data, prioritize those
4. Look for specific timeframes in complaints ("within a week", "after 2 days", "immediately")

Provide analysis in this exact JSON format:
{
  "sentimentAnalysis": {"positive": number, "neutral": number, "negative": number},
  "topicAnalysis": {"taste": number, "quality": number, "price": number, "packaging": number, "service": number, "delivery": number, "availability": number, "promotion": number, "brand": number},
  "issueAnalysis": {
    "functional_defects": number,
    "quality_issues": number,
    "service_problems": number,
    "delivery_issues": number,
    "performance_problems": number,
    "design_flaws": number
  },
  "regionalInsights": {"<region or city found in the data>": number},
  "productCategories": {"<product category found in the data>": number},
  "negativePatterns": [
    {
      "pattern": "specific issue pattern",
      "count": number,
      "severity": "high|medium|low",
      "examples": ["example 1", "example 2"],
      "mitigation": {
        "immediate_actions": ["action 1"],
        "long_term_solutions": ["solution 1"],
        "prevention_measures": ["measure 1"]
      }
    }
  ],
  "mitigationStrategies": {
    "immediate_response": [
      {"issue_type": "functional_defects", "strategy": "...", "timeline": "24-48 hours", "responsible_team": "Customer Service"}
    ],
    "improvement_initiatives": [
      {"focus_area": "quality_control", "initiative": "...", "expected_impact": "...", "investment_required": "medium"}
    ],
    "positive_reinforcement": [
      {"strength": "...", "amplification_strategy": "...", "marketing_opportunity": "..."}
    ]
  },
  "businessSummary": "detailed 2-3 paragraph executive summary",
  "keyFindings": ["finding 1", "finding 2", "finding 3", "finding 4", "finding 5"],
  "individualAnalysis": [
    {
      "feedbackId": "feedback_1",
      "sentiment": "positive|neutral|negative",
      "sentimentScore": -1.0 to 1.0,
      "topics": ["topic1", "topic2"],
      "keyPhrases": ["important phrase 1", "key phrase 2"],
      "priority": "high|medium|low",
      "issueType": "functional|quality|service|delivery|performance|design|none"
    }
  ]
}

Return one individualAnalysis entry per feedback line, using the id shown in brackets.

Customer Feedback Data:
%s

Additional Context:
- Products mentioned: %s
- Regions mentioned: %s
- Categories: %s

For keyPhrases, extract meaningful phrases that indicate issues:
- "stopped working", "not functioning", "broke down"
- "poor quality", "cheap material", "disappointing"
- "slow performance", "battery issues", "overheating"
- "late delivery", "damaged packaging", "wrong item"

Return ONLY valid JSON. Do not wrap it in markdown.
`

// BuildPrompt renders the batch prompt. Each record appears once as
// "[<id>] <text>".
func BuildPrompt(records []types.FeedbackRecord) string {
	var lines strings.Builder
	var products, regions, categories []string
	for _, r := range records {
		fmt.Fprintf(&lines, "[%s] %s\n", r.ID, strings.TrimSpace(r.Text))
		products = appendSample(products, r.Product)
		regions = appendSample(regions, r.Region)
		categories = appendSample(categories, r.Category)
	}

	return fmt.Sprintf(promptTemplate,
		strings.TrimRight(lines.String(), "\n"),
		strings.Join(products, ", "),
		strings.Join(regions, ", "),
		strings.Join(categories, ", "),
	)
}

func appendSample(dst []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" || len(dst) >= contextSampleSize {
		return dst
	}
	return append(dst, v)
}
