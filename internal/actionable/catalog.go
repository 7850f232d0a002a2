package actionable

import (
	"fmt"
	"strings"

	"feedback-insights-go/internal/types"
)

// Recommendations returns the fixed business recommendation catalog. The
// slice is a fresh copy on every call.
func Recommendations() []types.BusinessRecommendation {
	out := make([]types.BusinessRecommendation, len(catalog))
	for i, r := range catalog {
		r.KPIs = append([]string(nil), r.KPIs...)
		r.ActionItems = append([]string(nil), r.ActionItems...)
		out[i] = r
	}
	return out
}

var catalog = []types.BusinessRecommendation{
	{
		ID:                 "1",
		Category:           "product_development",
		Department:         "R&D Division",
		Recommendation:     "Develop regional flavor variants based on local taste preferences identified in feedback analysis",
		Priority:           types.PriorityHigh,
		Impact:             "Potential 25% increase in regional market penetration and consumer loyalty",
		ImplementationCost: "medium",
		Timeframe:          "6-9 months",
		KPIs:               []string{"Regional sales growth", "Consumer satisfaction scores", "Market share"},
		ActionItems: []string{
			"Conduct focused taste testing in target regions",
			"Develop 2-3 regional variants per product line",
			"Launch pilot programs in secondary cities",
		},
	},
	{
		ID:                 "2",
		Category:           "marketing",
		Department:         "Brand Marketing",
		Recommendation:     "Amplify taste and quality messaging in marketing campaigns to leverage consumer preferences",
		Priority:           types.PriorityHigh,
		Impact:             "Expected 20% improvement in brand perception and purchase intent",
		ImplementationCost: "low",
		Timeframe:          "2-3 months",
		KPIs:               []string{"Brand awareness", "Purchase intent", "Marketing ROI"},
		ActionItems: []string{
			"Refresh creative assets focusing on taste superiority",
			"Increase investment in digital taste challenges",
			"Partner with culinary influencers for authenticity",
		},
	},
	{
		ID:                 "3",
		Category:           "operations",
		Department:         "Supply Chain",
		Recommendation:     "Optimize distribution network to address availability issues in secondary markets",
		Priority:           types.PriorityHigh,
		Impact:             "Reduce stockouts by 40% and improve market coverage by 15%",
		ImplementationCost: "high",
		Timeframe:          "9-12 months",
		KPIs:               []string{"Product availability", "Distribution coverage", "Customer complaints"},
		ActionItems: []string{
			"Establish regional distribution hubs",
			"Implement real-time inventory tracking",
			"Partner with local distributors in tier-2 cities",
		},
	},
	{
		ID:                 "4",
		Category:           "marketing",
		Department:         "Trade Marketing",
		Recommendation:     "Implement tier-based pricing strategy to address regional price sensitivity variations",
		Priority:           types.PriorityMedium,
		Impact:             "Potential 12% volume increase in price-sensitive markets",
		ImplementationCost: "low",
		Timeframe:          "3-4 months",
		KPIs:               []string{"Volume growth", "Price elasticity", "Margin optimization"},
		ActionItems: []string{
			"Analyze regional price elasticity data",
			"Develop value-pack offerings for tier-2 cities",
			"Test promotional pricing strategies",
		},
	},
	{
		ID:                 "5",
		Category:           "rnd",
		Department:         "Packaging Innovation",
		Recommendation:     "Accelerate sustainable packaging initiatives based on strong consumer demand signals",
		Priority:           types.PriorityMedium,
		Impact:             "Strengthen brand differentiation and appeal to eco-conscious consumers",
		ImplementationCost: "medium",
		Timeframe:          "6-8 months",
		KPIs:               []string{"Sustainability metrics", "Consumer preference scores", "Cost efficiency"},
		ActionItems: []string{
			"Research biodegradable packaging alternatives",
			"Pilot eco-friendly packaging in select products",
			"Communicate sustainability efforts to consumers",
		},
	},
}

// KeyFindingCount is the number of key findings every report carries.
const KeyFindingCount = 5

// CompleteFindings returns exactly KeyFindingCount findings: the non-blank
// model findings first, then fallback findings not already present.
func CompleteFindings(model []string, total int) []string {
	out := make([]string, 0, KeyFindingCount)
	seen := make(map[string]bool, KeyFindingCount)
	add := func(f string) {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] || len(out) == KeyFindingCount {
			return
		}
		seen[f] = true
		out = append(out, f)
	}
	for _, f := range model {
		add(f)
	}
	for _, f := range FallbackFindings(total) {
		add(f)
	}
	return out
}

// FallbackFindings are the key findings used when the model supplied none.
func FallbackFindings(total int) []string {
	return []string{
		fmt.Sprintf("Analyzed %d customer feedback entries", total),
		"Sentiment patterns vary across different product categories",
		"Regional distribution shows concentration in major Indonesian cities",
		"Product quality and taste are frequently mentioned topics",
		"Consumer feedback provides insights for business optimization",
	}
}

// FallbackSummary is the executive summary used when the model supplied none.
func FallbackSummary(total int) string {
	return fmt.Sprintf("Analysis of %d consumer feedback entries provides valuable insights for FMCG operations. "+
		"The data reveals sentiment trends, topic preferences, and regional patterns that can inform strategic decisions.", total)
}
