// Package actionable holds the static recommendation catalog and the
// rule-based mitigation plan used when the model supplies none.
package actionable

import (
	"fmt"

	"feedback-insights-go/internal/types"
)

// DefaultMitigation builds the mitigation plan from the sentiment counts and
// issue tally. It is empty when there is no negative feedback.
func DefaultMitigation(dist types.SentimentDistribution, issues map[string]int) types.MitigationStrategies {
	out := types.MitigationStrategies{
		ImmediateResponse:      []types.ImmediateResponse{},
		ImprovementInitiatives: []types.ImprovementInitiative{},
		PositiveReinforcement:  []types.PositiveReinforcement{},
	}
	if dist.Negative == 0 {
		return out
	}

	strategy := fmt.Sprintf("Contact the %d affected customers with a personalized response and offer fixes, replacements or full refunds", dist.Negative)
	out.ImmediateResponse = append(out.ImmediateResponse, types.ImmediateResponse{
		IssueType:       "negative_feedback",
		Strategy:        strategy,
		Timeline:        "24-48 hours",
		ResponsibleTeam: "Customer Service",
	})
	if issues[types.IssueFunctionalDefects] > 0 {
		out.ImmediateResponse = append(out.ImmediateResponse, types.ImmediateResponse{
			IssueType:       types.IssueFunctionalDefects,
			Strategy:        "Escalate critical product defects to engineering and start an immediate replacement or refund program",
			Timeline:        "24-48 hours",
			ResponsibleTeam: "Engineering",
		})
	}
	if issues[types.IssueDeliveryIssues] > 0 {
		out.ImmediateResponse = append(out.ImmediateResponse, types.ImmediateResponse{
			IssueType:       types.IssueDeliveryIssues,
			Strategy:        "Trace late or lost shipments with logistics partners and reship damaged orders",
			Timeline:        "48-72 hours",
			ResponsibleTeam: "Logistics",
		})
	}

	for _, rule := range initiativeRules {
		if issues[rule.category] > 0 {
			out.ImprovementInitiatives = append(out.ImprovementInitiatives, rule.initiative)
		}
	}
	if len(out.ImprovementInitiatives) == 0 {
		out.ImprovementInitiatives = append(out.ImprovementInitiatives, types.ImprovementInitiative{
			FocusArea:          "root_cause_analysis",
			Initiative:         "Create detailed issue documentation for pattern analysis and review it monthly",
			ExpectedImpact:     "Prevent repeat complaints by addressing recurring causes",
			InvestmentRequired: "low",
		})
	}

	if dist.Positive > 0 {
		out.PositiveReinforcement = append(out.PositiveReinforcement, types.PositiveReinforcement{
			Strength:              fmt.Sprintf("%d positive customer experiences", dist.Positive),
			AmplificationStrategy: "Create customer success stories and launch referral and loyalty reward programs",
			MarketingOpportunity:  "Highlight top-rated product features and share positive reviews on social media",
		})
	} else {
		out.PositiveReinforcement = append(out.PositiveReinforcement, types.PositiveReinforcement{
			Strength:              "Resolved complaint cases",
			AmplificationStrategy: "Follow up within 48 hours of every resolution to confirm customer satisfaction",
			MarketingOpportunity:  "Publish responsiveness commitments once resolution rates improve",
		})
	}
	return out
}

var initiativeRules = []struct {
	category   string
	initiative types.ImprovementInitiative
}{
	{
		category: types.IssueQualityIssues,
		initiative: types.ImprovementInitiative{
			FocusArea:          "quality_control",
			Initiative:         "Quality control overhaul: multi-stage testing, supplier audits and systematic inspection",
			ExpectedImpact:     "Reduce quality-related complaints by 70% within 3 months",
			InvestmentRequired: "high",
		},
	},
	{
		category: types.IssuePerformanceProblems,
		initiative: types.ImprovementInitiative{
			FocusArea:          "performance",
			Initiative:         "Performance issues resolution program: bottleneck analysis, component optimization and firmware updates",
			ExpectedImpact:     "Reduce performance complaints by 80%",
			InvestmentRequired: "medium",
		},
	},
	{
		category: types.IssueServiceProblems,
		initiative: types.ImprovementInitiative{
			FocusArea:          "customer_service",
			Initiative:         "Customer service enhancement program: staff training, escalation procedures and quality monitoring",
			ExpectedImpact:     "Reduce service complaints by 75%",
			InvestmentRequired: "medium",
		},
	},
}
