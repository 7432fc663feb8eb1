package notify

import (
	"fmt"
	"strings"

	"github.com/plantops/greenops/internal/domain"
)

var priorityEmoji = map[string]string{
	"CRITICAL": "🚨",
	"HIGH":     "⚠️",
	"MEDIUM":   "⚡",
	"LOW":      "ℹ️",
}

func emojiFor(level string) string {
	if e, ok := priorityEmoji[level]; ok {
		return e
	}
	return "📋"
}

// humanizeType turns PAINT_OVEN_IDLE into "Paint Oven Idle".
func humanizeType(t domain.AnomalyType) string {
	words := strings.Split(strings.ToLower(string(t)), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// PlanAlertText renders a remediation plan as a rich chat alert suitable
// for Slack-style channels.
func PlanAlertText(plan *domain.RemediationPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s *%s PRIORITY ALERT*\n\n", emojiFor(plan.Priority.Level), plan.Priority.Level)
	fmt.Fprintf(&b, "*Anomaly Detected:* %s\n", humanizeType(plan.AnomalyDetails.Type))
	fmt.Fprintf(&b, "*Zone:* %s\n", plan.AnomalyDetails.Zone)
	fmt.Fprintf(&b, "*Category:* %s\n", plan.AnomalyDetails.Category)
	fmt.Fprintf(&b, "*Detected:* %s\n\n", plan.AnomalyDetails.DetectedAt.Format("2006-01-02 15:04"))

	fmt.Fprintf(&b, "💰 *Financial Impact:*\n")
	fmt.Fprintf(&b, "• Current waste: $%.2f/day\n", plan.FinancialImpact.CostPerDay)
	fmt.Fprintf(&b, "• Annual impact: $%.0f/year\n", plan.FinancialImpact.CostPerYear)
	fmt.Fprintf(&b, "• Potential savings: $%.0f/year\n\n", plan.ExpectedOutcome.CostSavingsYear)

	fmt.Fprintf(&b, "🔧 *Action Required:*\n")
	for _, step := range plan.RemediationSteps {
		fmt.Fprintf(&b, "%d. %s\n", step.Step, step.Action)
	}

	fmt.Fprintf(&b, "\n👥 *Responsible:* %s\n", plan.ResourceEstimates.ResponsibleTeam)
	fmt.Fprintf(&b, "⏰ *Deadline:* %s\n", plan.Priority.Urgency)
	fmt.Fprintf(&b, "📋 *Work Order:* %s\n\n", plan.WorkOrderID)

	fmt.Fprintf(&b, "📊 *Expected Outcome:*\n")
	fmt.Fprintf(&b, "• ROI: %s\n", plan.ExpectedOutcome.ROIPercent)
	fmt.Fprintf(&b, "• Payback: %s\n\n", plan.ExpectedOutcome.PaybackPeriod)

	fmt.Fprintf(&b, "_Generated by GreenOps at %s_ ⚙️", plan.CreatedAt.Format("15:04"))

	return b.String()
}

// PlanChatSummary renders a shorter confirmation message for conversational
// assistants and the HTTP API response.
func PlanChatSummary(plan *domain.RemediationPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✅ Remediation plan created successfully!\n\n")
	fmt.Fprintf(&b, "🚨 **%s PRIORITY: %s**\n\n", plan.Priority.Level, humanizeType(plan.AnomalyDetails.Type))
	fmt.Fprintf(&b, "**Zone:** %s\n", plan.AnomalyDetails.Zone)
	fmt.Fprintf(&b, "**Impact:** Wasting $%.2f/day ($%.0f/year)\n\n",
		plan.FinancialImpact.CostPerDay, plan.FinancialImpact.CostPerYear)
	fmt.Fprintf(&b, "**📋 Work Order:** %s\n", plan.WorkOrderID)
	fmt.Fprintf(&b, "**⏰ Deadline:** %s\n\n", plan.Priority.Urgency)

	fmt.Fprintf(&b, "**🔧 Action Steps:**\n")
	for _, step := range plan.RemediationSteps {
		fmt.Fprintf(&b, "%d. %s\n", step.Step, step.Action)
	}

	fmt.Fprintf(&b, "\n**💰 Expected Savings:** $%.0f/year\n", plan.ExpectedOutcome.CostSavingsYear)
	fmt.Fprintf(&b, "**📈 ROI:** %s\n\n", plan.ExpectedOutcome.ROIPercent)
	fmt.Fprintf(&b, "**👥 Assigned to:** %s\n", plan.ResourceEstimates.ResponsibleTeam)

	return b.String()
}
