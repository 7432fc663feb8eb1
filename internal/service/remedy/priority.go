package remedy

import (
	"math"
	"sort"

	"github.com/plantops/greenops/internal/domain"
)

// CalculateFinancialImpact extrapolates one hour of energy waste through
// day/month/year horizons at the configured tariff.
func CalculateFinancialImpact(wasteKWh float64, cfg domain.AnalysisConfig) domain.FinancialImpact {
	hoursDay := cfg.HoursPerDay
	if hoursDay <= 0 {
		hoursDay = 24
	}
	costPerHour := wasteKWh * cfg.CurrencyPerKWh
	costPerDay := costPerHour * float64(hoursDay)
	costPerMonth := costPerDay * 30
	costPerYear := costPerDay * 365

	return domain.FinancialImpact{
		EnergyWasteKWhPerHour:  round2(wasteKWh),
		CostPerHour:            round2(costPerHour),
		CostPerDay:             round2(costPerDay),
		CostPerMonth:           round2(costPerMonth),
		CostPerYear:            round2(costPerYear),
		PotentialAnnualSavings: round2(costPerYear),
	}
}

// CalculatePriorityScore classifies an anomaly's urgency. Base score comes
// from the severity label, financial impact adds a bonus, and the per-type
// catalog multiplier scales the result before thresholding.
func CalculatePriorityScore(costPerDay float64, severity string, anomalyType domain.AnomalyType) domain.PriorityInfo {
	base := 50
	switch severity {
	case "HIGH":
		base = 80
	case "MEDIUM":
		base = 50
	case "LOW":
		base = 20
	}

	if costPerDay > 50 {
		base += 20
	} else if costPerDay > 20 {
		base += 10
	}

	profile, _ := profileFor(anomalyType)
	score := int(float64(base) * profile.SeverityMultiplier)

	var priority, urgency string
	switch {
	case score >= 80:
		priority = "CRITICAL"
		urgency = "Immediate action required (within 2 hours)"
	case score >= 60:
		priority = "HIGH"
		urgency = "Action required within 24 hours"
	case score >= 40:
		priority = "MEDIUM"
		urgency = "Schedule within 3 days"
	default:
		priority = "LOW"
		urgency = "Address during next maintenance window"
	}

	return domain.PriorityInfo{Score: score, Priority: priority, Urgency: urgency}
}

// RankPriorities scores anomaly-like inputs by energy waste and returns
// the top N, highest score first. Entries with waste <= 0 are skipped
// entirely. The sort is stable so ties keep input order.
func RankPriorities(anomalies []domain.RawAnomaly, limit int, cfg domain.AnalysisConfig) []domain.RankedAnomaly {
	if limit <= 0 {
		limit = 5
	}

	ranked := make([]domain.RankedAnomaly, 0, len(anomalies))
	for _, a := range anomalies {
		waste := a.EnergyKWh - a.ExpectedKWh
		if waste <= 0 {
			continue
		}

		severity := "MEDIUM"
		if waste > 100 {
			severity = "HIGH"
		}

		impact := CalculateFinancialImpact(waste, cfg)
		info := CalculatePriorityScore(impact.CostPerDay, severity, a.Type)

		ranked = append(ranked, domain.RankedAnomaly{
			Anomaly:       a,
			PriorityScore: info.Score,
			PriorityLevel: info.Priority,
			AnnualSavings: impact.PotentialAnnualSavings,
			Urgency:       info.Urgency,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriorityScore > ranked[j].PriorityScore
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
