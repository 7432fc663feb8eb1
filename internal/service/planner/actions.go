package planner

import (
	"fmt"
	"math"

	"github.com/plantops/greenops/internal/domain"
)

// airToEnergyKWhPerM3 is the rough compressed-air to electrical energy
// conversion used for leak savings estimates.
const airToEnergyKWhPerM3 = 0.1

// hvacPlaceholderKWh and hvacAdjustmentYield form the fixed overcooling
// savings estimate: a placeholder hourly HVAC load and an assumed 25%
// reduction from a setpoint adjustment. Not derived from the measured
// record; kept for compatibility with the established reporting baseline.
const (
	hvacPlaceholderKWh   = 100.0
	hvacAdjustmentYield  = 0.25
)

// PlanActions maps each anomaly to one costed remediation action. IDs are
// sequential within this call only. The full dataset is needed for the
// plant-level case, whose excess is extrapolated over total production.
func PlanActions(anomalies []domain.AnomalyRecord, records []domain.OperationalRecord, cfg domain.AnalysisConfig) []domain.ActionRecord {
	actions := make([]domain.ActionRecord, 0, len(anomalies))
	for _, a := range anomalies {
		actions = append(actions, planAction(a, len(actions)+1, records, cfg))
	}
	return actions
}

func planAction(a domain.AnomalyRecord, seq int, records []domain.OperationalRecord, cfg domain.AnalysisConfig) domain.ActionRecord {
	id := fmt.Sprintf("ACT-%d", seq)

	switch a.Type {
	case domain.AnomalyPaintOvenIdle:
		// Auto-shutdown eliminates the measured idle burn for that hour.
		saved := floatOrZero(a.EnergyKWh)
		return hourlyAction(id, domain.PriorityHigh,
			fmt.Sprintf("Auto-shutdown or reduce temp for %s", a.Zone), a.Zone,
			"Update PLC schedule or add auto-shutdown rule after production ends",
			saved, a, cfg)

	case domain.AnomalyCompressedAirLeak:
		saved := floatOrZero(a.CompressedAirM3) * airToEnergyKWhPerM3
		return hourlyAction(id, domain.PriorityHigh,
			fmt.Sprintf("Inspect compressed air lines in %s", a.Zone), a.Zone,
			"Schedule maintenance, pressure test and seal leaks",
			saved, a, cfg)

	case domain.AnomalyHVACOvercooling:
		saved := hvacPlaceholderKWh * hvacAdjustmentYield
		return hourlyAction(id, domain.PriorityMedium,
			fmt.Sprintf("Adjust HVAC setpoint in %s to reduce overcooling", a.Zone), a.Zone,
			"Raise setpoint by 2-3°C and optimize schedules",
			saved, a, cfg)

	case domain.AnomalyStandbyPowerWaste:
		allowable := floatOrZero(a.OperationalMedian) * cfg.StandbyEnergyPercent
		saved := floatOrZero(a.EnergyKWh) - allowable
		if saved < 0 {
			saved = 0
		}
		return hourlyAction(id, domain.PriorityLow,
			fmt.Sprintf("Reduce standby power in %s", a.Zone), a.Zone,
			"Enable deep-sleep, change PLC, or turn off non-critical drives",
			saved, a, cfg)

	case domain.AnomalyEnergyPerVehicle:
		totalVehicles := 0
		for _, r := range records {
			totalVehicles += r.ProductionUnits
		}
		excess := (floatOrZero(a.EnergyPerVehicle) - floatOrZero(a.BenchmarkKWh)) * float64(totalVehicles)
		return domain.ActionRecord{
			ID:                       id,
			Priority:                 domain.PriorityHigh,
			Title:                    "Plant-level energy optimization program",
			Zone:                     domain.ZonePlant,
			SavingsKWhPerPeriod:      domain.Float64Ptr(round2(excess)),
			SavingsCO2KgPerPeriod:    domain.Float64Ptr(round2(excess * cfg.CO2Factor)),
			SavingsCurrencyPerPeriod: domain.Float64Ptr(round2(excess * cfg.CurrencyPerKWh)),
			Implementation:           "Cross-zone program: schedule optimization, workforce training, maintenance program",
			RelatedAnomaly:           a,
		}

	default:
		zone := a.Zone
		if zone == "" {
			zone = "UNKNOWN"
		}
		return domain.ActionRecord{
			ID:             id,
			Priority:       domain.PriorityLow,
			Title:          fmt.Sprintf("Investigate %s", a.Type),
			Zone:           zone,
			Implementation: "Manual follow-up",
			RelatedAnomaly: a,
		}
	}
}

func hourlyAction(id string, priority domain.ActionPriority, title, zone, implementation string, savedKWh float64, a domain.AnomalyRecord, cfg domain.AnalysisConfig) domain.ActionRecord {
	return domain.ActionRecord{
		ID:                     id,
		Priority:               priority,
		Title:                  title,
		Zone:                   zone,
		SavingsKWhPerHour:      domain.Float64Ptr(round2(savedKWh)),
		SavingsCO2KgPerHour:    domain.Float64Ptr(round2(savedKWh * cfg.CO2Factor)),
		SavingsCurrencyPerHour: domain.Float64Ptr(round2(savedKWh * cfg.CurrencyPerKWh)),
		Implementation:         implementation,
		RelatedAnomaly:         a,
	}
}

func floatOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
