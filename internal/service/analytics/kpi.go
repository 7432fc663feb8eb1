package analytics

import (
	"math"
	"sort"

	"github.com/plantops/greenops/internal/domain"
)

// ComputeKPIs aggregates a validated dataset into plant- and zone-level
// metrics. Pure function. Per-vehicle figures stay nil when production is
// zero; no division by zero ever reaches the output.
func ComputeKPIs(records []domain.OperationalRecord) domain.KPISummary {
	var totalEnergy, totalCO2 float64
	totalVehicles := 0
	zoneTotals := make(map[string]float64)

	for _, r := range records {
		totalEnergy += r.EnergyKWh
		totalCO2 += r.CO2Kg
		totalVehicles += r.ProductionUnits
		zoneTotals[r.ZoneID] += r.EnergyKWh
	}

	summary := domain.KPISummary{
		TotalEnergyKWh: round2(totalEnergy),
		TotalCO2Kg:     round2(totalCO2),
		TotalVehicles:  totalVehicles,
	}

	if totalVehicles > 0 {
		summary.EnergyPerVehicle = domain.Float64Ptr(round2(totalEnergy / float64(totalVehicles)))
		summary.CO2PerVehicle = domain.Float64Ptr(round2(totalCO2 / float64(totalVehicles)))
	}

	zones := make([]string, 0, len(zoneTotals))
	for z := range zoneTotals {
		zones = append(zones, z)
	}
	sort.Strings(zones)

	for _, z := range zones {
		share := 0.0
		if totalEnergy > 0 {
			share = round2(zoneTotals[z] / totalEnergy * 100)
		}
		summary.ZoneEnergy = append(summary.ZoneEnergy, domain.ZoneEnergy{
			ZoneID:       z,
			EnergyKWh:    round2(zoneTotals[z]),
			SharePercent: share,
		})
	}

	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
