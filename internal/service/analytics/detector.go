package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/plantops/greenops/internal/domain"
)

// hvacZonePattern covers every climate-sensitive zone group the
// overcooling rule inspects.
var hvacZonePattern = []string{"HVAC", "UTILITIES", "BATTERY", "ASSEMBLY", "BODY", "CASTING", "PAINT"}

// DetectAnomalies runs the five rule evaluators over a validated dataset
// with the given threshold snapshot. Rules are independent; one record can
// be flagged by several rules and no deduplication is applied. Output is
// deterministic: rules emit in fixed order and, within a rule, in input
// record order.
func DetectAnomalies(records []domain.OperationalRecord, cfg domain.AnalysisConfig) []domain.AnomalyRecord {
	anomalies := []domain.AnomalyRecord{}
	anomalies = append(anomalies, detectPaintOvenIdle(records, cfg)...)
	anomalies = append(anomalies, detectAirLeaks(records, cfg)...)
	anomalies = append(anomalies, detectHVACOvercooling(records, cfg)...)
	anomalies = append(anomalies, detectStandbyWaste(records, cfg)...)
	anomalies = append(anomalies, detectPlantEnergyPerVehicle(records, cfg)...)
	return anomalies
}

// detectPaintOvenIdle flags paint-shop hours burning oven energy with no
// production. Baseline is the median energy of the zone group's producing
// hours, so the rule self-calibrates per plant.
func detectPaintOvenIdle(records []domain.OperationalRecord, cfg domain.AnalysisConfig) []domain.AnomalyRecord {
	var producing []float64
	for _, r := range records {
		if isPaintZone(r.ZoneID) && r.ProductionUnits > 0 {
			producing = append(producing, r.EnergyKWh)
		}
	}
	baseline := medianOrFallback(producing, cfg.BaselineFallback)

	var out []domain.AnomalyRecord
	for _, r := range records {
		if !isPaintZone(r.ZoneID) {
			continue
		}
		if r.ProductionUnits == 0 && r.EnergyKWh > baseline*cfg.PaintOvenIdleMultiplier {
			out = append(out, domain.AnomalyRecord{
				Type:            domain.AnomalyPaintOvenIdle,
				Zone:            r.ZoneID,
				Timestamp:       r.Timestamp,
				EnergyKWh:       domain.Float64Ptr(r.EnergyKWh),
				ProductionUnits: domain.IntPtr(r.ProductionUnits),
				Note: fmt.Sprintf("High paint energy (%.1f kWh) while production=0 (baseline %.1f kWh).",
					r.EnergyKWh, baseline),
			})
		}
	}
	return out
}

// detectAirLeaks flags zones consuming compressed air with little or no
// production. Baselines are per zone, from producing hours only.
func detectAirLeaks(records []domain.OperationalRecord, cfg domain.AnalysisConfig) []domain.AnomalyRecord {
	producing := make(map[string][]float64)
	for _, r := range records {
		if r.CompressedAirM3 > 0 && r.ProductionUnits > 0 {
			producing[r.ZoneID] = append(producing[r.ZoneID], r.CompressedAirM3)
		}
	}

	baselines := make(map[string]float64)
	for zone, vals := range producing {
		baselines[zone] = medianOrFallback(vals, cfg.BaselineFallback)
	}

	var out []domain.AnomalyRecord
	for _, r := range records {
		if r.CompressedAirM3 <= 0 {
			continue
		}
		baseline, ok := baselines[r.ZoneID]
		if !ok {
			baseline = cfg.BaselineFallback
		}
		if r.ProductionUnits <= 1 && r.CompressedAirM3 > baseline*cfg.AirLeakRatioThreshold {
			out = append(out, domain.AnomalyRecord{
				Type:            domain.AnomalyCompressedAirLeak,
				Zone:            r.ZoneID,
				Timestamp:       r.Timestamp,
				CompressedAirM3: domain.Float64Ptr(r.CompressedAirM3),
				ProductionUnits: domain.IntPtr(r.ProductionUnits),
				Note: fmt.Sprintf("High compressed air (%.1f m3) with little/no production (baseline %.1f m3).",
					r.CompressedAirM3, baseline),
			})
		}
	}
	return out
}

// detectHVACOvercooling flags climate-sensitive zones cooled below the
// configured setpoint while idle. Temperature is an absolute quantity, so
// a fixed physical threshold applies instead of an adaptive baseline.
// Records without a temperature reading never flag.
func detectHVACOvercooling(records []domain.OperationalRecord, cfg domain.AnalysisConfig) []domain.AnomalyRecord {
	var out []domain.AnomalyRecord
	for _, r := range records {
		if !isClimateZone(r.ZoneID) || !r.HasTemperature() {
			continue
		}
		if r.TemperatureC < cfg.HVACLowTempThreshold && r.ProductionUnits <= 1 {
			out = append(out, domain.AnomalyRecord{
				Type:         domain.AnomalyHVACOvercooling,
				Zone:         r.ZoneID,
				Timestamp:    r.Timestamp,
				TemperatureC: domain.Float64Ptr(r.TemperatureC),
				Note: fmt.Sprintf("Low temp %.1f°C with production %d.",
					r.TemperatureC, r.ProductionUnits),
			})
		}
	}
	return out
}

// detectStandbyWaste flags standby hours drawing more than the allowed
// fraction of the zone's operational median.
func detectStandbyWaste(records []domain.OperationalRecord, cfg domain.AnalysisConfig) []domain.AnomalyRecord {
	operational := make(map[string][]float64)
	for _, r := range records {
		if r.IsOperational() {
			operational[r.ZoneID] = append(operational[r.ZoneID], r.EnergyKWh)
		}
	}

	baselines := make(map[string]float64)
	for zone, vals := range operational {
		baselines[zone] = medianOrFallback(vals, cfg.BaselineFallback)
	}

	var out []domain.AnomalyRecord
	for _, r := range records {
		if !r.IsStandby() {
			continue
		}
		baseline, ok := baselines[r.ZoneID]
		if !ok {
			baseline = cfg.BaselineFallback
		}
		if r.EnergyKWh > baseline*cfg.StandbyEnergyPercent {
			out = append(out, domain.AnomalyRecord{
				Type:              domain.AnomalyStandbyPowerWaste,
				Zone:              r.ZoneID,
				Timestamp:         r.Timestamp,
				EnergyKWh:         domain.Float64Ptr(r.EnergyKWh),
				OperationalMedian: domain.Float64Ptr(baseline),
				Note: fmt.Sprintf("Standby energy %.1fkWh is > %.0f%% of operational median (%.1f kWh).",
					r.EnergyKWh, cfg.StandbyEnergyPercent*100, baseline),
			})
		}
	}
	return out
}

// detectPlantEnergyPerVehicle emits at most one plant-scoped anomaly when
// the whole dataset's energy-per-vehicle exceeds the benchmark. The
// anomaly is stamped with the dataset's last observation time so repeated
// runs over the same input produce identical output.
func detectPlantEnergyPerVehicle(records []domain.OperationalRecord, cfg domain.AnalysisConfig) []domain.AnomalyRecord {
	kpis := ComputeKPIs(records)
	if kpis.TotalVehicles == 0 || kpis.EnergyPerVehicle == nil {
		return nil
	}
	perVehicle := *kpis.EnergyPerVehicle
	if perVehicle <= cfg.EnergyPerVehicleBenchmark {
		return nil
	}

	var last time.Time
	for _, r := range records {
		if r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}

	return []domain.AnomalyRecord{{
		Type:             domain.AnomalyEnergyPerVehicle,
		Timestamp:        last,
		EnergyPerVehicle: domain.Float64Ptr(perVehicle),
		BenchmarkKWh:     domain.Float64Ptr(cfg.EnergyPerVehicleBenchmark),
		Note: fmt.Sprintf("Plant energy per vehicle %.1fkWh > benchmark %.1fkWh.",
			perVehicle, cfg.EnergyPerVehicleBenchmark),
	}}
}

func isPaintZone(zoneID string) bool {
	return strings.Contains(strings.ToUpper(zoneID), "PAINT")
}

func isClimateZone(zoneID string) bool {
	upper := strings.ToUpper(zoneID)
	for _, p := range hvacZonePattern {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// medianOrFallback returns the median of vals, or the fallback when the
// slice is empty or its median is zero. The zero guard keeps baseline
// multiplications from degenerating into compare-against-zero.
func medianOrFallback(vals []float64, fallback float64) float64 {
	if len(vals) == 0 {
		return fallback
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	var m float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		m = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		m = sorted[mid]
	}
	if m == 0 {
		return fallback
	}
	return m
}
