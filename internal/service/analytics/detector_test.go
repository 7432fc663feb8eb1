package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/plantops/greenops/internal/domain"
)

func rec(zone string, energy float64, units int, mods ...func(*domain.OperationalRecord)) domain.OperationalRecord {
	r := domain.OperationalRecord{
		Timestamp:       time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		ZoneID:          zone,
		EnergyKWh:       energy,
		ProductionUnits: units,
		TemperatureC:    math.NaN(),
		Shift:           domain.ShiftA,
		Status:          domain.StatusOperational,
	}
	for _, mod := range mods {
		mod(&r)
	}
	return r
}

func withTemp(t float64) func(*domain.OperationalRecord) {
	return func(r *domain.OperationalRecord) { r.TemperatureC = t }
}

func withAir(m3 float64) func(*domain.OperationalRecord) {
	return func(r *domain.OperationalRecord) { r.CompressedAirM3 = m3 }
}

func withStatus(s domain.ZoneStatus) func(*domain.OperationalRecord) {
	return func(r *domain.OperationalRecord) { r.Status = s }
}

func withCO2(kg float64) func(*domain.OperationalRecord) {
	return func(r *domain.OperationalRecord) { r.CO2Kg = kg }
}

func countByType(anomalies []domain.AnomalyRecord, t domain.AnomalyType) int {
	n := 0
	for _, a := range anomalies {
		if a.Type == t {
			n++
		}
	}
	return n
}

func TestDetectPaintOvenIdle(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	// Producing hours set the baseline median at 100 kWh; the idle hour
	// burns 180 kWh, above 100 * 1.2.
	records := []domain.OperationalRecord{
		rec(domain.ZonePaintShop, 90, 10),
		rec(domain.ZonePaintShop, 100, 12),
		rec(domain.ZonePaintShop, 110, 11),
		rec(domain.ZonePaintShop, 180, 0),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyPaintOvenIdle); got != 1 {
		t.Fatalf("expected 1 paint oven idle anomaly, got %d", got)
	}
}

func TestDetectPaintOvenIdle_BelowThresholdDoesNotFlag(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	records := []domain.OperationalRecord{
		rec(domain.ZonePaintShop, 100, 10),
		rec(domain.ZonePaintShop, 100, 12),
		// 110 < 100 * 1.2
		rec(domain.ZonePaintShop, 110, 0),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyPaintOvenIdle); got != 0 {
		t.Fatalf("expected no paint oven idle anomalies, got %d", got)
	}
}

func TestDetectPaintOvenIdle_NoProducingHoursUsesFallbackBaseline(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	// No producing paint hours: baseline falls back to 1.0, so any real
	// idle burn flags.
	records := []domain.OperationalRecord{
		rec(domain.ZonePaintShop, 50, 0),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyPaintOvenIdle); got != 1 {
		t.Fatalf("expected fallback baseline to flag idle burn, got %d anomalies", got)
	}
}

func TestDetectAirLeaks(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	// Producing hours put the body-shop baseline at 50 m3. The idle hour
	// draws 80 m3 > 50 * 1.25.
	records := []domain.OperationalRecord{
		rec(domain.ZoneBodyShop, 200, 10, withAir(40)),
		rec(domain.ZoneBodyShop, 210, 11, withAir(50)),
		rec(domain.ZoneBodyShop, 220, 12, withAir(60)),
		rec(domain.ZoneBodyShop, 100, 0, withAir(80)),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyCompressedAirLeak); got != 1 {
		t.Fatalf("expected 1 air leak anomaly, got %d", got)
	}
}

func TestDetectAirLeaks_SingleUnitProductionStillScoped(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	records := []domain.OperationalRecord{
		rec(domain.ZoneBodyShop, 200, 10, withAir(50)),
		// production_units == 1 is inside the leak rule's scope
		rec(domain.ZoneBodyShop, 100, 1, withAir(90)),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyCompressedAirLeak); got != 1 {
		t.Fatalf("expected leak rule to cover units<=1, got %d anomalies", got)
	}
}

func TestDetectHVACOvercooling(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	records := []domain.OperationalRecord{
		// 16°C < 19.0 threshold, idle
		rec(domain.ZoneAssembly, 120, 0, withTemp(16)),
		// cold but producing: out of scope
		rec(domain.ZoneAssembly, 130, 8, withTemp(16)),
		// idle but warm
		rec(domain.ZoneAssembly, 110, 0, withTemp(21)),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyHVACOvercooling); got != 1 {
		t.Fatalf("expected 1 overcooling anomaly, got %d", got)
	}
}

func TestDetectHVACOvercooling_MissingTemperatureNeverFlags(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	// NaN temperature must not compare as a real (cold) reading
	records := []domain.OperationalRecord{
		rec(domain.ZoneAssembly, 120, 0),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyHVACOvercooling); got != 0 {
		t.Fatalf("expected missing temperature to be skipped, got %d anomalies", got)
	}
}

func TestDetectStandbyWaste(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	// Operational median is 200 kWh; a standby hour above 200*0.15=30 flags.
	records := []domain.OperationalRecord{
		rec(domain.ZoneCasting, 190, 10),
		rec(domain.ZoneCasting, 200, 11),
		rec(domain.ZoneCasting, 210, 12),
		rec(domain.ZoneCasting, 45, 0, withStatus(domain.StatusStandby)),
		rec(domain.ZoneCasting, 20, 0, withStatus(domain.StatusStandby)),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyStandbyPowerWaste); got != 1 {
		t.Fatalf("expected 1 standby waste anomaly, got %d", got)
	}
}

func TestDetectPlantEnergyPerVehicle(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	// 2600 kWh over 2 vehicles = 1300 kWh/vehicle > 1200 benchmark
	records := []domain.OperationalRecord{
		rec(domain.ZoneAssembly, 1300, 1),
		rec(domain.ZoneCasting, 1300, 1, func(r *domain.OperationalRecord) {
			r.Timestamp = r.Timestamp.Add(time.Hour)
		}),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyEnergyPerVehicle); got != 1 {
		t.Fatalf("expected 1 plant-level anomaly, got %d", got)
	}

	for _, a := range anomalies {
		if a.Type != domain.AnomalyEnergyPerVehicle {
			continue
		}
		// Stamped with the dataset's last observation time, not wall clock
		want := time.Date(2026, 8, 29, 11, 0, 0, 0, time.UTC)
		if !a.Timestamp.Equal(want) {
			t.Errorf("expected timestamp %v, got %v", want, a.Timestamp)
		}
		if a.EnergyPerVehicle == nil || *a.EnergyPerVehicle != 1300 {
			t.Errorf("expected energy per vehicle 1300, got %v", a.EnergyPerVehicle)
		}
	}
}

func TestDetectPlantEnergyPerVehicle_ZeroProductionSkipped(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	records := []domain.OperationalRecord{
		rec(domain.ZoneAssembly, 5000, 0),
	}

	anomalies := DetectAnomalies(records, cfg)

	if got := countByType(anomalies, domain.AnomalyEnergyPerVehicle); got != 0 {
		t.Fatalf("expected no plant-level anomaly with zero production, got %d", got)
	}
}

func TestDetectAnomalies_EmptyDatasetReturnsEmptySlice(t *testing.T) {
	anomalies := DetectAnomalies(nil, domain.DefaultAnalysisConfig())
	if anomalies == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(anomalies) != 0 {
		t.Fatalf("expected no anomalies, got %d", len(anomalies))
	}
}

func TestDetectAnomalies_DeterministicOrder(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()

	records := []domain.OperationalRecord{
		rec(domain.ZonePaintShop, 100, 10),
		rec(domain.ZonePaintShop, 180, 0),
		rec(domain.ZoneAssembly, 120, 0, withTemp(15)),
	}

	first := DetectAnomalies(records, cfg)
	second := DetectAnomalies(records, cfg)

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type != second[i].Type || first[i].Zone != second[i].Zone {
			t.Fatalf("order differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestMedianOrFallback(t *testing.T) {
	cases := []struct {
		name     string
		vals     []float64
		fallback float64
		want     float64
	}{
		{"empty uses fallback", nil, 1.0, 1.0},
		{"odd length", []float64{3, 1, 2}, 1.0, 2},
		{"even length averages middle", []float64{1, 2, 3, 4}, 1.0, 2.5},
		{"zero median uses fallback", []float64{0, 0, 0}, 1.0, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := medianOrFallback(tc.vals, tc.fallback); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
