package analytics

import (
	"testing"

	"github.com/plantops/greenops/internal/domain"
)

func TestComputeKPIs(t *testing.T) {
	records := []domain.OperationalRecord{
		rec(domain.ZonePaintShop, 300, 5, withCO2(246)),
		rec(domain.ZoneAssembly, 100, 5, withCO2(82)),
	}

	summary := ComputeKPIs(records)

	if summary.TotalEnergyKWh != 400 {
		t.Errorf("expected total energy 400, got %v", summary.TotalEnergyKWh)
	}
	if summary.TotalCO2Kg != 328 {
		t.Errorf("expected total CO2 328, got %v", summary.TotalCO2Kg)
	}
	if summary.TotalVehicles != 10 {
		t.Errorf("expected 10 vehicles, got %d", summary.TotalVehicles)
	}
	if summary.EnergyPerVehicle == nil || *summary.EnergyPerVehicle != 40 {
		t.Errorf("expected 40 kWh/vehicle, got %v", summary.EnergyPerVehicle)
	}
	if summary.CO2PerVehicle == nil || *summary.CO2PerVehicle != 32.8 {
		t.Errorf("expected 32.8 kg/vehicle, got %v", summary.CO2PerVehicle)
	}
}

func TestComputeKPIs_ZeroProductionLeavesPerVehicleNil(t *testing.T) {
	records := []domain.OperationalRecord{
		rec(domain.ZonePaintShop, 300, 0),
	}

	summary := ComputeKPIs(records)

	if summary.EnergyPerVehicle != nil {
		t.Errorf("expected nil energy per vehicle, got %v", *summary.EnergyPerVehicle)
	}
	if summary.CO2PerVehicle != nil {
		t.Errorf("expected nil CO2 per vehicle, got %v", *summary.CO2PerVehicle)
	}
}

func TestComputeKPIs_ZoneBreakdownSortedWithShares(t *testing.T) {
	records := []domain.OperationalRecord{
		rec(domain.ZonePaintShop, 300, 5),
		rec(domain.ZoneAssembly, 100, 5),
		rec(domain.ZoneAssembly, 100, 5),
	}

	summary := ComputeKPIs(records)

	if len(summary.ZoneEnergy) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(summary.ZoneEnergy))
	}
	// Alphabetical zone order
	if summary.ZoneEnergy[0].ZoneID != domain.ZoneAssembly {
		t.Errorf("expected ZONE-ASSEMBLY first, got %s", summary.ZoneEnergy[0].ZoneID)
	}
	if summary.ZoneEnergy[0].EnergyKWh != 200 {
		t.Errorf("expected assembly total 200, got %v", summary.ZoneEnergy[0].EnergyKWh)
	}
	if summary.ZoneEnergy[0].SharePercent != 40 {
		t.Errorf("expected assembly share 40%%, got %v", summary.ZoneEnergy[0].SharePercent)
	}
	if summary.ZoneEnergy[1].SharePercent != 60 {
		t.Errorf("expected paint share 60%%, got %v", summary.ZoneEnergy[1].SharePercent)
	}
}

func TestComputeKPIs_EmptyDataset(t *testing.T) {
	summary := ComputeKPIs(nil)

	if summary.TotalEnergyKWh != 0 || summary.TotalVehicles != 0 {
		t.Errorf("expected zero totals, got %+v", summary)
	}
	if summary.EnergyPerVehicle != nil {
		t.Error("expected nil per-vehicle figure on empty dataset")
	}
}
