package planner

import (
	"testing"
	"time"

	"github.com/plantops/greenops/internal/domain"
)

func anomaly(t domain.AnomalyType, zone string, mods ...func(*domain.AnomalyRecord)) domain.AnomalyRecord {
	a := domain.AnomalyRecord{
		Type:      t,
		Zone:      zone,
		Timestamp: time.Date(2026, 8, 29, 3, 0, 0, 0, time.UTC),
	}
	for _, mod := range mods {
		mod(&a)
	}
	return a
}

func TestPlanActions_PaintOvenIdle(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	a := anomaly(domain.AnomalyPaintOvenIdle, domain.ZonePaintShop, func(a *domain.AnomalyRecord) {
		a.EnergyKWh = domain.Float64Ptr(180)
	})

	actions := PlanActions([]domain.AnomalyRecord{a}, nil, cfg)

	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	act := actions[0]
	if act.ID != "ACT-1" {
		t.Errorf("expected ACT-1, got %s", act.ID)
	}
	if act.Priority != domain.PriorityHigh {
		t.Errorf("expected HIGH priority, got %s", act.Priority)
	}
	// The full measured idle burn is recoverable
	if act.SavingsKWhPerHour == nil || *act.SavingsKWhPerHour != 180 {
		t.Errorf("expected 180 kWh/hr savings, got %v", act.SavingsKWhPerHour)
	}
	if act.SavingsCO2KgPerHour == nil || *act.SavingsCO2KgPerHour != 147.6 {
		t.Errorf("expected 147.6 kg/hr CO2 savings, got %v", act.SavingsCO2KgPerHour)
	}
	if act.SavingsCurrencyPerHour == nil || *act.SavingsCurrencyPerHour != 12.6 {
		t.Errorf("expected 12.6/hr cost savings, got %v", act.SavingsCurrencyPerHour)
	}
}

func TestPlanActions_AirLeakConvertsAirToEnergy(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	a := anomaly(domain.AnomalyCompressedAirLeak, domain.ZoneBodyShop, func(a *domain.AnomalyRecord) {
		a.CompressedAirM3 = domain.Float64Ptr(80)
	})

	actions := PlanActions([]domain.AnomalyRecord{a}, nil, cfg)

	// 80 m3 at 0.1 kWh/m3
	if actions[0].SavingsKWhPerHour == nil || *actions[0].SavingsKWhPerHour != 8 {
		t.Errorf("expected 8 kWh/hr savings, got %v", actions[0].SavingsKWhPerHour)
	}
}

func TestPlanActions_HVACUsesFixedPlaceholder(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	a := anomaly(domain.AnomalyHVACOvercooling, domain.ZoneAssembly, func(a *domain.AnomalyRecord) {
		a.TemperatureC = domain.Float64Ptr(15)
	})

	actions := PlanActions([]domain.AnomalyRecord{a}, nil, cfg)

	act := actions[0]
	if act.Priority != domain.PriorityMedium {
		t.Errorf("expected MEDIUM priority, got %s", act.Priority)
	}
	// 100 kWh placeholder x 25% yield, regardless of the measured record
	if act.SavingsKWhPerHour == nil || *act.SavingsKWhPerHour != 25 {
		t.Errorf("expected fixed 25 kWh/hr estimate, got %v", act.SavingsKWhPerHour)
	}
}

func TestPlanActions_StandbyWasteSavesAboveAllowance(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	a := anomaly(domain.AnomalyStandbyPowerWaste, domain.ZoneCasting, func(a *domain.AnomalyRecord) {
		a.EnergyKWh = domain.Float64Ptr(45)
		a.OperationalMedian = domain.Float64Ptr(200)
	})

	actions := PlanActions([]domain.AnomalyRecord{a}, nil, cfg)

	act := actions[0]
	if act.Priority != domain.PriorityLow {
		t.Errorf("expected LOW priority, got %s", act.Priority)
	}
	// 45 kWh minus the allowed 200 * 0.15 = 30 kWh
	if act.SavingsKWhPerHour == nil || *act.SavingsKWhPerHour != 15 {
		t.Errorf("expected 15 kWh/hr savings, got %v", act.SavingsKWhPerHour)
	}
}

func TestPlanActions_StandbySavingsNeverNegative(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	a := anomaly(domain.AnomalyStandbyPowerWaste, domain.ZoneCasting, func(a *domain.AnomalyRecord) {
		a.EnergyKWh = domain.Float64Ptr(10)
		a.OperationalMedian = domain.Float64Ptr(200)
	})

	actions := PlanActions([]domain.AnomalyRecord{a}, nil, cfg)

	if got := *actions[0].SavingsKWhPerHour; got != 0 {
		t.Errorf("expected clamped 0 savings, got %v", got)
	}
}

func TestPlanActions_PlantLevelExtrapolatesOverProduction(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	a := anomaly(domain.AnomalyEnergyPerVehicle, "", func(a *domain.AnomalyRecord) {
		a.EnergyPerVehicle = domain.Float64Ptr(1300)
		a.BenchmarkKWh = domain.Float64Ptr(1200)
	})
	records := []domain.OperationalRecord{
		{ProductionUnits: 3},
		{ProductionUnits: 2},
	}

	actions := PlanActions([]domain.AnomalyRecord{a}, records, cfg)

	act := actions[0]
	if act.Zone != domain.ZonePlant {
		t.Errorf("expected plant zone, got %s", act.Zone)
	}
	// (1300-1200) excess x 5 vehicles, reported per period not per hour
	if act.SavingsKWhPerPeriod == nil || *act.SavingsKWhPerPeriod != 500 {
		t.Errorf("expected 500 kWh period savings, got %v", act.SavingsKWhPerPeriod)
	}
	if act.SavingsKWhPerHour != nil {
		t.Error("plant-level action must not carry hourly savings")
	}
}

func TestPlanActions_UnknownTypeGetsInvestigation(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	a := anomaly(domain.AnomalyType("WEIRD"), "")

	actions := PlanActions([]domain.AnomalyRecord{a}, nil, cfg)

	act := actions[0]
	if act.Priority != domain.PriorityLow {
		t.Errorf("expected LOW priority fallback, got %s", act.Priority)
	}
	if act.Zone != "UNKNOWN" {
		t.Errorf("expected UNKNOWN zone placeholder, got %s", act.Zone)
	}
}

func TestPlanActions_SequentialIDsPerRun(t *testing.T) {
	cfg := domain.DefaultAnalysisConfig()
	anomalies := []domain.AnomalyRecord{
		anomaly(domain.AnomalyPaintOvenIdle, domain.ZonePaintShop),
		anomaly(domain.AnomalyCompressedAirLeak, domain.ZoneBodyShop),
	}

	actions := PlanActions(anomalies, nil, cfg)

	if actions[0].ID != "ACT-1" || actions[1].ID != "ACT-2" {
		t.Errorf("expected ACT-1, ACT-2; got %s, %s", actions[0].ID, actions[1].ID)
	}

	// IDs restart every run
	again := PlanActions(anomalies, nil, cfg)
	if again[0].ID != "ACT-1" {
		t.Errorf("expected ids to restart per run, got %s", again[0].ID)
	}
}
