package domain

import "time"

// ZoneEnergy is one zone's share of plant energy consumption.
type ZoneEnergy struct {
	ZoneID       string  `json:"zone_id"`
	EnergyKWh    float64 `json:"zone_energy_kwh"`
	SharePercent float64 `json:"zone_energy_share_percent"`
}

// KPISummary aggregates a validated dataset. Per-vehicle figures are nil
// when total production is zero; they are never infinity.
type KPISummary struct {
	TotalEnergyKWh   float64      `json:"total_energy_kwh"`
	TotalCO2Kg       float64      `json:"total_co2_kg"`
	TotalVehicles    int          `json:"total_vehicles"`
	EnergyPerVehicle *float64     `json:"energy_per_vehicle_kwh"`
	CO2PerVehicle    *float64     `json:"co2_per_vehicle_kg"`
	ZoneEnergy       []ZoneEnergy `json:"zone_energy"`
}

// Report is the structured pipeline output.
type Report struct {
	KPIs        KPISummary      `json:"kpis"`
	Anomalies   []AnomalyRecord `json:"anomalies"`
	Actions     []ActionRecord  `json:"actions"`
	GeneratedAt time.Time       `json:"generated_at"`
}
