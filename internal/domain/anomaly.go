package domain

import "time"

// AnomalyType is the closed set of detection rule tags.
type AnomalyType string

const (
	AnomalyPaintOvenIdle     AnomalyType = "PAINT_OVEN_IDLE"
	AnomalyCompressedAirLeak AnomalyType = "COMPRESSED_AIR_LEAK"
	AnomalyHVACOvercooling   AnomalyType = "HVAC_OVERCOOLING"
	AnomalyStandbyPowerWaste AnomalyType = "STANDBY_POWER_WASTE"
	AnomalyEnergyPerVehicle  AnomalyType = "ENERGY_PER_VEHICLE_HIGH"
)

// KnownAnomalyTypes lists every type the detector can emit, in rule order.
var KnownAnomalyTypes = []AnomalyType{
	AnomalyPaintOvenIdle,
	AnomalyCompressedAirLeak,
	AnomalyHVACOvercooling,
	AnomalyStandbyPowerWaste,
	AnomalyEnergyPerVehicle,
}

// AnomalyRecord is one detected deviation. The pointer fields form the
// type-specific payload; only the fields relevant to the rule that emitted
// the record are set. Zone is empty for plant-level anomalies.
type AnomalyRecord struct {
	Type      AnomalyType `json:"type"`
	Zone      string      `json:"zone,omitempty"`
	Timestamp time.Time   `json:"timestamp"`

	EnergyKWh          *float64 `json:"energy_kwh,omitempty"`
	ProductionUnits    *int     `json:"production_units,omitempty"`
	CompressedAirM3    *float64 `json:"compressed_air_m3,omitempty"`
	TemperatureC       *float64 `json:"temperature_c,omitempty"`
	OperationalMedian  *float64 `json:"operational_median,omitempty"`
	EnergyPerVehicle   *float64 `json:"energy_per_vehicle_kwh,omitempty"`
	BenchmarkKWh       *float64 `json:"benchmark_kwh,omitempty"`

	Note string `json:"note"`
}

// Float64Ptr returns a pointer to v. Payload fields are pointers so the
// JSON shape distinguishes "absent" from zero.
func Float64Ptr(v float64) *float64 { return &v }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
