package domain

// AnalysisConfig holds the named thresholds every detection and planning
// call reads. It is a value type: callers receive a copy from the config
// store and hold a consistent snapshot for the whole pipeline run.
type AnalysisConfig struct {
	EnergyPerVehicleBenchmark float64 `json:"ENERGY_PER_VEHICLE_BENCHMARK" mapstructure:"energy_per_vehicle_benchmark"`
	PaintOvenIdleMultiplier   float64 `json:"PAINT_OVEN_IDLE_MULTIPLIER" mapstructure:"paint_oven_idle_multiplier"`
	AirLeakRatioThreshold     float64 `json:"AIR_LEAK_RATIO_THRESHOLD" mapstructure:"air_leak_ratio_threshold"`
	HVACLowTempThreshold      float64 `json:"HVAC_LOW_TEMP_THRESHOLD" mapstructure:"hvac_low_temp_threshold"`
	StandbyEnergyPercent      float64 `json:"STANDBY_ENERGY_PERCENT" mapstructure:"standby_energy_percent"`
	CO2Factor                 float64 `json:"CO2_FACTOR" mapstructure:"co2_factor"`
	CurrencyPerKWh            float64 `json:"CURRENCY_PER_KWH" mapstructure:"currency_per_kwh"`
	HoursPerDay               int     `json:"HOURS_DAY" mapstructure:"hours_per_day"`

	// BaselineFallback substitutes for a per-zone median when a zone has
	// no qualifying baseline records. Kept at 1.0 for compatibility with
	// the historical behavior; sparse zones flag easily under it.
	BaselineFallback float64 `json:"BASELINE_FALLBACK" mapstructure:"baseline_fallback"`
}

// DefaultAnalysisConfig returns the process-start thresholds.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		EnergyPerVehicleBenchmark: 1200.0,
		PaintOvenIdleMultiplier:   1.2,
		AirLeakRatioThreshold:     1.25,
		HVACLowTempThreshold:      19.0,
		StandbyEnergyPercent:      0.15,
		CO2Factor:                 0.82,
		CurrencyPerKWh:            0.07,
		HoursPerDay:               24,
		BaselineFallback:          1.0,
	}
}
