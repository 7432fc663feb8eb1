package domain

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Shift identifies one of the three production shifts
type Shift string

const (
	ShiftA Shift = "SHIFT-A"
	ShiftB Shift = "SHIFT-B"
	ShiftC Shift = "SHIFT-C"
)

// ZoneStatus is the operational state of a zone for one observed hour
type ZoneStatus string

const (
	StatusOperational ZoneStatus = "OPERATIONAL"
	StatusStandby     ZoneStatus = "STANDBY"
)

// Known plant zones. Records may carry other zone ids; detection rules
// match on substrings, not this list.
const (
	ZonePaintShop     = "ZONE-PAINT-SHOP"
	ZoneBodyShop      = "ZONE-BODY-SHOP"
	ZoneAssembly      = "ZONE-ASSEMBLY"
	ZoneCasting       = "ZONE-CASTING"
	ZoneBattery       = "ZONE-BATTERY"
	ZoneHVACUtilities = "ZONE-HVAC-UTILITIES"
	ZonePlant         = "PLANT"
)

// OperationalRecord is one telemetry observation for one zone at one hour.
// TemperatureC uses NaN as the missing-value sentinel; readers must go
// through HasTemperature so an absent reading is never compared as 0.
type OperationalRecord struct {
	ID              uint       `json:"-" gorm:"primaryKey"`
	Timestamp       time.Time  `json:"timestamp" gorm:"index:idx_records_ts_zone,unique"`
	ZoneID          string     `json:"zone_id" gorm:"index:idx_records_ts_zone,unique"`
	EnergyKWh       float64    `json:"energy_kwh"`
	CO2Kg           float64    `json:"co2_kg"`
	ProductionUnits int        `json:"production_units"`
	CompressedAirM3 float64    `json:"compressed_air_m3"`
	WaterLiters     float64    `json:"water_liters"`
	TemperatureC    float64    `json:"temperature_c"`
	Shift           Shift      `json:"shift"`
	Status          ZoneStatus `json:"status"`
	EfficiencyScore float64    `json:"efficiency_score"`
}

// HasTemperature reports whether the record carries a temperature reading.
func (r OperationalRecord) HasTemperature() bool {
	return !math.IsNaN(r.TemperatureC)
}

// MarshalJSON emits null for a missing temperature reading, since NaN has
// no JSON representation.
func (r OperationalRecord) MarshalJSON() ([]byte, error) {
	type plain OperationalRecord
	out := struct {
		plain
		TemperatureC *float64 `json:"temperature_c"`
	}{plain: plain(r)}
	if r.HasTemperature() {
		out.TemperatureC = &r.TemperatureC
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the NaN sentinel when temperature_c is null or
// absent, so a decoded record never reads a missing value as 0°C.
func (r *OperationalRecord) UnmarshalJSON(data []byte) error {
	type plain OperationalRecord
	aux := struct {
		*plain
		TemperatureC *float64 `json:"temperature_c"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.TemperatureC != nil {
		r.TemperatureC = *aux.TemperatureC
	} else {
		r.TemperatureC = math.NaN()
	}
	return nil
}

// IsStandby reports whether the record counts as a standby hour for the
// standby-power rule: explicit STANDBY status or zero production.
func (r OperationalRecord) IsStandby() bool {
	return strings.EqualFold(string(r.Status), string(StatusStandby)) || r.ProductionUnits == 0
}

// IsOperational reports whether the record carries OPERATIONAL status.
func (r OperationalRecord) IsOperational() bool {
	return strings.EqualFold(string(r.Status), string(StatusOperational))
}

// RequiredColumns lists the eleven columns a raw dataset must provide.
var RequiredColumns = []string{
	"timestamp", "zone_id", "energy_kwh", "co2_kg", "production_units",
	"compressed_air_m3", "water_liters", "temperature_c", "shift",
	"efficiency_score", "status",
}

// RecordFilter narrows a dataset query. Zero values mean "no filter".
type RecordFilter struct {
	ZoneID    string
	Shift     Shift
	Status    ZoneStatus
	StartDate time.Time
	EndDate   time.Time
}
