package analytics

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/plantops/greenops/internal/domain"
)

// timestampLayouts are tried in order when parsing the timestamp column.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ValidateDataset normalizes a raw tabular record set into typed records.
// It fails with *domain.SchemaError when any required column is missing.
//
// Fill policy: production_units, compressed_air_m3 and water_liters default
// to 0; temperature_c defaults to NaN so a missing reading never compares
// as a real temperature. Unparseable numeric cells coerce to 0, the same
// treatment the upstream data contract gives absent values.
func ValidateDataset(raw domain.RawDataset) ([]domain.OperationalRecord, error) {
	var missing []string
	for _, col := range domain.RequiredColumns {
		if !raw.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.SchemaError{Missing: missing}
	}

	records := make([]domain.OperationalRecord, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		rec := domain.OperationalRecord{
			Timestamp:       parseTimestamp(row["timestamp"]),
			ZoneID:          strings.TrimSpace(row["zone_id"]),
			EnergyKWh:       parseFloat(row["energy_kwh"], 0),
			CO2Kg:           parseFloat(row["co2_kg"], 0),
			ProductionUnits: int(parseFloat(row["production_units"], 0)),
			CompressedAirM3: parseFloat(row["compressed_air_m3"], 0),
			WaterLiters:     parseFloat(row["water_liters"], 0),
			TemperatureC:    parseTemperature(row["temperature_c"]),
			Shift:           domain.Shift(strings.TrimSpace(row["shift"])),
			Status:          domain.ZoneStatus(strings.ToUpper(strings.TrimSpace(row["status"]))),
			EfficiencyScore: parseFloat(row["efficiency_score"], 0),
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// parseFloat coerces a cell to float64. Empty cells take the fill value;
// non-numeric cells coerce to 0 per the lossy policy above.
func parseFloat(s string, fill float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
		return fill
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseTemperature never coerces garbage to 0: a fabricated 0°C reading
// would trip the overcooling rule, so anything unreadable stays NaN.
func parseTemperature(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
