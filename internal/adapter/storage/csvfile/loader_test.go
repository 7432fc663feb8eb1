package csvfile

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

const sampleCSV = `timestamp,zone_id,energy_kwh,co2_kg,production_units,compressed_air_m3,water_liters,temperature_c,shift,efficiency_score,status
2026-08-30 02:00:00,ZONE-PAINT-SHOP,850.0,697.0,0,120.0,300.0,22.5,SHIFT-C,0.0,STANDBY
2026-08-30 03:00:00,ZONE-BODY-SHOP,430.0,352.6,12,310.0,210.0,,SHIFT-C,87.5,OPERATIONAL
`

func TestLoader_Load_ParsesHeaderAndRows(t *testing.T) {
	// Arrange
	loader := NewLoader(zap.NewNop())

	// Act
	ds, err := loader.Load(strings.NewReader(sampleCSV))

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ds.Columns) != 11 {
		t.Fatalf("expected 11 columns, got %d", len(ds.Columns))
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ds.Rows))
	}
	if ds.Rows[0]["zone_id"] != "ZONE-PAINT-SHOP" {
		t.Errorf("unexpected zone_id %q", ds.Rows[0]["zone_id"])
	}
	if ds.Rows[1]["temperature_c"] != "" {
		t.Errorf("expected empty temperature cell, got %q", ds.Rows[1]["temperature_c"])
	}
}

func TestLoader_Load_LowercasesHeader(t *testing.T) {
	// Arrange
	loader := NewLoader(zap.NewNop())
	csv := "Timestamp,ZONE_ID\n2026-08-30,ZONE-ASSEMBLY\n"

	// Act
	ds, err := loader.Load(strings.NewReader(csv))

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ds.HasColumn("timestamp") || !ds.HasColumn("zone_id") {
		t.Errorf("expected lower-cased columns, got %v", ds.Columns)
	}
}

func TestLoader_Load_ShortRowLeavesTrailingCellsEmpty(t *testing.T) {
	// Arrange
	loader := NewLoader(zap.NewNop())
	csv := "timestamp,zone_id,energy_kwh\n2026-08-30,ZONE-CASTING\n"

	// Act
	ds, err := loader.Load(strings.NewReader(csv))

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ds.Rows[0]["energy_kwh"] != "" {
		t.Errorf("expected empty trailing cell, got %q", ds.Rows[0]["energy_kwh"])
	}
}

func TestLoader_Load_EmptyInputFails(t *testing.T) {
	// Arrange
	loader := NewLoader(zap.NewNop())

	// Act
	_, err := loader.Load(strings.NewReader(""))

	// Assert
	if err == nil {
		t.Fatal("expected error for empty input")
	}
}
