package ml

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/ports"
)

func testRecords() []domain.OperationalRecord {
	return []domain.OperationalRecord{
		{
			Timestamp:       time.Date(2026, 8, 30, 2, 0, 0, 0, time.UTC),
			ZoneID:          domain.ZonePaintShop,
			EnergyKWh:       850.0,
			ProductionUnits: 0,
			CompressedAirM3: 120.0,
			TemperatureC:    22.5,
			Shift:           domain.ShiftC,
			Status:          domain.StatusStandby,
		},
		{
			Timestamp:       time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC),
			ZoneID:          domain.ZoneBodyShop,
			EnergyKWh:       430.0,
			ProductionUnits: 12,
			CompressedAirM3: 310.0,
			TemperatureC:    math.NaN(),
			Shift:           domain.ShiftC,
			Status:          domain.StatusOperational,
		},
	}
}

func TestClient_DefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.BaseURL != "" {
		t.Error("Default config should leave BaseURL empty")
	}

	if config.Timeout == 0 {
		t.Error("Default config should have Timeout")
	}
}

func TestClient_Unconfigured_ReturnsUnavailable(t *testing.T) {
	client := NewClient(DefaultConfig(), zap.NewNop())
	ctx := context.Background()

	if _, err := client.ScoreAnomalies(ctx, testRecords()); !errors.Is(err, domain.ErrMLUnavailable) {
		t.Errorf("ScoreAnomalies: expected ErrMLUnavailable, got %v", err)
	}
	if _, err := client.ForecastEnergy(ctx, testRecords(), 24); !errors.Is(err, domain.ErrMLUnavailable) {
		t.Errorf("ForecastEnergy: expected ErrMLUnavailable, got %v", err)
	}
	if _, err := client.Status(ctx); !errors.Is(err, domain.ErrMLUnavailable) {
		t.Errorf("Status: expected ErrMLUnavailable, got %v", err)
	}
}

func TestClient_ScoreAnomalies_Success(t *testing.T) {
	// Arrange: fake scoring service
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/anomalies/score" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth header, got %q", got)
		}

		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(req.Records))
		}
		// NaN temperature is sent as the fill value, never as NaN
		if req.Records[1].TemperatureC != 0 {
			t.Errorf("expected missing temperature to be sent as 0, got %v", req.Records[1].TemperatureC)
		}

		json.NewEncoder(w).Encode(scoreResponse{
			Predictions: []ports.MLRecordScore{
				{Timestamp: req.Records[0].Timestamp, ZoneID: req.Records[0].ZoneID, IsAnomaly: true, AnomalyScore: 0.93, EnergyKWh: 850.0},
				{Timestamp: req.Records[1].Timestamp, ZoneID: req.Records[1].ZoneID, IsAnomaly: false, AnomalyScore: 0.12, EnergyKWh: 430.0},
			},
		})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, APIKey: "test-key"}, zap.NewNop())

	// Act
	scores, err := client.ScoreAnomalies(context.Background(), testRecords())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}
	if !scores[0].IsAnomaly || scores[0].AnomalyScore != 0.93 {
		t.Errorf("unexpected first score: %+v", scores[0])
	}
	if scores[1].IsAnomaly {
		t.Errorf("expected second record to be normal: %+v", scores[1])
	}
}

func TestClient_ForecastEnergy_Success(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/energy/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req forecastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.HoursAhead != 3 {
			t.Errorf("expected hours_ahead 3, got %d", req.HoursAhead)
		}

		forecasts := make([]ports.MLForecast, req.HoursAhead)
		for i := range forecasts {
			forecasts[i] = ports.MLForecast{HourAhead: i + 1, PredictedEnergyKWh: 1000 + float64(i)*50}
		}
		json.NewEncoder(w).Encode(forecastResponse{Forecasts: forecasts})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL}, zap.NewNop())

	// Act
	forecasts, err := client.ForecastEnergy(context.Background(), testRecords(), 3)

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(forecasts) != 3 {
		t.Fatalf("expected 3 forecasts, got %d", len(forecasts))
	}
	if forecasts[2].HourAhead != 3 || forecasts[2].PredictedEnergyKWh != 1100 {
		t.Errorf("unexpected last forecast: %+v", forecasts[2])
	}
}

func TestClient_ForecastEnergy_RejectsNonPositiveHorizon(t *testing.T) {
	client := NewClient(&Config{BaseURL: "http://localhost:1"}, zap.NewNop())

	if _, err := client.ForecastEnergy(context.Background(), testRecords(), 0); err == nil {
		t.Error("expected error for zero horizon")
	}
}

func TestClient_Status_Success(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(statusResponse{Status: "configured"})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL}, zap.NewNop())

	// Act
	status, err := client.Status(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if status != "configured" {
		t.Errorf("expected status 'configured', got '%s'", status)
	}
}

func TestClient_ServerError_Propagates(t *testing.T) {
	// Arrange
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not deployed", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL}, zap.NewNop())

	// Act
	_, err := client.ScoreAnomalies(context.Background(), testRecords())

	// Assert
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, domain.ErrMLUnavailable) {
		t.Error("a server failure is not the unconfigured sentinel")
	}
}
