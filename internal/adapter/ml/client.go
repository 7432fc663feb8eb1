package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/observability/telemetry"
	"github.com/plantops/greenops/internal/ports"
)

// Client talks to the deployed anomaly-scoring and energy-forecasting
// models over HTTP. The client is optional plumbing: when no endpoint is
// configured every call returns domain.ErrMLUnavailable and the rule-based
// detector carries on alone.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker
	config     *Config
	log        *zap.Logger
}

// Config holds ML client configuration
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// DefaultConfig returns default ML client configuration. BaseURL is left
// empty: scoring stays disabled until an endpoint is configured.
func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// NewClient creates a new ML scoring client
func NewClient(config *Config, log *zap.Logger) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ml-service",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("ML circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		breaker: breaker,
		config:  config,
		log:     log,
	}
}

// Configured reports whether an endpoint is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

type scoreRecord struct {
	Timestamp       string  `json:"timestamp"`
	ZoneID          string  `json:"zone_id"`
	Shift           string  `json:"shift"`
	Status          string  `json:"status"`
	EnergyKWh       float64 `json:"energy_kwh"`
	ProductionUnits int     `json:"production_units"`
	CompressedAirM3 float64 `json:"compressed_air_m3"`
	WaterLiters     float64 `json:"water_liters"`
	TemperatureC    float64 `json:"temperature_c"`
	EfficiencyScore float64 `json:"efficiency_score"`
}

type scoreRequest struct {
	Records []scoreRecord `json:"records"`
}

type scoreResponse struct {
	Predictions []ports.MLRecordScore `json:"predictions"`
}

type forecastRequest struct {
	HoursAhead int           `json:"hours_ahead"`
	Records    []scoreRecord `json:"records"`
}

type forecastResponse struct {
	Forecasts []ports.MLForecast `json:"forecasts"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// ScoreAnomalies sends the records to the deployed anomaly model and
// returns one verdict per record, in input order.
func (c *Client) ScoreAnomalies(ctx context.Context, records []domain.OperationalRecord) ([]ports.MLRecordScore, error) {
	if !c.Configured() {
		return nil, domain.ErrMLUnavailable
	}

	req := scoreRequest{Records: toScoreRecords(records)}

	var resp scoreResponse
	if err := c.post(ctx, "/v1/anomalies/score", "score", req, &resp); err != nil {
		return nil, err
	}

	return resp.Predictions, nil
}

// ForecastEnergy requests a plant-level energy forecast for the next
// hoursAhead hours based on the supplied history.
func (c *Client) ForecastEnergy(ctx context.Context, records []domain.OperationalRecord, hoursAhead int) ([]ports.MLForecast, error) {
	if !c.Configured() {
		return nil, domain.ErrMLUnavailable
	}
	if hoursAhead < 1 {
		return nil, fmt.Errorf("hours ahead must be at least 1, got %d", hoursAhead)
	}

	req := forecastRequest{
		HoursAhead: hoursAhead,
		Records:    toScoreRecords(records),
	}

	var resp forecastResponse
	if err := c.post(ctx, "/v1/energy/forecast", "forecast", req, &resp); err != nil {
		return nil, err
	}

	return resp.Forecasts, nil
}

// Status checks the deployed model service.
func (c *Client) Status(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", domain.ErrMLUnavailable
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, http.MethodGet, "/v1/status", nil)
	})
	if err != nil {
		telemetry.MLRequests.WithLabelValues("status", "error").Inc()
		return "", err
	}

	var resp statusResponse
	if err := json.Unmarshal(result.([]byte), &resp); err != nil {
		telemetry.MLRequests.WithLabelValues("status", "error").Inc()
		return "", fmt.Errorf("decode status response: %w", err)
	}

	telemetry.MLRequests.WithLabelValues("status", "ok").Inc()
	return resp.Status, nil
}

func (c *Client) post(ctx context.Context, path, operation string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, http.MethodPost, path, payload)
	})
	if err != nil {
		telemetry.MLRequests.WithLabelValues(operation, "error").Inc()
		return err
	}

	if err := json.Unmarshal(result.([]byte), out); err != nil {
		telemetry.MLRequests.WithLabelValues(operation, "error").Inc()
		return fmt.Errorf("decode %s response: %w", operation, err)
	}

	telemetry.MLRequests.WithLabelValues(operation, "ok").Inc()
	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ml service request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read ml service response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ml service error: status %d: %s", resp.StatusCode, data)
	}

	return data, nil
}

// toScoreRecords converts the domain records to the wire shape the model
// service expects. NaN marks a missing temperature reading and cannot be
// encoded as JSON; it is sent as 0, the fill value the models were
// trained with.
func toScoreRecords(records []domain.OperationalRecord) []scoreRecord {
	out := make([]scoreRecord, len(records))
	for i, r := range records {
		temp := r.TemperatureC
		if math.IsNaN(temp) {
			temp = 0
		}
		out[i] = scoreRecord{
			Timestamp:       r.Timestamp.Format(time.RFC3339),
			ZoneID:          r.ZoneID,
			Shift:           string(r.Shift),
			Status:          string(r.Status),
			EnergyKWh:       r.EnergyKWh,
			ProductionUnits: r.ProductionUnits,
			CompressedAirM3: r.CompressedAirM3,
			WaterLiters:     r.WaterLiters,
			TemperatureC:    temp,
			EfficiencyScore: r.EfficiencyScore,
		}
	}
	return out
}
