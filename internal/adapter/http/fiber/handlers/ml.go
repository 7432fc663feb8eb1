package handlers

import (
	"math"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/ports"
)

// MLHandler exposes the model-backed detection path next to the rule-based
// one. Every endpoint returns 503 while no scoring endpoint is configured.
type MLHandler struct {
	client    ports.MLClient
	analytics ports.AnalyticsService
	configs   ports.ConfigStore
	log       *zap.Logger
}

func NewMLHandler(client ports.MLClient, analytics ports.AnalyticsService, configs ports.ConfigStore, log *zap.Logger) *MLHandler {
	return &MLHandler{
		client:    client,
		analytics: analytics,
		configs:   configs,
		log:       log,
	}
}

// DetectAnomalies handles GET /api/v1/ml/anomalies?threshold=0.5
func (h *MLHandler) DetectAnomalies(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	threshold := c.QueryFloat("threshold", 0.5)
	if threshold < 0 || threshold > 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "threshold must be between 0 and 1"})
	}

	records, err := h.analytics.FetchData(c.Context(), filter)
	if err != nil {
		return err
	}

	scores, err := h.client.ScoreAnomalies(c.Context(), records)
	if err != nil {
		return err
	}

	anomalies := make([]ports.MLRecordScore, 0, len(scores))
	for _, s := range scores {
		if s.AnomalyScore >= threshold {
			anomalies = append(anomalies, s)
		}
	}

	rate := 0.0
	if len(scores) > 0 {
		rate = round2(float64(len(anomalies)) / float64(len(scores)) * 100)
	}

	return c.JSON(fiber.Map{
		"count":         len(anomalies),
		"total_samples": len(scores),
		"anomaly_rate":  rate,
		"threshold":     threshold,
		"anomalies":     anomalies,
	})
}

// ForecastEnergy handles GET /api/v1/ml/forecast?hours_ahead=24&zone_id=
func (h *MLHandler) ForecastEnergy(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	hoursAhead := c.QueryInt("hours_ahead", 24)
	if hoursAhead < 1 || hoursAhead > 168 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hours_ahead must be between 1 and 168"})
	}

	records, err := h.analytics.FetchData(c.Context(), filter)
	if err != nil {
		return err
	}

	forecasts, err := h.client.ForecastEnergy(c.Context(), records, hoursAhead)
	if err != nil {
		return err
	}

	var total float64
	for _, f := range forecasts {
		total += f.PredictedEnergyKWh
	}

	zone := filter.ZoneID
	if zone == "" {
		zone = "PLANT-LEVEL"
	}

	return c.JSON(fiber.Map{
		"zone":                 zone,
		"hours_ahead":          hoursAhead,
		"total_predicted_kwh":  round2(total),
		"average_per_hour_kwh": round2(total / float64(hoursAhead)),
		"forecasts":            forecasts,
	})
}

// CompareDetectors handles GET /api/v1/ml/compare: rule-based vs
// model-based detection over the same window.
func (h *MLHandler) CompareDetectors(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	records, err := h.analytics.FetchData(c.Context(), filter)
	if err != nil {
		return err
	}

	ruleAnomalies, err := h.analytics.DetectAnomalies(c.Context(), filter, h.configs.Get())
	if err != nil {
		return err
	}

	scores, err := h.client.ScoreAnomalies(c.Context(), records)
	if err != nil {
		return err
	}

	mlAnomalies := make([]ports.MLRecordScore, 0, len(scores))
	for _, s := range scores {
		if s.IsAnomaly {
			mlAnomalies = append(mlAnomalies, s)
		}
	}

	typeSet := make(map[string]struct{})
	for _, a := range ruleAnomalies {
		typeSet[string(a.Type)] = struct{}{}
	}
	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}

	total := len(records)
	ruleRate, mlRate := 0.0, 0.0
	if total > 0 {
		ruleRate = round2(float64(len(ruleAnomalies)) / float64(total) * 100)
		mlRate = round2(float64(len(mlAnomalies)) / float64(total) * 100)
	}

	return c.JSON(fiber.Map{
		"total_samples": total,
		"comparison": fiber.Map{
			"rule_based": fiber.Map{
				"anomalies_detected": len(ruleAnomalies),
				"detection_rate":     ruleRate,
				"types":              types,
				"method":             "Threshold-based rules",
			},
			"ml_based": fiber.Map{
				"anomalies_detected": len(mlAnomalies),
				"detection_rate":     mlRate,
				"method":             "Statistical outlier detection",
			},
		},
		"rule_anomalies": truncateAnomalies(ruleAnomalies, 10),
		"ml_anomalies":   truncateScores(mlAnomalies, 10),
	})
}

// Status handles GET /api/v1/ml/status
func (h *MLHandler) Status(c *fiber.Ctx) error {
	status, err := h.client.Status(c.Context())
	if err != nil {
		// Status is informational: an unreachable backend is reported,
		// not surfaced as a request failure.
		return c.JSON(fiber.Map{
			"status":  "not_configured",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  status,
		"message": "scoring service reachable",
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateScores(s []ports.MLRecordScore, n int) []ports.MLRecordScore {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func truncateAnomalies(a []domain.AnomalyRecord, n int) []domain.AnomalyRecord {
	if len(a) > n {
		return a[:n]
	}
	return a
}
