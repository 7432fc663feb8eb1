package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/ports"
)

// AnalyticsHandler exposes the batch pipeline: raw data, KPIs, anomaly
// detection, action planning and report assembly.
type AnalyticsHandler struct {
	service ports.AnalyticsService
	configs ports.ConfigStore
	log     *zap.Logger
}

func NewAnalyticsHandler(service ports.AnalyticsService, configs ports.ConfigStore, log *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		configs: configs,
		log:     log,
	}
}

// parseFilter reads the shared query filters: zone_id, shift, status,
// start_date, end_date (YYYY-MM-DD or RFC3339).
func parseFilter(c *fiber.Ctx) (domain.RecordFilter, error) {
	filter := domain.RecordFilter{
		ZoneID: c.Query("zone_id"),
		Shift:  domain.Shift(c.Query("shift")),
		Status: domain.ZoneStatus(strings.ToUpper(c.Query("status"))),
	}

	if v := c.Query("start_date"); v != "" {
		ts, err := parseDate(v)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid start_date: "+v)
		}
		filter.StartDate = ts
	}
	if v := c.Query("end_date"); v != "" {
		ts, err := parseDate(v)
		if err != nil {
			return filter, fiber.NewError(fiber.StatusBadRequest, "invalid end_date: "+v)
		}
		filter.EndDate = ts
	}

	return filter, nil
}

func parseDate(v string) (time.Time, error) {
	if ts, err := time.Parse("2006-01-02", v); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, v)
}

// GetData handles GET /api/v1/data
func (h *AnalyticsHandler) GetData(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	records, err := h.service.FetchData(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count": len(records),
		"data":  records,
	})
}

// GetKPIs handles GET /api/v1/kpis
func (h *AnalyticsHandler) GetKPIs(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	kpis, err := h.service.ComputeKPIs(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(kpis)
}

// GetAnomalies handles GET /api/v1/anomalies
func (h *AnalyticsHandler) GetAnomalies(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	anomalies, err := h.service.DetectAnomalies(c.Context(), filter, h.configs.Get())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count":     len(anomalies),
		"anomalies": anomalies,
	})
}

// GetActions handles GET /api/v1/actions
func (h *AnalyticsHandler) GetActions(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	actions, err := h.service.PlanActions(c.Context(), filter, h.configs.Get())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count":   len(actions),
		"actions": actions,
	})
}

// GetReport handles GET /api/v1/report?format=json|text
func (h *AnalyticsHandler) GetReport(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	text, report, err := h.service.GenerateReport(c.Context(), filter, h.configs.Get())
	if err != nil {
		return err
	}

	if strings.EqualFold(c.Query("format", "json"), "text") {
		return c.JSON(fiber.Map{"report": text})
	}
	return c.JSON(report)
}

// RunPipeline handles GET /api/v1/pipeline
func (h *AnalyticsHandler) RunPipeline(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}

	_, report, err := h.service.GenerateReport(c.Context(), filter, h.configs.Get())
	if err != nil {
		return err
	}

	return c.JSON(report)
}
