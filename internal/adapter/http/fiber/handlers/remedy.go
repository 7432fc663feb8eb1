package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/ports"
	"github.com/plantops/greenops/internal/service/notify"
)

// RemedyHandler exposes the standalone remediation path: priority ranking
// and work-order plan creation.
type RemedyHandler struct {
	service ports.RemedyService
	configs ports.ConfigStore
	log     *zap.Logger
}

func NewRemedyHandler(service ports.RemedyService, configs ports.ConfigStore, log *zap.Logger) *RemedyHandler {
	return &RemedyHandler{
		service: service,
		configs: configs,
		log:     log,
	}
}

type createPlanRequest struct {
	Anomaly domain.RawAnomaly `json:"anomaly"`
}

// CreatePlan handles POST /api/v1/remedy/plan
func (h *RemedyHandler) CreatePlan(c *fiber.Ctx) error {
	var req createPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Anomaly.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "anomaly.type is required"})
	}

	plan, err := h.service.BuildRemediationPlan(c.Context(), req.Anomaly, h.configs.Get())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"plan":    plan,
		"message": notify.PlanChatSummary(plan),
	})
}

type rankPrioritiesRequest struct {
	Anomalies []domain.RawAnomaly `json:"anomalies"`
	Limit     int                 `json:"limit"`
}

// RankPriorities handles POST /api/v1/remedy/priorities
func (h *RemedyHandler) RankPriorities(c *fiber.Ctx) error {
	var req rankPrioritiesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	ranked := h.service.RankPriorities(c.Context(), req.Anomalies, req.Limit, h.configs.Get())

	return c.JSON(fiber.Map{
		"count":      len(ranked),
		"priorities": ranked,
	})
}
