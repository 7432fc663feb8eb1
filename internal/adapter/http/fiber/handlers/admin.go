package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
	"github.com/plantops/greenops/internal/ports"
)

// AdminHandler exposes the analysis-threshold configuration.
type AdminHandler struct {
	configs ports.ConfigStore
	log     *zap.Logger
}

func NewAdminHandler(configs ports.ConfigStore, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		configs: configs,
		log:     log,
	}
}

// GetConfig handles GET /api/v1/config
func (h *AdminHandler) GetConfig(c *fiber.Ctx) error {
	return c.JSON(h.configs.Get())
}

// UpdateConfig handles PUT /api/v1/config. The body must carry the full
// threshold set; thresholds are replaced wholesale, never merged.
func (h *AdminHandler) UpdateConfig(c *fiber.Ctx) error {
	var cfg domain.AnalysisConfig
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	if cfg.EnergyPerVehicleBenchmark <= 0 || cfg.HoursPerDay <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "benchmark and hours per day must be positive",
		})
	}

	h.configs.Replace(cfg)
	h.log.Info("Analysis config updated via API",
		zap.Any("user_id", c.Locals("user_id")),
	)

	return c.JSON(h.configs.Get())
}
