package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/plantops/greenops/internal/domain"
)

// ErrorHandler maps domain errors to HTTP status codes: an empty analysis
// window is 404, a malformed dataset is 400, an unconfigured ML backend
// is 503, everything else is 500.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		var schemaErr *domain.SchemaError

		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
		case errors.Is(err, domain.ErrEmptyResult):
			code = fiber.StatusNotFound
		case errors.As(err, &schemaErr):
			code = fiber.StatusBadRequest
		case errors.Is(err, domain.ErrMLUnavailable):
			code = fiber.StatusServiceUnavailable
		}

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error", zap.Error(err), zap.String("path", c.Path()))
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}
