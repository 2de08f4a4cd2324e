package cleanup

import (
	"errors"

	"consolidator/core/logger"
	"consolidator/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for cleanups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the cleanup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/clean", h.HandleClean)
}

// HandleClean clears the configured column range.
func (h *Handler) HandleClean(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Run(c.Context(), utils.ToBool(c.Query("dry_run")))
	if errors.Is(err, ErrFileMissing) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Cleanup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}
